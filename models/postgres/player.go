package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'Player' is one joined participant. The id is the stable identity every
 * cross-reference (votes, protects, kills) keys on; FirstName is only a
 * display label and is NOT unique, duplicates are tolerated by design.
 */
type Player struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	FirstName string    `gorm:"size:50;not null;index:idx_players_first_name" json:"firstName"`
	UID       string    `gorm:"size:36;not null;index:idx_players_uid" json:"uid"`
	Alive     bool      `gorm:"not null;default:true" json:"alive"`
	Role      string    `gorm:"size:20" json:"role,omitempty"`
	Status    string    `gorm:"size:20;default:idle" json:"status"`
	JoinedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_players_joined_at" json:"joinedAt"`
}

func (p *Player) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.JoinedAt.IsZero() {
		p.JoinedAt = time.Now().UTC()
	}
	return nil
}
