package roster

import (
	"fmt"
	"strings"
	"time"

	"github.com/aftershock-ministries/judas-backend/models/postgres"

	"gorm.io/gorm"
)

// GormRoster owns the set of joined players: their identity, alive/out
// status and assigned role. Joins are open to anyone, role and alive
// changes are driven by the state machine and the host.
type GormRoster struct {
	DB *gorm.DB
}

func NewGormRoster(db *gorm.DB) *GormRoster {
	return &GormRoster{DB: db}
}

// Join creates a Player with alive=true and no role. Duplicate first names
// are allowed and must be tolerated downstream; rejoining with the same
// uid and name is idempotent and returns the existing document.
func (r *GormRoster) Join(firstName, uid string) (*postgres.Player, error) {
	var existing postgres.Player
	err := r.DB.Where("uid = ? AND first_name = ?", uid, firstName).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("error checking existing player: %v", err)
	}

	player := postgres.Player{
		FirstName: firstName,
		UID:       uid,
		Alive:     true,
		Status:    "idle",
		JoinedAt:  time.Now().UTC(),
	}
	if err := r.DB.Create(&player).Error; err != nil {
		return nil, fmt.Errorf("error creating player: %v", err)
	}
	return &player, nil
}

// Players lists the whole roster in join order
func (r *GormRoster) Players() ([]postgres.Player, error) {
	var players []postgres.Player
	if err := r.DB.Order("joined_at asc").Find(&players).Error; err != nil {
		return nil, fmt.Errorf("error listing players: %v", err)
	}
	return players, nil
}

func (r *GormRoster) PlayerByID(id string) (*postgres.Player, error) {
	var player postgres.Player
	err := r.DB.Where("id = ?", id).First(&player).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding player by id: %v", err)
	}
	return &player, nil
}

func (r *GormRoster) PlayerByUID(uid string) (*postgres.Player, error) {
	var player postgres.Player
	err := r.DB.Where("uid = ?", uid).Order("joined_at asc").First(&player).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding player by uid: %v", err)
	}
	return &player, nil
}

// PlayerByName resolves a display name case-insensitively. With duplicate
// names this returns the earliest joined match, best effort by design.
func (r *GormRoster) PlayerByName(firstName string) (*postgres.Player, error) {
	var player postgres.Player
	err := r.DB.Where("LOWER(first_name) = ?", strings.ToLower(firstName)).
		Order("joined_at asc").First(&player).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding player by name: %v", err)
	}
	return &player, nil
}

// SetAlive flips a player's alive flag. Idempotent.
func (r *GormRoster) SetAlive(id string, alive bool) error {
	if err := r.DB.Model(&postgres.Player{}).Where("id = ?", id).
		Update("alive", alive).Error; err != nil {
		return fmt.Errorf("error updating alive flag: %v", err)
	}
	return nil
}

// AssignRoles writes every role assignment and resets alive=true for all
// players in one transaction, the atomic batch of a fresh deal.
func (r *GormRoster) AssignRoles(roles map[string]string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&postgres.Player{}).Where("1 = 1").
			Update("alive", true).Error; err != nil {
			return fmt.Errorf("error resetting alive flags: %v", err)
		}
		for id, role := range roles {
			if err := tx.Model(&postgres.Player{}).Where("id = ?", id).
				Update("role", role).Error; err != nil {
				return fmt.Errorf("error assigning role to %s: %v", id, err)
			}
		}
		return nil
	})
}

// Alive returns living players, never including the host's own name: the
// host does not play.
func (r *GormRoster) Alive(hostFirstName string) ([]postgres.Player, error) {
	return r.filterByAlive(true, hostFirstName)
}

// Out returns eliminated players, host excluded as above
func (r *GormRoster) Out(hostFirstName string) ([]postgres.Player, error) {
	return r.filterByAlive(false, hostFirstName)
}

func (r *GormRoster) filterByAlive(alive bool, hostFirstName string) ([]postgres.Player, error) {
	players, err := r.Players()
	if err != nil {
		return nil, err
	}
	filtered := make([]postgres.Player, 0, len(players))
	for _, p := range players {
		if hostFirstName != "" && strings.EqualFold(p.FirstName, hostFirstName) {
			continue
		}
		if p.Alive == alive {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// DeletePlayer removes a single player, explicit admin action only
func (r *GormRoster) DeletePlayer(id string) error {
	if err := r.DB.Where("id = ?", id).Delete(&postgres.Player{}).Error; err != nil {
		return fmt.Errorf("error deleting player: %v", err)
	}
	return nil
}

// ClearPlayers wipes the whole roster, explicit admin action only
func (r *GormRoster) ClearPlayers() error {
	if err := r.DB.Where("1 = 1").Delete(&postgres.Player{}).Error; err != nil {
		return fmt.Errorf("error clearing players: %v", err)
	}
	return nil
}
