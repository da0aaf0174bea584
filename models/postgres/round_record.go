package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'RoundRecord' archives the outcome of a finished round right before the
 * round-scoped vote documents are cleared from the live store. Purely for
 * the operators, the engine never reads it back.
 */
type RoundRecord struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Round      int            `gorm:"not null;index:idx_round_records_round" json:"round"`
	Eliminated *string        `gorm:"size:50" json:"eliminated"`
	DayTally   datatypes.JSON `json:"dayTally"`
	CreatedAt  time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
}
