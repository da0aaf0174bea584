package postgres

import "time"

/*
 * 'Admin' is an operator allowed to pick the host and manage the roster.
 * Keyed by lower-cased first name, matching how admins unlock the console.
 */
type Admin struct {
	FirstName      string    `gorm:"primaryKey;size:50" json:"firstName"`
	PassphraseHash string    `gorm:"size:255;not null" json:"-"`
	CreatedBy      string    `gorm:"size:50" json:"createdBy"`
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
}
