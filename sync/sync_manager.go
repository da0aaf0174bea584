package sync

import (
	"fmt"

	"github.com/aftershock-ministries/judas-backend/models/postgres"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SyncManager persists live-store outcomes into PostgreSQL. The engine
// never reads these back; they exist so operators can reconstruct an
// evening after the Redis documents expire.
type SyncManager struct {
	db *gorm.DB
}

// NewSyncManager creates a new instance of the synchronization manager
func NewSyncManager(db *gorm.DB) *SyncManager {
	return &SyncManager{db: db}
}

// ArchiveRound writes one RoundRecord for a finished round, called right
// before the round-scoped documents are cleared
func (sm *SyncManager) ArchiveRound(round int, eliminated *string, dayTally []byte) error {
	record := postgres.RoundRecord{
		Round:      round,
		Eliminated: eliminated,
		DayTally:   datatypes.JSON(dayTally),
	}
	if err := sm.db.Create(&record).Error; err != nil {
		return fmt.Errorf("error archiving round %d: %v", round, err)
	}
	return nil
}
