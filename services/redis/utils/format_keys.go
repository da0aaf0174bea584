package utils

/**
 * This file contains utility functions to format the keys for Redis
 * (key, value) pairs. It avoids having to call "fmt.Sprintf(...)"
 * with the same format spec every time, potentially confusing the key format.
 */

import "fmt"

// Singleton game state document
func FormatGameStateKey() string {
	return "judas:state"
}

// Host capability token, stored outside the broadcast state document
func FormatHostTokenKey() string {
	return "judas:host_token"
}

// Vote-type documents are keyed {round}_{voterUid} so resubmission
// overwrites instead of appending.
func FormatNightVoteKey(round int, voterUID string) string {
	return fmt.Sprintf("judas:night_vote:%d_%s", round, voterUID)
}

func FormatProtectKey(round int, protectorUID string) string {
	return fmt.Sprintf("judas:protect:%d_%s", round, protectorUID)
}

func FormatDayVoteKey(round int, voterUID string) string {
	return fmt.Sprintf("judas:day_vote:%d_%s", round, voterUID)
}

// Per-round index sets, used to list and batch-clear a round's documents
func FormatNightVoteIndexKey(round int) string {
	return fmt.Sprintf("judas:night_votes:round:%d", round)
}

func FormatProtectIndexKey(round int) string {
	return fmt.Sprintf("judas:protects:round:%d", round)
}

func FormatDayVoteIndexKey(round int) string {
	return fmt.Sprintf("judas:day_votes:round:%d", round)
}
