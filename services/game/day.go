package game

import (
	"sort"
	"strings"

	redis_models "github.com/aftershock-ministries/judas-backend/models/redis"
)

// TallyEntry is one grouped accusation target with its vote count
type TallyEntry struct {
	TargetKey string `json:"targetKey"`
	Display   string `json:"display"`
	Count     int    `json:"count"`
}

// TallyVotes groups day votes by target and counts them, descending. Only
// each voter's most recent vote counts: resubmission replaces, never
// duplicates. Ties are not broken by any secondary key.
func TallyVotes(votes []redis_models.DayVote) []TallyEntry {
	latest := make(map[string]redis_models.DayVote, len(votes))
	for _, vote := range votes {
		current, seen := latest[vote.VoterUID]
		if !seen || vote.At.After(current.At) {
			latest[vote.VoterUID] = vote
		}
	}

	counts := make(map[string]int, len(latest))
	display := make(map[string]string, len(latest))
	for _, vote := range latest {
		key := nightVoteKey(vote.TargetID, vote.TargetFirstName)
		if key == "" {
			continue
		}
		counts[key]++
		if _, ok := display[key]; !ok {
			display[key] = vote.TargetFirstName
		}
	}

	tally := make([]TallyEntry, 0, len(counts))
	for key, count := range counts {
		tally = append(tally, TallyEntry{
			TargetKey: key,
			Display:   display[key],
			Count:     count,
		})
	}
	sort.Slice(tally, func(i, j int) bool {
		return tally[i].Count > tally[j].Count
	})
	return tally
}

// TopChoice returns the winning tally entry. An empty tally or a tie for
// first place yields no winner, which resolves as "no one eliminated".
func TopChoice(tally []TallyEntry) (TallyEntry, bool) {
	if len(tally) == 0 {
		return TallyEntry{}, false
	}
	if len(tally) > 1 && tally[0].Count == tally[1].Count {
		return TallyEntry{}, false
	}
	return tally[0], true
}

// sameName compares display names the way the whole protocol does
func sameName(a, b string) bool {
	return strings.EqualFold(a, b)
}
