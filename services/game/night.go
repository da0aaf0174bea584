package game

import (
	"strings"

	redis_models "github.com/aftershock-ministries/judas-backend/models/redis"
)

// targetKey is the canonical reference for a vote target: the stable player
// id when the client sent one, otherwise the lower-cased display name
func nightVoteKey(targetID, targetFirstName string) string {
	if targetID != "" {
		return targetID
	}
	return strings.ToLower(targetFirstName)
}

// UnanimousTarget locks a night target iff every current judas vote names
// the same player. An empty or split vote set locks nothing, the UI keeps
// the "proceed" action disabled until this returns ok.
func UnanimousTarget(votes []redis_models.NightVote) (string, bool) {
	target := ""
	for _, vote := range votes {
		key := nightVoteKey(vote.TargetID, vote.TargetFirstName)
		if key == "" {
			continue
		}
		if target == "" {
			target = key
			continue
		}
		if target != key {
			return "", false
		}
	}
	if target == "" {
		return "", false
	}
	return target, true
}

// ProtectedSet collects every protected target for the round
func ProtectedSet(protects []redis_models.Protect) map[string]bool {
	protected := make(map[string]bool, len(protects))
	for _, p := range protects {
		key := nightVoteKey(p.TargetID, p.TargetFirstName)
		if key != "" {
			protected[key] = true
		}
	}
	return protected
}

// ResolveNight derives the night outcome: the locked target dies unless an
// angel protected them. No unanimous target means no one is eliminated,
// a valid outcome rather than an error.
func ResolveNight(votes []redis_models.NightVote, protects []redis_models.Protect) (string, bool) {
	target, ok := UnanimousTarget(votes)
	if !ok {
		return "", false
	}
	if ProtectedSet(protects)[target] {
		return target, false
	}
	return target, true
}
