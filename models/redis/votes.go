package redis

import "time"

// NightVote is a judas player's private kill choice. One document per
// (round, voter): resubmitting overwrites, so a voter may change their mind
// until the host locks the target by advancing the phase.
type NightVote struct {
	Round           int       `json:"round"`
	VoterUID        string    `json:"voterUid"`
	TargetID        string    `json:"targetId"`
	TargetFirstName string    `json:"targetFirstName"`
	Role            string    `json:"role"` // role of the voter, only judas acts
	At              time.Time `json:"at"`
}

// Protect is an angel player's private shield choice, same upsert
// discipline as NightVote.
type Protect struct {
	Round           int       `json:"round"`
	ProtectorUID    string    `json:"protectorUid"`
	TargetID        string    `json:"targetId"`
	TargetFirstName string    `json:"targetFirstName"`
	Role            string    `json:"role"`
	At              time.Time `json:"at"`
}

// DayVote is a public accusation. RoleGuess is cosmetic metadata the
// projector may display, it never affects the tally.
type DayVote struct {
	Round           int       `json:"round"`
	VoterUID        string    `json:"voterUid"`
	TargetID        string    `json:"targetId"`
	TargetFirstName string    `json:"targetFirstName"`
	RoleGuess       string    `json:"roleGuess,omitempty"`
	At              time.Time `json:"at"`
}
