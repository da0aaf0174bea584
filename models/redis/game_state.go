package redis

import "time"

// Coarse lifecycle stage of the whole evening
type GameStatus string

const (
	StatusWaitingHost  GameStatus = "waitingHost"
	StatusWaitingStart GameStatus = "waitingStart"
	StatusRules        GameStatus = "rules"
	StatusInGame       GameStatus = "inGame"
)

// Selected ruleset. Only judas is playable, the others show "coming soon".
type GameKind string

const (
	GameJudas  GameKind = "judas"
	GameTrivia GameKind = "trivia"
	GameEmpire GameKind = "empire"
)

// Fine-grained turn state within a round
type GamePhase string

const (
	PhaseRules      GamePhase = "rules"
	PhaseNightJudas GamePhase = "night_judas"
	PhaseNightAngel GamePhase = "night_angel"
	PhaseDayDiscuss GamePhase = "day_discuss"
	PhaseDayVote    GamePhase = "day_vote"
	PhaseReveal     GamePhase = "reveal"
)

// CanAdvanceTo checks whether the canonical phase order allows moving from
// p to next. Reveal is reached twice per round (post-night and post-day),
// so it can continue to day_discuss or to night_judas of the next round.
func (p GamePhase) CanAdvanceTo(next GamePhase) bool {
	allowed := map[GamePhase][]GamePhase{
		PhaseRules:      {PhaseNightJudas},
		PhaseNightJudas: {PhaseNightAngel},
		PhaseNightAngel: {PhaseReveal},
		PhaseReveal:     {PhaseDayDiscuss, PhaseNightJudas},
		PhaseDayDiscuss: {PhaseDayVote},
		PhaseDayVote:    {PhaseReveal},
	}
	for _, phase := range allowed[p] {
		if phase == next {
			return true
		}
	}
	return false
}

// Configured population of the special roles
type RoleCounts struct {
	Judas int `json:"judas"`
	Angel int `json:"angel"`
}

// GameState is the singleton document every client derives its UI from.
// Revision is a monotonic optimistic-concurrency token: every write goes
// through a check-and-increment, so two principals both believing they are
// the host surface as a conflict instead of silently overwriting each other.
type GameState struct {
	Status          GameStatus `json:"status"`
	HostFirstName   string     `json:"hostFirstName,omitempty"`
	Game            GameKind   `json:"game,omitempty"`
	Phase           GamePhase  `json:"phase"`
	Round           int        `json:"round"`
	RoleCounts      RoleCounts `json:"roleCounts"`
	HideRolesAlive  bool       `json:"hideRolesAlive"`
	RevealDeadRoles bool       `json:"revealDeadRoles"`
	DayEndsAt       *time.Time `json:"dayEndsAt,omitempty"`
	Eliminated      *string    `json:"eliminated"` // nil means "no one"
	Revision        int64      `json:"revision"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// NewGameState returns the initial state: waiting for an admin to pick a
// host, rules phase, round 1. There is no terminal state.
func NewGameState() *GameState {
	return &GameState{
		Status: StatusWaitingHost,
		Phase:  PhaseRules,
		Round:  1,
		RoleCounts: RoleCounts{
			Judas: 1,
			Angel: 1,
		},
		// Roles stay hidden until the host opts into showing them
		HideRolesAlive: true,
		UpdatedAt:      time.Now().UTC(),
	}
}
