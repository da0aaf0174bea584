package game

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	game_constants "github.com/aftershock-ministries/judas-backend/constants/game"
	"github.com/aftershock-ministries/judas-backend/models/postgres"
	redis_models "github.com/aftershock-ministries/judas-backend/models/redis"
	redis_srv "github.com/aftershock-ministries/judas-backend/services/redis"

	"github.com/google/uuid"
)

// Roster is what the machine needs from the player set. Implemented by
// services/roster.GormRoster, faked in tests.
type Roster interface {
	Players() ([]postgres.Player, error)
	PlayerByID(id string) (*postgres.Player, error)
	PlayerByUID(uid string) (*postgres.Player, error)
	PlayerByName(firstName string) (*postgres.Player, error)
	SetAlive(id string, alive bool) error
	AssignRoles(roles map[string]string) error
}

// Archiver persists a finished round before its documents are cleared.
// Optional: a nil archiver skips the step.
type Archiver interface {
	ArchiveRound(round int, eliminated *string, dayTally []byte) error
}

// Machine is the authoritative phase/round engine. There is no game loop:
// every method is invoked by a client event, reads the shared documents,
// applies the rules and writes back. Host-only methods verify the host
// capability token and silently no-op when it does not match, authorization
// stays advisory exactly like killing the wrong client would be.
type Machine struct {
	Store   *redis_srv.RedisClient
	Roster  Roster
	Archive Archiver
}

func NewMachine(store *redis_srv.RedisClient, roster Roster, archive Archiver) *Machine {
	return &Machine{Store: store, Roster: roster, Archive: archive}
}

// ---------------------------------------------------------------
// Host capability
// ---------------------------------------------------------------

func (m *Machine) isHost(token string) bool {
	stored, err := m.Store.GetHostToken()
	if err != nil {
		log.Printf("[AUTH-ERROR] Error reading host token: %v", err)
		return false
	}
	return token != "" && token == stored
}

// VerifyHostToken lets the transport check a claimed capability before
// admitting a socket to the host room
func (m *Machine) VerifyHostToken(token string) bool {
	return m.isHost(token)
}

func (m *Machine) hostGate(token, operation string) bool {
	if m.isHost(token) {
		return true
	}
	log.Printf("[AUTH] Ignoring %s from a principal that is not the host", operation)
	return false
}

// ---------------------------------------------------------------
// Admin-driven operations (gated by the admin console, not by token)
// ---------------------------------------------------------------

// SetHost records the host and mints a fresh capability token. The token is
// handed to the chosen host out of band (the admin console displays it);
// holding it is what "being the host" means to this engine.
func (m *Machine) SetHost(firstName string) (string, error) {
	token := uuid.NewString()
	if err := m.Store.SetHostToken(token); err != nil {
		return "", fmt.Errorf("error storing host token: %v", err)
	}
	_, err := m.Store.UpdateGameState(func(s *redis_models.GameState) error {
		s.HostFirstName = firstName
		s.Status = redis_models.StatusWaitingStart
		return nil
	})
	if err != nil {
		return "", err
	}
	log.Printf("[HOST] %s is now the host", firstName)
	return token, nil
}

// ClearHost revokes the capability token and reopens host selection
func (m *Machine) ClearHost() error {
	if err := m.Store.SetHostToken(""); err != nil {
		return fmt.Errorf("error revoking host token: %v", err)
	}
	_, err := m.Store.UpdateGameState(func(s *redis_models.GameState) error {
		s.HostFirstName = ""
		s.Status = redis_models.StatusWaitingHost
		return nil
	})
	return err
}

// ---------------------------------------------------------------
// Host-driven lifecycle
// ---------------------------------------------------------------

// ChooseGame selects the ruleset and moves everyone to the rules screen
func (m *Machine) ChooseGame(token string, kind redis_models.GameKind) error {
	if !m.hostGate(token, "choose_game") {
		return nil
	}
	_, err := m.Store.UpdateGameState(func(s *redis_models.GameState) error {
		s.Game = kind
		s.Status = redis_models.StatusRules
		s.Phase = redis_models.PhaseRules
		return nil
	})
	return err
}

// BackToRules pauses the game and shows the rules again
func (m *Machine) BackToRules(token string) error {
	if !m.hostGate(token, "back_to_rules") {
		return nil
	}
	_, err := m.Store.UpdateGameState(func(s *redis_models.GameState) error {
		s.Status = redis_models.StatusRules
		s.Phase = redis_models.PhaseRules
		return nil
	})
	return err
}

// SetRoleCounts stores the requested special-role population. Normalized
// against the actual roster size at deal time, not here.
func (m *Machine) SetRoleCounts(token string, counts redis_models.RoleCounts) error {
	if !m.hostGate(token, "set_role_counts") {
		return nil
	}
	_, err := m.Store.UpdateGameState(func(s *redis_models.GameState) error {
		s.RoleCounts = counts
		return nil
	})
	return err
}

// SetDisclosure controls what the projector reveals about roles
func (m *Machine) SetDisclosure(token string, hideRolesAlive, revealDeadRoles bool) error {
	if !m.hostGate(token, "set_disclosure") {
		return nil
	}
	_, err := m.Store.UpdateGameState(func(s *redis_models.GameState) error {
		s.HideRolesAlive = hideRolesAlive
		s.RevealDeadRoles = revealDeadRoles
		return nil
	})
	return err
}

// StartGame deals roles to the roster (host excluded) and enters the first
// night. A full re-deal: alive flags reset, prior roles overwritten. The
// round number is kept, restarting mid-evening does not rewind it.
// Returns the dealt assignment so the transport can whisper roles.
func (m *Machine) StartGame(token string) (map[string]string, error) {
	if !m.hostGate(token, "start_game") {
		return nil, nil
	}

	state, err := m.Store.GetGameState()
	if err != nil {
		return nil, err
	}
	if state.Game != redis_models.GameJudas {
		return nil, fmt.Errorf("game %q is not playable", state.Game)
	}

	players, err := m.Roster.Players()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(players))
	for _, p := range players {
		if sameName(p.FirstName, state.HostFirstName) {
			continue
		}
		ids = append(ids, p.ID)
	}
	if len(ids) < game_constants.RecommendedMinPlayers {
		log.Printf("[DEAL] Dealing to a small roster (%d players), game may degrade", len(ids))
	}

	counts := NormalizeRoleCounts(len(ids), state.RoleCounts)
	assignment := DealRoles(ids, counts)

	if err := m.Roster.AssignRoles(assignment); err != nil {
		return nil, fmt.Errorf("error assigning roles: %v", err)
	}

	_, err = m.Store.UpdateGameState(func(s *redis_models.GameState) error {
		s.Status = redis_models.StatusInGame
		s.Phase = redis_models.PhaseNightJudas
		s.RoleCounts = counts
		s.Eliminated = nil
		s.DayEndsAt = nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[DEAL] Dealt roles to %d players (judas: %d, angel: %d)",
		len(ids), counts.Judas, counts.Angel)
	return assignment, nil
}

// ---------------------------------------------------------------
// Player submissions (owner-gated, not host-gated)
// ---------------------------------------------------------------

// SubmitNightVote upserts the voter's kill choice. Only alive judas players
// during night_judas.
func (m *Machine) SubmitNightVote(voterUID, targetRef string) error {
	state, err := m.Store.GetGameState()
	if err != nil {
		return err
	}
	if state.Phase != redis_models.PhaseNightJudas {
		return fmt.Errorf("night votes are only accepted during the %s phase (current: %s)",
			redis_models.PhaseNightJudas, state.Phase)
	}

	voter, err := m.Roster.PlayerByUID(voterUID)
	if err != nil {
		return err
	}
	if voter == nil || !voter.Alive || voter.Role != game_constants.RoleJudas {
		return fmt.Errorf("only living judas players vote at night")
	}

	target, err := m.resolveTarget(targetRef)
	if err != nil {
		return err
	}
	vote := &redis_models.NightVote{
		Round:    state.Round,
		VoterUID: voterUID,
		Role:     game_constants.RoleJudas,
		At:       time.Now().UTC(),
	}
	if target != nil {
		vote.TargetID = target.ID
		vote.TargetFirstName = target.FirstName
	} else {
		vote.TargetFirstName = targetRef
	}
	return m.Store.SaveNightVote(vote)
}

// SubmitProtect upserts the protector's shield choice. Only alive angel
// players during night_angel.
func (m *Machine) SubmitProtect(protectorUID, targetRef string) error {
	state, err := m.Store.GetGameState()
	if err != nil {
		return err
	}
	if state.Phase != redis_models.PhaseNightAngel {
		return fmt.Errorf("protections are only accepted during the %s phase (current: %s)",
			redis_models.PhaseNightAngel, state.Phase)
	}

	protector, err := m.Roster.PlayerByUID(protectorUID)
	if err != nil {
		return err
	}
	if protector == nil || !protector.Alive || protector.Role != game_constants.RoleAngel {
		return fmt.Errorf("only living angel players protect at night")
	}

	target, err := m.resolveTarget(targetRef)
	if err != nil {
		return err
	}
	protect := &redis_models.Protect{
		Round:        state.Round,
		ProtectorUID: protectorUID,
		Role:         game_constants.RoleAngel,
		At:           time.Now().UTC(),
	}
	if target != nil {
		protect.TargetID = target.ID
		protect.TargetFirstName = target.FirstName
	} else {
		protect.TargetFirstName = targetRef
	}
	return m.Store.SaveProtect(protect)
}

// SubmitDayVote upserts a public accusation. Any alive player except the
// host, during day_vote.
func (m *Machine) SubmitDayVote(voterUID, targetRef, roleGuess string) error {
	state, err := m.Store.GetGameState()
	if err != nil {
		return err
	}
	if state.Phase != redis_models.PhaseDayVote {
		return fmt.Errorf("accusations are only accepted during the %s phase (current: %s)",
			redis_models.PhaseDayVote, state.Phase)
	}

	voter, err := m.Roster.PlayerByUID(voterUID)
	if err != nil {
		return err
	}
	if voter == nil || !voter.Alive {
		return fmt.Errorf("only living players vote")
	}
	if sameName(voter.FirstName, state.HostFirstName) {
		return fmt.Errorf("the host does not vote")
	}

	target, err := m.resolveTarget(targetRef)
	if err != nil {
		return err
	}
	vote := &redis_models.DayVote{
		Round:     state.Round,
		VoterUID:  voterUID,
		RoleGuess: roleGuess,
		At:        time.Now().UTC(),
	}
	if target != nil {
		vote.TargetID = target.ID
		vote.TargetFirstName = target.FirstName
	} else {
		vote.TargetFirstName = targetRef
	}
	return m.Store.SaveDayVote(vote)
}

// ---------------------------------------------------------------
// Host-driven phase transitions
// ---------------------------------------------------------------

// NightStatus reports whether the judas votes have locked a target, used
// to gate the host's "proceed" action.
func (m *Machine) NightStatus() (int, string, bool, error) {
	state, err := m.Store.GetGameState()
	if err != nil {
		return 0, "", false, err
	}
	votes, err := m.Store.GetNightVotes(state.Round)
	if err != nil {
		return 0, "", false, err
	}
	target, ok := UnanimousTarget(votes)
	display := ""
	if ok {
		if p, err := m.resolveTarget(target); err == nil && p != nil {
			display = p.FirstName
		} else {
			display = target
		}
	}
	return len(votes), display, ok, nil
}

// AdvanceToAngel moves night_judas → night_angel once the judas votes are
// unanimous. Blocked while the target is ambiguous or the vote set empty.
func (m *Machine) AdvanceToAngel(token string) error {
	if !m.hostGate(token, "advance_to_angel") {
		return nil
	}

	state, err := m.Store.GetGameState()
	if err != nil {
		return err
	}
	votes, err := m.Store.GetNightVotes(state.Round)
	if err != nil {
		return err
	}
	if _, ok := UnanimousTarget(votes); !ok {
		return fmt.Errorf("the judas votes are not unanimous yet")
	}

	return m.transition(redis_models.PhaseNightJudas, redis_models.PhaseNightAngel, nil)
}

// RevealNight resolves the night: the locked target dies unless protected,
// and the outcome lands in eliminated for the reveal screen. A missing
// unanimous target resolves as no one eliminated, the defensive default.
func (m *Machine) RevealNight(token string) error {
	if !m.hostGate(token, "reveal_night") {
		return nil
	}

	state, err := m.Store.GetGameState()
	if err != nil {
		return err
	}
	votes, err := m.Store.GetNightVotes(state.Round)
	if err != nil {
		return err
	}
	protects, err := m.Store.GetProtects(state.Round)
	if err != nil {
		return err
	}

	eliminated, err := m.applyElimination(ResolveNight(votes, protects))
	if err != nil {
		return err
	}
	if eliminated != nil {
		log.Printf("[NIGHT] Round %d: %s was eliminated", state.Round, *eliminated)
	} else {
		log.Printf("[NIGHT] Round %d: no one was eliminated", state.Round)
	}

	return m.transition(redis_models.PhaseNightAngel, redis_models.PhaseReveal, func(s *redis_models.GameState) {
		s.Eliminated = eliminated
	})
}

// BeginDiscussion opens the timed day window. The deadline is advisory:
// lapsing never transitions the phase, the host opens voting manually.
func (m *Machine) BeginDiscussion(token string) error {
	if !m.hostGate(token, "begin_discussion") {
		return nil
	}
	deadline := time.Now().UTC().Add(game_constants.DayDiscussSeconds * time.Second)
	return m.transition(redis_models.PhaseReveal, redis_models.PhaseDayDiscuss, func(s *redis_models.GameState) {
		s.DayEndsAt = &deadline
	})
}

// OpenVoting moves day_discuss → day_vote and resets the previous outcome:
// a fresh resolution begins.
func (m *Machine) OpenVoting(token string) error {
	if !m.hostGate(token, "open_voting") {
		return nil
	}
	return m.transition(redis_models.PhaseDayDiscuss, redis_models.PhaseDayVote, func(s *redis_models.GameState) {
		s.Eliminated = nil
		s.DayEndsAt = nil
	})
}

// ResolveDayVote tallies the accusations and eliminates the clear winner.
// An empty tally, a tie for first, or a target that no longer matches a
// living player all resolve as no one eliminated. The phase always moves
// to reveal, whatever the outcome.
func (m *Machine) ResolveDayVote(token string) error {
	if !m.hostGate(token, "resolve_day_vote") {
		return nil
	}

	state, err := m.Store.GetGameState()
	if err != nil {
		return err
	}
	votes, err := m.Store.GetDayVotes(state.Round)
	if err != nil {
		return err
	}

	var eliminated *string
	if top, ok := TopChoice(TallyVotes(votes)); ok {
		eliminated, err = m.applyElimination(top.TargetKey, true)
		if err != nil {
			return err
		}
	}
	if eliminated != nil {
		log.Printf("[DAY] Round %d: the assembly eliminated %s", state.Round, *eliminated)
	} else {
		log.Printf("[DAY] Round %d: no elimination (empty, tied or unmatched vote)", state.Round)
	}

	return m.transition(redis_models.PhaseDayVote, redis_models.PhaseReveal, func(s *redis_models.GameState) {
		s.Eliminated = eliminated
	})
}

// ClearVotes wipes the current round's day votes so the host can restart a
// botched vote without advancing the round
func (m *Machine) ClearVotes(token string) error {
	if !m.hostGate(token, "clear_votes") {
		return nil
	}
	state, err := m.Store.GetGameState()
	if err != nil {
		return err
	}
	return m.Store.ClearDayVotes(state.Round)
}

// NextRound archives the finished round, clears every round-scoped
// document in one batch, then increments the round and re-enters
// night_judas. A crash between the clear and the state write leaves the
// round un-advanced; the host recovers by re-issuing next_round.
func (m *Machine) NextRound(token string) error {
	if !m.hostGate(token, "next_round") {
		return nil
	}

	state, err := m.Store.GetGameState()
	if err != nil {
		return err
	}
	if state.Phase != redis_models.PhaseReveal {
		return fmt.Errorf("rounds only advance from the %s phase (current: %s)",
			redis_models.PhaseReveal, state.Phase)
	}

	if m.Archive != nil {
		votes, err := m.Store.GetDayVotes(state.Round)
		if err != nil {
			return err
		}
		tallyJSON, err := json.Marshal(TallyVotes(votes))
		if err != nil {
			return fmt.Errorf("error marshaling day tally: %v", err)
		}
		if err := m.Archive.ArchiveRound(state.Round, state.Eliminated, tallyJSON); err != nil {
			// Archiving is bookkeeping, the round still advances
			log.Printf("[ROUND-ADVANCE-ERROR] Error archiving round %d: %v", state.Round, err)
		}
	}

	if err := m.Store.ClearRound(state.Round); err != nil {
		return err
	}

	_, err = m.Store.UpdateGameState(func(s *redis_models.GameState) error {
		if s.Phase != redis_models.PhaseReveal {
			return fmt.Errorf("phase changed while advancing the round")
		}
		s.Round++
		s.Phase = redis_models.PhaseNightJudas
		s.Eliminated = nil
		s.DayEndsAt = nil
		s.Status = redis_models.StatusInGame
		return nil
	})
	if err != nil {
		return err
	}
	log.Printf("[ROUND-ADVANCE] Advanced to round %d", state.Round+1)
	return nil
}

// ---------------------------------------------------------------
// Host corrections
// ---------------------------------------------------------------

// KillPlayer flips a player out by display name, the host's manual override
func (m *Machine) KillPlayer(token, firstName string) error {
	if !m.hostGate(token, "kill_player") {
		return nil
	}
	return m.setAliveByName(firstName, false)
}

// RevivePlayer reverts an elimination, used to correct mistakes
func (m *Machine) RevivePlayer(token, firstName string) error {
	if !m.hostGate(token, "revive_player") {
		return nil
	}
	return m.setAliveByName(firstName, true)
}

func (m *Machine) setAliveByName(firstName string, alive bool) error {
	player, err := m.Roster.PlayerByName(firstName)
	if err != nil {
		return err
	}
	if player == nil {
		return fmt.Errorf("no player named %q", firstName)
	}
	return m.Roster.SetAlive(player.ID, alive)
}

// ---------------------------------------------------------------
// Internals
// ---------------------------------------------------------------

// transition performs a CAS phase move, validating the canonical order
func (m *Machine) transition(from, to redis_models.GamePhase, mutate func(*redis_models.GameState)) error {
	_, err := m.Store.UpdateGameState(func(s *redis_models.GameState) error {
		if s.Phase != from {
			return fmt.Errorf("expected phase %s, found %s", from, s.Phase)
		}
		if !s.Phase.CanAdvanceTo(to) {
			return fmt.Errorf("phase %s cannot advance to %s", s.Phase, to)
		}
		s.Phase = to
		if mutate != nil {
			mutate(s)
		}
		return nil
	})
	return err
}

// resolveTarget accepts a stable player id or a display name
func (m *Machine) resolveTarget(ref string) (*postgres.Player, error) {
	if ref == "" {
		return nil, nil
	}
	player, err := m.Roster.PlayerByID(ref)
	if err != nil {
		return nil, err
	}
	if player != nil {
		return player, nil
	}
	return m.Roster.PlayerByName(ref)
}

// applyElimination flips the resolved target out and returns their
// display-cased name, or nil when nothing matched a living player
func (m *Machine) applyElimination(targetKey string, die bool) (*string, error) {
	if !die || targetKey == "" {
		return nil, nil
	}
	player, err := m.resolveTarget(targetKey)
	if err != nil {
		return nil, err
	}
	if player == nil || !player.Alive {
		return nil, nil
	}
	if err := m.Roster.SetAlive(player.ID, false); err != nil {
		return nil, err
	}
	name := player.FirstName
	return &name, nil
}
