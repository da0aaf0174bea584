package redis

import (
	"testing"
	"time"

	redis_models "github.com/aftershock-ministries/judas-backend/models/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *RedisClient {
	mr := miniredis.RunT(t)
	rc, err := InitRedis("redis://"+mr.Addr(), 0)
	require.NoError(t, err)
	t.Cleanup(func() { CloseRedis(rc) })
	return rc
}

func TestGameStateLifecycle(t *testing.T) {
	rc := newTestClient(t)

	// A fresh store answers with the initial state without persisting it
	state, err := rc.GetGameState()
	require.NoError(t, err)
	assert.Equal(t, redis_models.StatusWaitingHost, state.Status)
	assert.Equal(t, redis_models.PhaseRules, state.Phase)
	assert.Equal(t, 1, state.Round)
	assert.Equal(t, int64(0), state.Revision)

	// Seeding twice never resets an existing document
	_, err = rc.EnsureGameState()
	require.NoError(t, err)
	_, err = rc.UpdateGameState(func(s *redis_models.GameState) error {
		s.Round = 7
		return nil
	})
	require.NoError(t, err)
	seeded, err := rc.EnsureGameState()
	require.NoError(t, err)
	assert.Equal(t, 7, seeded.Round)
}

func TestUpdateGameStateIncrementsRevision(t *testing.T) {
	rc := newTestClient(t)
	_, err := rc.EnsureGameState()
	require.NoError(t, err)

	first, err := rc.UpdateGameState(func(s *redis_models.GameState) error {
		s.Status = redis_models.StatusWaitingStart
		return nil
	})
	require.NoError(t, err)
	second, err := rc.UpdateGameState(func(s *redis_models.GameState) error {
		s.Phase = redis_models.PhaseNightJudas
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, first.Revision+1, second.Revision)
	assert.Equal(t, redis_models.StatusWaitingStart, second.Status)

	stored, err := rc.GetGameState()
	require.NoError(t, err)
	assert.Equal(t, second.Revision, stored.Revision)
}

func TestUpdateGameStateMutateErrorAborts(t *testing.T) {
	rc := newTestClient(t)
	_, err := rc.EnsureGameState()
	require.NoError(t, err)

	before, err := rc.GetGameState()
	require.NoError(t, err)

	_, err = rc.UpdateGameState(func(s *redis_models.GameState) error {
		s.Round = 99
		return assert.AnError
	})
	assert.Error(t, err)

	after, err := rc.GetGameState()
	require.NoError(t, err)
	assert.Equal(t, before.Revision, after.Revision)
	assert.Equal(t, before.Round, after.Round)
}

func TestHostToken(t *testing.T) {
	rc := newTestClient(t)

	token, err := rc.GetHostToken()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, rc.SetHostToken("cap-123"))
	token, err = rc.GetHostToken()
	require.NoError(t, err)
	assert.Equal(t, "cap-123", token)

	// Empty token revokes
	require.NoError(t, rc.SetHostToken(""))
	token, err = rc.GetHostToken()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestNightVoteUpsert(t *testing.T) {
	rc := newTestClient(t)
	now := time.Now().UTC()

	require.NoError(t, rc.SaveNightVote(&redis_models.NightVote{
		Round: 1, VoterUID: "v1", TargetID: "p9", TargetFirstName: "Peter", At: now,
	}))
	require.NoError(t, rc.SaveNightVote(&redis_models.NightVote{
		Round: 1, VoterUID: "v1", TargetID: "p4", TargetFirstName: "Thomas", At: now.Add(time.Second),
	}))

	votes, err := rc.GetNightVotes(1)
	require.NoError(t, err)
	require.Len(t, votes, 1, "resubmitting must overwrite, not duplicate")
	assert.Equal(t, "p4", votes[0].TargetID)

	// Another voter gets their own document
	require.NoError(t, rc.SaveNightVote(&redis_models.NightVote{
		Round: 1, VoterUID: "v2", TargetID: "p4", At: now,
	}))
	votes, err = rc.GetNightVotes(1)
	require.NoError(t, err)
	assert.Len(t, votes, 2)
}

func TestClearRoundIsScoped(t *testing.T) {
	rc := newTestClient(t)
	now := time.Now().UTC()

	require.NoError(t, rc.SaveNightVote(&redis_models.NightVote{Round: 1, VoterUID: "v1", TargetID: "p9", At: now}))
	require.NoError(t, rc.SaveProtect(&redis_models.Protect{Round: 1, ProtectorUID: "a1", TargetID: "p9", At: now}))
	require.NoError(t, rc.SaveDayVote(&redis_models.DayVote{Round: 1, VoterUID: "v1", TargetID: "p9", At: now}))
	require.NoError(t, rc.SaveNightVote(&redis_models.NightVote{Round: 2, VoterUID: "v1", TargetID: "p4", At: now}))

	require.NoError(t, rc.ClearRound(1))

	for round, want := range map[int]int{1: 0, 2: 1} {
		votes, err := rc.GetNightVotes(round)
		require.NoError(t, err)
		assert.Len(t, votes, want, "round %d", round)
	}
	protects, err := rc.GetProtects(1)
	require.NoError(t, err)
	assert.Empty(t, protects)
	dayVotes, err := rc.GetDayVotes(1)
	require.NoError(t, err)
	assert.Empty(t, dayVotes)
}

func TestClearDayVotesLeavesNightDocuments(t *testing.T) {
	rc := newTestClient(t)
	now := time.Now().UTC()

	require.NoError(t, rc.SaveNightVote(&redis_models.NightVote{Round: 1, VoterUID: "v1", TargetID: "p9", At: now}))
	require.NoError(t, rc.SaveDayVote(&redis_models.DayVote{Round: 1, VoterUID: "v1", TargetID: "p9", At: now}))

	require.NoError(t, rc.ClearDayVotes(1))

	dayVotes, err := rc.GetDayVotes(1)
	require.NoError(t, err)
	assert.Empty(t, dayVotes)
	nightVotes, err := rc.GetNightVotes(1)
	require.NoError(t, err)
	assert.Len(t, nightVotes, 1)
}
