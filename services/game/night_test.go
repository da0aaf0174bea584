package game

import (
	"testing"

	redis_models "github.com/aftershock-ministries/judas-backend/models/redis"

	"github.com/stretchr/testify/assert"
)

func nightVote(voter, targetID, targetName string) redis_models.NightVote {
	return redis_models.NightVote{VoterUID: voter, TargetID: targetID, TargetFirstName: targetName}
}

func TestUnanimousTarget(t *testing.T) {
	t.Run("all votes on the same id lock the target", func(t *testing.T) {
		target, ok := UnanimousTarget([]redis_models.NightVote{
			nightVote("v1", "p9", "Peter"),
			nightVote("v2", "p9", "Peter"),
			nightVote("v3", "p9", "Peter"),
		})
		assert.True(t, ok)
		assert.Equal(t, "p9", target)
	})

	t.Run("a single vote is unanimous", func(t *testing.T) {
		target, ok := UnanimousTarget([]redis_models.NightVote{nightVote("v1", "p9", "Peter")})
		assert.True(t, ok)
		assert.Equal(t, "p9", target)
	})

	t.Run("a split vote locks nothing", func(t *testing.T) {
		_, ok := UnanimousTarget([]redis_models.NightVote{
			nightVote("v1", "p9", "Peter"),
			nightVote("v2", "p4", "Thomas"),
		})
		assert.False(t, ok)
	})

	t.Run("no votes lock nothing", func(t *testing.T) {
		_, ok := UnanimousTarget(nil)
		assert.False(t, ok)
	})

	t.Run("name references compare case-insensitively", func(t *testing.T) {
		target, ok := UnanimousTarget([]redis_models.NightVote{
			nightVote("v1", "", "Peter"),
			nightVote("v2", "", "peter"),
		})
		assert.True(t, ok)
		assert.Equal(t, "peter", target)
	})

	t.Run("an id and a name are distinct references", func(t *testing.T) {
		// The engine never guesses that "p9" displays as "Peter"; callers
		// resolve names to ids before storing when they can
		_, ok := UnanimousTarget([]redis_models.NightVote{
			nightVote("v1", "p9", "Peter"),
			nightVote("v2", "", "Peter"),
		})
		assert.False(t, ok)
	})
}

func TestProtectedSet(t *testing.T) {
	protected := ProtectedSet([]redis_models.Protect{
		{ProtectorUID: "a1", TargetID: "p9"},
		{ProtectorUID: "a2", TargetFirstName: "Thomas"},
	})
	assert.True(t, protected["p9"])
	assert.True(t, protected["thomas"])
	assert.False(t, protected["peter"])
}

func TestResolveNight(t *testing.T) {
	votes := []redis_models.NightVote{
		nightVote("v1", "p9", "Peter"),
		nightVote("v2", "p9", "Peter"),
	}

	t.Run("unprotected target dies", func(t *testing.T) {
		target, die := ResolveNight(votes, nil)
		assert.True(t, die)
		assert.Equal(t, "p9", target)
	})

	t.Run("protection saves the target", func(t *testing.T) {
		target, die := ResolveNight(votes, []redis_models.Protect{
			{ProtectorUID: "a1", TargetID: "p9"},
		})
		assert.False(t, die)
		assert.Equal(t, "p9", target)
	})

	t.Run("protecting someone else changes nothing", func(t *testing.T) {
		_, die := ResolveNight(votes, []redis_models.Protect{
			{ProtectorUID: "a1", TargetID: "p4"},
		})
		assert.True(t, die)
	})

	t.Run("no unanimous target means no death", func(t *testing.T) {
		_, die := ResolveNight(nil, nil)
		assert.False(t, die)
	})
}
