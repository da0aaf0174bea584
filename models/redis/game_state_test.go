package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAdvanceToFollowsCanonicalOrder(t *testing.T) {
	assert.True(t, PhaseRules.CanAdvanceTo(PhaseNightJudas))
	assert.True(t, PhaseNightJudas.CanAdvanceTo(PhaseNightAngel))
	assert.True(t, PhaseNightAngel.CanAdvanceTo(PhaseReveal))
	assert.True(t, PhaseDayDiscuss.CanAdvanceTo(PhaseDayVote))
	assert.True(t, PhaseDayVote.CanAdvanceTo(PhaseReveal))

	// Reveal forks: into the day, or into the next round's night
	assert.True(t, PhaseReveal.CanAdvanceTo(PhaseDayDiscuss))
	assert.True(t, PhaseReveal.CanAdvanceTo(PhaseNightJudas))
}

func TestCanAdvanceToRejectsSkips(t *testing.T) {
	assert.False(t, PhaseNightJudas.CanAdvanceTo(PhaseReveal))
	assert.False(t, PhaseNightJudas.CanAdvanceTo(PhaseDayVote))
	assert.False(t, PhaseDayDiscuss.CanAdvanceTo(PhaseReveal))
	assert.False(t, PhaseReveal.CanAdvanceTo(PhaseDayVote))
	assert.False(t, PhaseNightAngel.CanAdvanceTo(PhaseNightJudas))
	assert.False(t, PhaseRules.CanAdvanceTo(PhaseRules))
}
