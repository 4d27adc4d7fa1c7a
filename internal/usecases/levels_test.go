package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"peels/internal/models"
)

func TestLevelFor(t *testing.T) {
	cases := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{299, 2},
		{300, 3},
		{600, 4},
		{4950, 10},
	}
	for _, c := range cases {
		assert.Equal(t, c.level, LevelFor(c.xp), "xp=%d", c.xp)
	}
}

func TestXPToNextLevel(t *testing.T) {
	assert.Equal(t, 100, XPToNextLevel(0))
	assert.Equal(t, 1, XPToNextLevel(299))
	assert.Equal(t, 300, XPToNextLevel(300))
}

func TestEntryRewardDailyCap(t *testing.T) {
	assert.Equal(t, models.Reward{XP: 10, Bananas: 5, Reason: "entry"}, EntryReward(0))
	assert.Equal(t, 10, EntryReward(2).XP)
	assert.Equal(t, models.Reward{}, EntryReward(3))
}

func TestDefaultGoalReward(t *testing.T) {
	xp, bananas := DefaultGoalReward(models.PeriodDaily, 1)
	assert.Equal(t, 5, xp)
	assert.Equal(t, 2, bananas)

	xp, bananas = DefaultGoalReward(models.PeriodMonthly, 10)
	assert.Equal(t, 400, xp)
	assert.Equal(t, 160, bananas)
}
