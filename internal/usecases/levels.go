package usecases

import "peels/internal/models"

const (
	EntryXP        = 10
	EntryBananas   = 5
	RewardedPerDay = 3
	levelStep      = 50

	EntryReason = "entry"
)

// LevelFor returns the largest level L >= 1 with 50*L*(L-1) <= xp.
func LevelFor(xp int) int {
	level := 1
	for XPForLevel(level+1) <= xp {
		level++
	}
	return level
}

// XPForLevel is the total experience needed to reach level.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return levelStep * level * (level - 1)
}

func XPToNextLevel(xp int) int {
	return XPForLevel(LevelFor(xp)+1) - xp
}

// EntryReward is what writing an entry grants given how many entries the
// user already wrote that day.
func EntryReward(writtenToday int) models.Reward {
	if writtenToday >= RewardedPerDay {
		return models.Reward{}
	}
	return models.Reward{XP: EntryXP, Bananas: EntryBananas, Reason: EntryReason}
}

func GoalReward(g models.Goal) models.Reward {
	return models.Reward{XP: g.RewardXP, Bananas: g.RewardBananas, Reason: "goal:" + g.Title}
}

// DefaultGoalReward scales with how demanding the goal is.
func DefaultGoalReward(period string, target int) (xp, bananas int) {
	mult := 1
	switch period {
	case models.PeriodWeekly:
		mult = 3
	case models.PeriodMonthly:
		mult = 8
	}
	return 5 * target * mult, 2 * target * mult
}
