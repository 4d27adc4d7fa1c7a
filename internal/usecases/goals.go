package usecases

import (
	"context"
	"fmt"
	"time"

	"peels/internal/models"
)

type GoalStore interface {
	ListGoals(ctx context.Context, userID int, openOnly bool) ([]models.Goal, error)
	CompleteGoal(ctx context.Context, id int) (time.Time, bool, error)
}

type EntryCounter interface {
	CountDatedBetween(ctx context.Context, userID int, start, end time.Time) (int, error)
}

// GoalTracker computes goal progress and settles goals that reached their
// target.
type GoalTracker struct {
	goals    GoalStore
	entries  EntryCounter
	rewarder *Rewarder
	notify   Notifier
	now      func() time.Time
}

func NewGoalTracker(goals GoalStore, entries EntryCounter, rewarder *Rewarder, notify Notifier) *GoalTracker {
	return &GoalTracker{goals: goals, entries: entries, rewarder: rewarder, notify: notify, now: time.Now}
}

// Progress fills g.Progress with the entries written in g's current period.
func (gt *GoalTracker) Progress(ctx context.Context, g *models.Goal) error {
	start, end, err := PeriodWindow(g.Period, gt.now())
	if err != nil {
		return err
	}

	n, err := gt.entries.CountDatedBetween(ctx, g.UserID, start, end)
	if err != nil {
		return fmt.Errorf("goal %d progress: %w", g.ID, err)
	}
	g.Progress = n
	if g.Completed && g.Progress < g.Target {
		g.Progress = g.Target
	}
	return nil
}

// Evaluate checks the user's open goals and completes those that reached
// their target. It returns the goals completed by this call.
func (gt *GoalTracker) Evaluate(ctx context.Context, userID int) ([]models.Goal, error) {
	open, err := gt.goals.ListGoals(ctx, userID, true)
	if err != nil {
		return nil, fmt.Errorf("evaluate goals: %w", err)
	}

	var done []models.Goal
	for i := range open {
		g := &open[i]
		if err := gt.Progress(ctx, g); err != nil {
			return done, err
		}
		if g.Progress < g.Target {
			continue
		}

		at, won, err := gt.goals.CompleteGoal(ctx, g.ID)
		if err != nil {
			return done, fmt.Errorf("complete goal %d: %w", g.ID, err)
		}
		if !won {
			continue
		}

		g.Completed, g.CompletedAt = true, &at
		if _, err := gt.rewarder.Grant(ctx, userID, GoalReward(*g)); err != nil {
			return done, err
		}
		gt.notify.NotifyQuietly(ctx, userID, models.NotifyGoalComplete,
			fmt.Sprintf("Goal complete: %s (+%d XP, +%d bananas)", g.Title, g.RewardXP, g.RewardBananas))
		done = append(done, *g)
	}
	return done, nil
}
