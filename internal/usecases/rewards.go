package usecases

import (
	"context"
	"fmt"
	"time"

	"peels/internal/metrics"
	"peels/internal/models"
)

type RewardStore interface {
	ApplyReward(ctx context.Context, userID int, r models.Reward) (models.RewardResult, error)
	ApplyEntryReward(ctx context.Context, userID int, dayStart time.Time) (models.RewardResult, bool, error)
}

type Notifier interface {
	NotifyQuietly(ctx context.Context, userID int, kind, message string)
}

// Rewarder grants XP and bananas and announces level changes.
type Rewarder struct {
	store  RewardStore
	notify Notifier
}

func NewRewarder(store RewardStore, notify Notifier) *Rewarder {
	return &Rewarder{store: store, notify: notify}
}

// Grant applies r. An empty reward is a no-op and returns a zero result.
func (rw *Rewarder) Grant(ctx context.Context, userID int, r models.Reward) (models.RewardResult, error) {
	if r.XP == 0 && r.Bananas == 0 {
		return models.RewardResult{}, nil
	}

	res, err := rw.store.ApplyReward(ctx, userID, r)
	if err != nil {
		return models.RewardResult{}, fmt.Errorf("grant %q: %w", r.Reason, err)
	}
	rw.announce(ctx, userID, r, res)
	return res, nil
}

// GrantEntry rewards a new entry written at now. It reports false once the
// user reached the daily cap.
func (rw *Rewarder) GrantEntry(ctx context.Context, userID int, now time.Time) (models.RewardResult, bool, error) {
	res, granted, err := rw.store.ApplyEntryReward(ctx, userID, StartOfDay(now))
	if err != nil {
		return models.RewardResult{}, false, fmt.Errorf("grant entry: %w", err)
	}
	if granted {
		rw.announce(ctx, userID, EntryReward(0), res)
	}
	return res, granted, nil
}

func (rw *Rewarder) announce(ctx context.Context, userID int, r models.Reward, res models.RewardResult) {
	metrics.RecordReward(r.XP, r.Bananas)

	if res.LevelUp {
		rw.notify.NotifyQuietly(ctx, userID, models.NotifyLevelUp,
			fmt.Sprintf("You reached level %d! Keep peeling.", res.Level))
	}
}
