// Package jobs holds the periodic maintenance work: XP log retention,
// leaderboard snapshots and journal reminders.
package jobs

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"peels/internal/metrics"
	"peels/internal/models"
	"peels/internal/usecases"
)

type XPPruner interface {
	PruneXPLogs(ctx context.Context, cutoff time.Time) (int64, error)
}

type BoardRefresher interface {
	RefreshLeaderboard(ctx context.Context, period string, since time.Time) (int, error)
}

type ReminderSource interface {
	ClaimDueReminders(ctx context.Context, hhmm string, day time.Time) ([]models.Journal, error)
}

type Jobs struct {
	xp        XPPruner
	boards    BoardRefresher
	reminders ReminderSource
	notify    usecases.Notifier
	retention time.Duration
	log       *zap.Logger
	now       func() time.Time
}

func New(xp XPPruner, boards BoardRefresher, reminders ReminderSource, notify usecases.Notifier, retention time.Duration, log *zap.Logger) *Jobs {
	return &Jobs{
		xp:        xp,
		boards:    boards,
		reminders: reminders,
		notify:    notify,
		retention: retention,
		log:       log,
		now:       time.Now,
	}
}

// PruneXP deletes XP log rows older than the retention window.
func (j *Jobs) PruneXP(ctx context.Context) (int64, error) {
	op := "internal/jobs/jobs.go PruneXP"

	cutoff := j.now().UTC().Add(-j.retention)
	n, err := j.xp.PruneXPLogs(ctx, cutoff)
	metrics.RecordJob("prune_xp", err)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	metrics.RecordPruned(n)
	j.log.Info("xp logs pruned", zap.String("op", op), zap.Int64("rows", n), zap.Time("cutoff", cutoff))
	return n, nil
}

// RefreshLeaderboards rebuilds every leaderboard period.
func (j *Jobs) RefreshLeaderboards(ctx context.Context) error {
	op := "internal/jobs/jobs.go RefreshLeaderboards"

	now := j.now()
	for _, period := range []string{models.BoardWeekly, models.BoardMonthly, models.BoardAllTime} {
		var since time.Time
		if period != models.BoardAllTime {
			start, _, err := usecases.PeriodWindow(period, now)
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			since = start
		}

		n, err := j.boards.RefreshLeaderboard(ctx, period, since)
		metrics.RecordJob("leaderboard_"+period, err)
		if err != nil {
			return fmt.Errorf("%s: %s: %w", op, period, err)
		}
		j.log.Debug("leaderboard refreshed", zap.String("op", op), zap.String("period", period), zap.Int("rows", n))
	}
	return nil
}

// SendReminders notifies owners of journals whose reminder time is now.
func (j *Jobs) SendReminders(ctx context.Context) (int, error) {
	op := "internal/jobs/jobs.go SendReminders"

	now := j.now().UTC()
	due, err := j.reminders.ClaimDueReminders(ctx, now.Format("15:04"), usecases.StartOfDay(now))
	metrics.RecordJob("reminders", err)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	for _, journal := range due {
		j.notify.NotifyQuietly(ctx, journal.UserID, models.NotifyReminder,
			fmt.Sprintf("Time to write in %q today.", journal.Title))
	}
	if len(due) > 0 {
		j.log.Info("reminders sent", zap.String("op", op), zap.Int("count", len(due)))
	}
	return len(due), nil
}
