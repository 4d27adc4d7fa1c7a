package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Specs struct {
	Prune       string
	Leaderboard string
	Reminder    string
}

// Scheduler runs Jobs on cron specs, evaluated in UTC.
type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

func NewScheduler(j *Jobs, specs Specs, log *zap.Logger) (*Scheduler, error) {
	cl := cronLogger{log.Sugar()}
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	timeout := func(run func(ctx context.Context) error) func() {
		return func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := run(ctx); err != nil {
				log.Error("scheduled job failed", zap.Error(err))
			}
		}
	}

	entries := []struct {
		name string
		spec string
		fn   func()
	}{
		{"prune_xp", specs.Prune, timeout(func(ctx context.Context) error {
			_, err := j.PruneXP(ctx)
			return err
		})},
		{"leaderboard", specs.Leaderboard, timeout(j.RefreshLeaderboards)},
		{"reminders", specs.Reminder, timeout(func(ctx context.Context) error {
			_, err := j.SendReminders(ctx)
			return err
		})},
	}

	for _, e := range entries {
		if _, err := c.AddFunc(e.spec, e.fn); err != nil {
			return nil, fmt.Errorf("schedule %s (%q): %w", e.name, e.spec, err)
		}
	}

	return &Scheduler{cron: c, log: log}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop waits for running jobs to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// cronLogger adapts zap to cron's logger interface.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
