package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"peels/internal/auth"
	"peels/internal/handlers"
	"peels/internal/jobs"
	"peels/internal/notify"
	"peels/internal/storage"
	"peels/internal/usecases"
)

var (
	migrateOnStart bool
	withoutCron    bool
)

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply pending migrations before serving")
	serveCmd.Flags().BoolVar(&withoutCron, "no-cron", false, "do not run scheduled jobs in this process")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if migrateOnStart {
		if err := storage.Migrate(cfg.PostgresDSN, false); err != nil {
			return err
		}
		log.Info("migrations applied")
	}

	pool, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	users := storage.NewUserStorage(pool)
	journals := storage.NewJournalStorage(pool)
	entries := storage.NewEntryStorage(pool)
	friends := storage.NewFriendStorage(pool)
	rewards := storage.NewRewardStorage(pool)
	goals := storage.NewGoalStorage(pool)
	boards := storage.NewLeaderboardStorage(pool)

	notifications := storage.NewNotificationStorage(pool)
	hub := notify.NewHub()
	notifier := notify.NewNotifier(notifications, hub, log)
	rewarder := usecases.NewRewarder(rewards, notifier)
	tracker := usecases.NewGoalTracker(goals, entries, rewarder, notifier)

	router := handlers.NewRouter(handlers.Deps{
		Users:              users,
		Journals:           journals,
		Entries:            entries,
		Templates:          storage.NewTemplateStorage(pool),
		Friends:            friends,
		Bookmarks:          storage.NewBookmarkStorage(pool),
		Notifications:      notifications,
		Market:             storage.NewMarketStorage(pool),
		Ledger:             rewards,
		Goals:              goals,
		Boards:             boards,
		Rewards:            rewarder,
		Tracker:            tracker,
		Notifier:           notifier,
		Hub:                hub,
		Tokens:             auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL),
		DB:                 pool,
		CORSOrigin:         cfg.CORSOrigin,
		LoginRatePerMinute: cfg.LoginRatePerMinute,
		Log:                log,
	})

	if !withoutCron {
		j := jobs.New(rewards, boards, journals, notifier, cfg.XPRetention, log)
		sched, err := jobs.NewScheduler(j, jobs.Specs{
			Prune:       cfg.CronPruneSpec,
			Leaderboard: cfg.CronLeaderboardSpec,
			Reminder:    cfg.CronReminderSpec,
		}, log)
		if err != nil {
			return err
		}
		sched.Start()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			sched.Stop(stopCtx)
		}()
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.HTTPAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
