package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"peels/internal/jobs"
	"peels/internal/notify"
	"peels/internal/storage"
)

func init() {
	rootCmd.AddCommand(pruneXPCmd, refreshLeaderboardCmd)
}

var pruneXPCmd = &cobra.Command{
	Use:   "prune-xp",
	Short: "Delete XP log rows older than XP_RETENTION",
	Long: `Delete XP log rows older than XP_RETENTION (two months by default).

User experience totals are kept; only the history shrinks.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runJob(cmd, func(j *jobs.Jobs) error {
			n, err := j.PruneXP(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pruned %d xp log rows\n", n)
			return nil
		})
	},
}

var refreshLeaderboardCmd = &cobra.Command{
	Use:   "refresh-leaderboard",
	Short: "Recompute the weekly, monthly and all-time leaderboards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runJob(cmd, func(j *jobs.Jobs) error {
			if err := j.RefreshLeaderboards(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "leaderboards refreshed")
			return nil
		})
	},
}

func runJob(cmd *cobra.Command, run func(j *jobs.Jobs) error) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	pool, err := connect(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	notifier := notify.NewNotifier(storage.NewNotificationStorage(pool), notify.NewHub(), log)
	j := jobs.New(
		storage.NewRewardStorage(pool),
		storage.NewLeaderboardStorage(pool),
		storage.NewJournalStorage(pool),
		notifier,
		cfg.XPRetention,
		log,
	)

	if err := run(j); err != nil {
		log.Error("job failed", zap.String("command", cmd.Name()), zap.Error(err))
		return err
	}
	return nil
}
