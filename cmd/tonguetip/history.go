package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tonguetip/tonguetip/internal/cli"
)

func newHistoryCommand() *cobra.Command {
	historyCommand := &cobra.Command{
		Use:   "history",
		Short: "Inspect or reset the suggestion usage history",
	}

	var limit int
	historyCommand.PersistentFlags().IntVar(&limit, "limit", 0, "maximum number of rows (0 for all)")

	historyCommand.AddCommand(
		&cobra.Command{
			Use:   "most-used",
			Short: "Words by how often you accepted them",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withHistoryRunner(cmd.Context(), func(ctx context.Context, runner *cli.HistoryRunner) error {
					return runner.MostUsed(ctx, limit)
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "All words in alphabetical order",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withHistoryRunner(cmd.Context(), func(ctx context.Context, runner *cli.HistoryRunner) error {
					return runner.Alphabetical(ctx, limit)
				})
			},
		},
		&cobra.Command{
			Use:   "recent",
			Short: "Words by their latest usage, newest first",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withHistoryRunner(cmd.Context(), func(ctx context.Context, runner *cli.HistoryRunner) error {
					return runner.MostRecent(ctx, limit)
				})
			},
		},
		&cobra.Command{
			Use:   "forgotten",
			Short: "Words by their earliest usage, oldest first",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withHistoryRunner(cmd.Context(), func(ctx context.Context, runner *cli.HistoryRunner) error {
					return runner.LeastRecent(ctx, limit)
				})
			},
		},
		&cobra.Command{
			Use:   "contexts <word>",
			Short: "Every sentence a word was used in",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withHistoryRunner(cmd.Context(), func(ctx context.Context, runner *cli.HistoryRunner) error {
					return runner.Contexts(ctx, args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "index",
			Short: "Per-word index of the sentences in your history",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withHistoryRunner(cmd.Context(), func(ctx context.Context, runner *cli.HistoryRunner) error {
					return runner.Index(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Delete the entire usage history",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withHistoryRunner(cmd.Context(), func(ctx context.Context, runner *cli.HistoryRunner) error {
					return runner.Reset(ctx)
				})
			},
		},
	)

	return historyCommand
}

func withHistoryRunner(ctx context.Context, fn func(context.Context, *cli.HistoryRunner) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeQuietly(db)

	return fn(ctx, cli.NewHistoryRunner(store))
}
