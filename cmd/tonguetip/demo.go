package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tonguetip/tonguetip/internal/cli"
)

func newDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Replace the history with sample data to explore the app",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistoryRunner(cmd.Context(), func(ctx context.Context, runner *cli.HistoryRunner) error {
				return runner.LoadDemo(ctx)
			})
		},
	}
}
