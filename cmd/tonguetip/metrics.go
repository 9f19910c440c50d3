package main

import (
	"github.com/spf13/cobra"

	"github.com/tonguetip/tonguetip/internal/cli"
	"github.com/tonguetip/tonguetip/internal/metrics"
)

func newMetricsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Show summary statistics over your suggestion history",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeQuietly(db)

			runner := cli.NewMetricsRunner(metrics.NewAggregator(store))
			return runner.Run(cmd.Context())
		},
	}
}
