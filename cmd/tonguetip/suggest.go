package main

import (
	"github.com/spf13/cobra"

	"github.com/tonguetip/tonguetip/internal/cli"
)

func newSuggestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest",
		Short: "Suggest next words for a conversation and record the ones you accept",
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

			runner := cli.NewSuggestRunner(store, newRegistry(cfg), loadConfig)
			return runner.Run(cmd.Context())
		},
	}
}
