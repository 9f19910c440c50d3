package main

import (
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/tonguetip/tonguetip/internal/cli"
	"github.com/tonguetip/tonguetip/internal/dictionary"
	"github.com/tonguetip/tonguetip/internal/quiz"
	"github.com/tonguetip/tonguetip/internal/translation"
)

func newQuizCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "quiz",
		Short: "Practice the words you looked for before",
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

			reader := dictionary.NewClient(cfg.Dictionary)
			defer closeQuietly(reader)
			translator := translation.NewClient(cfg.Translation)
			defer closeQuietly(translator)

			generator := quiz.NewGenerator(store, reader, translator,
				cfg.Quiz.NativeLanguage, rand.New(rand.NewSource(time.Now().UnixNano())))
			runner := cli.NewQuizRunner(generator)
			return runner.Run(cmd.Context())
		},
	}
}
