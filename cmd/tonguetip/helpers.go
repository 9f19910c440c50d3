package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/tonguetip/tonguetip/internal/config"
	"github.com/tonguetip/tonguetip/internal/database"
	"github.com/tonguetip/tonguetip/internal/inference"
	"github.com/tonguetip/tonguetip/internal/inference/gemma"
	"github.com/tonguetip/tonguetip/internal/inference/openai"
	"github.com/tonguetip/tonguetip/internal/inference/smartreply"
	"github.com/tonguetip/tonguetip/internal/suggestion"
)

func loadConfig() (*config.Config, error) {
	return config.Load(configFile)
}

// openStore opens the history database, migrates it, and wraps it in a store.
// The caller owns closing the returned database handle.
func openStore(ctx context.Context, cfg *config.Config) (*sqlx.DB, *suggestion.Store, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("database.Open() > %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		closeQuietly(db)
		return nil, nil, fmt.Errorf("database.Migrate() > %w", err)
	}
	return db, suggestion.NewStore(db), nil
}

// newRegistry wires every available suggestion backend. Factories re-read
// nothing; the current configuration is captured at request time by the
// caller re-invoking loadConfig.
func newRegistry(cfg *config.Config) *inference.Registry {
	registry := inference.NewRegistry()
	registry.Register(inference.BackendChatGPT, func() (inference.Client, error) {
		return openai.NewClient(cfg.OpenAI, cfg.Backend.RetryAttempts), nil
	})
	registry.Register(inference.BackendGemma, func() (inference.Client, error) {
		return gemma.NewClient(cfg.Gemma, cfg.Backend.RetryAttempts), nil
	})
	registry.Register(inference.BackendSmartReply, func() (inference.Client, error) {
		return smartreply.NewClient(), nil
	})
	return registry
}

type closer interface {
	Close() error
}

func closeQuietly(c closer) {
	if err := c.Close(); err != nil {
		slog.Default().Warn("failed to close resource", "error", err)
	}
}
