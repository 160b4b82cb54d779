package main

import (
	"context"
	"fmt"
	"time"

	"github.com/at-ishikawa/verbdrill/internal/catalog"
	"github.com/at-ishikawa/verbdrill/internal/config"
	"github.com/at-ishikawa/verbdrill/internal/conjugation"
	"github.com/at-ishikawa/verbdrill/internal/database"
	"github.com/at-ishikawa/verbdrill/internal/learning"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func loadLexicon(cfg *config.Config) (*conjugation.Lexicon, error) {
	lexicon, err := catalog.Load(cfg.Catalog.File)
	if err != nil {
		return nil, fmt.Errorf("catalog.Load() > %w", err)
	}
	return lexicon, nil
}

// newAttemptRepository opens the configured history backend. The returned function releases it.
func newAttemptRepository(cfg *config.Config) (learning.AttemptRepository, func() error, error) {
	switch cfg.History.Backend {
	case config.HistoryBackendDB:
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("database.Open() > %w", err)
		}
		return learning.NewDBAttemptRepository(db), db.Close, nil
	default:
		return learning.NewYAMLAttemptRepository(cfg.History.Directory), func() error { return nil }, nil
	}
}

// findAttempts loads the attempts of a year or month. A zero year loads everything.
// Attempts are filtered again by statistics, so the query starts a day early to cover any time zone.
func findAttempts(ctx context.Context, repository learning.AttemptRepository, year, month int) ([]learning.Attempt, error) {
	if year == 0 {
		attempts, err := repository.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("repository.FindAll() > %w", err)
		}
		return attempts, nil
	}
	if month == 0 {
		month = 1
	}
	since := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	attempts, err := repository.FindSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("repository.FindSince(%s) > %w", since.Format(time.DateOnly), err)
	}
	return attempts, nil
}
