// Package common provides shared helpers for the CLI commands.
package common

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iYassr/projectbudget/internal/categorizer"
	"github.com/iYassr/projectbudget/internal/config"
	"github.com/iYassr/projectbudget/internal/dateutils"
	"github.com/iYassr/projectbudget/internal/logging"
	"github.com/iYassr/projectbudget/internal/msgstore"
	"github.com/iYassr/projectbudget/internal/store"
)

// NewReader builds the message reader for the given source and format.
func NewReader(source, format string, log logging.Logger) (msgstore.Reader, error) {
	if source == "" {
		return nil, fmt.Errorf("message source is required (use --source)")
	}
	switch format {
	case "txt":
		return msgstore.NewTxtExportReader(source, log), nil
	case "xml":
		return msgstore.NewSMSBackupReader(source, log), nil
	default:
		return nil, fmt.Errorf("unsupported source format %q (must be txt or xml)", format)
	}
}

// DateWindow resolves the date-range flags into a [from, to) window.
// thisMonth and lastMonth take precedence over explicit dates; zero times
// mean no bound.
func DateWindow(thisMonth, lastMonth bool, startDate, endDate string) (time.Time, time.Time, error) {
	now := time.Now()
	switch {
	case thisMonth:
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(0, 1, 0), nil
	case lastMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return first.AddDate(0, -1, 0), first, nil
	}

	var from, to time.Time
	var err error
	if startDate != "" {
		if from, err = time.Parse(dateutils.LayoutISO, startDate); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", startDate, err)
		}
	}
	if endDate != "" {
		if to, err = time.Parse(dateutils.LayoutISO, endDate); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", endDate, err)
		}
		// Inclusive end date on the flag, exclusive bound internally.
		to = to.AddDate(0, 0, 1)
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %s is before start date %s", endDate, startDate)
	}
	return from, to, nil
}

// NewStore opens the Postgres expense store from configuration.
func NewStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*store.Postgres, error) {
	return store.NewPostgres(ctx, cfg.Database.URL, cfg.Database.MaxConns, logging.NewLogrusAdapterFromLogger(log))
}

// NewCategorizer assembles the categorization chain from configuration.
// The returned cleanup function releases the AI client and is safe to call
// even when AI is disabled.
func NewCategorizer(ctx context.Context, cfg *config.Config, mappings categorizer.MerchantCategoryStore, log *logrus.Logger) (*categorizer.Categorizer, func(), error) {
	logger := logging.NewLogrusAdapterFromLogger(log)

	catalog := store.NewCategoryStore(cfg.Categorization.CategoriesFile)
	categories, err := catalog.LoadCategories()
	if err != nil {
		return nil, nil, fmt.Errorf("loading category catalog: %w", err)
	}

	strategies := []categorizer.CategorizationStrategy{
		categorizer.NewLearnedStrategy(mappings, logger),
		categorizer.NewKeywordStrategy(categories, logger),
	}

	cleanup := func() {}
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		client, err := categorizer.NewGeminiClient(ctx, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.RequestsPerMinute)
		if err != nil {
			return nil, nil, fmt.Errorf("creating Gemini client: %w", err)
		}
		cleanup = func() {
			if err := client.Close(); err != nil {
				log.WithError(err).Warn("Failed to close Gemini client")
			}
		}
		timeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second
		strategies = append(strategies, categorizer.NewAIStrategy(client, categories, timeout, logger))
	}

	c := categorizer.New(strategies, mappings, categorizer.Options{
		FallbackCategory:    cfg.AI.FallbackCategory,
		AutoLearn:           cfg.Categorization.AutoLearn,
		ConfidenceThreshold: cfg.Categorization.ConfidenceThreshold,
	}, logger)
	return c, cleanup, nil
}
