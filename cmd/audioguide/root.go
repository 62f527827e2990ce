package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/minjipark/audioguide-scraper/internal/config"
	"github.com/minjipark/audioguide-scraper/internal/fetch"
	"github.com/minjipark/audioguide-scraper/internal/scrape"
	"github.com/minjipark/audioguide-scraper/internal/storage"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "audioguide",
	Short: "Scrape travel-forum audio guide discussions and analyze reactions",
	PersistentPreRun: func(*cobra.Command, []string) {
		cfg = config.Load()
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
		slog.SetDefault(logger)
	},
}

func newStore() *storage.Store {
	return storage.New(cfg.DataDir)
}

func newOrchestrator() *scrape.Orchestrator {
	fetcher := fetch.New(fetch.Config{
		JitterMin:         cfg.JitterMin,
		JitterMax:         cfg.JitterMax,
		Timeout:           cfg.Timeout,
		MaxRetries:        cfg.MaxRetries,
		BackoffBase:       cfg.BackoffBase,
		RequestsPerSecond: cfg.RequestsPerSecond,
		UserAgent:         cfg.UserAgent,
	}, logger)

	return scrape.New(scrape.Config{
		SearchRoot:    cfg.SearchRoot,
		MaxConcurrent: cfg.MaxConcurrent,
	}, fetcher, newStore(), logger)
}
