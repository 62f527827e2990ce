package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	flagKeyword   string
	flagStartPage int
	flagEndPage   int
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape search-result pages and persist the listing artifact",
	RunE: func(cmd *cobra.Command, _ []string) error {
		applyScrapeFlags()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		_, err := newOrchestrator().Listings(ctx, cfg.Keyword, cfg.StartPage, cfg.EndPage)
		return err
	},
}

func applyScrapeFlags() {
	if flagKeyword != "" {
		cfg.Keyword = flagKeyword
	}
	if flagStartPage > 0 {
		cfg.StartPage = flagStartPage
	}
	if flagEndPage > 0 {
		cfg.EndPage = flagEndPage
	}
}

func init() {
	scrapeCmd.Flags().StringVar(&flagKeyword, "keyword", "", "search keyword (overrides config)")
	scrapeCmd.Flags().IntVar(&flagStartPage, "start-page", 0, "first listing page (overrides config)")
	scrapeCmd.Flags().IntVar(&flagEndPage, "end-page", 0, "last listing page (overrides config)")
	rootCmd.AddCommand(scrapeCmd)
}
