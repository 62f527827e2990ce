package main

import (
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var detailsCmd = &cobra.Command{
	Use:   "details",
	Short: "Fetch every post from the listing artifact and persist the detail artifact",
	RunE: func(cmd *cobra.Command, _ []string) error {
		applyScrapeFlags()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		listings, err := newStore().LoadListings(cfg.Keyword)
		if err != nil {
			return fmt.Errorf("load listing artifact (run scrape first): %w", err)
		}

		links := make([]string, 0, len(listings))
		for _, rec := range listings {
			links = append(links, resolveLink(cfg.BaseURL, rec.Link))
		}

		_, err = newOrchestrator().Details(ctx, cfg.Keyword, links)
		return err
	},
}

// resolveLink turns relative topic links into absolute URLs against the
// forum base.
func resolveLink(base, link string) string {
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return link
	}
	ref, err := url.Parse(link)
	if err != nil {
		return link
	}
	return baseURL.ResolveReference(ref).String()
}

func init() {
	detailsCmd.Flags().StringVar(&flagKeyword, "keyword", "", "search keyword (overrides config)")
	rootCmd.AddCommand(detailsCmd)
}
