package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minjipark/audioguide-scraper/internal/analyze"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Derive metrics, enhanced posts, and the museum comparison from the detail artifact",
	RunE: func(*cobra.Command, []string) error {
		applyScrapeFlags()

		store := newStore()

		details, err := store.LoadDetails(cfg.Keyword)
		if err != nil {
			return fmt.Errorf("load detail artifact (run details first): %w", err)
		}

		analyzer := analyze.New()
		analyzer.ForumByURL = forumIndex()

		metrics := analyzer.AnalyzeAll(details)
		if err := store.SaveMetrics(metrics); err != nil {
			return err
		}
		if err := store.SaveEnhancedPosts(analyzer.EnhancedPosts(details)); err != nil {
			return err
		}

		cmp := analyze.BuildComparison(metrics)
		if err := store.SaveComparison(cmp); err != nil {
			return err
		}

		logger.Info("analysis complete",
			"museums", cmp.Summary.TotalMuseums,
			"posts", cmp.Summary.TotalPosts,
			"replies", cmp.Summary.TotalReplies,
			"audio_guide_mentions", cmp.Summary.TotalAudioGuideMentions,
		)
		return nil
	},
}

// forumIndex maps absolute post URLs to the forum they were listed
// under. Missing listings just mean every forum resolves to Unknown.
func forumIndex() map[string]string {
	listings, err := newStore().LoadListings(cfg.Keyword)
	if err != nil {
		logger.Warn("listing artifact unavailable, forums will be unknown", "error", err)
		return nil
	}

	index := make(map[string]string, len(listings))
	for _, rec := range listings {
		index[resolveLink(cfg.BaseURL, rec.Link)] = rec.Forum
	}
	return index
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
