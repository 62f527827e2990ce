package main

import (
	"github.com/spf13/cobra"

	"github.com/minjipark/audioguide-scraper/internal/dashboard"
	"github.com/minjipark/audioguide-scraper/internal/reactions"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Serve the go-echarts dashboard over the analysis artifacts",
	RunE: func(*cobra.Command, []string) error {
		loader, err := reactions.Load(cfg.ReactionsDir)
		if err != nil {
			return err
		}

		return dashboard.New(newStore(), loader, logger).Start(cfg.Port)
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
