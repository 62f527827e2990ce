package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/minjipark/audioguide-scraper/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, "https://search.ricksteves.com/", cfg.SearchRoot)
	assert.Equal(t, "audio guide", cfg.Keyword)
	assert.Equal(t, 1, cfg.StartPage)
	assert.Equal(t, 276, cfg.EndPage)

	assert.Equal(t, 5, cfg.MaxConcurrent)
	assert.Equal(t, 1*time.Second, cfg.JitterMin)
	assert.Equal(t, 3*time.Second, cfg.JitterMax)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.InDelta(t, 2.0, cfg.BackoffBase, 1e-9)
	assert.Zero(t, cfg.RequestsPerSecond)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SCRAPER_KEYWORD", "louvre tickets")
	t.Setenv("SCRAPER_MAX_CONCURRENT", "9")
	t.Setenv("SCRAPER_JITTER_MAX", "10s")
	t.Setenv("SCRAPER_BACKOFF_BASE", "3.5")

	cfg := config.Load()

	assert.Equal(t, "louvre tickets", cfg.Keyword)
	assert.Equal(t, 9, cfg.MaxConcurrent)
	assert.Equal(t, 10*time.Second, cfg.JitterMax)
	assert.InDelta(t, 3.5, cfg.BackoffBase, 1e-9)

	// Untouched keys keep their defaults.
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}
