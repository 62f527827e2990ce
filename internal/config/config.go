// Package config assembles the pipeline's tunables from defaults, a
// local .env file, and SCRAPER_* environment variables. Everything is an
// explicit struct handed to constructors; nothing reads globals at use
// time.
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries every tunable for the scrape, analyze, and dashboard
// stages.
type Config struct {
	// SearchRoot is the forum search endpoint.
	SearchRoot string
	// BaseURL resolves relative topic links found on listing pages.
	BaseURL string
	Keyword string
	// StartPage and EndPage bound the listing batch, inclusive.
	StartPage int
	EndPage   int

	DataDir      string
	ReactionsDir string
	Port         string

	MaxConcurrent int

	JitterMin         time.Duration
	JitterMax         time.Duration
	Timeout           time.Duration
	MaxRetries        int
	BackoffBase       float64
	RequestsPerSecond float64
	UserAgent         string
}

// Load reads .env if present, then binds SCRAPER_* environment variables
// over the defaults. A missing .env is not an error.
func Load() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SCRAPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("search_root", "https://search.ricksteves.com/")
	v.SetDefault("base_url", "https://community.ricksteves.com")
	v.SetDefault("keyword", "audio guide")
	v.SetDefault("start_page", 1)
	v.SetDefault("end_page", 276)

	v.SetDefault("data_dir", "data")
	v.SetDefault("reactions_dir", "reactions")
	v.SetDefault("port", "8080")

	v.SetDefault("max_concurrent", 5)

	v.SetDefault("jitter_min", "1s")
	v.SetDefault("jitter_max", "3s")
	v.SetDefault("timeout", "30s")
	v.SetDefault("max_retries", 3)
	v.SetDefault("backoff_base", 2.0)
	v.SetDefault("requests_per_second", 0.0)
	v.SetDefault("user_agent", "audioguide-scraper/1.0")

	return &Config{
		SearchRoot: v.GetString("search_root"),
		BaseURL:    v.GetString("base_url"),
		Keyword:    v.GetString("keyword"),
		StartPage:  v.GetInt("start_page"),
		EndPage:    v.GetInt("end_page"),

		DataDir:      v.GetString("data_dir"),
		ReactionsDir: v.GetString("reactions_dir"),
		Port:         v.GetString("port"),

		MaxConcurrent: v.GetInt("max_concurrent"),

		JitterMin:         v.GetDuration("jitter_min"),
		JitterMax:         v.GetDuration("jitter_max"),
		Timeout:           v.GetDuration("timeout"),
		MaxRetries:        v.GetInt("max_retries"),
		BackoffBase:       v.GetFloat64("backoff_base"),
		RequestsPerSecond: v.GetFloat64("requests_per_second"),
		UserAgent:         v.GetString("user_agent"),
	}
}
