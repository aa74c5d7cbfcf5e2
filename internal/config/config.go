// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) initializer to build a Config with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"context"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DatasetSource is a CSV path, a SQLite file or a postgres:// DSN.
	DatasetSource string `koanf:"dataset_source"`

	// DatasetTable names the table read from SQL sources.
	DatasetTable string `koanf:"dataset_table"`

	// MinYear and MinUsersRated are the ingestion floors.
	MinYear       int `koanf:"min_year"`
	MinUsersRated int `koanf:"min_users_rated"`

	// TopK is the default number of groups returned by ranking queries.
	TopK int `koanf:"top_k"`

	// FilterLimit is the default row cap for filter queries and
	// MaxFilterLimit caps the ?limit parameter.
	FilterLimit    int `koanf:"filter_limit"`
	MaxFilterLimit int `koanf:"max_filter_limit"`

	// QueryCacheSize bounds the query result LRU. Zero disables caching.
	QueryCacheSize int `koanf:"query_cache_size"`

	// NameSearchLimit caps fuzzy name matches.
	NameSearchLimit int `koanf:"name_search_limit"`

	// ChartWidth and ChartHeight size rendered SVG charts in pixels.
	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`

	// ReloadInterval re-reads the dataset periodically when positive.
	ReloadInterval time.Duration `koanf:"reload_interval"`

	// ShutdownTimeout bounds graceful HTTP shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// New creates a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		DatasetSource:   "data/board_game.csv",
		DatasetTable:    "board_games",
		MinYear:         1950,
		MinUsersRated:   50,
		TopK:            5,
		FilterLimit:     10,
		MaxFilterLimit:  100,
		QueryCacheSize:  1024,
		NameSearchLimit: 10,
		ChartWidth:      650,
		ChartHeight:     300,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return invalid("addr must not be empty")
	case c.DatasetSource == "":
		return invalid("dataset_source must not be empty")
	case c.MinYear <= 0:
		return invalid("min_year must be positive")
	case c.TopK <= 0:
		return invalid("top_k must be positive")
	case c.FilterLimit <= 0:
		return invalid("filter_limit must be positive")
	case c.MaxFilterLimit < c.FilterLimit:
		return invalid("max_filter_limit must be >= filter_limit")
	case c.QueryCacheSize < 0:
		return invalid("query_cache_size must not be negative")
	case c.ChartWidth <= 0 || c.ChartHeight <= 0:
		return invalid("chart_width and chart_height must be positive")
	case c.ReloadInterval < 0:
		return invalid("reload_interval must not be negative")
	}
	return nil
}
