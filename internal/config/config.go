// Package config handles process configuration: defaults, an optional
// JSON overlay, and command-line flags, applied in that order so later
// stages override earlier ones.
package config

import "uservault/internal/storage"

// Config holds the runtime settings for the uservault CLI.
//
// Fields:
//   - Backend: which storage engine to use (inmemory | embedded | relational).
//   - SQLitePath: relational database file, or ":memory:" for an ephemeral one.
//   - BoltPath: embedded store file.
//   - Verbose: enables debug-level logging.
type Config struct {
	Backend    storage.BackendType
	SQLitePath string
	BoltPath   string
	Verbose    bool
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Backend = storage.DefaultBackend
	c.SQLitePath = "uservault.db"
	c.BoltPath = "uservault.bolt"
	c.Verbose = false
}

// Load builds a Config by applying defaults, then overlaying values from
// an optional JSON file and finally from command-line flags.
func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
