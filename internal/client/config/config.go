// Package config loads runtime configuration for the Distory CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Environment variables (DISTORY_* — see parseEnv).
//  4. Command-line flags, which override everything else.
package config

import "time"

// Config holds runtime settings for the Distory CLI.
type Config struct {
	// APIBaseURL is the story API base, including the version prefix.
	APIBaseURL string
	// DBPath is the SQLite file backing the local store.
	DBPath string
	// RequestTimeout bounds each API call.
	RequestTimeout time.Duration
	// OnlineCheckInterval is how often the client probes server reachability.
	OnlineCheckInterval time.Duration
	// PageSize is the story listing page size.
	PageSize int
	// PushEndpoint is where the push service delivers messages, normally
	// the local worker's control surface.
	PushEndpoint string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://story-api.dicoding.dev/v1"
	c.DBPath = "distory.db"
	c.RequestTimeout = 30 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.PageSize = 10
	c.PushEndpoint = "http://127.0.0.1:8787/control/push"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON, environment, and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
