// Package config loads runtime configuration for the Distory worker.
// Same layering as the CLI config: defaults, then JSON, then environment,
// then flags.
package config

import "time"

// Config holds runtime settings for the worker daemon.
type Config struct {
	// Addr is the listen address for the proxy/control surface.
	Addr string
	// DBPath is the SQLite file shared with the CLI's local store.
	DBPath string
	// APIBaseURL is the story API base, including the version prefix.
	APIBaseURL string
	// AppOrigin is the app's own origin served cache-first.
	AppOrigin string
	// Generation names the current static cache generation; bump per release.
	Generation string
	// StaticAssets are precached during install.
	StaticAssets []string
	// OfflineURL is the offline fallback document path.
	OfflineURL string
	// UncacheableHosts are never intercepted.
	UncacheableHosts []string
	// NetworkWait bounds network-first attempts.
	NetworkWait time.Duration
	// OnlineCheckInterval is the connectivity probe period.
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with the canonical policy. The several
// historical worker variants disagreed on exclusion lists and endpoints;
// these defaults are the single source of truth now.
func (c *Config) LoadDefaults() {
	c.Addr = "127.0.0.1:8787"
	c.DBPath = "distory.db"
	c.APIBaseURL = "https://story-api.dicoding.dev/v1"
	c.AppOrigin = "https://distory.app"
	c.Generation = "distory-pwa-v1"
	c.StaticAssets = []string{"/", "/index.html", "/manifest.json", "/offline.html"}
	c.OfflineURL = "/offline.html"
	c.UncacheableHosts = []string{"maps.googleapis.com", "maps.gstatic.com"}
	c.NetworkWait = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig constructs a Config by applying defaults, JSON, environment
// and flags in that order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
