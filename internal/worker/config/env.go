package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type envConfig struct {
	Addr             string   `env:"DISTORY_WORKER_ADDR"`
	DBPath           string   `env:"DISTORY_DB_PATH"`
	APIBaseURL       string   `env:"DISTORY_API_URL"`
	AppOrigin        string   `env:"DISTORY_APP_ORIGIN"`
	Generation       string   `env:"DISTORY_CACHE_GENERATION"`
	StaticAssets     []string `env:"DISTORY_STATIC_ASSETS"`
	NetworkWaitSec   int      `env:"DISTORY_NETWORK_WAIT"`
	OnlineCheckInter int      `env:"DISTORY_ONLINE_CHECK_INTERVAL"`
}

func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.Addr != "" {
		cfg.Addr = ec.Addr
	}
	if ec.DBPath != "" {
		cfg.DBPath = ec.DBPath
	}
	if ec.APIBaseURL != "" {
		cfg.APIBaseURL = ec.APIBaseURL
	}
	if ec.AppOrigin != "" {
		cfg.AppOrigin = ec.AppOrigin
	}
	if ec.Generation != "" {
		cfg.Generation = ec.Generation
	}
	if len(ec.StaticAssets) > 0 {
		cfg.StaticAssets = ec.StaticAssets
	}
	if ec.NetworkWaitSec > 0 {
		cfg.NetworkWait = time.Duration(ec.NetworkWaitSec) * time.Second
	}
	if ec.OnlineCheckInter > 0 {
		cfg.OnlineCheckInterval = time.Duration(ec.OnlineCheckInter) * time.Second
	}
}
