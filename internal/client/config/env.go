package config

import (
	"github.com/caarlos0/env/v11"
)

// envConfig is a DTO for environment overlays. Only set variables are
// copied into the runtime Config.
type envConfig struct {
	APIBaseURL          string `env:"DISTORY_API_URL"`
	DBPath              string `env:"DISTORY_DB_PATH"`
	RequestTimeoutSec   int    `env:"DISTORY_REQUEST_TIMEOUT"`
	OnlineCheckInterval int    `env:"DISTORY_ONLINE_CHECK_INTERVAL"`
	PageSize            int    `env:"DISTORY_PAGE_SIZE"`
	PushEndpoint        string `env:"DISTORY_PUSH_ENDPOINT"`
}

func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.APIBaseURL != "" {
		cfg.APIBaseURL = ec.APIBaseURL
	}
	if ec.DBPath != "" {
		cfg.DBPath = ec.DBPath
	}
	if ec.RequestTimeoutSec > 0 {
		cfg.RequestTimeout = secondsToDuration(ec.RequestTimeoutSec)
	}
	if ec.OnlineCheckInterval > 0 {
		cfg.OnlineCheckInterval = secondsToDuration(ec.OnlineCheckInterval)
	}
	if ec.PageSize > 0 {
		cfg.PageSize = ec.PageSize
	}
	if ec.PushEndpoint != "" {
		cfg.PushEndpoint = ec.PushEndpoint
	}
}
