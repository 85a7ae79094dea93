package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/distory/internal/flagx"
	"github.com/dmitrijs2005/distory/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	Addr                string         `json:"addr"`
	DBPath              string         `json:"db_path"`
	APIBaseURL          string         `json:"api_base_url"`
	AppOrigin           string         `json:"app_origin"`
	Generation          string         `json:"generation"`
	StaticAssets        []string       `json:"static_assets"`
	OfflineURL          string         `json:"offline_url"`
	UncacheableHosts    []string       `json:"uncacheable_hosts"`
	NetworkWait         timex.Duration `json:"network_wait"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
}

func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.Addr != "" {
		cfg.Addr = jc.Addr
	}
	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.AppOrigin != "" {
		cfg.AppOrigin = jc.AppOrigin
	}
	if jc.Generation != "" {
		cfg.Generation = jc.Generation
	}
	if len(jc.StaticAssets) > 0 {
		cfg.StaticAssets = jc.StaticAssets
	}
	if jc.OfflineURL != "" {
		cfg.OfflineURL = jc.OfflineURL
	}
	if len(jc.UncacheableHosts) > 0 {
		cfg.UncacheableHosts = jc.UncacheableHosts
	}
	if jc.NetworkWait != 0 {
		cfg.NetworkWait = jc.NetworkWait.Std()
	}
	if jc.OnlineCheckInterval != 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Std()
	}
}
