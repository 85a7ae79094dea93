package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/distory/internal/flagx"
	"github.com/dmitrijs2005/distory/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so JSON can specify intervals either as strings like
// "3s" or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL          string         `json:"api_base_url"`
	DBPath              string         `json:"db_path"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	PageSize            int            `json:"page_size"`
	PushEndpoint        string         `json:"push_endpoint"`
}

// parseJson overlays Config with values loaded from a JSON file named by
// the -c/-config flags. No file configured means no overlay. Read or
// unmarshal errors panic; the caller may recover if desired.
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

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.RequestTimeout != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Std()
	}
	if jc.OnlineCheckInterval != 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Std()
	}
	if jc.PageSize != 0 {
		cfg.PageSize = jc.PageSize
	}
	if jc.PushEndpoint != "" {
		cfg.PushEndpoint = jc.PushEndpoint
	}
}
