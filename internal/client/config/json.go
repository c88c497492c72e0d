package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/tenacious-integration/deskctl/internal/flagx"
	"github.com/tenacious-integration/deskctl/internal/timex"
)

// fileConfig is the on-disk shape of Config. Durations accept "30s" or
// integer nanoseconds.
type fileConfig struct {
	SiteURL             string         `json:"site_url"`
	APIKey              string         `json:"api_key"`
	APISecret           string         `json:"api_secret"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	CacheDSN            string         `json:"cache_dsn"`
	LogLevel            string         `json:"log_level"`
}

// parseJSON overlays cfg with the file named by -c or -config. Keys left
// out of the file keep their current value. Read and decode errors panic.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		panic(err)
	}

	setString(&cfg.SiteURL, fc.SiteURL)
	setString(&cfg.APIKey, fc.APIKey)
	setString(&cfg.APISecret, fc.APISecret)
	setString(&cfg.CacheDSN, fc.CacheDSN)
	setString(&cfg.LogLevel, fc.LogLevel)
	setDuration(&cfg.RequestTimeout, fc.RequestTimeout)
	setDuration(&cfg.OnlineCheckInterval, fc.OnlineCheckInterval)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
