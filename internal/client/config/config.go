package config

import "time"

// Config holds runtime settings for deskctl.
type Config struct {
	SiteURL             string
	APIKey              string
	APISecret           string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	CacheDSN            string
	LogLevel            string
}

func (c *Config) LoadDefaults() {
	c.SiteURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 30 * time.Second
	c.OnlineCheckInterval = 5 * time.Second
	c.CacheDSN = "deskctl.db"
	c.LogLevel = "info"
}

// HasCredentials reports whether both halves of the API token are set.
func (c *Config) HasCredentials() bool {
	return c.APIKey != "" && c.APISecret != ""
}

// LoadConfig applies defaults, then the JSON file, then command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
