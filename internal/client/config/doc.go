// Package config loads runtime configuration for deskctl.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   site URL
//	-k string   API key
//	-s string   API secret
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-d string   local cache database
//	-l string   log level
//
// # JSON schema
//
// Durations are timex.Duration values, so either strings like "30s" or
// integer nanoseconds:
//
//	{
//	  "site_url": "https://erp.example.com",
//	  "api_key": "4f1c...",
//	  "api_secret": "9be2...",
//	  "request_timeout": "30s",
//	  "online_check_interval": "5s",
//	  "cache_dsn": "deskctl.db",
//	  "log_level": "info"
//	}
package config
