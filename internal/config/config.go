// Package config implements TOML configuration loading and validation for
// the panel CLI. It supports a layered override chain
// (defaults -> config file -> environment -> CLI flags) and rejects unknown
// keys so a typo in the config file fails loudly instead of being ignored.
//
// The API base route — the single value the original panel persisted — lives
// here as [api] base_url; there is no ambient global route state anywhere.
package config

import "time"

// Config is the top-level structure parsed from a TOML file.
type Config struct {
	API     APIConfig     `toml:"api"`
	Cache   CacheConfig   `toml:"cache"`
	Logging LoggingConfig `toml:"logging"`
}

// APIConfig configures the HTTP transport collaborator.
type APIConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// CacheConfig configures the polling resource cache.
type CacheConfig struct {
	PollInterval string `toml:"poll_interval"`
	PageSize     int    `toml:"page_size"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	LogLevel string `toml:"log_level"`
}

// Default values, layer 0 of the override chain. The 5 s poll interval and
// page size of 12 match the production panel's behavior.
const (
	defaultTimeout      = "30s"
	defaultPollInterval = "5s"
	defaultPageSize     = 12
	defaultLogLevel     = "info"
)

// DefaultConfig returns a Config populated with all default values. Used as
// the starting point for TOML decoding so unset fields retain defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Timeout: defaultTimeout,
		},
		Cache: CacheConfig{
			PollInterval: defaultPollInterval,
			PageSize:     defaultPageSize,
		},
		Logging: LoggingConfig{
			LogLevel: defaultLogLevel,
		},
	}
}

// EnvOverrides holds values read from the environment.
type EnvOverrides struct {
	ConfigPath string // PANEL_CONFIG
	BaseURL    string // PANEL_API_URL
}

// CLIOverrides holds values from CLI flags, which always win.
type CLIOverrides struct {
	ConfigPath string // --config flag (empty = use default)
	BaseURL    string // --api-url flag (empty = not specified)
}

// Resolved is the effective configuration after the override chain, with
// durations parsed and validation applied.
type Resolved struct {
	ConfigPath   string
	BaseURL      string
	Timeout      time.Duration
	PollInterval time.Duration
	PageSize     int
	LogLevel     string
}
