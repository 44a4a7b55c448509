package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrNoBaseURL indicates that no API base route is configured anywhere in
// the override chain. The CLI tells the operator to run `panel config init`.
var ErrNoBaseURL = errors.New("config: no API base URL configured")

// DefaultConfigPath returns the platform config file location,
// e.g. ~/.config/santa-maria-panel/config.toml on Linux.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.toml"
	}

	return filepath.Join(dir, "santa-maria-panel", "config.toml")
}

// Load reads and parses a TOML config file. Unknown keys are fatal —
// silently ignoring a typo leads to hard-to-debug behavior.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := checkUnknownKeys(&md); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOrDefault reads the config file if it exists, otherwise returns
// defaults so first-run commands like `config init` work without a file.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	return Load(path)
}

// ReadEnvOverrides reads the supported environment variables.
func ReadEnvOverrides() EnvOverrides {
	return EnvOverrides{
		ConfigPath: os.Getenv("PANEL_CONFIG"),
		BaseURL:    os.Getenv("PANEL_API_URL"),
	}
}

// Resolve applies the override chain (defaults -> file -> env -> CLI) and
// validates the result.
func Resolve(env EnvOverrides, cli CLIOverrides) (*Resolved, error) {
	cfgPath := DefaultConfigPath()
	if env.ConfigPath != "" {
		cfgPath = env.ConfigPath
	}

	if cli.ConfigPath != "" {
		cfgPath = cli.ConfigPath
	}

	cfg, err := LoadOrDefault(cfgPath)
	if err != nil {
		return nil, err
	}

	if env.BaseURL != "" {
		cfg.API.BaseURL = env.BaseURL
	}

	if cli.BaseURL != "" {
		cfg.API.BaseURL = cli.BaseURL
	}

	resolved, err := validate(cfg)
	if err != nil {
		return nil, err
	}

	resolved.ConfigPath = cfgPath

	return resolved, nil
}

// validate parses durations and checks invariants, producing the Resolved view.
func validate(cfg *Config) (*Resolved, error) {
	if cfg.API.BaseURL == "" {
		return nil, ErrNoBaseURL
	}

	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("config: api.base_url %q is not an absolute URL", cfg.API.BaseURL)
	}

	timeout, err := time.ParseDuration(cfg.API.Timeout)
	if err != nil {
		return nil, fmt.Errorf("config: api.timeout: %w", err)
	}

	interval, err := time.ParseDuration(cfg.Cache.PollInterval)
	if err != nil {
		return nil, fmt.Errorf("config: cache.poll_interval: %w", err)
	}

	if interval <= 0 {
		return nil, fmt.Errorf("config: cache.poll_interval must be positive, got %s", interval)
	}

	if cfg.Cache.PageSize <= 0 {
		return nil, fmt.Errorf("config: cache.page_size must be positive, got %d", cfg.Cache.PageSize)
	}

	switch cfg.Logging.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("config: logging.log_level %q is not one of debug/info/warn/error", cfg.Logging.LogLevel)
	}

	return &Resolved{
		BaseURL:      strings.TrimRight(cfg.API.BaseURL, "/"),
		Timeout:      timeout,
		PollInterval: interval,
		PageSize:     cfg.Cache.PageSize,
		LogLevel:     cfg.Logging.LogLevel,
	}, nil
}

// checkUnknownKeys rejects config keys that did not decode into any field.
func checkUnknownKeys(md *toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}

	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}

	sort.Strings(keys)

	return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
}
