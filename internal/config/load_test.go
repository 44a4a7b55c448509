package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
[api]
base_url = "https://api.santamaria.example"
timeout = "10s"

[cache]
poll_interval = "2s"
page_size = 20

[logging]
log_level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.santamaria.example", cfg.API.BaseURL)
	assert.Equal(t, "10s", cfg.API.Timeout)
	assert.Equal(t, 20, cfg.Cache.PageSize)
	assert.Equal(t, "debug", cfg.Logging.LogLevel)
}

func TestLoad_DefaultsFillUnsetFields(t *testing.T) {
	path := writeConfig(t, `
[api]
base_url = "https://api.example"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "30s", cfg.API.Timeout)
	assert.Equal(t, "5s", cfg.Cache.PollInterval)
	assert.Equal(t, 12, cfg.Cache.PageSize)
	assert.Equal(t, "info", cfg.Logging.LogLevel)
}

func TestLoad_UnknownKeyIsFatal(t *testing.T) {
	path := writeConfig(t, `
[api]
base_url = "https://api.example"
base_ur = "typo"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config keys")
	assert.Contains(t, err.Error(), "api.base_ur")
}

func TestResolve_OverrideChain(t *testing.T) {
	path := writeConfig(t, `
[api]
base_url = "https://from-file.example"
`)

	// Env beats file.
	resolved, err := Resolve(
		EnvOverrides{ConfigPath: path, BaseURL: "https://from-env.example"},
		CLIOverrides{},
	)
	require.NoError(t, err)
	assert.Equal(t, "https://from-env.example", resolved.BaseURL)

	// CLI beats env.
	resolved, err = Resolve(
		EnvOverrides{ConfigPath: path, BaseURL: "https://from-env.example"},
		CLIOverrides{BaseURL: "https://from-cli.example"},
	)
	require.NoError(t, err)
	assert.Equal(t, "https://from-cli.example", resolved.BaseURL)
}

func TestResolve_ParsesDurationsAndTrimsSlash(t *testing.T) {
	path := writeConfig(t, `
[api]
base_url = "https://api.example/"
timeout = "15s"

[cache]
poll_interval = "7s"
`)

	resolved, err := Resolve(EnvOverrides{ConfigPath: path}, CLIOverrides{})
	require.NoError(t, err)
	assert.Equal(t, "https://api.example", resolved.BaseURL)
	assert.Equal(t, 15*time.Second, resolved.Timeout)
	assert.Equal(t, 7*time.Second, resolved.PollInterval)
	assert.Equal(t, 12, resolved.PageSize)
}

func TestResolve_MissingBaseURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")

	_, err := Resolve(EnvOverrides{ConfigPath: path}, CLIOverrides{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoBaseURL)
}

func TestResolve_RejectsRelativeBaseURL(t *testing.T) {
	path := writeConfig(t, `
[api]
base_url = "not-a-url"
`)

	_, err := Resolve(EnvOverrides{ConfigPath: path}, CLIOverrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an absolute URL")
}

func TestResolve_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad timeout", "[api]\nbase_url = \"https://x.example\"\ntimeout = \"soon\""},
		{"zero page size", "[api]\nbase_url = \"https://x.example\"\n[cache]\npage_size = 0"},
		{"bad log level", "[api]\nbase_url = \"https://x.example\"\n[logging]\nlog_level = \"loud\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.body)

			_, err := Resolve(EnvOverrides{ConfigPath: path}, CLIOverrides{})
			assert.Error(t, err)
		})
	}
}

func TestWrite_CreatesAndRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	require.NoError(t, Write(path, "https://api.example"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example", cfg.API.BaseURL)

	err = Write(path, "https://other.example")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
