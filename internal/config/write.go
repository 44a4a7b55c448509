package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// configTemplate is the file written by `panel config init`. It records the
// API base route — the one persisted value the panel needs.
const configTemplate = `[api]
base_url = %q
timeout = "30s"

[cache]
poll_interval = "5s"
page_size = 12

[logging]
log_level = "info"
`

// Write creates the config file at path with the given base URL, creating
// parent directories as needed. Fails if the file already exists — an
// existing route should be edited, not silently replaced.
func Write(path, baseURL string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: %s already exists", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("config: creating config dir: %w", err)
	}

	content := fmt.Sprintf(configTemplate, baseURL)

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}

	return nil
}
