// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/theclinic/clinic-tui/internal/util"
)

// Defaults and bounds.
const (
	// DefaultTimeoutSecs is the API request timeout.
	DefaultTimeoutSecs = 30

	// minTimeoutSecs and maxTimeoutSecs clamp configured timeouts.
	minTimeoutSecs = 5
	maxTimeoutSecs = 120
)

// Config is the complete clinic TUI configuration.
type Config struct {
	API APIConfig `toml:"api"`
	UI  UIConfig  `toml:"ui"`
}

// APIConfig points the client at the clinic backend.
type APIConfig struct {
	// BaseURL is the backend address, e.g. https://clinica.example.com/api
	BaseURL string `toml:"base_url"`
	// TimeoutSecs is the per-request timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs"`
}

// UIConfig holds presentation preferences.
type UIConfig struct {
	// Theme selects the color theme: "auto", "dark" or "light".
	Theme string `toml:"theme"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:     "http://localhost:8000/api",
			TimeoutSecs: DefaultTimeoutSecs,
		},
		UI: UIConfig{
			Theme: "auto",
		},
	}
}

// Timeout returns the API timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSecs) * time.Second
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Dir returns the application dot directory, honoring CLINIC_CONFIG_DIR.
func Dir() string {
	if dir := os.Getenv("CLINIC_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".theclinic"
	}
	return filepath.Join(home, ".theclinic")
}

// Path returns the config file location.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// StateDir returns the durable persisted-state directory.
func StateDir() string {
	return filepath.Join(Dir(), "state")
}

// LogPath returns the client log file location.
func LogPath() string {
	return filepath.Join(Dir(), "clinic.log")
}

// Load reads the configuration, falling back to defaults when the file is
// missing. Environment overrides are applied after the file, validation
// after both.
func Load() (Config, error) {
	cfg, err := LoadFile(Path())
	if err != nil {
		return cfg, err
	}
	if url := os.Getenv("CLINIC_API_URL"); url != "" {
		cfg.API.BaseURL = url
	}
	cfg.validate()
	return cfg, nil
}

// LoadFile reads one specific config file. A missing file yields defaults
// without error; a malformed file yields defaults with the error so the
// caller can warn without losing the UI.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.validate()
	return cfg, nil
}

// Save writes the configuration atomically.
func (c Config) Save() error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(Path(), buf.Bytes(), 0600)
}

// validate clamps out-of-range values instead of rejecting them.
func (c *Config) validate() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = Default().API.BaseURL
	}
	if c.API.TimeoutSecs < minTimeoutSecs {
		c.API.TimeoutSecs = minTimeoutSecs
	}
	if c.API.TimeoutSecs > maxTimeoutSecs {
		c.API.TimeoutSecs = maxTimeoutSecs
	}
	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		c.UI.Theme = "auto"
	}
}
