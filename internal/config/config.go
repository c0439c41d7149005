// Package config provides application configuration for gcodegen.
//
// The application config says where things live and how the tool behaves;
// the machine settings themselves are a separate file owned by the settings
// package, so the two can be reset independently.
//
// Config file locations (priority order):
//  1. $GCODEGEN_CONFIG (must exist when set)
//  2. ./gcodegen.yaml
//  3. $XDG_CONFIG_HOME/gcodegen/config.yaml
//  4. ~/.config/gcodegen/config.yaml
//  5. /etc/gcodegen/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gcodegen/internal/domain"
	"gcodegen/internal/logging"

	"gopkg.in/yaml.v3"
)

// DefaultWatchDebounce coalesces editor save bursts
const DefaultWatchDebounce = 500 * time.Millisecond

// Load finds and loads the config file, or returns defaults if none found.
// A $GCODEGEN_CONFIG that names a missing file is an error.
func Load() (*Config, string, error) {
	path, err := FindConfigPath()
	if err != nil {
		return nil, "", err
	}

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	debounce := Duration(DefaultWatchDebounce)
	return &Config{
		Version: 1,
		Settings: SettingsConfig{
			Path:          "settings.json",
			DefaultPreset: domain.PresetStandard,
		},
		Profiles: ProfilesConfig{
			Database: filepath.Join(DefaultDataDir(), "profiles.db"),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Watch: WatchConfig{Debounce: &debounce},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if c.Settings.Path == "" {
		c.Settings.Path = defaults.Settings.Path
	}
	if c.Settings.DefaultPreset == "" {
		c.Settings.DefaultPreset = defaults.Settings.DefaultPreset
	}
	if c.Profiles.Database == "" {
		c.Profiles.Database = defaults.Profiles.Database
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaults.Logging.Format
	}
	if c.Watch.Debounce == nil {
		c.Watch.Debounce = defaults.Watch.Debounce
	}
}

// Validate rejects values the application cannot act on
func (c *Config) Validate() error {
	if !domain.IsPreset(c.Settings.DefaultPreset) {
		return fmt.Errorf("settings.default_preset: unknown preset %q (available: %v)",
			c.Settings.DefaultPreset, domain.PresetNames())
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format: must be text or json, got %q", c.Logging.Format)
	}
	if c.Watch.Debounce != nil && c.Watch.Debounce.Duration() < 0 {
		return fmt.Errorf("watch.debounce: must not be negative")
	}
	return nil
}

// DefaultSettings returns the preset used when the settings file is absent
func (c *Config) DefaultSettings() (domain.MachineSettings, error) {
	return domain.Preset(c.Settings.DefaultPreset)
}

// WatchDebounce returns the effective watcher debounce
func (c *Config) WatchDebounce() time.Duration {
	if c.Watch.Debounce == nil {
		return DefaultWatchDebounce
	}
	return c.Watch.Debounce.Duration()
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Settings: %s (default preset: %s)\n", c.Settings.Path, c.Settings.DefaultPreset)
	summary += fmt.Sprintf("Profiles: %s\n", c.Profiles.Database)
	summary += fmt.Sprintf("Logging: %s/%s, Watch debounce: %s", c.Logging.Level, c.Logging.Format, c.WatchDebounce())
	return summary
}
