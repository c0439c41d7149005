package config

import (
	"time"
)

// Config is the root application configuration
type Config struct {
	Version  int            `yaml:"version"`
	Settings SettingsConfig `yaml:"settings"`
	Profiles ProfilesConfig `yaml:"profiles"`
	Logging  LoggingConfig  `yaml:"logging"`
	Watch    WatchConfig    `yaml:"watch"`
}

// SettingsConfig locates the machine settings file
type SettingsConfig struct {
	Path          string `yaml:"path"`
	DefaultPreset string `yaml:"default_preset"` // used when the file is absent
}

// ProfilesConfig holds the named profile database location
type ProfilesConfig struct {
	Database string `yaml:"database"`
}

// LoggingConfig selects log verbosity and encoding
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// WatchConfig tunes the settings file watcher
type WatchConfig struct {
	Debounce *Duration `yaml:"debounce,omitempty"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
