package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath names a config file explicitly. When set, the file must exist.
	EnvConfigPath = "GCODEGEN_CONFIG"
	// ConfigFileName is looked up in the working directory
	ConfigFileName = "gcodegen.yaml"
	// ConfigDirName is the per-user and system directory name
	ConfigDirName = "gcodegen"

	userConfigFile = "config.yaml"
)

// ErrConfigNotFound is returned when an explicitly named config file is absent
var ErrConfigNotFound = errors.New("config file not found")

// SearchPaths lists the implicit config locations in lookup order. Unset
// environment variables contribute no entry.
func SearchPaths() []string {
	paths := []string{ConfigFileName}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, ConfigDirName, userConfigFile))
	}
	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", ConfigDirName, userConfigFile))
	}
	return append(paths, filepath.Join("/etc", ConfigDirName, userConfigFile))
}

// FindConfigPath resolves the config file to load. $GCODEGEN_CONFIG wins and
// must name a regular file; a typo there is an error rather than a silent
// switch to another location. Otherwise the first existing SearchPaths entry
// is returned, or "" when there is none.
func FindConfigPath() (string, error) {
	if explicit := os.Getenv(EnvConfigPath); explicit != "" {
		if err := checkRegularFile(explicit); err != nil {
			return "", fmt.Errorf("%w: $%s: %w", ErrConfigNotFound, EnvConfigPath, err)
		}
		return explicit, nil
	}

	for _, p := range SearchPaths() {
		if checkRegularFile(p) != nil {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			return abs, nil
		}
		return p, nil
	}
	return "", nil
}

// DefaultConfigPath is where `config init` writes when no path is given:
// the first per-user location, else the working directory
func DefaultConfigPath() string {
	for _, p := range SearchPaths()[1:] {
		if p != filepath.Join("/etc", ConfigDirName, userConfigFile) {
			return p
		}
	}
	return ConfigFileName
}

// DefaultDataDir returns where the profile database lives by default
func DefaultDataDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, ConfigDirName)
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".local", "share", ConfigDirName)
	}
	return "."
}

// EnsureConfigDir creates the directory that will hold configPath
func EnsureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

func checkRegularFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
