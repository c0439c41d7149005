// Package cli implements the gcodegen command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gcodegen/internal/config"
	"gcodegen/internal/logging"
	"gcodegen/internal/repository/sqlite"
	"gcodegen/internal/service"
	"gcodegen/internal/settings"
)

// Execute runs the gcodegen command line and exits non-zero on failure
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries global flags and the state resolved from them
type app struct {
	configPath   string
	settingsPath string
	debug        bool

	cfg        *config.Config
	loadedFrom string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "gcodegen",
		Short:        "Manage pen plotter machine settings",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: $GCODEGEN_CONFIG or search path)")
	cmd.PersistentFlags().StringVarP(&a.settingsPath, "settings", "s", "", "machine settings file (overrides config)")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging to stderr")

	cmd.AddCommand(
		showCmd(a),
		initCmd(a),
		setCmd(a),
		validateCmd(a),
		presetsCmd(),
		profileCmd(a),
		watchCmd(a),
		configCmd(a),
	)
	return cmd
}

// skipConfigAnnotation marks commands that run before a config file exists
const skipConfigAnnotation = "gcodegen/skip-config"

// setup loads the application config and installs the logger
func (a *app) setup(cmd *cobra.Command) error {
	var err error
	if cmd.Annotations[skipConfigAnnotation] == "true" {
		a.cfg = config.DefaultConfig()
	} else if a.configPath != "" {
		a.cfg, a.loadedFrom, err = config.LoadFromPath(a.configPath)
	} else {
		a.cfg, a.loadedFrom, err = config.Load()
	}
	if err != nil {
		return err
	}

	if _, err := logging.Setup(logging.Config{
		Level:  a.cfg.Logging.Level,
		Format: a.cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
		Debug:  a.debug,
	}); err != nil {
		return err
	}

	logging.L().Debug("config resolved", "path", a.loadedFrom)
	return nil
}

// settingsFile returns the settings path from the flag or config
func (a *app) settingsFile() string {
	if a.settingsPath != "" {
		return a.settingsPath
	}
	return a.cfg.Settings.Path
}

// store builds the settings store with the configured fallback preset
func (a *app) store() (*settings.Store, error) {
	defaults, err := a.cfg.DefaultSettings()
	if err != nil {
		return nil, err
	}
	return settings.NewStore(a.settingsFile(), settings.WithDefaults(defaults)), nil
}

// service builds a settings service. With profiles set it also opens the
// profile database; the returned cleanup closes it.
func (a *app) service(profiles bool) (*service.SettingsService, func(), error) {
	st, err := a.store()
	if err != nil {
		return nil, nil, err
	}

	if !profiles {
		return service.NewSettingsService(st, nil, nil), func() {}, nil
	}

	repo, err := sqlite.New(a.cfg.Profiles.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("open profile database: %w", err)
	}
	cleanup := func() {
		if err := repo.Close(); err != nil {
			logging.L().Warn("failed to close profile database", "error", err)
		}
	}
	return service.NewSettingsService(st, repo, nil), cleanup, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
