package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gcodegen/internal/config"
)

func configCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the application config",
	}

	c.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				source := a.loadedFrom
				if source == "" {
					source = "(built-in defaults; searched " + strings.Join(config.SearchPaths(), ", ") + ")"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Config: %s\n%s\n", source, a.cfg.Summary())
				return nil
			},
		},
		configInitCmd(a),
	)
	return c
}

func configInitCmd(a *app) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.configPath
			if path == "" {
				path = config.DefaultConfigPath()
			}
			if fileExists(path) && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			if err := config.DefaultConfig().Save(path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	c.Annotations = map[string]string{skipConfigAnnotation: "true"}
	c.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return c
}
