package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"gcodegen/internal/codec"
	"gcodegen/internal/domain"
	"gcodegen/internal/settings"
)

func showCmd(a *app) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "show",
		Short: "Print the current machine settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, cleanup, err := a.service(false)
			if err != nil {
				return err
			}
			defer cleanup()

			s, err := svc.Load()
			if err != nil {
				return err
			}

			enc := codec.ForPath(svc.Path())
			if format != "" {
				if enc, err = codec.ForFormat(format); err != nil {
					return err
				}
			}
			return enc.Encode(s.Fields(), cmd.OutOrStdout())
		},
	}

	c.Flags().StringVarP(&format, "format", "f", "", fmt.Sprintf("output format (%s; default: settings file format)", strings.Join(codec.Formats(), ", ")))
	return c
}

func initCmd(a *app) *cobra.Command {
	var preset string
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file from a preset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.store()
			if err != nil {
				return err
			}
			if st.Exists() && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", st.Path())
			}

			if preset == "" {
				preset = a.cfg.Settings.DefaultPreset
			}
			s, err := domain.Preset(preset)
			if err != nil {
				return err
			}

			if err := st.Save(s); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s preset to %s\n", preset, st.Path())
			return nil
		},
	}

	c.Flags().StringVarP(&preset, "preset", "p", "", fmt.Sprintf("preset to write (%s; default from config)", strings.Join(domain.PresetNames(), ", ")))
	c.Flags().BoolVar(&force, "force", false, "overwrite an existing settings file")
	return c
}

func setCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set key=value...",
		Short: "Change one or more settings",
		Long: "Change one or more settings. All assignments are applied together and\n" +
			"validated once, so related values such as pen_up_position and safe_z\n" +
			"can be moved in a single step.\n\nKeys: " + strings.Join(domain.Keys(), ", "),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, err := parseAssignments(args)
			if err != nil {
				return err
			}

			svc, cleanup, err := a.service(false)
			if err != nil {
				return err
			}
			defer cleanup()

			current, err := svc.Load()
			if err != nil {
				return err
			}

			next, err := applyAssignments(current, assignments)
			if err != nil {
				return err
			}
			if err := svc.Replace(next); err != nil {
				return err
			}

			return printSettings(cmd.OutOrStdout(), next)
		},
	}
}

// parseAssignments splits key=value arguments, rejecting unknown keys
func parseAssignments(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q (want key=value)", arg)
		}
		if _, known := domain.DefaultMachineSettings().Get(key); !known {
			return nil, &domain.UnknownKeyError{Key: key}
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}

// applyAssignments merges textual values over s and rebuilds through FromMap,
// which handles numeric coercion and validation
func applyAssignments(s domain.MachineSettings, assignments map[string]string) (domain.MachineSettings, error) {
	doc := make(map[string]any, len(domain.Keys()))
	for k, v := range s.ToMap() {
		doc[k] = v
	}
	for k, v := range assignments {
		doc[k] = v
	}
	return domain.FromMap(doc)
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a settings file without changing it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.settingsFile()
			if len(args) == 1 {
				path = args[0]
			}

			st := settings.NewStore(path)
			if !st.Exists() {
				return fmt.Errorf("%s: no such settings file", path)
			}

			s, err := st.Load()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "OK %s (%s, fingerprint %s)\n", path, st.Format(), s.Fingerprint()[:12])
			return nil
		},
	}
}

func presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List built-in presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, name := range domain.PresetNames() {
				s, err := domain.Preset(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\n", name)
				if err := printSettings(out, s); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// printSettings writes one "  key: value" line per field in canonical order
func printSettings(w io.Writer, s domain.MachineSettings) error {
	m := s.ToMap()
	for _, k := range domain.Keys() {
		if _, err := fmt.Fprintf(w, "  %-18s %g\n", k+":", m[k]); err != nil {
			return err
		}
	}
	return nil
}
