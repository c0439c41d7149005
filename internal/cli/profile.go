package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func profileCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "profile",
		Short: "Manage named settings profiles",
	}

	c.AddCommand(
		profileSaveCmd(a),
		profileApplyCmd(a),
		profileListCmd(a),
		profileDeleteCmd(a),
	)
	return c
}

func profileSaveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "save NAME",
		Short: "Store the current settings as a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := a.service(true)
			if err != nil {
				return err
			}
			defer cleanup()

			if _, err := svc.Load(); err != nil {
				return err
			}

			changed, err := svc.SaveProfile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if changed {
				fmt.Fprintf(cmd.OutOrStdout(), "Saved profile %q\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Profile %q unchanged\n", args[0])
			}
			return nil
		},
	}
}

func profileApplyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "apply NAME",
		Short: "Replace the settings file with a stored profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := a.service(true)
			if err != nil {
				return err
			}
			defer cleanup()

			s, err := svc.ApplyProfile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Applied profile %q to %s\n", args[0], svc.Path())
			return printSettings(cmd.OutOrStdout(), s)
		},
	}
}

func profileListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, cleanup, err := a.service(true)
			if err != nil {
				return err
			}
			defer cleanup()

			profiles, err := svc.ListProfiles(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(profiles) == 0 {
				fmt.Fprintln(out, "(no profiles)")
				return nil
			}

			for _, p := range profiles {
				fmt.Fprintf(out, "- %s  %gx%g mm, feed %g, z %g/%g/%g  (%s, updated %s)\n",
					p.Name,
					p.Settings.BedWidth(), p.Settings.BedHeight(), p.Settings.FeedRate(),
					p.Settings.PenDownPosition(), p.Settings.PenUpPosition(), p.Settings.SafeZ(),
					p.Fingerprint[:12], humanize.Time(p.UpdatedAt))
			}
			return nil
		},
	}
}

func profileDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Remove a stored profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := a.service(true)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.DeleteProfile(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile %q\n", args[0])
			return nil
		},
	}
}
