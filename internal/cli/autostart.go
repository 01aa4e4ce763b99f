package cli

import (
	"fmt"

	"bloomlet/internal/config"

	"github.com/spf13/cobra"
)

func addAutostart(topLevel *cobra.Command, opts *options) {
	cmd := &cobra.Command{
		Use:   "autostart",
		Short: "Start Bloomlet when you log in.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enabled, err := opts.platform.AutostartEnabled(config.AppName)
			if err != nil {
				return err
			}
			state := "disabled"
			if enabled {
				state = "enabled"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Autostart is %s.\n", state)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "enable",
		Short: "Launch Bloomlet at login.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			execPath, err := executablePath()
			if err != nil {
				return err
			}
			if err := opts.platform.EnableAutostart(config.AppName, execPath); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Autostart enabled.")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "disable",
		Short: "Stop launching Bloomlet at login.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.platform.DisableAutostart(config.AppName); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Autostart disabled.")
			return nil
		},
	})

	topLevel.AddCommand(cmd)
}
