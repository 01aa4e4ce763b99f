package cli

import (
	"encoding/json"
	"fmt"

	"bloomlet/internal/storage"

	"github.com/spf13/cobra"
)

func addPrefs(topLevel *cobra.Command, opts *options) {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect or reset the saved preferences.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective preferences as JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prefs, err := storage.ReadPreferences(opts.config.PreferencesPath)
			if err != nil {
				opts.logger.Warn("preferences unreadable, defaults applied", "path", opts.config.PreferencesPath, "error", err)
			}
			serialized, err := json.MarshalIndent(prefs, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal preferences json: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(serialized))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the preferences file location.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), opts.config.PreferencesPath)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the default preferences.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := storage.NewPreferencesStore(opts.config.PreferencesPath, opts.logger)
			if err := store.Reset(); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Preferences reset (%s).\n", store.Path())
			return nil
		},
	})

	topLevel.AddCommand(cmd)
}
