package cli

import (
	"errors"
	"fmt"
	"time"

	"bloomlet/internal/config"
	"bloomlet/internal/platform"

	"github.com/spf13/cobra"
)

const signalTimeout = 2 * time.Second

var errNotRunning = errors.New("bloomlet is not running")

func addShow(topLevel *cobra.Command, opts *options) {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Ask the running Bloomlet to show a popup now.",
		Example: `
bloomlet show
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := platform.SignalRunningInstance(config.AppName, platform.CommandShow, signalTimeout); err != nil {
				opts.logger.Debug("show request failed", "error", err)
				return errNotRunning
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Popup requested.")
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
