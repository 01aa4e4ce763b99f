// Package cli is the bloomlet command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"bloomlet/internal/config"
	"bloomlet/internal/core/catalog"
	"bloomlet/internal/logging"
	"bloomlet/internal/platform"
	"bloomlet/resources"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type options struct {
	viper      *viper.Viper
	configFile string
	platform   platform.Service

	config config.Config
	logger *slog.Logger
}

// New returns the root command. Without a subcommand it runs the tray app.
func New() *cobra.Command {
	opts := &options{viper: config.New(), platform: platform.NewService()}

	cmd := &cobra.Command{
		Use:   "bloomlet",
		Short: "Gentle positive reminders from your system tray.",
		Long: `Bloomlet sits in the system tray and every so often shows a small popup
with an encouraging message. Use the tray menu to show one now, pause
reminders or open the settings.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDesktop(opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default <config dir>/Bloomlet/config.yaml)")
	flags.String("catalog", "", "message catalog file (.json, .yaml or .yml)")
	flags.String("preferences", "", "preferences file (default <config dir>/Bloomlet/preferences.json)")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-format", "text", "log format: text or json")
	flags.Duration("welcome-delay", config.DefaultWelcomeDelay, "delay before the first popup, 0 to disable")

	_ = opts.viper.BindPFlag(config.KeyCatalogPath, flags.Lookup("catalog"))
	_ = opts.viper.BindPFlag(config.KeyPreferencesPath, flags.Lookup("preferences"))
	_ = opts.viper.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = opts.viper.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))
	_ = opts.viper.BindPFlag(config.KeyWelcomeDelay, flags.Lookup("welcome-delay"))

	AddCommands(cmd, opts)
	return cmd
}

// AddCommands attaches the subcommands.
func AddCommands(topLevel *cobra.Command, opts *options) {
	addShow(topLevel, opts)
	addMessages(topLevel, opts)
	addPrefs(topLevel, opts)
	addAutostart(topLevel, opts)
}

func (opts *options) load(cmd *cobra.Command) error {
	configDir, err := opts.platform.ConfigDir()
	if err != nil {
		return err
	}
	cfg, err := config.Load(opts.viper, opts.configFile, configDir)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	opts.config = cfg
	opts.logger = logger
	logger.Debug("configuration loaded",
		"config_file", cfg.ConfigFile,
		"preferences", cfg.PreferencesPath,
		"catalog", cfg.CatalogPath,
	)
	return nil
}

// loadCatalog returns the configured catalog, or the built-in one. A file
// that cannot be read yields an empty catalog.
func (opts *options) loadCatalog() *catalog.Catalog {
	if opts.config.CatalogPath == "" {
		messages, err := resources.Catalog()
		if err != nil {
			opts.logger.Error("built-in catalog unreadable", "error", err)
			return catalog.Empty()
		}
		return messages
	}
	messages, err := catalog.LoadFile(opts.config.CatalogPath)
	if err != nil {
		opts.logger.Error("message catalog unreadable", "path", opts.config.CatalogPath, "error", err)
		return catalog.Empty()
	}
	return messages
}

func executablePath() (string, error) {
	path, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	return path, nil
}
