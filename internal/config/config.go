// Package config loads the application configuration from defaults, an
// optional config.yaml, BLOOMLET_* environment variables and bound flags.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"bloomlet/internal/storage"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// AppName names the configuration directory, the tray tooltip and the
// single-instance lock.
const AppName = "Bloomlet"

const (
	KeyCatalogPath     = "catalog_path"
	KeyPreferencesPath = "preferences_path"
	KeyLogLevel        = "log.level"
	KeyLogFormat       = "log.format"
	KeyWelcomeDelay    = "welcome_delay"
)

// DefaultWelcomeDelay is how long after launch the first popup appears.
const DefaultWelcomeDelay = 3 * time.Second

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config is the resolved application configuration.
type Config struct {
	// CatalogPath is a message catalog file; empty means the embedded catalog.
	CatalogPath     string        `mapstructure:"catalog_path"`
	PreferencesPath string        `mapstructure:"preferences_path"`
	Log             LogConfig     `mapstructure:"log"`
	WelcomeDelay    time.Duration `mapstructure:"welcome_delay"`
	// ConfigFile is the config file that was read, if any.
	ConfigFile string `mapstructure:"-"`
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("BLOOMLET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyCatalogPath, "")
	v.SetDefault(KeyPreferencesPath, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyWelcomeDelay, DefaultWelcomeDelay)
	return v
}

// Load reads the configuration. configFile selects an explicit file; when
// empty, config.yaml is looked up in <configDir>/Bloomlet and its absence is
// not an error.
func Load(v *viper.Viper, configFile, configDir string) (Config, error) {
	if configFile != "" {
		expanded, err := homedir.Expand(configFile)
		if err != nil {
			return Config{}, fmt.Errorf("expand config path: %w", err)
		}
		v.SetConfigFile(expanded)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(configDir, AppName))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	var err error
	if cfg.CatalogPath, err = expand(cfg.CatalogPath); err != nil {
		return Config{}, err
	}
	if cfg.PreferencesPath, err = expand(cfg.PreferencesPath); err != nil {
		return Config{}, err
	}
	if cfg.PreferencesPath == "" {
		cfg.PreferencesPath = storage.PreferencesPath(configDir, AppName)
	}
	if cfg.WelcomeDelay < 0 {
		cfg.WelcomeDelay = 0
	}
	return cfg, nil
}

func expand(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand path %s: %w", path, err)
	}
	return expanded, nil
}
