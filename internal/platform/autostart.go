package platform

import (
	"fmt"
	"os"
	"strings"
)

// Service defines the OS-specific helpers the application needs.
type Service interface {
	ConfigDir() (string, error)
	EnableAutostart(appName, execPath string) error
	DisableAutostart(appName string) error
	AutostartEnabled(appName string) (bool, error)
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// ConfigDir returns the OS-standard configuration directory, falling back to
// a home-relative location when the environment does not define one.
func (service *platformService) ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// slug turns an application name into a lowercase file-safe identifier.
func slug(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "bloomlet"
	}
	name = strings.ToLower(name)
	return strings.ReplaceAll(name, " ", "-")
}

func requireNames(operation, appName, execPath string, needExec bool) error {
	if strings.TrimSpace(appName) == "" {
		return fmt.Errorf("%s: app name is empty", operation)
	}
	if needExec && execPath == "" {
		return fmt.Errorf("%s: exec path is empty", operation)
	}
	return nil
}
