//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesktopEntryQuotesPaths(t *testing.T) {
	entry := buildDesktopEntry("Bloomlet", "/opt/my apps/bloomlet")
	assert.Contains(t, entry, "Name=Bloomlet\n")
	assert.Contains(t, entry, `Exec="/opt/my apps/bloomlet"`)
}

func TestAutostartRoundTrip(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)
	service := NewService()

	enabled, err := service.AutostartEnabled("Bloomlet")
	require.NoError(t, err)
	assert.False(t, enabled)

	require.NoError(t, service.EnableAutostart("Bloomlet", "/usr/bin/bloomlet"))
	content, err := os.ReadFile(filepath.Join(configDir, "autostart", "bloomlet.desktop"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Exec=/usr/bin/bloomlet\n")

	enabled, err = service.AutostartEnabled("Bloomlet")
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, service.DisableAutostart("Bloomlet"))
	require.NoError(t, service.DisableAutostart("Bloomlet"))
	enabled, err = service.AutostartEnabled("Bloomlet")
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestEnableAutostartValidates(t *testing.T) {
	service := NewService()
	assert.EqualError(t, service.EnableAutostart("", "/bin/x"), "enable autostart: app name is empty")
	assert.EqualError(t, service.EnableAutostart("Bloomlet", ""), "enable autostart: exec path is empty")
}
