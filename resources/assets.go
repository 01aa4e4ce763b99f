// Package resources embeds the default message catalog and the tray icons.
package resources

import (
	"embed"
	"fmt"
	"sync"

	"bloomlet/internal/core/catalog"

	"fyne.io/fyne/v2"
)

const (
	IconActive = "tray_active.svg"
	IconPaused = "tray_paused.svg"
)

//go:embed messages.json
var catalogData []byte

//go:embed *.svg
var iconFS embed.FS

var iconCache sync.Map

// Catalog returns the built-in message catalog.
func Catalog() (*catalog.Catalog, error) {
	return catalog.Parse(catalogData, catalog.FormatJSON)
}

// Icon returns a Fyne resource for the given icon file.
func Icon(fileName string) (fyne.Resource, error) {
	if cached, ok := iconCache.Load(fileName); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := iconFS.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", fileName, err)
	}

	resource := fyne.NewStaticResource(fileName, data)
	iconCache.Store(fileName, resource)
	return resource, nil
}

// MustIcon returns a Fyne resource or panics on error.
func MustIcon(fileName string) fyne.Resource {
	resource, err := Icon(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}
