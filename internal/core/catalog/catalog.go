// Package catalog loads the read-only message catalog.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bloomlet/internal/core/model"

	"gopkg.in/yaml.v3"
)

// Format identifies a catalog encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Catalog is an ordered, immutable sequence of messages.
type Catalog struct {
	messages []model.Message
}

// New wraps a message slice. The slice is copied.
func New(messages []model.Message) *Catalog {
	return &Catalog{messages: append([]model.Message(nil), messages...)}
}

// Empty returns a catalog without messages.
func Empty() *Catalog {
	return &Catalog{}
}

// Parse decodes a catalog document: an array of {text, category} objects.
func Parse(data []byte, format Format) (*Catalog, error) {
	var messages []model.Message
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("parse catalog yaml: %w", err)
		}
	case FormatJSON, "":
		if err := json.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("parse catalog json: %w", err)
		}
	default:
		return nil, fmt.Errorf("parse catalog: unsupported format %q", format)
	}
	return New(messages), nil
}

// LoadFile reads a catalog from disk, choosing the decoder by extension.
func LoadFile(path string) (*Catalog, error) {
	rawData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(rawData, FormatForPath(path))
}

// FormatForPath maps .yaml/.yml to YAML and everything else to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Len returns the number of messages.
func (catalog *Catalog) Len() int {
	if catalog == nil {
		return 0
	}
	return len(catalog.messages)
}

// Messages returns a copy of every message in catalog order.
func (catalog *Catalog) Messages() []model.Message {
	if catalog == nil {
		return nil
	}
	return append([]model.Message(nil), catalog.messages...)
}

// Filter returns the messages accepted by keep, in catalog order.
func (catalog *Catalog) Filter(keep func(model.Message) bool) []model.Message {
	if catalog == nil {
		return nil
	}
	var filtered []model.Message
	for _, message := range catalog.messages {
		if keep(message) {
			filtered = append(filtered, message)
		}
	}
	return filtered
}

// CountByCategory tallies messages per category.
func (catalog *Catalog) CountByCategory() map[model.Category]int {
	counts := make(map[model.Category]int)
	if catalog == nil {
		return counts
	}
	for _, message := range catalog.messages {
		counts[message.Category]++
	}
	return counts
}
