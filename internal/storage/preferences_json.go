package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"bloomlet/internal/core/model"
)

const preferencesFileName = "preferences.json"

// PreferencesStore keeps the authoritative in-memory preferences and mirrors
// every change to a JSON file. Write failures are logged and swallowed.
type PreferencesStore struct {
	mu      sync.Mutex
	path    string
	current model.Preferences
	logger  *slog.Logger
}

// PreferencesPath returns <configDir>/<appName>/preferences.json.
func PreferencesPath(configDir, appName string) string {
	return filepath.Join(configDir, appName, preferencesFileName)
}

// NewPreferencesStore creates a store holding the defaults until Load is called.
func NewPreferencesStore(path string, logger *slog.Logger) *PreferencesStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PreferencesStore{
		path:    path,
		current: model.DefaultPreferences(),
		logger:  logger,
	}
}

// ReadPreferences parses a preferences file. A missing file yields the
// defaults with no error; an unreadable or malformed file yields the
// defaults together with the error. Keys that fail to decode fall back to
// their defaults and are reported in the error.
func ReadPreferences(path string) (model.Preferences, error) {
	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.DefaultPreferences(), nil
		}
		return model.DefaultPreferences(), fmt.Errorf("read preferences file: %w", err)
	}
	return ParsePreferences(rawData)
}

// ParsePreferences shallow-merges a stored JSON object over the defaults.
// Each key is decoded on its own so one bad value only costs that key.
func ParsePreferences(rawData []byte) (model.Preferences, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(rawData, &fields); err != nil {
		return model.DefaultPreferences(), fmt.Errorf("parse preferences json: %w", err)
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var stored model.Patch
	var errs []error
	for _, key := range keys {
		single, err := json.Marshal(map[string]json.RawMessage{key: fields[key]})
		if err != nil {
			errs = append(errs, fmt.Errorf("decode preferences key %q: %w", key, err))
			continue
		}
		var field model.Patch
		if err := json.Unmarshal(single, &field); err != nil {
			errs = append(errs, fmt.Errorf("decode preferences key %q: %w", key, err))
			continue
		}
		overlayPatch(&stored, field)
	}
	return model.DefaultPreferences().Merge(stored), errors.Join(errs...)
}

func overlayPatch(target *model.Patch, field model.Patch) {
	if field.Interval != nil {
		target.Interval = field.Interval
	}
	if field.Theme != nil {
		target.Theme = field.Theme
	}
	if field.Categories != nil {
		target.Categories = field.Categories
	}
	if field.SoundEnabled != nil {
		target.SoundEnabled = field.SoundEnabled
	}
	if field.Position != nil {
		target.Position = field.Position
	}
	if field.PopupPosition != nil {
		target.PopupPosition = field.PopupPosition
	}
	if field.PopupSize != nil {
		target.PopupSize = field.PopupSize
	}
	if field.FontFamily != nil {
		target.FontFamily = field.FontFamily
	}
}

// WritePreferences stores prefs as 2-space indented JSON, creating parent
// directories as needed.
func WritePreferences(path string, prefs model.Preferences) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	serialized, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal preferences json: %w", err)
	}
	if err := os.WriteFile(path, append(serialized, '\n'), 0o644); err != nil {
		return fmt.Errorf("write preferences file: %w", err)
	}
	return nil
}

// Path returns the backing file.
func (store *PreferencesStore) Path() string {
	return store.path
}

// Load replaces the in-memory preferences with the file contents. On error
// the defaults are kept and the error is returned for logging.
func (store *PreferencesStore) Load() error {
	prefs, err := ReadPreferences(store.path)
	store.mu.Lock()
	store.current = prefs
	store.mu.Unlock()
	return err
}

// Current returns a copy of the in-memory preferences.
func (store *PreferencesStore) Current() model.Preferences {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.current.Clone()
}

// Update merges patch into the preferences, persists the result and returns it.
func (store *PreferencesStore) Update(patch model.Patch) model.Preferences {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.current = store.current.Merge(patch)
	store.saveLocked()
	return store.current.Clone()
}

// RememberGeometry records the popup position and size.
func (store *PreferencesStore) RememberGeometry(bounds model.Rect) {
	position := bounds.Point
	size := bounds.Size
	store.Update(model.Patch{PopupPosition: &position, PopupSize: &size})
}

// Reset restores and persists the defaults.
func (store *PreferencesStore) Reset() error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.current = model.DefaultPreferences()
	return WritePreferences(store.path, store.current)
}

func (store *PreferencesStore) saveLocked() {
	if err := WritePreferences(store.path, store.current); err != nil {
		store.logger.Warn("preferences not saved", "path", store.path, "error", err)
	}
}
