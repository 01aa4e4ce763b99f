package model

// Interval selects the scheduler delay policy.
type Interval string

const (
	Interval30m    Interval = "30m"
	Interval60m    Interval = "60m"
	Interval120m   Interval = "120m"
	IntervalRandom Interval = "random"
)

// Intervals lists the selectable intervals.
var Intervals = []Interval{Interval30m, Interval60m, Interval120m, IntervalRandom}

// Theme names a popup color scheme.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemePastel Theme = "pastel"
)

// Themes lists the selectable themes.
var Themes = []Theme{ThemeLight, ThemeDark, ThemePastel}

// Placement is the default placement strategy for a popup without a remembered position.
type Placement string

const (
	PlacementCorner Placement = "corner"
	PlacementCenter Placement = "center"
)

// Placements lists the selectable placements.
var Placements = []Placement{PlacementCorner, PlacementCenter}

// FontFamily names the popup typeface.
type FontFamily string

const (
	FontSystem  FontFamily = "system"
	FontSerif   FontFamily = "serif"
	FontMono    FontFamily = "mono"
	FontRounded FontFamily = "rounded"
)

// FontFamilies lists the selectable font families.
var FontFamilies = []FontFamily{FontSystem, FontSerif, FontMono, FontRounded}

// Preferences is the persisted user configuration.
type Preferences struct {
	Interval      Interval          `json:"interval"`
	Theme         Theme             `json:"theme"`
	Categories    map[Category]bool `json:"categories"`
	SoundEnabled  bool              `json:"soundEnabled"`
	Position      Placement         `json:"position"`
	PopupPosition *Point            `json:"popupPosition"`
	PopupSize     Size              `json:"popupSize"`
	FontFamily    FontFamily        `json:"fontFamily"`
}

// Patch is a partial preferences update. Nil fields are left untouched.
type Patch struct {
	Interval      *Interval         `json:"interval,omitempty"`
	Theme         *Theme            `json:"theme,omitempty"`
	Categories    map[Category]bool `json:"categories,omitempty"`
	SoundEnabled  *bool             `json:"soundEnabled,omitempty"`
	Position      *Placement        `json:"position,omitempty"`
	PopupPosition *Point            `json:"popupPosition,omitempty"`
	PopupSize     *Size             `json:"popupSize,omitempty"`
	FontFamily    *FontFamily       `json:"fontFamily,omitempty"`
}

// DefaultPreferences returns the built-in configuration.
func DefaultPreferences() Preferences {
	return Preferences{
		Interval: Interval60m,
		Theme:    ThemePastel,
		Categories: map[Category]bool{
			CategoryComforting:   true,
			CategoryMotivational: true,
			CategoryMindfulness:  true,
		},
		SoundEnabled: false,
		Position:     PlacementCorner,
		PopupSize:    DefaultPopupSize(),
		FontFamily:   FontSystem,
	}
}

// Clone returns a deep copy.
func (prefs Preferences) Clone() Preferences {
	clone := prefs
	if prefs.Categories != nil {
		clone.Categories = make(map[Category]bool, len(prefs.Categories))
		for category, enabled := range prefs.Categories {
			clone.Categories[category] = enabled
		}
	}
	if prefs.PopupPosition != nil {
		position := *prefs.PopupPosition
		clone.PopupPosition = &position
	}
	return clone
}

// Merge applies a shallow patch and returns the normalized result.
// A patched categories object replaces the whole mapping; toggleable
// categories it omits fall back to the default (enabled).
func (prefs Preferences) Merge(patch Patch) Preferences {
	merged := prefs.Clone()
	if patch.Interval != nil {
		merged.Interval = *patch.Interval
	}
	if patch.Theme != nil {
		merged.Theme = *patch.Theme
	}
	if patch.Categories != nil {
		merged.Categories = make(map[Category]bool, len(patch.Categories))
		for category, enabled := range patch.Categories {
			merged.Categories[category] = enabled
		}
	}
	if patch.SoundEnabled != nil {
		merged.SoundEnabled = *patch.SoundEnabled
	}
	if patch.Position != nil {
		merged.Position = *patch.Position
	}
	if patch.PopupPosition != nil {
		position := *patch.PopupPosition
		merged.PopupPosition = &position
	}
	if patch.PopupSize != nil {
		merged.PopupSize = *patch.PopupSize
	}
	if patch.FontFamily != nil {
		merged.FontFamily = *patch.FontFamily
	}
	return merged.Normalize()
}

// Normalize fills empty fields from the defaults and clamps the popup size.
// Unrecognized enum values are kept; consumers degrade them at use time.
func (prefs Preferences) Normalize() Preferences {
	defaults := DefaultPreferences()
	normalized := prefs.Clone()
	if normalized.Interval == "" {
		normalized.Interval = defaults.Interval
	}
	if normalized.Theme == "" {
		normalized.Theme = defaults.Theme
	}
	if normalized.Position == "" {
		normalized.Position = defaults.Position
	}
	if normalized.FontFamily == "" {
		normalized.FontFamily = defaults.FontFamily
	}
	if normalized.Categories == nil {
		normalized.Categories = defaults.Categories
	} else {
		for _, category := range Categories {
			if _, ok := normalized.Categories[category]; !ok {
				normalized.Categories[category] = defaults.Categories[category]
			}
		}
	}
	if normalized.PopupSize.Width == 0 {
		normalized.PopupSize.Width = defaults.PopupSize.Width
	}
	if normalized.PopupSize.Height == 0 {
		normalized.PopupSize.Height = defaults.PopupSize.Height
	}
	normalized.PopupSize = normalized.PopupSize.Clamp()
	return normalized
}

// EnabledCategories returns the categories whose flag is set.
func (prefs Preferences) EnabledCategories() map[Category]bool {
	enabled := make(map[Category]bool, len(prefs.Categories))
	for category, on := range prefs.Categories {
		if on {
			enabled[category] = true
		}
	}
	return enabled
}
