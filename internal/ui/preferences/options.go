package preferences

import (
	"bloomlet/internal/core/model"
)

type option[T ~string] struct {
	value T
	label string
}

var intervalOptions = []option[model.Interval]{
	{model.Interval30m, "Every 30 minutes"},
	{model.Interval60m, "Every hour"},
	{model.Interval120m, "Every 2 hours"},
	{model.IntervalRandom, "Randomly (1-2 hours)"},
}

var themeOptions = []option[model.Theme]{
	{model.ThemeLight, "Light"},
	{model.ThemeDark, "Dark"},
	{model.ThemePastel, "Pastel"},
}

var fontOptions = []option[model.FontFamily]{
	{model.FontSystem, "System"},
	{model.FontSerif, "Serif"},
	{model.FontMono, "Monospace"},
	{model.FontRounded, "Rounded"},
}

var placementOptions = []option[model.Placement]{
	{model.PlacementCorner, "Bottom-right corner"},
	{model.PlacementCenter, "Center of screen"},
}

var categoryLabels = map[model.Category]string{
	model.CategoryComforting:   "Comforting",
	model.CategoryMotivational: "Motivational",
	model.CategoryMindfulness:  "Mindfulness",
}

func labels[T ~string](options []option[T]) []string {
	result := make([]string, 0, len(options))
	for _, item := range options {
		result = append(result, item.label)
	}
	return result
}

// labelFor returns the label of value, or the first label for unknown values.
func labelFor[T ~string](options []option[T], value T) string {
	for _, item := range options {
		if item.value == value {
			return item.label
		}
	}
	return options[0].label
}

// valueFor maps a label back to its value; ok is false for unknown labels.
func valueFor[T ~string](options []option[T], label string) (T, bool) {
	for _, item := range options {
		if item.label == label {
			return item.value, true
		}
	}
	var zero T
	return zero, false
}
