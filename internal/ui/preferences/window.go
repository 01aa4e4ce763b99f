// Package preferences is the settings panel.
package preferences

import (
	"bloomlet/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Callbacks defines settings panel actions.
type Callbacks struct {
	OnSave func(model.Patch)
	OnTest func()
}

// Window handles the settings UI.
type Window struct {
	window     fyne.Window
	callbacks  Callbacks
	interval   *widget.Select
	theme      *widget.Select
	font       *widget.Select
	placement  *widget.Select
	categories map[model.Category]*widget.Check
	sound      *widget.Check
}

// New creates a settings window populated from prefs.
func New(app fyne.App, prefs model.Preferences, callbacks Callbacks) *Window {
	window := app.NewWindow("Bloomlet Settings")

	settings := &Window{
		window:     window,
		callbacks:  callbacks,
		interval:   widget.NewSelect(labels(intervalOptions), nil),
		theme:      widget.NewSelect(labels(themeOptions), nil),
		font:       widget.NewSelect(labels(fontOptions), nil),
		placement:  widget.NewSelect(labels(placementOptions), nil),
		categories: make(map[model.Category]*widget.Check, len(model.Categories)),
		sound:      widget.NewCheck("Play a sound (not yet available)", nil),
	}

	categoryBox := container.NewVBox()
	for _, category := range model.Categories {
		check := widget.NewCheck(categoryLabels[category], nil)
		settings.categories[category] = check
		categoryBox.Add(check)
	}

	form := widget.NewForm(
		widget.NewFormItem("Remind me", settings.interval),
		widget.NewFormItem("Theme", settings.theme),
		widget.NewFormItem("Font", settings.font),
		widget.NewFormItem("Position", settings.placement),
		widget.NewFormItem("Messages", categoryBox),
		widget.NewFormItem("", settings.sound),
	)

	saveButton := widget.NewButton("Save", settings.handleSave)
	saveButton.Importance = widget.HighImportance
	testButton := widget.NewButton("Test", settings.handleTest)
	cancelButton := widget.NewButton("Cancel", window.Hide)
	buttons := container.NewHBox(testButton, layout.NewSpacer(), cancelButton, saveButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 520))
	window.SetFixedSize(true)
	window.SetCloseIntercept(window.Hide)

	settings.Update(prefs)
	return settings
}

// Show displays the settings window.
func (settings *Window) Show() {
	settings.window.Show()
	settings.window.RequestFocus()
}

// Update replaces the displayed values.
func (settings *Window) Update(prefs model.Preferences) {
	settings.interval.SetSelected(labelFor(intervalOptions, prefs.Interval))
	settings.theme.SetSelected(labelFor(themeOptions, prefs.Theme))
	settings.font.SetSelected(labelFor(fontOptions, prefs.FontFamily))
	settings.placement.SetSelected(labelFor(placementOptions, prefs.Position))
	for category, check := range settings.categories {
		enabled, ok := prefs.Categories[category]
		check.SetChecked(!ok || enabled)
	}
	settings.sound.SetChecked(prefs.SoundEnabled)
}

// Patch returns the edited values as a preferences patch. Geometry is left
// untouched so a remembered popup position survives a save.
func (settings *Window) Patch() model.Patch {
	var patch model.Patch
	if value, ok := valueFor(intervalOptions, settings.interval.Selected); ok {
		patch.Interval = &value
	}
	if value, ok := valueFor(themeOptions, settings.theme.Selected); ok {
		patch.Theme = &value
	}
	if value, ok := valueFor(fontOptions, settings.font.Selected); ok {
		patch.FontFamily = &value
	}
	if value, ok := valueFor(placementOptions, settings.placement.Selected); ok {
		patch.Position = &value
	}
	patch.Categories = make(map[model.Category]bool, len(settings.categories))
	for category, check := range settings.categories {
		patch.Categories[category] = check.Checked
	}
	sound := settings.sound.Checked
	patch.SoundEnabled = &sound
	return patch
}

func (settings *Window) handleSave() {
	if settings.callbacks.OnSave != nil {
		settings.callbacks.OnSave(settings.Patch())
	}
	settings.window.Hide()
}

func (settings *Window) handleTest() {
	if settings.callbacks.OnTest != nil {
		settings.callbacks.OnTest()
	}
}
