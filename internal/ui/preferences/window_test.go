package preferences

import (
	"testing"

	"bloomlet/internal/core/model"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionLookups(t *testing.T) {
	assert.Equal(t, "Every hour", labelFor(intervalOptions, model.Interval60m))
	assert.Equal(t, "Every 30 minutes", labelFor(intervalOptions, model.Interval("15m")))

	value, ok := valueFor(themeOptions, "Dark")
	assert.True(t, ok)
	assert.Equal(t, model.ThemeDark, value)

	_, ok = valueFor(themeOptions, "Sepia")
	assert.False(t, ok)
}

func TestWindowPatchReflectsEdits(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	prefs := model.DefaultPreferences()
	prefs.Categories[model.CategoryMindfulness] = false

	var saved []model.Patch
	settings := New(app, prefs, Callbacks{OnSave: func(patch model.Patch) { saved = append(saved, patch) }})

	assert.False(t, settings.categories[model.CategoryMindfulness].Checked)
	assert.Equal(t, "Pastel", settings.theme.Selected)

	settings.interval.SetSelected("Randomly (1-2 hours)")
	settings.font.SetSelected("Monospace")
	settings.categories[model.CategoryComforting].SetChecked(false)
	settings.handleSave()

	require.Len(t, saved, 1)
	patch := saved[0]
	require.NotNil(t, patch.Interval)
	assert.Equal(t, model.IntervalRandom, *patch.Interval)
	require.NotNil(t, patch.FontFamily)
	assert.Equal(t, model.FontMono, *patch.FontFamily)
	assert.Equal(t, map[model.Category]bool{
		model.CategoryComforting:   false,
		model.CategoryMotivational: true,
		model.CategoryMindfulness:  false,
	}, patch.Categories)
	assert.Nil(t, patch.PopupPosition)
	assert.Nil(t, patch.PopupSize)
}

func TestWindowTestButton(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	tested := 0
	settings := New(app, model.DefaultPreferences(), Callbacks{OnTest: func() { tested++ }})
	settings.handleTest()

	assert.Equal(t, 1, tested)
}
