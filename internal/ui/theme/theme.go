// Package theme maps preference themes and fonts onto popup visuals.
package theme

import (
	"image/color"
	"math"

	"bloomlet/internal/core/model"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	baseFontSize = 16.0
	minFontSize  = 12.0
	maxFontSize  = 32.0
)

// Palette is the set of colors used to draw a popup.
type Palette struct {
	Background colorful.Color
	Text       colorful.Color
	Accent     colorful.Color
}

var palettes = map[model.Theme][3]string{
	model.ThemeLight:  {"#fbfbfd", "#2b2d42", "#8d99ae"},
	model.ThemeDark:   {"#1f2029", "#f1f1f6", "#7f7fd5"},
	model.ThemePastel: {"#fde2e4", "#5e3c58", "#cdb4db"},
}

// PaletteFor returns the palette of a theme; unknown themes use light.
func PaletteFor(name model.Theme) Palette {
	hexes, ok := palettes[name]
	if !ok {
		hexes = palettes[model.ThemeLight]
	}
	return Palette{
		Background: mustHex(hexes[0]),
		Text:       mustHex(hexes[1]),
		Accent:     mustHex(hexes[2]),
	}
}

// BackgroundColor returns the background faded to the given opacity.
func (palette Palette) BackgroundColor(opacity float64) color.NRGBA {
	return toNRGBA(palette.Background, opacity)
}

// TextColor returns the text color faded to the given opacity.
func (palette Palette) TextColor(opacity float64) color.NRGBA {
	return toNRGBA(palette.Text, opacity)
}

// AccentColor returns the border color, blended halfway towards the
// background so it reads as a soft outline.
func (palette Palette) AccentColor(opacity float64) color.NRGBA {
	return toNRGBA(palette.Accent.BlendLab(palette.Background, 0.5).Clamped(), opacity)
}

// FontSize scales the 16pt baseline with the popup relative to 320x120,
// using the smaller axis and clamping to [12, 32].
func FontSize(size model.Size) float64 {
	scale := math.Min(
		float64(size.Width)/model.DefaultPopupWidth,
		float64(size.Height)/model.DefaultPopupHeight,
	)
	return math.Max(minFontSize, math.Min(maxFontSize, baseFontSize*scale))
}

func mustHex(value string) colorful.Color {
	parsed, err := colorful.Hex(value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func toNRGBA(value colorful.Color, opacity float64) color.NRGBA {
	red, green, blue := value.RGB255()
	return color.NRGBA{R: red, G: green, B: blue, A: alpha(opacity)}
}

func alpha(opacity float64) uint8 {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return uint8(math.Round(opacity * 255))
}
