package popup

import (
	"image/color"

	"fyne.io/fyne/v2"
	fynetheme "fyne.io/fyne/v2/theme"
)

const defaultTextSize = 16

// textStyle overrides the message color and size of the default theme.
type textStyle struct {
	base       fyne.Theme
	foreground color.Color
	size       float32
}

func newTextStyle() *textStyle {
	return &textStyle{
		base:       fynetheme.DefaultTheme(),
		foreground: color.Black,
		size:       defaultTextSize,
	}
}

func (style *textStyle) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if name == fynetheme.ColorNameForeground {
		return style.foreground
	}
	return style.base.Color(name, variant)
}

func (style *textStyle) Font(textStyle fyne.TextStyle) fyne.Resource {
	return style.base.Font(textStyle)
}

func (style *textStyle) Icon(name fyne.ThemeIconName) fyne.Resource {
	return style.base.Icon(name)
}

func (style *textStyle) Size(name fyne.ThemeSizeName) float32 {
	if name == fynetheme.SizeNameText {
		return style.size
	}
	return style.base.Size(name)
}
