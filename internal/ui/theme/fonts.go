package theme

import (
	"bloomlet/internal/core/model"

	"fyne.io/fyne/v2"
)

// TextStyle maps a font family onto the faces fyne bundles. Fyne ships a sans
// and a monospace face only, so serif renders italic and rounded renders bold.
func TextStyle(family model.FontFamily) fyne.TextStyle {
	switch family {
	case model.FontMono:
		return fyne.TextStyle{Monospace: true}
	case model.FontSerif:
		return fyne.TextStyle{Italic: true}
	case model.FontRounded:
		return fyne.TextStyle{Bold: true}
	default:
		return fyne.TextStyle{}
	}
}
