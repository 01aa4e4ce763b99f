//go:build !windows && !linux && !darwin

package popup

import (
	"bloomlet/internal/core/model"

	"fyne.io/fyne/v2"
)

func nativeWorkArea() (model.Rect, bool) {
	return model.Rect{}, false
}

func nativeScale(fyne.Window) float32 {
	return 1
}

func nativeMove(fyne.Window, model.Rect) bool {
	return false
}

func nativeOpacity(fyne.Window, float64) bool {
	return false
}
