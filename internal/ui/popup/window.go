// Package popup is the fyne implementation of the presenter's Surface: an
// undecorated, always-on-top window with a typed message, a drag area and
// resize handles on every edge and corner.
package popup

import (
	"image/color"
	"log/slog"
	"math"

	"bloomlet/internal/core/model"
	"bloomlet/internal/core/presenter"
	"bloomlet/internal/ui/theme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Gestures receives pointer gestures performed on the popup.
type Gestures interface {
	DragBy(dx, dy float64)
	EndDrag()
	ResizeBy(edges presenter.Edge, dx, dy float64)
	EndResize()
}

// Fallback work area when the platform cannot report one.
var defaultWorkArea = model.Rect{Size: model.Size{Width: 1920, Height: 1080}}

const cornerRadius = 12

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// Window is a popup surface. Every visual change is queued with fyne.Do,
// so methods may be called from timer goroutines.
type Window struct {
	window     fyne.Window
	background *canvas.Rectangle
	label      *widget.Label
	text       *container.ThemeOverride
	style      *textStyle
	logger     *slog.Logger
	gestures   Gestures

	// Owned by the fyne main goroutine.
	palette     theme.Palette
	opacity     float64
	nativeAlpha bool
	bounds      model.Rect
	movable     bool
	pendingX    float32
	pendingY    float32
}

var _ presenter.Surface = (*Window)(nil)

// New creates a hidden popup window.
func New(app fyne.App, logger *slog.Logger) *Window {
	if logger == nil {
		logger = slog.Default()
	}
	window := app.NewWindow("Bloomlet")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	popup := &Window{
		window:     window,
		background: canvas.NewRectangle(color.Transparent),
		label:      widget.NewLabel(""),
		style:      newTextStyle(),
		logger:     logger,
		palette:    theme.PaletteFor(model.ThemePastel),
		bounds:     model.Rect{Size: model.DefaultPopupSize()},
	}
	popup.background.CornerRadius = cornerRadius
	popup.background.StrokeWidth = 1
	popup.label.Wrapping = fyne.TextWrapWord
	popup.label.Alignment = fyne.TextAlignCenter
	popup.text = container.NewThemeOverride(popup.label, popup.style)

	objects := []fyne.CanvasObject{popup.background, popup.text, newDragArea(popup)}
	for _, edges := range handleEdges {
		objects = append(objects, newResizeHandle(popup, edges))
	}
	window.SetContent(container.New(&popupLayout{}, objects...))
	window.Resize(sizeOf(popup.bounds.Size))
	return popup
}

// SetGestures connects pointer gestures to their handler.
func (popup *Window) SetGestures(gestures Gestures) {
	popup.gestures = gestures
}

// WorkArea returns the usable area of the primary display in fyne units.
func (popup *Window) WorkArea() model.Rect {
	area, ok := nativeWorkArea()
	if !ok || area.Width <= 0 || area.Height <= 0 {
		popup.logger.Debug("work area unavailable, using default", "width", defaultWorkArea.Width, "height", defaultWorkArea.Height)
		return defaultWorkArea
	}
	return logicalArea(area, nativeScale(popup.window))
}

// Show places the window and makes it visible at zero opacity.
func (popup *Window) Show(bounds model.Rect) {
	fyne.Do(func() {
		popup.applyOpacity(0)
		popup.window.Show()
		popup.applyBounds(bounds)
		if !popup.movable {
			popup.logger.Debug("window placement unsupported, centering popup")
			popup.window.CenterOnScreen()
		}
	})
}

// SetBounds moves and resizes the visible window.
func (popup *Window) SetBounds(bounds model.Rect) {
	fyne.Do(func() {
		popup.applyBounds(bounds)
	})
}

// SetOpacity fades the window.
func (popup *Window) SetOpacity(opacity float64) {
	fyne.Do(func() {
		popup.applyOpacity(opacity)
	})
}

// ShowMessage applies the session theme and font and clears the text.
func (popup *Window) ShowMessage(_ string, name model.Theme, font model.FontFamily) {
	fyne.Do(func() {
		popup.palette = theme.PaletteFor(name)
		popup.label.TextStyle = theme.TextStyle(font)
		popup.label.SetText("")
		popup.applyOpacity(popup.opacity)
	})
}

// AppendTypedChunk replaces the displayed text with the revealed prefix.
func (popup *Window) AppendTypedChunk(text string, reset bool) {
	fyne.Do(func() {
		if reset {
			popup.label.SetText("")
		}
		popup.label.SetText(text)
	})
}

// NotifyResized rescales the message font.
func (popup *Window) NotifyResized(size model.Size) {
	fyne.Do(func() {
		popup.style.size = float32(theme.FontSize(size))
		popup.text.Refresh()
	})
}

// Hide closes the window.
func (popup *Window) Hide() {
	fyne.Do(func() {
		popup.window.Hide()
		popup.label.SetText("")
	})
}

func (popup *Window) applyBounds(bounds model.Rect) {
	previous := popup.bounds
	popup.bounds = bounds
	popup.window.Resize(sizeOf(bounds.Size))
	popup.movable = nativeMove(popup.window, bounds)
	if !popup.movable {
		return
	}
	// The pointer position of an ongoing gesture is window relative, so a
	// moved origin shows up as a reverse delta on the next drag event.
	popup.pendingX += float32(bounds.X - previous.X)
	popup.pendingY += float32(bounds.Y - previous.Y)
}

func (popup *Window) applyOpacity(opacity float64) {
	popup.opacity = opacity
	popup.nativeAlpha = nativeOpacity(popup.window, opacity)
	colorOpacity := opacity
	if popup.nativeAlpha {
		colorOpacity = 1
	}
	popup.background.FillColor = popup.palette.BackgroundColor(colorOpacity)
	popup.background.StrokeColor = popup.palette.AccentColor(colorOpacity)
	popup.style.foreground = popup.palette.TextColor(colorOpacity)
	popup.background.Refresh()
	popup.text.Refresh()
}

// gestureDelta converts a window-relative drag delta to screen units.
func (popup *Window) gestureDelta(event *fyne.DragEvent) (float64, float64) {
	dx := event.Dragged.DX + popup.pendingX
	dy := event.Dragged.DY + popup.pendingY
	popup.pendingX, popup.pendingY = 0, 0
	return float64(dx), float64(dy)
}

// allowsGesture reports whether a gesture can be honoured. Without native
// placement the origin cannot follow, so drags and top or left resizes are
// dropped rather than recorded as positions the window never took.
func (popup *Window) allowsGesture(edges presenter.Edge) bool {
	if popup.gestures == nil {
		return false
	}
	if popup.movable {
		return true
	}
	return edges != 0 && edges&(presenter.EdgeTop|presenter.EdgeLeft) == 0
}

func (popup *Window) gestureEnded() {
	popup.pendingX, popup.pendingY = 0, 0
}

// logicalArea converts a native work area to fyne units.
func logicalArea(area model.Rect, scale float32) model.Rect {
	if scale <= 0 {
		return area
	}
	toUnits := func(value int) int {
		return int(math.Round(float64(value) / float64(scale)))
	}
	return model.Rect{
		Point: model.Point{X: toUnits(area.X), Y: toUnits(area.Y)},
		Size:  model.Size{Width: toUnits(area.Width), Height: toUnits(area.Height)},
	}
}

func sizeOf(size model.Size) fyne.Size {
	return fyne.NewSize(float32(size.Width), float32(size.Height))
}
