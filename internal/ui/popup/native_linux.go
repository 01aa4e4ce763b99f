//go:build linux

package popup

import (
	"log/slog"
	"sync"

	"bloomlet/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
)

var (
	x11Once sync.Once
	x11Conn *xgbutil.XUtil
)

// x11 returns a shared X connection, or nil under Wayland or without a display.
func x11() *xgbutil.XUtil {
	x11Once.Do(func() {
		conn, err := xgbutil.NewConn()
		if err != nil {
			slog.Debug("x11 unavailable, popup placement falls back to defaults", "error", err)
			return
		}
		x11Conn = conn
	})
	return x11Conn
}

func nativeWorkArea() (model.Rect, bool) {
	conn := x11()
	if conn == nil {
		return model.Rect{}, false
	}
	areas, err := ewmh.WorkareaGet(conn)
	if err != nil || len(areas) == 0 {
		return model.Rect{}, false
	}
	area := areas[0]
	return model.Rect{
		Point: model.Point{X: area.X, Y: area.Y},
		Size:  model.Size{Width: int(area.Width), Height: int(area.Height)},
	}, true
}

// nativeScale is the number of X11 pixels per fyne unit.
func nativeScale(window fyne.Window) float32 {
	return window.Canvas().Scale()
}

func nativeMove(window fyne.Window, bounds model.Rect) bool {
	scale := nativeScale(window)
	return withX11Window(window, func(conn *xgbutil.XUtil, win xproto.Window) error {
		return ewmh.MoveresizeWindow(conn, win,
			int(float32(bounds.X)*scale),
			int(float32(bounds.Y)*scale),
			int(float32(bounds.Width)*scale),
			int(float32(bounds.Height)*scale),
		)
	})
}

func nativeOpacity(window fyne.Window, opacity float64) bool {
	return withX11Window(window, func(conn *xgbutil.XUtil, win xproto.Window) error {
		return ewmh.WmWindowOpacitySet(conn, win, opacity)
	})
}

func withX11Window(window fyne.Window, apply func(*xgbutil.XUtil, xproto.Window) error) bool {
	conn := x11()
	if conn == nil {
		return false
	}
	nativeWindow, ok := window.(driver.NativeWindow)
	if !ok {
		return false
	}
	applied := false
	nativeWindow.RunNative(func(context any) {
		var handle uintptr
		switch value := context.(type) {
		case driver.X11WindowContext:
			handle = value.WindowHandle
		case *driver.X11WindowContext:
			handle = value.WindowHandle
		}
		if handle == 0 {
			return
		}
		if err := apply(conn, xproto.Window(handle)); err != nil {
			slog.Debug("x11 window request failed", "error", err)
			return
		}
		applied = true
	})
	return applied
}
