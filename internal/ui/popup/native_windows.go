//go:build windows

package popup

import (
	"syscall"
	"unsafe"

	"bloomlet/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"
)

const (
	gwlExStyle  int32 = -20
	wsExLayered       = 0x00080000
	lwaAlpha          = 0x2

	spiGetWorkArea = 0x0030

	hwndTopmost   = ^uintptr(0)
	swpNoActivate = 0x0010
	swpShowWindow = 0x0040
)

var (
	user32DLL                      = syscall.NewLazyDLL("user32.dll")
	procGetWindowLongPtrW          = user32DLL.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtrW          = user32DLL.NewProc("SetWindowLongPtrW")
	procSetLayeredWindowAttributes = user32DLL.NewProc("SetLayeredWindowAttributes")
	procSetWindowPos               = user32DLL.NewProc("SetWindowPos")
	procSystemParametersInfoW      = user32DLL.NewProc("SystemParametersInfoW")
)

type winRect struct {
	Left, Top, Right, Bottom int32
}

func nativeWorkArea() (model.Rect, bool) {
	var area winRect
	ok, _, _ := procSystemParametersInfoW.Call(spiGetWorkArea, 0, uintptr(unsafe.Pointer(&area)), 0)
	if ok == 0 {
		return model.Rect{}, false
	}
	return model.Rect{
		Point: model.Point{X: int(area.Left), Y: int(area.Top)},
		Size:  model.Size{Width: int(area.Right - area.Left), Height: int(area.Bottom - area.Top)},
	}, true
}

// nativeScale is the number of physical pixels per fyne unit.
func nativeScale(window fyne.Window) float32 {
	return window.Canvas().Scale()
}

func nativeMove(window fyne.Window, bounds model.Rect) bool {
	scale := nativeScale(window)
	return withHWND(window, func(hwnd uintptr) {
		procSetWindowPos.Call(
			hwnd,
			hwndTopmost,
			scaled(bounds.X, scale),
			scaled(bounds.Y, scale),
			scaled(bounds.Width, scale),
			scaled(bounds.Height, scale),
			swpNoActivate|swpShowWindow,
		)
	})
}

func nativeOpacity(window fyne.Window, opacity float64) bool {
	alpha := uintptr(opacity*255 + 0.5)
	return withHWND(window, func(hwnd uintptr) {
		style, _, _ := procGetWindowLongPtrW.Call(hwnd, int32ToUintptr(gwlExStyle))
		if style&wsExLayered == 0 {
			procSetWindowLongPtrW.Call(hwnd, int32ToUintptr(gwlExStyle), style|wsExLayered)
		}
		procSetLayeredWindowAttributes.Call(hwnd, 0, alpha, uintptr(lwaAlpha))
	})
}

func withHWND(window fyne.Window, apply func(hwnd uintptr)) bool {
	nativeWindow, ok := window.(driver.NativeWindow)
	if !ok {
		return false
	}
	applied := false
	nativeWindow.RunNative(func(context any) {
		var hwnd uintptr
		switch value := context.(type) {
		case driver.WindowsWindowContext:
			hwnd = value.HWND
		case *driver.WindowsWindowContext:
			hwnd = value.HWND
		}
		if hwnd == 0 {
			return
		}
		apply(hwnd)
		applied = true
	})
	return applied
}

func scaled(value int, scale float32) uintptr {
	return uintptr(int32(float32(value) * scale))
}

func int32ToUintptr(value int32) uintptr {
	return uintptr(uint32(value))
}
