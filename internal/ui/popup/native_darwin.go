//go:build darwin

package popup

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa
#import <Cocoa/Cocoa.h>

// Cocoa measures screens from the bottom-left corner of the primary screen;
// these helpers speak top-left coordinates in points.

static int popupWorkArea(double *x, double *y, double *width, double *height) {
	NSArray<NSScreen *> *screens = [NSScreen screens];
	if ([screens count] == 0) {
		return 0;
	}
	NSScreen *primary = [screens firstObject];
	NSRect full = [primary frame];
	NSRect visible = [primary visibleFrame];
	*x = visible.origin.x;
	*y = NSMaxY(full) - NSMaxY(visible);
	*width = visible.size.width;
	*height = visible.size.height;
	return 1;
}

static void popupMoveWindow(uintptr_t handle, double x, double y) {
	NSWindow *window = (NSWindow *)(void *)handle;
	NSArray<NSScreen *> *screens = [NSScreen screens];
	if ([screens count] == 0) {
		return;
	}
	CGFloat top = NSMaxY([[screens firstObject] frame]);
	[window setFrameTopLeftPoint:NSMakePoint(x, top - y)];
}

static void popupSetAlpha(uintptr_t handle, double alpha) {
	NSWindow *window = (NSWindow *)(void *)handle;
	[window setAlphaValue:alpha];
}
*/
import "C"

import (
	"bloomlet/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"
)

func nativeWorkArea() (model.Rect, bool) {
	var x, y, width, height C.double
	if C.popupWorkArea(&x, &y, &width, &height) == 0 {
		return model.Rect{}, false
	}
	return model.Rect{
		Point: model.Point{X: int(x), Y: int(y)},
		Size:  model.Size{Width: int(width), Height: int(height)},
	}, true
}

// nativeScale is 1: Cocoa points are fyne units.
func nativeScale(fyne.Window) float32 {
	return 1
}

func nativeMove(window fyne.Window, bounds model.Rect) bool {
	return withNSWindow(window, func(handle uintptr) {
		C.popupMoveWindow(C.uintptr_t(handle), C.double(bounds.X), C.double(bounds.Y))
	})
}

func nativeOpacity(window fyne.Window, opacity float64) bool {
	return withNSWindow(window, func(handle uintptr) {
		C.popupSetAlpha(C.uintptr_t(handle), C.double(opacity))
	})
}

func withNSWindow(window fyne.Window, apply func(handle uintptr)) bool {
	nativeWindow, ok := window.(driver.NativeWindow)
	if !ok {
		return false
	}
	applied := false
	nativeWindow.RunNative(func(context any) {
		var handle uintptr
		switch value := context.(type) {
		case driver.MacWindowContext:
			handle = value.NSWindow
		case *driver.MacWindowContext:
			handle = value.NSWindow
		}
		if handle == 0 {
			return
		}
		apply(handle)
		applied = true
	})
	return applied
}
