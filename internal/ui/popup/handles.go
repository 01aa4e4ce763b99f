package popup

import (
	"image/color"

	"bloomlet/internal/core/presenter"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const (
	handleThickness = float32(8)
	textInset       = float32(16)
)

var handleEdges = []presenter.Edge{
	presenter.EdgeTop,
	presenter.EdgeBottom,
	presenter.EdgeLeft,
	presenter.EdgeRight,
	presenter.EdgeTop | presenter.EdgeLeft,
	presenter.EdgeTop | presenter.EdgeRight,
	presenter.EdgeBottom | presenter.EdgeLeft,
	presenter.EdgeBottom | presenter.EdgeRight,
}

// dragArea moves the popup when dragged anywhere off the handles.
type dragArea struct {
	widget.BaseWidget
	owner *Window
}

func newDragArea(owner *Window) *dragArea {
	area := &dragArea{owner: owner}
	area.ExtendBaseWidget(area)
	return area
}

func (area *dragArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}

func (area *dragArea) Dragged(event *fyne.DragEvent) {
	if !area.owner.allowsGesture(0) {
		return
	}
	dx, dy := area.owner.gestureDelta(event)
	area.owner.gestures.DragBy(dx, dy)
}

func (area *dragArea) DragEnd() {
	area.owner.gestureEnded()
	if area.owner.allowsGesture(0) {
		area.owner.gestures.EndDrag()
	}
}

// resizeHandle resizes the popup from one edge or corner.
type resizeHandle struct {
	widget.BaseWidget
	owner *Window
	edges presenter.Edge
}

func newResizeHandle(owner *Window, edges presenter.Edge) *resizeHandle {
	handle := &resizeHandle{owner: owner, edges: edges}
	handle.ExtendBaseWidget(handle)
	return handle
}

func (handle *resizeHandle) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}

func (handle *resizeHandle) Cursor() desktop.Cursor {
	return cursorFor(handle.edges)
}

func (handle *resizeHandle) Dragged(event *fyne.DragEvent) {
	if !handle.owner.allowsGesture(handle.edges) {
		return
	}
	dx, dy := handle.owner.gestureDelta(event)
	handle.owner.gestures.ResizeBy(handle.edges, dx, dy)
}

func (handle *resizeHandle) DragEnd() {
	handle.owner.gestureEnded()
	if handle.owner.allowsGesture(handle.edges) {
		handle.owner.gestures.EndResize()
	}
}

func cursorFor(edges presenter.Edge) desktop.Cursor {
	horizontal := edges&(presenter.EdgeLeft|presenter.EdgeRight) != 0
	vertical := edges&(presenter.EdgeTop|presenter.EdgeBottom) != 0
	switch {
	case horizontal && vertical:
		return desktop.CrosshairCursor
	case horizontal:
		return desktop.HResizeCursor
	default:
		return desktop.VResizeCursor
	}
}

// handleFrame returns the position and size of the handle for edges.
func handleFrame(edges presenter.Edge, size fyne.Size) (fyne.Position, fyne.Size) {
	x, width := float32(handleThickness), size.Width-2*handleThickness
	y, height := float32(handleThickness), size.Height-2*handleThickness
	if edges&presenter.EdgeLeft != 0 {
		x, width = 0, handleThickness
	}
	if edges&presenter.EdgeRight != 0 {
		x, width = size.Width-handleThickness, handleThickness
	}
	if edges&presenter.EdgeTop != 0 {
		y, height = 0, handleThickness
	}
	if edges&presenter.EdgeBottom != 0 {
		y, height = size.Height-handleThickness, handleThickness
	}
	return fyne.NewPos(x, y), fyne.NewSize(max(width, 0), max(height, 0))
}

// popupLayout stacks the background, the inset text, the drag area and the
// resize handles.
type popupLayout struct{}

func (layout *popupLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for index, object := range objects {
		switch index {
		case 0, 2:
			object.Move(fyne.NewPos(0, 0))
			object.Resize(size)
		case 1:
			object.Move(fyne.NewPos(textInset, textInset))
			object.Resize(fyne.NewSize(max(size.Width-2*textInset, 0), max(size.Height-2*textInset, 0)))
		default:
			handle, ok := object.(*resizeHandle)
			if !ok {
				continue
			}
			position, frame := handleFrame(handle.edges, size)
			object.Move(position)
			object.Resize(frame)
		}
	}
}

func (layout *popupLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(60, 40)
}
