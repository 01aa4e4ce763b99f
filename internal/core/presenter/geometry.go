package presenter

import (
	"bloomlet/internal/core/model"
)

// DefaultMargin separates a corner-placed popup from the work area edges.
const DefaultMargin = 24

// Edge is a bit set of popup edges grabbed by a resize handle.
type Edge uint8

const (
	EdgeTop Edge = 1 << iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

// Placement computes where a popup opens: at the remembered position if there
// is one, otherwise in the work area's bottom-right corner (inset by margin)
// or centered.
func Placement(prefs model.Preferences, area model.Rect, margin int) model.Rect {
	size := prefs.PopupSize.Clamp()
	if prefs.PopupPosition != nil {
		return model.Rect{Point: *prefs.PopupPosition, Size: size}
	}
	if prefs.Position == model.PlacementCenter {
		origin := model.Round(
			float64(area.X)+float64(area.Width-size.Width)/2,
			float64(area.Y)+float64(area.Height-size.Height)/2,
		)
		return model.Rect{Point: origin, Size: size}
	}
	return model.Rect{
		Point: model.Point{
			X: area.X + area.Width - size.Width - margin,
			Y: area.Y + area.Height - size.Height - margin,
		},
		Size: size,
	}
}

// Resize applies a pointer delta to the grabbed edges of start. The size is
// clamped to the popup limits; when a top or left edge is grabbed the origin
// moves by the negative of the clamped size change so the opposite edge stays put.
func Resize(start model.Rect, edges Edge, dx, dy int) model.Rect {
	requested := start.Size
	if edges&EdgeRight != 0 {
		requested.Width += dx
	}
	if edges&EdgeLeft != 0 {
		requested.Width -= dx
	}
	if edges&EdgeBottom != 0 {
		requested.Height += dy
	}
	if edges&EdgeTop != 0 {
		requested.Height -= dy
	}

	size := requested.Clamp()
	origin := start.Point
	if edges&EdgeLeft != 0 {
		origin.X -= size.Width - start.Width
	}
	if edges&EdgeTop != 0 {
		origin.Y -= size.Height - start.Height
	}
	return model.Rect{Point: origin, Size: size}
}
