package model

import "math"

const (
	MinPopupWidth  = 240
	MinPopupHeight = 80
	MaxPopupWidth  = 600
	MaxPopupHeight = 400

	DefaultPopupWidth  = 320
	DefaultPopupHeight = 120
)

// Point is a screen coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a popup extent.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect combines an origin with a size.
type Rect struct {
	Point
	Size
}

// DefaultPopupSize returns the baseline popup extent.
func DefaultPopupSize() Size {
	return Size{Width: DefaultPopupWidth, Height: DefaultPopupHeight}
}

// Clamp bounds the size to the allowed popup range.
func (size Size) Clamp() Size {
	return Size{
		Width:  clampInt(size.Width, MinPopupWidth, MaxPopupWidth),
		Height: clampInt(size.Height, MinPopupHeight, MaxPopupHeight),
	}
}

// Round converts fractional coordinates to the nearest integer point.
func Round(x, y float64) Point {
	return Point{X: int(math.Round(x)), Y: int(math.Round(y))}
}

func clampInt(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
