package render

import "image/color"

// Point is a position in logical (unscaled) pixels.
type Point struct {
	X, Y float32
}

// Surface is a drawing target. Coordinates are logical pixels; the surface
// applies the device scale given to the last Reset.
type Surface interface {
	// Reset sizes the surface to width×height logical pixels at scale,
	// clears it and replaces (never composes) the current transform.
	Reset(width, height int, scale float64)
	FillRect(x, y, w, h float32, c color.Color)
	FillCircle(cx, cy, r float32, c color.Color)
	StrokeCircle(cx, cy, r, width float32, c color.Color)
	StrokePolyline(pts []Point, width float32, c color.Color)
}
