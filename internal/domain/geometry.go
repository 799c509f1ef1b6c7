package domain

import "math"

// Point is a resolution-independent coordinate in the unit square.
type Point struct {
	X float64
	Y float64
}

// PixelPoint is a coordinate in surface or device pixels.
type PixelPoint struct {
	X float64
	Y float64
}

func Normalize(value, extent float64) float64 {
	if extent <= 0 {
		return 0
	}

	return value / extent
}

func Denormalize(value, extent float64) float64 {
	return value * extent
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ViewportTransform maps pointer positions on the visible viewport onto the
// zoomed page canvas and back. Width and Height are the canvas size in pixels
// at the current zoom; Scroll is the canvas offset under the viewport origin.
type ViewportTransform struct {
	Zoom           float64
	Scroll         PixelPoint
	Width          int
	Height         int
	ViewportWidth  int
	ViewportHeight int
}

func (t ViewportTransform) ToNormalized(device PixelPoint) Point {
	return Point{
		X: clampUnit(Normalize(device.X+t.Scroll.X, float64(t.Width))),
		Y: clampUnit(Normalize(device.Y+t.Scroll.Y, float64(t.Height))),
	}
}

func ToPixels(p Point, width, height int) PixelPoint {
	return PixelPoint{
		X: Denormalize(p.X, float64(width)),
		Y: Denormalize(p.Y, float64(height)),
	}
}

// EraserRadius converts a pixel threshold into normalized units using the
// larger canvas extent.
func (t ViewportTransform) EraserRadius(thresholdPx float64) float64 {
	return Normalize(thresholdPx, float64(max(t.Width, t.Height)))
}

func (t ViewportTransform) ClampScroll(scroll PixelPoint) PixelPoint {
	maxX := float64(max(0, t.Width-t.ViewportWidth))
	maxY := float64(max(0, t.Height-t.ViewportHeight))
	if t.ViewportWidth <= 0 {
		maxX = float64(max(0, t.Width))
	}
	if t.ViewportHeight <= 0 {
		maxY = float64(max(0, t.Height))
	}

	return PixelPoint{
		X: math.Min(math.Max(scroll.X, 0), maxX),
		Y: math.Min(math.Max(scroll.Y, 0), maxY),
	}
}
