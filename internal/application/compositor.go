package application

import (
	"image"

	"github.com/bnema/qa-inspector/internal/domain"
	"github.com/bnema/qa-inspector/internal/ports"
)

// Frame is everything the compositor needs to paint one page.
type Frame struct {
	Bitmap     image.Image
	Strokes    []domain.Stroke
	InProgress *domain.Stroke
	Zoom       float64
}

// Compositor paints a page onto two stacked surfaces: the base holds the page
// bitmap, the overlay holds annotations. Repaints are driven by dirty flags so
// a batch of input events costs at most one paint per surface.
type Compositor struct {
	base    ports.RenderSurface
	overlay ports.RenderSurface

	baseDirty    bool
	overlayDirty bool
}

func NewCompositor(base, overlay ports.RenderSurface) *Compositor {
	return &Compositor{
		base:         base,
		overlay:      overlay,
		baseDirty:    true,
		overlayDirty: true,
	}
}

// MarkBaseDirty also invalidates the overlay because its size follows the
// bitmap.
func (c *Compositor) MarkBaseDirty() {
	c.baseDirty = true
	c.overlayDirty = true
}

func (c *Compositor) MarkOverlayDirty() {
	c.overlayDirty = true
}

func (c *Compositor) Dirty() bool {
	return c.baseDirty || c.overlayDirty
}

// Repaint redraws the dirty surfaces and reports whether anything was
// painted.
func (c *Compositor) Repaint(frame Frame) bool {
	if !c.Dirty() {
		return false
	}

	var bounds image.Rectangle
	if frame.Bitmap != nil {
		bounds = frame.Bitmap.Bounds()
	}
	width, height := bounds.Dx(), bounds.Dy()

	if c.baseDirty {
		resizeIfNeeded(c.base, width, height)
		c.base.Clear()
		if frame.Bitmap != nil {
			c.base.DrawBitmap(frame.Bitmap, image.Rect(0, 0, width, height))
		}
	}

	if c.overlayDirty {
		resizeIfNeeded(c.overlay, width, height)
		c.overlay.Clear()
		paintStrokes(c.overlay, frame.Strokes, frame.Zoom)
		if frame.InProgress != nil {
			paintStroke(c.overlay, *frame.InProgress, frame.Zoom)
		}
	}

	c.baseDirty = false
	c.overlayDirty = false
	return true
}

func resizeIfNeeded(surface ports.RenderSurface, width, height int) {
	if w, h := surface.Size(); w != width || h != height {
		surface.Resize(width, height)
	}
}

func paintStrokes(surface ports.RenderSurface, strokes []domain.Stroke, zoom float64) {
	for _, stroke := range strokes {
		paintStroke(surface, stroke, zoom)
	}
}

// paintStroke denormalizes against the surface's current size, never a
// cached one.
func paintStroke(surface ports.RenderSurface, stroke domain.Stroke, zoom float64) {
	if len(stroke.Points) == 0 {
		return
	}

	width, height := surface.Size()
	points := make([]domain.PixelPoint, len(stroke.Points))
	for i, p := range stroke.Points {
		points[i] = domain.ToPixels(p, width, height)
	}

	surface.DrawPolyline(points, domain.StyleFor(stroke.Kind, stroke.Color, zoom))
}
