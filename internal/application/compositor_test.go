package application

import (
	"image"
	"testing"

	"github.com/bnema/qa-inspector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSurface struct {
	width, height int
	ops           []string
	polylines     [][]domain.PixelPoint
	styles        []domain.StrokeStyle
}

func (s *recordingSurface) Size() (int, int) {
	return s.width, s.height
}

func (s *recordingSurface) Resize(width, height int) {
	s.width, s.height = width, height
	s.ops = append(s.ops, "resize")
}

func (s *recordingSurface) Clear() {
	s.ops = append(s.ops, "clear")
}

func (s *recordingSurface) DrawBitmap(image.Image, image.Rectangle) {
	s.ops = append(s.ops, "bitmap")
}

func (s *recordingSurface) DrawPolyline(points []domain.PixelPoint, style domain.StrokeStyle) {
	s.ops = append(s.ops, "polyline")
	s.polylines = append(s.polylines, points)
	s.styles = append(s.styles, style)
}

func (s *recordingSurface) reset() {
	s.ops = nil
	s.polylines = nil
	s.styles = nil
}

func TestCompositorPaintsBaseThenStrokesInOrder(t *testing.T) {
	t.Parallel()

	base, overlay := &recordingSurface{}, &recordingSurface{}
	c := NewCompositor(base, overlay)

	inProgress := domain.Stroke{ID: "live", Kind: domain.StrokeKindPencil, Points: []domain.Point{{X: 1, Y: 1}}}
	painted := c.Repaint(Frame{
		Bitmap: image.NewRGBA(image.Rect(0, 0, 200, 100)),
		Strokes: []domain.Stroke{
			{ID: "a", Kind: domain.StrokeKindHighlight, Points: []domain.Point{{X: 0.5, Y: 0.5}}},
			{ID: "b", Kind: domain.StrokeKindPencil, Points: []domain.Point{{X: 0, Y: 0}, {X: 0.25, Y: 1}}},
		},
		InProgress: &inProgress,
		Zoom:       2,
	})
	require.True(t, painted)

	assert.Equal(t, []string{"resize", "clear", "bitmap"}, base.ops)
	assert.Equal(t, []string{"resize", "clear", "polyline", "polyline", "polyline"}, overlay.ops)

	require.Len(t, overlay.polylines, 3)
	assert.Equal(t, []domain.PixelPoint{{X: 100, Y: 50}}, overlay.polylines[0])
	assert.Equal(t, []domain.PixelPoint{{X: 0, Y: 0}, {X: 50, Y: 100}}, overlay.polylines[1])
	assert.Equal(t, []domain.PixelPoint{{X: 200, Y: 100}}, overlay.polylines[2])

	assert.Equal(t, 30.0, overlay.styles[0].Width)
	assert.Equal(t, 0.3, overlay.styles[0].Opacity)
	assert.Equal(t, 4.0, overlay.styles[1].Width)
}

func TestCompositorRepaintsOnlyWhenDirty(t *testing.T) {
	t.Parallel()

	base, overlay := &recordingSurface{}, &recordingSurface{}
	c := NewCompositor(base, overlay)
	frame := Frame{Bitmap: image.NewRGBA(image.Rect(0, 0, 10, 10)), Zoom: 1}

	require.True(t, c.Repaint(frame))
	base.reset()
	overlay.reset()

	assert.False(t, c.Repaint(frame))
	assert.Empty(t, base.ops)
	assert.Empty(t, overlay.ops)
}

func TestCompositorOverlayChangeLeavesBaseAlone(t *testing.T) {
	t.Parallel()

	base, overlay := &recordingSurface{}, &recordingSurface{}
	c := NewCompositor(base, overlay)
	frame := Frame{Bitmap: image.NewRGBA(image.Rect(0, 0, 10, 10)), Zoom: 1}
	require.True(t, c.Repaint(frame))
	base.reset()
	overlay.reset()

	c.MarkOverlayDirty()
	c.MarkOverlayDirty()
	frame.Strokes = []domain.Stroke{{ID: "a", Kind: domain.StrokeKindPencil, Points: []domain.Point{{X: 0.1, Y: 0.1}}}}
	require.True(t, c.Repaint(frame))

	assert.Empty(t, base.ops)
	assert.Equal(t, []string{"clear", "polyline"}, overlay.ops)
}

func TestCompositorBaseChangeRepaintsBoth(t *testing.T) {
	t.Parallel()

	base, overlay := &recordingSurface{}, &recordingSurface{}
	c := NewCompositor(base, overlay)
	require.True(t, c.Repaint(Frame{Bitmap: image.NewRGBA(image.Rect(0, 0, 10, 10))}))
	base.reset()
	overlay.reset()

	c.MarkBaseDirty()
	require.True(t, c.Repaint(Frame{Bitmap: image.NewRGBA(image.Rect(0, 0, 20, 10))}))

	assert.Equal(t, []string{"resize", "clear", "bitmap"}, base.ops)
	assert.Equal(t, []string{"resize", "clear"}, overlay.ops)
	w, h := overlay.Size()
	assert.Equal(t, 20, w)
	assert.Equal(t, 10, h)
}
