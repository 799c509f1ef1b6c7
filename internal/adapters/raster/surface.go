package raster

import (
	"image"
	"image/draw"
	"math"

	"github.com/bnema/qa-inspector/internal/domain"
	"github.com/bnema/qa-inspector/internal/ports"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// capSegments is the polygon resolution of round caps and joins.
const capSegments = 16

// Surface is an in-memory RGBA paint target. Strokes are filled as one
// coverage mask per polyline, so a translucent stroke never darkens where
// it crosses itself.
type Surface struct {
	img    *image.RGBA
	raster *vector.Rasterizer
}

var (
	_ ports.RenderSurface   = (*Surface)(nil)
	_ ports.SnapshotSurface = (*Surface)(nil)
)

func NewSurface(width, height int) *Surface {
	width, height = max(0, width), max(0, height)
	return &Surface{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		raster: vector.NewRasterizer(width, height),
	}
}

// NewSnapshotSurface adapts NewSurface to the export composer's factory.
func NewSnapshotSurface(width, height int) ports.SnapshotSurface {
	return NewSurface(width, height)
}

func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) Resize(width, height int) {
	width, height = max(0, width), max(0, height)
	if w, h := s.Size(); w == width && h == height {
		return
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.raster.Reset(width, height)
}

func (s *Surface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// DrawBitmap paints img into r, scaling when the sizes differ.
func (s *Surface) DrawBitmap(img image.Image, r image.Rectangle) {
	if img == nil || r.Empty() {
		return
	}

	src := img.Bounds()
	if src.Dx() == r.Dx() && src.Dy() == r.Dy() {
		draw.Draw(s.img, r, img, src.Min, draw.Over)
		return
	}
	xdraw.CatmullRom.Scale(s.img, r, img, src, xdraw.Over, nil)
}

func (s *Surface) DrawPolyline(points []domain.PixelPoint, style domain.StrokeStyle) {
	if len(points) == 0 {
		return
	}
	w, h := s.Size()
	if w == 0 || h == 0 {
		return
	}

	half := style.Width / 2
	if half < 0.5 {
		half = 0.5
	}

	s.raster.Reset(w, h)
	for i := 1; i < len(points); i++ {
		s.addSegment(points[i-1], points[i], half)
	}
	for _, p := range points {
		s.addDisc(p, half)
	}

	s.raster.Draw(s.img, s.img.Bounds(), image.NewUniform(style.RGBA()), image.Point{})
}

// Snapshot returns a copy of the current pixels.
func (s *Surface) Snapshot() *image.RGBA {
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// Image exposes the live backing image.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

func (s *Surface) addSegment(a, b domain.PixelPoint, half float64) {
	vx, vy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(vx, vy)
	if length == 0 {
		return
	}
	nx, ny := -vy/length*half, vx/length*half

	s.addPolygon([]domain.PixelPoint{
		{X: a.X + nx, Y: a.Y + ny},
		{X: b.X + nx, Y: b.Y + ny},
		{X: b.X - nx, Y: b.Y - ny},
		{X: a.X - nx, Y: a.Y - ny},
	})
}

func (s *Surface) addDisc(center domain.PixelPoint, radius float64) {
	poly := make([]domain.PixelPoint, capSegments)
	for i := range poly {
		angle := 2 * math.Pi * float64(i) / capSegments
		poly[i] = domain.PixelPoint{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
	}
	s.addPolygon(poly)
}

// addPolygon emits every shape with the same winding so overlapping pieces
// of one stroke add up instead of cancelling out.
func (s *Surface) addPolygon(poly []domain.PixelPoint) {
	if signedArea(poly) < 0 {
		for i, j := 0, len(poly)-1; i < j; i, j = i+1, j-1 {
			poly[i], poly[j] = poly[j], poly[i]
		}
	}

	s.raster.MoveTo(float32(poly[0].X), float32(poly[0].Y))
	for _, p := range poly[1:] {
		s.raster.LineTo(float32(p.X), float32(p.Y))
	}
	s.raster.ClosePath()
}

func signedArea(poly []domain.PixelPoint) float64 {
	area := 0.0
	for i := range poly {
		j := (i + 1) % len(poly)
		area += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return area / 2
}
