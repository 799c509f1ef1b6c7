package ports

import (
	"image"

	"github.com/bnema/qa-inspector/internal/domain"
)

// RenderSurface is a paint target. Implementations are not safe for
// concurrent use.
type RenderSurface interface {
	Size() (width, height int)
	Resize(width, height int)
	Clear()
	DrawBitmap(img image.Image, r image.Rectangle)
	DrawPolyline(points []domain.PixelPoint, style domain.StrokeStyle)
}

// SnapshotSurface is an off-screen surface whose pixels can be read back.
type SnapshotSurface interface {
	RenderSurface
	Snapshot() *image.RGBA
}
