package application

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/bnema/qa-inspector/internal/domain"
	"github.com/bnema/qa-inspector/internal/ports"
)

// ExportComposer flattens a page bitmap and its committed strokes into one
// image with the bitmap's dimensions.
type ExportComposer struct {
	newSurface func(width, height int) ports.SnapshotSurface
}

func NewExportComposer(newSurface func(width, height int) ports.SnapshotSurface) *ExportComposer {
	return &ExportComposer{newSurface: newSurface}
}

func (e *ExportComposer) Compose(bitmap image.Image, strokes []domain.Stroke, zoom float64) (*image.RGBA, error) {
	if bitmap == nil {
		return nil, fmt.Errorf("%w: no page bitmap to export", domain.ErrDecodeFailure)
	}

	bounds := bitmap.Bounds()
	surface := e.newSurface(bounds.Dx(), bounds.Dy())
	surface.Clear()
	surface.DrawBitmap(bitmap, image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	paintStrokes(surface, strokes, zoom)

	return surface.Snapshot(), nil
}

func (e *ExportComposer) Encode(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
