package ports

import (
	"context"
	"image"
	"net/url"
)

// PageRasterizer decodes one page of a document into a bitmap at scale.
// Failures should wrap domain.ErrDecodeFailure.
type PageRasterizer interface {
	RenderPage(ctx context.Context, handle string, page int, scale float64) (image.Image, error)
	PageCount(ctx context.Context, handle string) (int, error)
}

type ResourceResolver interface {
	DownloadableLocation(ctx context.Context, handle string) (*url.URL, error)
}
