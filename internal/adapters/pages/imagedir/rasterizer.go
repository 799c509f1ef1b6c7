package imagedir

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bnema/qa-inspector/internal/domain"
	"github.com/bnema/qa-inspector/internal/ports"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var pageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".tif":  {},
	".tiff": {},
	".bmp":  {},
	".webp": {},
}

// Rasterizer serves documents stored as a directory of page images. Pages
// are the supported image files of the directory in name order; a handle
// naming a single image file is a one-page document.
type Rasterizer struct{}

var (
	_ ports.PageRasterizer   = (*Rasterizer)(nil)
	_ ports.ResourceResolver = (*Rasterizer)(nil)
)

func NewRasterizer() *Rasterizer {
	return &Rasterizer{}
}

func (r *Rasterizer) PageCount(ctx context.Context, handle string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	pages, err := listPages(handle)
	if err != nil {
		return 0, err
	}
	return len(pages), nil
}

// RenderPage decodes page (1-based) and resamples it by scale.
func (r *Rasterizer) RenderPage(ctx context.Context, handle string, page int, scale float64) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pages, err := listPages(handle)
	if err != nil {
		return nil, err
	}
	if page < 1 || page > len(pages) {
		return nil, fmt.Errorf("%w: page %d of %d", domain.ErrPageOutOfRange, page, len(pages))
	}

	img, err := decodeFile(pages[page-1])
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return resample(img, scale), nil
}

// DownloadableLocation returns a file URL for the document.
func (r *Rasterizer) DownloadableLocation(ctx context.Context, handle string) (*url.URL, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absolute, err := filepath.Abs(handle)
	if err != nil {
		return nil, fmt.Errorf("resolve document path: %w", err)
	}
	if _, err := os.Stat(absolute); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, handle)
		}
		return nil, fmt.Errorf("stat document: %w", err)
	}

	return &url.URL{Scheme: "file", Path: filepath.ToSlash(absolute)}, nil
}

func listPages(handle string) ([]string, error) {
	info, err := os.Stat(handle)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, handle)
		}
		return nil, fmt.Errorf("stat document: %w", err)
	}

	if !info.IsDir() {
		if !isPageFile(handle) {
			return nil, fmt.Errorf("%w: unsupported page file %s", domain.ErrDecodeFailure, filepath.Base(handle))
		}
		return []string{handle}, nil
	}

	entries, err := os.ReadDir(handle)
	if err != nil {
		return nil, fmt.Errorf("read document directory: %w", err)
	}

	pages := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isPageFile(entry.Name()) {
			continue
		}
		pages = append(pages, filepath.Join(handle, entry.Name()))
	}
	sort.Strings(pages)

	return pages, nil
}

func isPageFile(name string) bool {
	_, ok := pageExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDecodeFailure, filepath.Base(path), err)
	}
	return img, nil
}

func resample(img image.Image, scale float64) image.Image {
	if scale <= 0 || scale == 1 {
		return img
	}

	src := img.Bounds()
	width := max(1, int(math.Round(float64(src.Dx())*scale)))
	height := max(1, int(math.Round(float64(src.Dy())*scale)))

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, src, xdraw.Src, nil)
	return dst
}
