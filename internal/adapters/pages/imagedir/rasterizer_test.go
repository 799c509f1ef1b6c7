package imagedir

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/qa-inspector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, width, height int, fill color.Color) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fill)
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestRasterizerPagesInNameOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "002.png"), 10, 20, color.Black)
	writePNG(t, filepath.Join(dir, "001.png"), 40, 30, color.White)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	r := NewRasterizer()
	count, err := r.PageCount(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	first, err := r.RenderPage(context.Background(), dir, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 30), first.Bounds())

	second, err := r.RenderPage(context.Background(), dir, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, second.Bounds().Dx())
}

func TestRasterizerScalesPage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "page.png"), 40, 30, color.White)

	img, err := NewRasterizer().RenderPage(context.Background(), dir, 1, 1.5)
	require.NoError(t, err)
	assert.Equal(t, 60, img.Bounds().Dx())
	assert.Equal(t, 45, img.Bounds().Dy())
}

func TestRasterizerSingleFileHandle(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scan.png")
	writePNG(t, path, 8, 8, color.White)

	count, err := NewRasterizer().PageCount(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRasterizerErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0o600))

	r := NewRasterizer()

	_, err := r.RenderPage(context.Background(), dir, 1, 1)
	require.ErrorIs(t, err, domain.ErrDecodeFailure)

	_, err = r.RenderPage(context.Background(), dir, 2, 1)
	require.ErrorIs(t, err, domain.ErrPageOutOfRange)

	_, err = r.PageCount(context.Background(), filepath.Join(dir, "missing"))
	require.ErrorIs(t, err, domain.ErrDocumentNotFound)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.RenderPage(ctx, dir, 1, 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDownloadableLocation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	location, err := NewRasterizer().DownloadableLocation(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "file", location.Scheme)
	assert.Equal(t, filepath.ToSlash(dir), location.Path)

	_, err = NewRasterizer().DownloadableLocation(context.Background(), filepath.Join(dir, "gone"))
	require.ErrorIs(t, err, domain.ErrDocumentNotFound)
}
