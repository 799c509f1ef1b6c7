package application

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"strconv"
	"time"

	"github.com/bnema/qa-inspector/internal/domain"
	"github.com/bnema/qa-inspector/internal/metrics"
	"github.com/bnema/qa-inspector/internal/ports"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	MinZoom             = 0.25
	MaxZoom             = 4.0
	ZoomStep            = 0.25
	DefaultPageCacheTTL = 10 * time.Minute
)

// PageNavigator tracks the current page and zoom of one open document and
// fetches page bitmaps through a TTL cache. Pages are 1-based.
type PageNavigator struct {
	rasterizer ports.PageRasterizer
	cache      *cache.Cache
	metrics    *metrics.Metrics
	logger     *zap.Logger

	document domain.Document
	total    int
	page     int
	zoom     float64
	blocked  bool
}

func NewPageNavigator(rasterizer ports.PageRasterizer, ttl time.Duration, m *metrics.Metrics, logger *zap.Logger) *PageNavigator {
	if ttl <= 0 {
		ttl = DefaultPageCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &PageNavigator{
		rasterizer: rasterizer,
		cache:      cache.New(ttl, 2*ttl),
		metrics:    m,
		logger:     logger,
		zoom:       1,
	}
}

// Open resets navigation to page 1 at zoom 1. A document without a known
// page count is asked for one.
func (n *PageNavigator) Open(ctx context.Context, document domain.Document) error {
	total := document.PageCount
	if total <= 0 {
		counted, err := n.rasterizer.PageCount(ctx, document.Handle)
		if err != nil {
			return fmt.Errorf("count pages of %s: %w", document.ID, err)
		}
		total = counted
	}

	n.document = document
	n.total = total
	n.page = min(1, total)
	n.zoom = 1
	n.blocked = false
	return nil
}

func (n *PageNavigator) Close() {
	n.document = domain.Document{}
	n.total = 0
	n.page = 0
	n.zoom = 1
	n.blocked = false
}

func (n *PageNavigator) Page() int {
	return n.page
}

func (n *PageNavigator) Total() int {
	return n.total
}

func (n *PageNavigator) Zoom() float64 {
	return n.zoom
}

// Blocked reports whether the last render of the current page failed.
func (n *PageNavigator) Blocked() bool {
	return n.blocked
}

func (n *PageNavigator) GoTo(page int) error {
	if page < 1 || page > n.total {
		return fmt.Errorf("%w: page %d of %d", domain.ErrPageOutOfRange, page, n.total)
	}
	n.page = page
	return nil
}

func (n *PageNavigator) Next() bool {
	return n.GoTo(n.page+1) == nil
}

func (n *PageNavigator) Prev() bool {
	return n.GoTo(n.page-1) == nil
}

// SetZoom clamps zoom into [MinZoom, MaxZoom] and reports whether it changed.
func (n *PageNavigator) SetZoom(zoom float64) bool {
	if math.IsNaN(zoom) {
		return false
	}
	zoom = math.Max(MinZoom, math.Min(MaxZoom, zoom))
	if zoom == n.zoom {
		return false
	}
	n.zoom = zoom
	return true
}

func (n *PageNavigator) ZoomIn() bool {
	return n.SetZoom(n.zoom + ZoomStep)
}

func (n *PageNavigator) ZoomOut() bool {
	return n.SetZoom(n.zoom - ZoomStep)
}

// Bitmap returns the current page rendered at the current zoom. Render
// failures other than cancellation block the page until a later render
// succeeds.
func (n *PageNavigator) Bitmap(ctx context.Context) (image.Image, error) {
	if n.page < 1 {
		return nil, fmt.Errorf("%w: no page to render", domain.ErrPageOutOfRange)
	}

	key := n.cacheKey()
	if cached, ok := n.cache.Get(key); ok {
		n.blocked = false
		return cached.(image.Image), nil
	}

	start := time.Now()
	img, err := n.rasterizer.RenderPage(ctx, n.document.Handle, n.page, n.zoom)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		n.blocked = true
		n.logger.Warn("page render failed",
			zap.String("document_id", string(n.document.ID)),
			zap.Int("page", n.page),
			zap.Error(err),
		)
		if !errors.Is(err, domain.ErrDecodeFailure) {
			err = fmt.Errorf("%w: %w", domain.ErrDecodeFailure, err)
		}
		return nil, fmt.Errorf("render page %d: %w", n.page, err)
	}
	n.metrics.ObservePageRenderLatency(time.Since(start))

	n.cache.SetDefault(key, img)
	n.blocked = false
	return img, nil
}

func (n *PageNavigator) cacheKey() string {
	return fmt.Sprintf("%s/%d/%s", n.document.ID, n.page, strconv.FormatFloat(n.zoom, 'g', -1, 64))
}
