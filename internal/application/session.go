package application

import (
	"context"
	"fmt"
	"image"
	"io"

	"github.com/bnema/qa-inspector/internal/domain"
	"github.com/bnema/qa-inspector/internal/metrics"
	"github.com/bnema/qa-inspector/internal/ports"
	"go.uber.org/zap"
)

type SessionConfig struct {
	Navigator *PageNavigator
	Verdicts  *VerdictService

	Base       ports.RenderSurface
	Overlay    ports.RenderSurface
	NewSurface func(width, height int) ports.SnapshotSurface

	EraserThresholdPx float64
	DefaultColor      domain.Color
	ViewportWidth     int
	ViewportHeight    int
	NewStrokeID       func() domain.StrokeID

	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// DocumentSession is the state of one open document: page and zoom, the
// annotation set with its history, the active tool and color, and the local
// copy of the audit verdicts. Annotations live only as long as the session.
// Not safe for concurrent use.
type DocumentSession struct {
	navigator  *PageNavigator
	verdicts   *VerdictService
	controller *DrawingController
	compositor *Compositor
	exporter   *ExportComposer
	logger     *zap.Logger

	document domain.Document
	open     bool
	bitmap   image.Image
	view     domain.ViewportTransform
}

func NewDocumentSession(cfg SessionConfig) *DocumentSession {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &DocumentSession{
		navigator: cfg.Navigator,
		verdicts:  cfg.Verdicts,
		controller: NewDrawingController(DrawingOptions{
			EraserThresholdPx: cfg.EraserThresholdPx,
			Color:             cfg.DefaultColor,
			NewStrokeID:       cfg.NewStrokeID,
			Metrics:           cfg.Metrics,
			Logger:            cfg.Logger,
		}),
		compositor: NewCompositor(cfg.Base, cfg.Overlay),
		exporter:   NewExportComposer(cfg.NewSurface),
		logger:     cfg.Logger,
		view: domain.ViewportTransform{
			Zoom:           1,
			ViewportWidth:  cfg.ViewportWidth,
			ViewportHeight: cfg.ViewportHeight,
		},
	}
}

// Open replaces any previous document. Annotations and history start empty.
// A page that fails to render leaves the session open but blocked.
func (s *DocumentSession) Open(ctx context.Context, document domain.Document) error {
	if err := document.Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	s.Close()
	if err := s.navigator.Open(ctx, document); err != nil {
		return fmt.Errorf("open document: %w", err)
	}

	document.Verdicts = document.Verdicts.Normalize()
	s.document = document
	s.open = true
	s.logger.Info("document opened",
		zap.String("document_id", string(document.ID)),
		zap.Int("pages", s.navigator.Total()),
	)

	return s.loadPage(ctx)
}

func (s *DocumentSession) Close() {
	s.controller.Reset()
	s.navigator.Close()
	s.document = domain.Document{}
	s.open = false
	s.bitmap = nil
	s.view = domain.ViewportTransform{
		Zoom:           1,
		ViewportWidth:  s.view.ViewportWidth,
		ViewportHeight: s.view.ViewportHeight,
	}
	s.compositor.MarkBaseDirty()
}

func (s *DocumentSession) loadPage(ctx context.Context) error {
	s.compositor.MarkBaseDirty()

	img, err := s.navigator.Bitmap(ctx)
	if err != nil {
		s.bitmap = nil
		return err
	}

	bounds := img.Bounds()
	s.bitmap = img
	s.view.Zoom = s.navigator.Zoom()
	s.view.Width = bounds.Dx()
	s.view.Height = bounds.Dy()
	s.view.Scroll = s.view.ClampScroll(s.view.Scroll)
	return nil
}

func (s *DocumentSession) interactive() bool {
	return s.open && s.bitmap != nil && !s.navigator.Blocked()
}

// HandlePointer feeds one pointer event to the drawing controller. Events
// are ignored while no page is displayed.
func (s *DocumentSession) HandlePointer(ev PointerEvent) {
	if !s.interactive() {
		return
	}

	change := s.controller.Handle(ev, s.navigator.Page(), &s.view)
	// A pan only moves the viewport; callers read Scroll() and no surface is repainted.
	if change.Has(ChangeOverlay) {
		s.compositor.MarkOverlayDirty()
	}
}

// Flush repaints whatever the events since the last flush invalidated.
func (s *DocumentSession) Flush() bool {
	return s.compositor.Repaint(Frame{
		Bitmap:     s.bitmap,
		Strokes:    s.controller.Strokes(s.navigator.Page()),
		InProgress: s.controller.InProgress(),
		Zoom:       s.view.Zoom,
	})
}

func (s *DocumentSession) SetTool(tool domain.Tool) {
	if s.controller.SetTool(tool).Has(ChangeOverlay) {
		s.compositor.MarkOverlayDirty()
	}
}

func (s *DocumentSession) SetColor(color domain.Color) {
	s.controller.SetColor(color)
}

func (s *DocumentSession) Undo() bool {
	if !s.controller.Undo() {
		return false
	}
	s.compositor.MarkOverlayDirty()
	return true
}

func (s *DocumentSession) Redo() bool {
	if !s.controller.Redo() {
		return false
	}
	s.compositor.MarkOverlayDirty()
	return true
}

func (s *DocumentSession) GoToPage(ctx context.Context, page int) error {
	if !s.open {
		return fmt.Errorf("%w: no open document", domain.ErrDocumentNotFound)
	}
	if page == s.navigator.Page() && s.bitmap != nil {
		return nil
	}
	if err := s.navigator.GoTo(page); err != nil {
		return err
	}

	s.controller.Cancel()
	s.view.Scroll = domain.PixelPoint{}
	return s.loadPage(ctx)
}

func (s *DocumentSession) NextPage(ctx context.Context) error {
	return s.GoToPage(ctx, s.navigator.Page()+1)
}

func (s *DocumentSession) PrevPage(ctx context.Context) error {
	return s.GoToPage(ctx, s.navigator.Page()-1)
}

// SetZoom re-renders the page at the clamped zoom and keeps the scroll
// position proportional.
func (s *DocumentSession) SetZoom(ctx context.Context, zoom float64) error {
	if !s.open {
		return fmt.Errorf("%w: no open document", domain.ErrDocumentNotFound)
	}

	previous := s.navigator.Zoom()
	if !s.navigator.SetZoom(zoom) {
		return nil
	}

	ratio := s.navigator.Zoom() / previous
	s.controller.Cancel()
	s.view.Scroll = domain.PixelPoint{X: s.view.Scroll.X * ratio, Y: s.view.Scroll.Y * ratio}
	return s.loadPage(ctx)
}

func (s *DocumentSession) ZoomIn(ctx context.Context) error {
	return s.SetZoom(ctx, s.navigator.Zoom()+ZoomStep)
}

func (s *DocumentSession) ZoomOut(ctx context.Context) error {
	return s.SetZoom(ctx, s.navigator.Zoom()-ZoomStep)
}

// Resize records a new viewport size. Surfaces follow the page bitmap, so
// nothing is repainted.
func (s *DocumentSession) Resize(width, height int) {
	s.view.ViewportWidth = width
	s.view.ViewportHeight = height
	s.view.Scroll = s.view.ClampScroll(s.view.Scroll)
}

// ExportCurrentPageAsImage writes the current page with its committed
// strokes as PNG.
func (s *DocumentSession) ExportCurrentPageAsImage(ctx context.Context, w io.Writer) error {
	if !s.open {
		return fmt.Errorf("%w: no open document", domain.ErrDocumentNotFound)
	}
	if s.bitmap == nil {
		if err := s.loadPage(ctx); err != nil {
			return fmt.Errorf("export page: %w", err)
		}
	}

	img, err := s.exporter.Compose(s.bitmap, s.controller.Strokes(s.navigator.Page()), s.view.Zoom)
	if err != nil {
		return fmt.Errorf("export page: %w", err)
	}
	return s.exporter.Encode(w, img)
}

func (s *DocumentSession) SendDelivery(ctx context.Context, actor string) error {
	return s.decide(func(document domain.Document) (domain.Verdicts, error) {
		return s.verdicts.SendDelivery(ctx, document, SendDeliveryCommand{Actor: actor})
	})
}

func (s *DocumentSession) Approve(ctx context.Context, stage domain.Stage, actor string, evidence ...domain.EvidenceFile) error {
	return s.decide(func(document domain.Document) (domain.Verdicts, error) {
		return s.verdicts.Approve(ctx, document, ApproveCommand{Stage: stage, Actor: actor, Evidence: evidence})
	})
}

func (s *DocumentSession) Reject(ctx context.Context, stage domain.Stage, flags []string, observations, actor string, evidence ...domain.EvidenceFile) error {
	return s.decide(func(document domain.Document) (domain.Verdicts, error) {
		return s.verdicts.Reject(ctx, document, RejectCommand{
			Stage:        stage,
			Flags:        flags,
			Observations: observations,
			Actor:        actor,
			Evidence:     evidence,
		})
	})
}

// AttachPhysicalEvidence uploads files to the pending physical stage. It is
// refused with domain.ErrDeliveryPending until delivery has been sent.
func (s *DocumentSession) AttachPhysicalEvidence(ctx context.Context, actor string, files ...domain.EvidenceFile) error {
	return s.decide(func(document domain.Document) (domain.Verdicts, error) {
		return s.verdicts.AttachPhysicalEvidence(ctx, document, AttachEvidenceCommand{Actor: actor, Files: files})
	})
}

func (s *DocumentSession) decide(act func(domain.Document) (domain.Verdicts, error)) error {
	if !s.open {
		return fmt.Errorf("%w: no open document", domain.ErrDocumentNotFound)
	}
	if s.verdicts == nil {
		return fmt.Errorf("%w: session has no verdict service", domain.ErrValidation)
	}

	next, err := act(s.document)
	if err != nil {
		return err
	}
	s.document.Verdicts = next
	return nil
}

func (s *DocumentSession) Document() domain.Document {
	return s.document
}

func (s *DocumentSession) IsOpen() bool {
	return s.open
}

func (s *DocumentSession) Verdicts() domain.Verdicts {
	return s.document.Verdicts
}

func (s *DocumentSession) FullyApproved() bool {
	return s.document.Verdicts.FullyApproved()
}

func (s *DocumentSession) CurrentPage() int {
	return s.navigator.Page()
}

func (s *DocumentSession) TotalPages() int {
	return s.navigator.Total()
}

func (s *DocumentSession) Zoom() float64 {
	return s.navigator.Zoom()
}

func (s *DocumentSession) Blocked() bool {
	return s.open && s.navigator.Blocked()
}

func (s *DocumentSession) Scroll() domain.PixelPoint {
	return s.view.Scroll
}

func (s *DocumentSession) Viewport() domain.ViewportTransform {
	return s.view
}

func (s *DocumentSession) Tool() domain.Tool {
	return s.controller.Tool()
}

func (s *DocumentSession) Color() domain.Color {
	return s.controller.Color()
}

func (s *DocumentSession) GestureState() domain.GestureState {
	return s.controller.State()
}

func (s *DocumentSession) Annotations() domain.PageAnnotationSet {
	return s.controller.Annotations().Clone()
}

func (s *DocumentSession) CanUndo() bool {
	return s.controller.CanUndo()
}

func (s *DocumentSession) CanRedo() bool {
	return s.controller.CanRedo()
}
