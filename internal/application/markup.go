package application

import (
	"github.com/bnema/qa-inspector/internal/domain"
	"github.com/bnema/qa-inspector/internal/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultEraserThresholdPx = 10.0

type PointerKind string

const (
	PointerDown  PointerKind = "down"
	PointerMove  PointerKind = "move"
	PointerUp    PointerKind = "up"
	PointerLeave PointerKind = "leave"
)

// PointerEvent carries a position in viewport pixels.
type PointerEvent struct {
	Kind     PointerKind
	Position domain.PixelPoint
}

// Change reports what a handled input invalidated.
type Change uint8

const (
	ChangeOverlay Change = 1 << iota
	ChangeScroll
	ChangeHistory
)

func (c Change) Has(flag Change) bool {
	return c&flag != 0
}

type DrawingOptions struct {
	EraserThresholdPx float64
	// Color is the initial active color. The zero value selects
	// domain.DefaultColor.
	Color       domain.Color
	NewStrokeID func() domain.StrokeID
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
}

// DrawingController turns pointer gestures into annotation edits according
// to the active tool. It owns the committed annotation set and its history.
// Not safe for concurrent use.
type DrawingController struct {
	tool  domain.Tool
	color domain.Color
	state domain.GestureState

	inProgress *domain.Stroke
	panOrigin  domain.PixelPoint
	panScroll  domain.PixelPoint

	annotations domain.PageAnnotationSet
	history     domain.History

	eraserThresholdPx float64
	newStrokeID       func() domain.StrokeID
	metrics           *metrics.Metrics
	logger            *zap.Logger
}

func NewDrawingController(opts DrawingOptions) *DrawingController {
	if opts.EraserThresholdPx <= 0 {
		opts.EraserThresholdPx = DefaultEraserThresholdPx
	}
	if opts.Color == (domain.Color{}) {
		opts.Color = domain.DefaultColor
	}
	if opts.NewStrokeID == nil {
		opts.NewStrokeID = func() domain.StrokeID { return domain.StrokeID(uuid.NewString()) }
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &DrawingController{
		tool:              domain.ToolHand,
		color:             opts.Color,
		state:             domain.GestureIdle,
		annotations:       domain.NewPageAnnotationSet(),
		history:           domain.NewHistory(),
		eraserThresholdPx: opts.EraserThresholdPx,
		newStrokeID:       opts.NewStrokeID,
		metrics:           opts.Metrics,
		logger:            opts.Logger,
	}
}

// Handle applies ev to the given page. Panning writes the new scroll offset
// into view. Events that make no sense in the current state are ignored.
func (c *DrawingController) Handle(ev PointerEvent, page int, view *domain.ViewportTransform) Change {
	switch ev.Kind {
	case PointerDown:
		return c.down(ev.Position, page, view)
	case PointerMove:
		return c.move(ev.Position, view)
	case PointerUp, PointerLeave:
		return c.finish()
	default:
		return 0
	}
}

func (c *DrawingController) down(pos domain.PixelPoint, page int, view *domain.ViewportTransform) Change {
	if c.state != domain.GestureIdle {
		return 0
	}

	switch c.tool {
	case domain.ToolHand:
		c.state = domain.GesturePanning
		c.panOrigin = pos
		c.panScroll = view.Scroll
		return 0
	case domain.ToolPencil, domain.ToolHighlight:
		kind, _ := c.tool.StrokeKind()
		c.inProgress = &domain.Stroke{
			ID:     c.newStrokeID(),
			Kind:   kind,
			Color:  c.color,
			Page:   page,
			Points: []domain.Point{view.ToNormalized(pos)},
		}
		c.state = domain.GestureStroking
		return ChangeOverlay
	case domain.ToolEraser:
		return c.erase(view.ToNormalized(pos), page, view.EraserRadius(c.eraserThresholdPx))
	default:
		return 0
	}
}

func (c *DrawingController) move(pos domain.PixelPoint, view *domain.ViewportTransform) Change {
	switch c.state {
	case domain.GesturePanning:
		view.Scroll = view.ClampScroll(domain.PixelPoint{
			X: c.panScroll.X - (pos.X - c.panOrigin.X),
			Y: c.panScroll.Y - (pos.Y - c.panOrigin.Y),
		})
		return ChangeScroll
	case domain.GestureStroking:
		c.inProgress.Points = append(c.inProgress.Points, view.ToNormalized(pos))
		return ChangeOverlay
	default:
		return 0
	}
}

func (c *DrawingController) finish() Change {
	switch c.state {
	case domain.GesturePanning:
		c.state = domain.GestureIdle
		return 0
	case domain.GestureStroking:
		return c.commit()
	default:
		return 0
	}
}

func (c *DrawingController) commit() Change {
	stroke := *c.inProgress
	c.inProgress = nil
	c.state = domain.GestureIdle

	c.annotations = c.annotations.With(stroke)
	c.history.Push(c.annotations)
	c.metrics.IncrementStrokesCommitted(string(stroke.Kind))
	c.logger.Debug("stroke committed",
		zap.String("stroke_id", string(stroke.ID)),
		zap.String("kind", string(stroke.Kind)),
		zap.Int("page", stroke.Page),
		zap.Int("points", len(stroke.Points)),
	)

	return ChangeOverlay | ChangeHistory
}

func (c *DrawingController) erase(p domain.Point, page int, radius float64) Change {
	id, _, ok := domain.NearestStroke(p, c.annotations.Strokes(page), radius)
	if !ok {
		return 0
	}

	next, removed := c.annotations.Without(page, id)
	if !removed {
		return 0
	}
	c.annotations = next
	c.history.Push(c.annotations)
	c.metrics.IncrementStrokesErased()
	c.logger.Debug("stroke erased", zap.String("stroke_id", string(id)), zap.Int("page", page))

	return ChangeOverlay | ChangeHistory
}

// SetTool switches the active tool. An in-progress stroke is discarded and a
// pan gesture ends.
func (c *DrawingController) SetTool(tool domain.Tool) Change {
	if tool == c.tool {
		return 0
	}
	c.tool = tool
	return c.Cancel()
}

// SetColor changes the color of future strokes only.
func (c *DrawingController) SetColor(color domain.Color) {
	c.color = color
}

// Cancel abandons the active gesture without committing anything.
func (c *DrawingController) Cancel() Change {
	switch c.state {
	case domain.GestureStroking:
		c.inProgress = nil
		c.state = domain.GestureIdle
		return ChangeOverlay
	case domain.GesturePanning:
		c.state = domain.GestureIdle
	}
	return 0
}

// Undo and Redo are ignored while a gesture is active.
func (c *DrawingController) Undo() bool {
	if c.state != domain.GestureIdle {
		return false
	}
	snapshot, ok := c.history.Undo()
	if ok {
		c.annotations = snapshot
	}
	return ok
}

func (c *DrawingController) Redo() bool {
	if c.state != domain.GestureIdle {
		return false
	}
	snapshot, ok := c.history.Redo()
	if ok {
		c.annotations = snapshot
	}
	return ok
}

// Reset discards annotations, history and any active gesture. Tool and color
// are kept.
func (c *DrawingController) Reset() {
	c.inProgress = nil
	c.state = domain.GestureIdle
	c.annotations = domain.NewPageAnnotationSet()
	c.history = domain.NewHistory()
}

func (c *DrawingController) Tool() domain.Tool {
	return c.tool
}

func (c *DrawingController) Color() domain.Color {
	return c.color
}

func (c *DrawingController) State() domain.GestureState {
	return c.state
}

func (c *DrawingController) CanUndo() bool {
	return c.history.CanUndo()
}

func (c *DrawingController) CanRedo() bool {
	return c.history.CanRedo()
}

// Annotations returns the committed set. Callers must not modify it.
func (c *DrawingController) Annotations() domain.PageAnnotationSet {
	return c.annotations
}

func (c *DrawingController) Strokes(page int) []domain.Stroke {
	return c.annotations.Strokes(page)
}

func (c *DrawingController) InProgress() *domain.Stroke {
	if c.inProgress == nil {
		return nil
	}
	stroke := c.inProgress.Clone()
	return &stroke
}
