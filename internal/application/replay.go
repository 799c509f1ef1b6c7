package application

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/qa-inspector/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
)

// ReplayScript is a recorded sequence of markup inputs, stored as TOML:
//
//	[[steps]]
//	action = "tool"
//	value = "pencil"
//
//	[[steps]]
//	action = "down"
//	x = 120
//	y = 80
type ReplayScript struct {
	Steps []ReplayStep `toml:"steps"`
}

// ReplayStep actions: tool, color, down, move, up, leave, undo, redo, page,
// zoom, resize, flush. Pointer positions are viewport pixels.
type ReplayStep struct {
	Action string  `toml:"action"`
	Value  string  `toml:"value,omitempty"`
	X      float64 `toml:"x,omitempty"`
	Y      float64 `toml:"y,omitempty"`
	Page   int     `toml:"page,omitempty"`
	Zoom   float64 `toml:"zoom,omitempty"`
	Width  int     `toml:"width,omitempty"`
	Height int     `toml:"height,omitempty"`
}

func ParseReplayScript(r io.Reader) (ReplayScript, error) {
	var script ReplayScript
	decoder := toml.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&script); err != nil {
		return ReplayScript{}, fmt.Errorf("decode replay script: %w", err)
	}

	for i, step := range script.Steps {
		if err := step.validate(); err != nil {
			return ReplayScript{}, fmt.Errorf("%w: step %d: %w", domain.ErrValidation, i+1, err)
		}
	}

	return script, nil
}

func (s ReplayStep) validate() error {
	switch strings.ToLower(s.Action) {
	case "tool":
		_, err := domain.ParseTool(s.Value)
		return err
	case "color":
		_, err := domain.ParseColor(s.Value)
		return err
	case "down", "move", "up", "leave", "undo", "redo", "flush":
		return nil
	case "page":
		if s.Page < 1 {
			return fmt.Errorf("page must be at least 1")
		}
		return nil
	case "zoom":
		if s.Zoom <= 0 {
			return fmt.Errorf("zoom must be positive")
		}
		return nil
	case "resize":
		if s.Width <= 0 || s.Height <= 0 {
			return fmt.Errorf("resize needs a positive width and height")
		}
		return nil
	default:
		return fmt.Errorf("unknown action %q", s.Action)
	}
}

// Replay applies every step to the session, flushing after the last one.
func (s *DocumentSession) Replay(ctx context.Context, script ReplayScript) error {
	for i, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.replayStep(ctx, step); err != nil {
			return fmt.Errorf("replay step %d (%s): %w", i+1, step.Action, err)
		}
	}

	s.Flush()
	return nil
}

func (s *DocumentSession) replayStep(ctx context.Context, step ReplayStep) error {
	position := domain.PixelPoint{X: step.X, Y: step.Y}

	switch strings.ToLower(step.Action) {
	case "tool":
		tool, err := domain.ParseTool(step.Value)
		if err != nil {
			return err
		}
		s.SetTool(tool)
	case "color":
		color, err := domain.ParseColor(step.Value)
		if err != nil {
			return err
		}
		s.SetColor(color)
	case "down":
		s.HandlePointer(PointerEvent{Kind: PointerDown, Position: position})
	case "move":
		s.HandlePointer(PointerEvent{Kind: PointerMove, Position: position})
	case "up":
		s.HandlePointer(PointerEvent{Kind: PointerUp, Position: position})
	case "leave":
		s.HandlePointer(PointerEvent{Kind: PointerLeave, Position: position})
	case "undo":
		s.Undo()
	case "redo":
		s.Redo()
	case "page":
		return s.GoToPage(ctx, step.Page)
	case "zoom":
		return s.SetZoom(ctx, step.Zoom)
	case "resize":
		s.Resize(step.Width, step.Height)
	case "flush":
		s.Flush()
	default:
		return fmt.Errorf("unknown action %q", step.Action)
	}

	return nil
}
