package domain

import (
	"fmt"
	"strings"
)

type Tool string

const (
	ToolHand      Tool = "hand"
	ToolPencil    Tool = "pencil"
	ToolHighlight Tool = "highlight"
	ToolEraser    Tool = "eraser"
)

func ParseTool(raw string) (Tool, error) {
	switch tool := Tool(strings.ToLower(strings.TrimSpace(raw))); tool {
	case ToolHand, ToolPencil, ToolHighlight, ToolEraser:
		return tool, nil
	default:
		return "", fmt.Errorf("unsupported tool %q", raw)
	}
}

// StrokeKind reports the stroke kind a drawing tool produces.
func (t Tool) StrokeKind() (StrokeKind, bool) {
	switch t {
	case ToolPencil:
		return StrokeKindPencil, true
	case ToolHighlight:
		return StrokeKindHighlight, true
	default:
		return "", false
	}
}

type GestureState string

const (
	GestureIdle     GestureState = "idle"
	GesturePanning  GestureState = "panning"
	GestureStroking GestureState = "stroking"
)
