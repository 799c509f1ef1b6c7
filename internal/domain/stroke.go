package domain

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"math"
	"strings"
)

type StrokeID string

type StrokeKind string

const (
	StrokeKindPencil    StrokeKind = "pencil"
	StrokeKindHighlight StrokeKind = "highlight"
)

func (k StrokeKind) Valid() bool {
	switch k {
	case StrokeKindPencil, StrokeKindHighlight:
		return true
	default:
		return false
	}
}

const (
	pencilWidthPx     = 2.0
	highlightWidthPx  = 15.0
	highlightOpacity  = 0.3
	defaultStrokeZoom = 1.0
)

// Color is an opaque RGB value. Transparency is a property of the stroke
// kind, not of the color.
type Color struct {
	R uint8
	G uint8
	B uint8
}

var DefaultColor = Color{R: 0xe5, G: 0x39, B: 0x35}

func ParseColor(raw string) (Color, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if len(trimmed) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: want #rrggbb", raw)
	}

	decoded, err := hex.DecodeString(trimmed)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", raw, err)
	}

	return Color{R: decoded[0], G: decoded[1], B: decoded[2]}, nil
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

type Stroke struct {
	ID     StrokeID
	Kind   StrokeKind
	Color  Color
	Page   int
	Points []Point
}

func (s Stroke) Clone() Stroke {
	s.Points = append([]Point(nil), s.Points...)
	return s
}

// StrokeStyle is the paint description handed to a render surface.
type StrokeStyle struct {
	Color   Color
	Width   float64
	Opacity float64
}

// RGBA returns the non-premultiplied paint color for the style.
func (s StrokeStyle) RGBA() color.NRGBA {
	opacity := s.Opacity
	if opacity <= 0 || opacity > 1 {
		opacity = 1
	}

	return color.NRGBA{R: s.Color.R, G: s.Color.G, B: s.Color.B, A: uint8(math.Round(opacity * 255))}
}

// StyleFor returns the kind-dependent styling at the given zoom: pencil is
// fine and opaque, highlight is wide and partially transparent.
func StyleFor(kind StrokeKind, c Color, zoom float64) StrokeStyle {
	if zoom <= 0 {
		zoom = defaultStrokeZoom
	}

	if kind == StrokeKindHighlight {
		return StrokeStyle{Color: c, Width: highlightWidthPx * zoom, Opacity: highlightOpacity}
	}

	return StrokeStyle{Color: c, Width: pencilWidthPx * zoom, Opacity: 1}
}
