package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentDistanceSq(t *testing.T) {
	t.Parallel()

	a := Point{X: 0, Y: 0}
	b := Point{X: 1, Y: 0}

	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{name: "projection inside segment", p: Point{X: 0.5, Y: 0.2}, want: 0.04},
		{name: "clamped before start", p: Point{X: -0.3, Y: 0.4}, want: 0.25},
		{name: "clamped after end", p: Point{X: 1.3, Y: 0.4}, want: 0.25},
		{name: "on segment", p: Point{X: 0.7, Y: 0}, want: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tc.want, SegmentDistanceSq(tc.p, a, b), 1e-12)
		})
	}
}

func TestSegmentDistanceSqDegenerateSegment(t *testing.T) {
	t.Parallel()

	a := Point{X: 0.5, Y: 0.5}
	assert.InDelta(t, 0.02, SegmentDistanceSq(Point{X: 0.6, Y: 0.6}, a, a), 1e-12)
}

func TestPolylineDistanceSq(t *testing.T) {
	t.Parallel()

	assert.True(t, math.IsInf(PolylineDistanceSq(Point{}, nil), 1))
	assert.InDelta(t, 0.01, PolylineDistanceSq(Point{X: 0.1}, []Point{{}}), 1e-12)

	zigzag := []Point{{X: 0, Y: 0}, {X: 0.5, Y: 0.5}, {X: 1, Y: 0}}
	assert.InDelta(t, 0, PolylineDistanceSq(Point{X: 0.75, Y: 0.25}, zigzag), 1e-12)
}

func TestNearestStrokePrefersClosestOverFirstMatch(t *testing.T) {
	t.Parallel()

	query := Point{X: 0.5, Y: 0.5}
	far := Stroke{ID: "far", Points: []Point{{X: 0.5, Y: 0.515}, {X: 0.6, Y: 0.515}}}
	near := Stroke{ID: "near", Points: []Point{{X: 0.5, Y: 0.505}, {X: 0.6, Y: 0.505}}}

	id, distSq, ok := NearestStroke(query, []Stroke{far, near}, 0.02)
	assert.True(t, ok)
	assert.Equal(t, StrokeID("near"), id)
	assert.InDelta(t, 0.005*0.005, distSq, 1e-12)
}

func TestNearestStrokeRespectsThreshold(t *testing.T) {
	t.Parallel()

	query := Point{X: 0.5, Y: 0.5}
	strokes := []Stroke{{ID: "s1", Points: []Point{{X: 0.5, Y: 0.55}}}}

	_, _, ok := NearestStroke(query, strokes, 0.02)
	assert.False(t, ok)

	_, _, ok = NearestStroke(query, nil, 0.02)
	assert.False(t, ok)
}

func TestNearestStrokeTieKeepsFirst(t *testing.T) {
	t.Parallel()

	query := Point{X: 0.5, Y: 0.5}
	strokes := []Stroke{
		{ID: "first", Points: []Point{{X: 0.5078125, Y: 0.5}}},
		{ID: "second", Points: []Point{{X: 0.4921875, Y: 0.5}}},
	}

	id, _, ok := NearestStroke(query, strokes, 0.02)
	assert.True(t, ok)
	assert.Equal(t, StrokeID("first"), id)
}
