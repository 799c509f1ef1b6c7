package domain

import "math"

// SegmentDistanceSq returns the squared distance from p to the closest point
// of segment ab.
func SegmentDistanceSq(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return distanceSq(p, a)
	}

	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lengthSq
	t = math.Max(0, math.Min(1, t))

	closest := Point{X: a.X + t*dx, Y: a.Y + t*dy}
	return distanceSq(p, closest)
}

func PolylineDistanceSq(p Point, points []Point) float64 {
	switch len(points) {
	case 0:
		return math.Inf(1)
	case 1:
		return distanceSq(p, points[0])
	}

	best := math.Inf(1)
	for i := 1; i < len(points); i++ {
		if d := SegmentDistanceSq(p, points[i-1], points[i]); d < best {
			best = d
		}
	}

	return best
}

// NearestStroke scans every stroke and returns the one closest to p, provided
// its squared distance is below radius². Ties keep the earlier stroke.
func NearestStroke(p Point, strokes []Stroke, radius float64) (StrokeID, float64, bool) {
	var (
		bestID StrokeID
		bestSq = math.Inf(1)
		found  bool
	)

	thresholdSq := radius * radius
	for _, stroke := range strokes {
		d := PolylineDistanceSq(p, stroke.Points)
		if d >= thresholdSq || d >= bestSq {
			continue
		}
		bestID, bestSq, found = stroke.ID, d, true
	}

	return bestID, bestSq, found
}

func distanceSq(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
