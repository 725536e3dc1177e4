package geometry

import "math"

// SegmentLength returns the Euclidean length of the segment (x0,y0)-(x1,y1).
func SegmentLength(x0, y0, x1, y1 float64) float64 {
	dx := x1 - x0
	dy := y1 - y0
	return math.Hypot(dx, dy)
}

// PolylineLength returns the total arc length of a polyline given as
// parallel x/y arrays. Returns 0 for degenerate polylines (< 2 points).
func PolylineLength(xs, ys []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(xs); i++ {
		total += SegmentLength(xs[i-1], ys[i-1], xs[i], ys[i])
	}
	return total
}

// Length returns the total arc length of edge id's polyline.
func (g *EdgeGeometry) Length(id int) float64 {
	xs, ys := g.Points(id)
	return PolylineLength(xs, ys)
}
