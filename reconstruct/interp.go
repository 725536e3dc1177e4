// Package reconstruct assembles a continuous polyline for a completed
// route: interpolating a point at an arc-length parameter along an
// edge's polyline, extracting the portion of a polyline between two
// parameters, and stitching partial boundary edges to full middle edges
// with duplicate junction points suppressed.
package reconstruct

import "github.com/arybakin/routeweave/geometry"

// prefixLengths returns, for a polyline of n points, an n-length array
// where entry i is the cumulative arc length from point 0 to point i.
func prefixLengths(xs, ys []float64) []float64 {
	prefix := make([]float64, len(xs))
	for i := 1; i < len(xs); i++ {
		prefix[i] = prefix[i-1] + geometry.SegmentLength(xs[i-1], ys[i-1], xs[i], ys[i])
	}
	return prefix
}

// Interpolate resolves t in [0,1] into a point on edge id's polyline by
// walking arc length: t*totalLength locates a segment, and the point is
// the linear interpolation within that segment. t >= 1 degrades to the
// last point; a degenerate (zero-length) polyline returns its first
// point regardless of t.
func Interpolate(geom *geometry.EdgeGeometry, id int, t float64) (x, y float64) {
	xs, ys := geom.Points(id)
	prefix := prefixLengths(xs, ys)
	total := prefix[len(prefix)-1]
	last := len(xs) - 1
	if total == 0 || t >= 1 {
		return xs[last], ys[last]
	}
	if t <= 0 {
		return xs[0], ys[0]
	}
	target := t * total
	i := segmentContaining(prefix, target)
	segLen := prefix[i+1] - prefix[i]
	if segLen == 0 {
		return xs[i], ys[i]
	}
	local := (target - prefix[i]) / segLen
	return lerp(xs[i], ys[i], xs[i+1], ys[i+1], local)
}

// segmentContaining returns the index i such that prefix[i] <= target <=
// prefix[i+1], for target strictly inside (0, prefix[last]).
func segmentContaining(prefix []float64, target float64) int {
	for i := 0; i+1 < len(prefix); i++ {
		if target <= prefix[i+1] {
			return i
		}
	}
	return len(prefix) - 2
}

func lerp(x0, y0, x1, y1, t float64) (x, y float64) {
	return x0 + t*(x1-x0), y0 + t*(y1-y0)
}
