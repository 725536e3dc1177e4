package reconstruct

import (
	"github.com/arybakin/routeweave/geometry"
	"github.com/arybakin/routeweave/graph"
)

// dedupe removes consecutive duplicate points from a polyline, per the
// reconstruction algorithm's final suppression step.
func dedupe(xs, ys []float64) (dx, dy []float64) {
	if len(xs) == 0 {
		return xs, ys
	}
	dx = append(dx, xs[0])
	dy = append(dy, ys[0])
	for i := 1; i < len(xs); i++ {
		if xs[i] == dx[len(dx)-1] && ys[i] == dy[len(dy)-1] {
			continue
		}
		dx = append(dx, xs[i])
		dy = append(dy, ys[i])
	}
	return dx, dy
}

// SameEdge reconstructs the polyline for the same-edge short-circuit
// case: the sub-polyline of edge id between the two snap parameters,
// orientation-preserving.
func SameEdge(geom *geometry.EdgeGeometry, id int, t0, t1 float64) (xs, ys []float64) {
	rawX, rawY := SubEdge(geom, id, t0, t1)
	return dedupe(rawX, rawY)
}

// Reconstruct assembles the full route polyline for the general
// multi-edge case: a partial boundary segment on startEdgeID from the
// query point (startT) to whichever endpoint the route entered the
// graph from, the full polylines of every edge on the path between
// those graph vertices, and a partial boundary segment on goalEdgeID
// from the entry vertex to the query point (goalT).
//
// startEntryIsFromVertex reports whether the route entered startEdgeID's
// "from" endpoint (t == 0) rather than its "to" endpoint (t == 1); the
// analogous goalEntryIsFromVertex reports which endpoint of goalEdgeID
// the route arrived at before walking the partial goal segment.
func Reconstruct(
	geom *geometry.EdgeGeometry,
	startEdgeID int,
	startT float64,
	startEntryIsFromVertex bool,
	middleEdgeIDs []graph.EdgeID,
	goalEdgeID int,
	goalT float64,
	goalEntryIsFromVertex bool,
) (xs, ys []float64) {
	startAnchor := edgeAnchor(startEntryIsFromVertex)
	goalAnchor := edgeAnchor(goalEntryIsFromVertex)

	firstX, firstY := SubEdge(geom, startEdgeID, startT, startAnchor)
	xs = append(xs, firstX...)
	ys = append(ys, firstY...)

	for _, e := range middleEdgeIDs {
		midX, midY := geom.Points(int(e))
		xs = append(xs, midX...)
		ys = append(ys, midY...)
	}

	lastX, lastY := SubEdge(geom, goalEdgeID, goalAnchor, goalT)
	xs = append(xs, lastX...)
	ys = append(ys, lastY...)

	return dedupe(xs, ys)
}

func edgeAnchor(isFromVertex bool) float64 {
	if isFromVertex {
		return 0
	}
	return 1
}
