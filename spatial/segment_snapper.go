package spatial

import (
	"math"

	"github.com/pkg/errors"

	"github.com/arybakin/routeweave/geometry"
	"github.com/arybakin/routeweave/graph"
)

// SegmentSnapResult is the outcome of snapping a query point onto the
// nearest indexed segment: the owning edge, its endpoints, the
// whole-edge normalized arc-length parameter (not the segment-local
// one), and the Euclidean distance to the matched point.
type SegmentSnapResult struct {
	EdgeID        graph.EdgeID
	FromVertex    int
	ToVertex      int
	T             float64
	DistanceMeters float64
}

type segmentRef struct {
	edgeID     int
	pointIndex int
}

// SegmentSnapper is a uniform-grid index over the midpoints of every
// segment (consecutive point pair) of every edge's polyline. It supports
// nearest-segment queries with bounded, deterministic work per query.
type SegmentSnapper struct {
	grid  *cellGrid
	items []segmentRef
	geom  *geometry.EdgeGeometry
	g     *graph.Graph
}

// NewSegmentSnapper builds a SegmentSnapper over every segment in geom,
// using cellSize (meters) as the uniform grid's cell dimension. g
// supplies edge endpoints for the returned SegmentSnapResult.
func NewSegmentSnapper(g *graph.Graph, geom *geometry.EdgeGeometry, cellSize float64, opts ...Option) (*SegmentSnapper, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	box, empty := computeBBox(geom)
	if empty {
		return nil, errors.New("spatial: NewSegmentSnapper: geometry has no points to index")
	}
	cg, err := newCellGrid(box, cellSize, cfg.maxRing)
	if err != nil {
		return nil, err
	}

	counts := make([]int, cg.numCells()+1)
	forEachSegment(geom, func(edgeID, pointIndex int, x0, y0, x1, y1 float64) {
		mx, my := (x0+x1)/2, (y0+y1)/2
		cx, cy := cg.cellOf(mx, my)
		counts[cg.cellIndex(cx, cy)+1]++
	})
	cellStart := make([]int, len(counts))
	for i := 1; i < len(counts); i++ {
		cellStart[i] = cellStart[i-1] + counts[i]
	}
	cg.cellStart = cellStart

	cursor := make([]int, cg.numCells())
	copy(cursor, cellStart[:cg.numCells()])
	items := make([]segmentRef, cellStart[cg.numCells()])
	forEachSegment(geom, func(edgeID, pointIndex int, x0, y0, x1, y1 float64) {
		mx, my := (x0+x1)/2, (y0+y1)/2
		cx, cy := cg.cellOf(mx, my)
		idx := cg.cellIndex(cx, cy)
		items[cursor[idx]] = segmentRef{edgeID: edgeID, pointIndex: pointIndex}
		cursor[idx]++
	})

	return &SegmentSnapper{grid: cg, items: items, geom: geom, g: g}, nil
}

func computeBBox(geom *geometry.EdgeGeometry) (bbox, bool) {
	x, y := geom.FlatXY()
	if len(x) == 0 {
		return bbox{}, true
	}
	box := bbox{minX: x[0], minY: y[0], maxX: x[0], maxY: y[0]}
	for i := 1; i < len(x); i++ {
		if x[i] < box.minX {
			box.minX = x[i]
		}
		if x[i] > box.maxX {
			box.maxX = x[i]
		}
		if y[i] < box.minY {
			box.minY = y[i]
		}
		if y[i] > box.maxY {
			box.maxY = y[i]
		}
	}
	return box, false
}

func forEachSegment(geom *geometry.EdgeGeometry, visit func(edgeID, pointIndex int, x0, y0, x1, y1 float64)) {
	for id := 0; id < geom.EdgeCount(); id++ {
		xs, ys := geom.Points(id)
		for s := 0; s+1 < len(xs); s++ {
			visit(id, s, xs[s], ys[s], xs[s+1], ys[s+1])
		}
	}
}

// projectPointOnSegment returns the clamped parameter t in [0,1] of the
// closest point on segment (x0,y0)-(x1,y1) to (qx,qy), and the Euclidean
// distance from q to that closest point.
func projectPointOnSegment(qx, qy, x0, y0, x1, y1 float64) (t, dist float64) {
	dx, dy := x1-x0, y1-y0
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return 0, math.Hypot(qx-x0, qy-y0)
	}
	t = ((qx-x0)*dx + (qy-y0)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	cx, cy := x0+t*dx, y0+t*dy
	return t, math.Hypot(qx-cx, qy-cy)
}

// Snap finds the indexed segment closest to (qx, qy) by Euclidean
// distance, returning its whole-edge arc-length parameter. Reports
// found=false if the ring search exhausts its bound without a match.
func (s *SegmentSnapper) Snap(qx, qy float64) (result SegmentSnapResult, found bool) {
	cx0, cy0 := s.grid.cellOf(qx, qy)

	bestDist := math.Inf(1)
	var bestEdgeID, bestPointIndex int
	var bestLocalT float64
	haveBest := false

	for r := 0; r <= s.grid.maxRing; r++ {
		s.grid.ringCells(cx0, cy0, r, func(cx, cy int) {
			idx := s.grid.cellIndex(cx, cy)
			start, end := s.grid.cellStart[idx], s.grid.cellStart[idx+1]
			for _, ref := range s.items[start:end] {
				xs, ys := s.geom.Points(ref.edgeID)
				x0, y0 := xs[ref.pointIndex], ys[ref.pointIndex]
				x1, y1 := xs[ref.pointIndex+1], ys[ref.pointIndex+1]
				t, d := projectPointOnSegment(qx, qy, x0, y0, x1, y1)
				if d < bestDist {
					bestDist = d
					bestEdgeID = ref.edgeID
					bestPointIndex = ref.pointIndex
					bestLocalT = t
					haveBest = true
				}
			}
		})
		if haveBest && bestDist <= float64(r)*s.grid.cellSize {
			break
		}
	}

	if !haveBest {
		return SegmentSnapResult{}, false
	}

	tEdge := edgeArcLengthParam(s.geom, bestEdgeID, bestPointIndex, bestLocalT)
	e := s.g.EdgeByID(graph.EdgeID(bestEdgeID))
	return SegmentSnapResult{
		EdgeID:         graph.EdgeID(bestEdgeID),
		FromVertex:     e.From(),
		ToVertex:       e.To(),
		T:              tEdge,
		DistanceMeters: bestDist,
	}, true
}

// edgeArcLengthParam converts a segment-local match (pointIndex, localT)
// into a whole-edge normalized arc-length parameter in [0,1]. Degenerate
// polylines (total length 0) report t = 0.
func edgeArcLengthParam(geom *geometry.EdgeGeometry, edgeID, pointIndex int, localT float64) float64 {
	xs, ys := geom.Points(edgeID)
	total := geometry.PolylineLength(xs, ys)
	if total == 0 {
		return 0
	}
	arcBefore := geometry.PolylineLength(xs[:pointIndex+1], ys[:pointIndex+1])
	segLen := geometry.SegmentLength(xs[pointIndex], ys[pointIndex], xs[pointIndex+1], ys[pointIndex+1])
	return (arcBefore + localT*segLen) / total
}
