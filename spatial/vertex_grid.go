package spatial

import (
	"math"

	"github.com/pkg/errors"

	"github.com/arybakin/routeweave/graph"
)

// Grid is the nearest-vertex variant of the uniform grid index: same CSR
// layout as SegmentSnapper, but the indexed atoms are vertex ids rather
// than polyline segments. Used internally for simple snapping where the
// caller only needs the nearest routing vertex, not a point on an edge.
type Grid struct {
	grid  *cellGrid
	items []int
	vs    *graph.VertexStore
}

// NewGrid builds a Grid over every vertex in vs.
func NewGrid(vs *graph.VertexStore, cellSize float64, opts ...Option) (*Grid, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if vs.Len() == 0 {
		return nil, errors.New("spatial: NewGrid: vertex store has no vertices to index")
	}
	x0, y0 := vs.XY(0)
	box := bbox{minX: x0, minY: y0, maxX: x0, maxY: y0}
	for v := 1; v < vs.Len(); v++ {
		x, y := vs.XY(v)
		if x < box.minX {
			box.minX = x
		}
		if x > box.maxX {
			box.maxX = x
		}
		if y < box.minY {
			box.minY = y
		}
		if y > box.maxY {
			box.maxY = y
		}
	}
	cg, err := newCellGrid(box, cellSize, cfg.maxRing)
	if err != nil {
		return nil, err
	}

	counts := make([]int, cg.numCells()+1)
	for v := 0; v < vs.Len(); v++ {
		x, y := vs.XY(v)
		cx, cy := cg.cellOf(x, y)
		counts[cg.cellIndex(cx, cy)+1]++
	}
	cellStart := make([]int, len(counts))
	for i := 1; i < len(counts); i++ {
		cellStart[i] = cellStart[i-1] + counts[i]
	}
	cg.cellStart = cellStart

	cursor := make([]int, cg.numCells())
	copy(cursor, cellStart[:cg.numCells()])
	items := make([]int, cellStart[cg.numCells()])
	for v := 0; v < vs.Len(); v++ {
		x, y := vs.XY(v)
		cx, cy := cg.cellOf(x, y)
		idx := cg.cellIndex(cx, cy)
		items[cursor[idx]] = v
		cursor[idx]++
	}

	return &Grid{grid: cg, items: items, vs: vs}, nil
}

// NearestVertex returns the vertex closest to (qx, qy) by Euclidean
// distance, and its distance. Reports found=false if the ring search
// exhausts its bound without a match.
func (g *Grid) NearestVertex(qx, qy float64) (vertex int, distanceMeters float64, found bool) {
	cx0, cy0 := g.grid.cellOf(qx, qy)

	bestDist := math.Inf(1)
	bestVertex := -1

	for r := 0; r <= g.grid.maxRing; r++ {
		g.grid.ringCells(cx0, cy0, r, func(cx, cy int) {
			idx := g.grid.cellIndex(cx, cy)
			start, end := g.grid.cellStart[idx], g.grid.cellStart[idx+1]
			for _, v := range g.items[start:end] {
				x, y := g.vs.XY(v)
				d := math.Hypot(qx-x, qy-y)
				if d < bestDist {
					bestDist = d
					bestVertex = v
				}
			}
		})
		if bestVertex >= 0 && bestDist <= float64(r)*g.grid.cellSize {
			break
		}
	}

	if bestVertex < 0 {
		return 0, 0, false
	}
	return bestVertex, bestDist, true
}
