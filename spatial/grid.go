// Package spatial implements the uniform-grid spatial index used to snap
// a query point onto the nearest indexed segment or vertex: a CSR-packed
// grid over a planar bounding box, queried by expanding square rings with
// a provably-optimal early termination bound.
package spatial

import (
	"math"

	"github.com/pkg/errors"
)

// DefaultMaxRing is the ring-expansion bound used when no Option
// overrides it. A query that exhausts this many rings without finding a
// match reports "not found" rather than searching indefinitely.
const DefaultMaxRing = 32

// Option configures a Grid or SegmentSnapper at construction time.
type Option func(*config)

type config struct {
	maxRing int
}

func defaultConfig() config {
	return config{maxRing: DefaultMaxRing}
}

// WithMaxRing overrides the ring-expansion bound used by Query/Snap.
func WithMaxRing(n int) Option {
	return func(c *config) { c.maxRing = n }
}

// bbox is the planar bounding box over the indexed points.
type bbox struct {
	minX, minY, maxX, maxY float64
}

// cellGrid holds the index geometry shared by the segment and vertex
// grid variants: the bounding box, cell size, grid dimensions, and the
// CSR row-pointer array. Concrete item storage (segment refs or vertex
// ids) lives in the embedding type.
type cellGrid struct {
	box      bbox
	cellSize float64
	gridW    int
	gridH    int
	cellStart []int
	maxRing  int
}

func newCellGrid(box bbox, cellSize float64, maxRing int) (*cellGrid, error) {
	if cellSize <= 0 {
		return nil, errors.New("spatial: cell size must be strictly positive")
	}
	gridW := gridDim(box.minX, box.maxX, cellSize)
	gridH := gridDim(box.minY, box.maxY, cellSize)
	return &cellGrid{
		box:      box,
		cellSize: cellSize,
		gridW:    gridW,
		gridH:    gridH,
		maxRing:  maxRing,
	}, nil
}

func gridDim(lo, hi, cellSize float64) int {
	w := int(math.Ceil((hi - lo) / cellSize))
	if w < 1 {
		w = 1
	}
	return w
}

// cellOf returns the (cx, cy) grid cell containing (x, y), clamped to the
// valid grid range.
func (g *cellGrid) cellOf(x, y float64) (cx, cy int) {
	cx = int((x - g.box.minX) / g.cellSize)
	cy = int((y - g.box.minY) / g.cellSize)
	if cx < 0 {
		cx = 0
	}
	if cx >= g.gridW {
		cx = g.gridW - 1
	}
	if cy < 0 {
		cy = 0
	}
	if cy >= g.gridH {
		cy = g.gridH - 1
	}
	return cx, cy
}

func (g *cellGrid) cellIndex(cx, cy int) int { return cy*g.gridW + cx }

func (g *cellGrid) numCells() int { return g.gridW * g.gridH }

// ringCells invokes visit for every in-bounds cell at Chebyshev distance
// exactly r from (cx0, cy0). Ring 0 is just the center cell.
func (g *cellGrid) ringCells(cx0, cy0, r int, visit func(cx, cy int)) {
	if r == 0 {
		if cx0 >= 0 && cx0 < g.gridW && cy0 >= 0 && cy0 < g.gridH {
			visit(cx0, cy0)
		}
		return
	}
	for dx := -r; dx <= r; dx++ {
		top := cy0 - r
		bottom := cy0 + r
		cx := cx0 + dx
		if cx >= 0 && cx < g.gridW {
			if top >= 0 && top < g.gridH {
				visit(cx, top)
			}
			if bottom >= 0 && bottom < g.gridH {
				visit(cx, bottom)
			}
		}
	}
	for dy := -r + 1; dy <= r-1; dy++ {
		left := cx0 - r
		right := cx0 + r
		cy := cy0 + dy
		if cy >= 0 && cy < g.gridH {
			if left >= 0 && left < g.gridW {
				visit(left, cy)
			}
			if right >= 0 && right < g.gridW {
				visit(right, cy)
			}
		}
	}
}
