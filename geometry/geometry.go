// Package geometry implements the compressed-sparse-row polyline store
// keyed by edge id: for edge e, points live at indices
// [edgeStart[e], edgeStart[e+1]) inside flat x/y arrays.
package geometry

import "github.com/pkg/errors"

// EdgeGeometry is a CSR store of per-edge polylines. edgeStart has length
// E+1, is monotonically non-decreasing, starts at 0, and edgeStart[E]
// equals len(x) == len(y). Every edge has at least 2 points; the first
// and last point of an edge's polyline equal the coordinates of its
// from/to vertices, in whatever frame the store holds (lon/lat degrees as
// produced by the compiler, planar meters after projection).
type EdgeGeometry struct {
	edgeStart []int
	x         []float64
	y         []float64
}

// Builder accumulates edges' polylines in edge-id order and produces an
// immutable EdgeGeometry. It is the only supported way to construct a
// non-empty EdgeGeometry, since the CSR invariants are only guaranteed to
// hold if every edge appends exactly once, in id order.
type Builder struct {
	edgeStart []int
	x         []float64
	y         []float64
}

// NewBuilder returns an empty Builder with capacity hints for the total
// number of edges and points expected.
func NewBuilder(edgeCountHint, pointCountHint int) *Builder {
	edgeStart := make([]int, 1, edgeCountHint+1)
	edgeStart[0] = 0
	return &Builder{
		edgeStart: edgeStart,
		x:         make([]float64, 0, pointCountHint),
		y:         make([]float64, 0, pointCountHint),
	}
}

// AppendEdge appends the next edge's polyline. Edges must be appended in
// id order (edge 0 first, then 1, ...); the caller must supply at least 2
// points. Returns the id assigned to this edge (equal to the number of
// edges appended so far, before this call).
func (b *Builder) AppendEdge(xs, ys []float64) (int, error) {
	if len(xs) != len(ys) {
		return 0, errors.Errorf("geometry: AppendEdge: mismatched array lengths: %d x, %d y", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return 0, errors.Errorf("geometry: AppendEdge: edge must have at least 2 points, got %d", len(xs))
	}
	id := len(b.edgeStart) - 1
	b.x = append(b.x, xs...)
	b.y = append(b.y, ys...)
	b.edgeStart = append(b.edgeStart, len(b.x))
	return id, nil
}

// Build finalizes the CSR store. Fails with a state error if the
// invariant edgeStart[len-1] == len(x) == len(y) does not hold, which
// would indicate a bug in the builder rather than caller misuse.
func (b *Builder) Build() (*EdgeGeometry, error) {
	if b.edgeStart[len(b.edgeStart)-1] != len(b.x) || len(b.x) != len(b.y) {
		return nil, errors.New("geometry: Build: internal inconsistency: edgeStart does not match point array length")
	}
	return &EdgeGeometry{edgeStart: b.edgeStart, x: b.x, y: b.y}, nil
}

// NewFromFlat builds an EdgeGeometry directly from a CSR row-pointer
// array and flat coordinate arrays, validating the same invariants Build
// checks. It exists for callers that reproject an existing EdgeGeometry's
// points in bulk — e.g. the routing façade turning the compiler's
// lon/lat degree output into planar meters — without replaying every
// edge's AppendEdge call.
func NewFromFlat(edgeStart []int, x, y []float64) (*EdgeGeometry, error) {
	if len(x) != len(y) {
		return nil, errors.Errorf("geometry: NewFromFlat: mismatched array lengths: %d x, %d y", len(x), len(y))
	}
	if len(edgeStart) == 0 || edgeStart[0] != 0 {
		return nil, errors.New("geometry: NewFromFlat: edgeStart must be non-empty and start at 0")
	}
	if edgeStart[len(edgeStart)-1] != len(x) {
		return nil, errors.New("geometry: NewFromFlat: edgeStart does not match point array length")
	}
	return &EdgeGeometry{edgeStart: edgeStart, x: x, y: y}, nil
}

// EdgeCount returns the number of edges in the store.
func (g *EdgeGeometry) EdgeCount() int {
	if len(g.edgeStart) == 0 {
		return 0
	}
	return len(g.edgeStart) - 1
}

// PointCount returns the number of points on edge id's polyline.
func (g *EdgeGeometry) PointCount(id int) int {
	return g.edgeStart[id+1] - g.edgeStart[id]
}

// Point returns the i-th point (0-indexed) of edge id's polyline.
func (g *EdgeGeometry) Point(id, i int) (x, y float64) {
	off := g.edgeStart[id] + i
	return g.x[off], g.y[off]
}

// Points returns the full polyline of edge id as parallel x/y slices.
// The caller must not mutate the returned slices.
func (g *EdgeGeometry) Points(id int) (xs, ys []float64) {
	start, end := g.edgeStart[id], g.edgeStart[id+1]
	return g.x[start:end], g.y[start:end]
}

// EdgeStart exposes the CSR row-pointer array directly, for callers (such
// as the spatial index) that need to translate a flat point index back
// into an edge id and segment offset.
func (g *EdgeGeometry) EdgeStart() []int { return g.edgeStart }

// FlatXY exposes the flat coordinate arrays directly, for callers that
// build their own index over the point cloud without per-edge copies.
func (g *EdgeGeometry) FlatXY() (x, y []float64) { return g.x, g.y }
