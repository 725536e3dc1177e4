package graph

import "github.com/pkg/errors"

// VertexStore holds parallel projected-plane coordinates for every
// vertex, used by the A* heuristic and by reconstruction. Its length
// always equals the owning graph's V.
type VertexStore struct {
	x []float64
	y []float64
}

// NewVertexStore builds a VertexStore from parallel x/y arrays. Fails
// with an argument error if the arrays are of mismatched length.
func NewVertexStore(x, y []float64) (*VertexStore, error) {
	if len(x) != len(y) {
		return nil, errors.Errorf("graph: NewVertexStore: mismatched array lengths: %d x, %d y", len(x), len(y))
	}
	return &VertexStore{x: x, y: y}, nil
}

// Len returns the number of vertices held.
func (vs *VertexStore) Len() int { return len(vs.x) }

// XY returns the projected coordinates of vertex v.
func (vs *VertexStore) XY(v int) (x, y float64) { return vs.x[v], vs.y[v] }
