// Package graph implements the routable directed graph: dense-labeled
// vertices, sequentially-id'd directed edges held in an arena indexed by
// integer id rather than by pointer, and the outgoing adjacency lists used
// by the shortest-path engine.
package graph

import "math"

// EdgeID is a dense, sequential, write-once identifier assigned to an
// edge when it is inserted into a Graph. NoEdgeID is the sentinel value
// carried by an Edge that has not yet been inserted into any graph.
type EdgeID int

// NoEdgeID is the sentinel id of an Edge not yet owned by a Graph.
const NoEdgeID EdgeID = -1

// Edge is a directed edge from From to To. Edge ids are assigned by the
// Graph they are inserted into and are stable for the graph's lifetime;
// an Edge may belong to at most one Graph.
type Edge struct {
	id     EdgeID
	from   int
	to     int
	weight float64
}

// NewEdge constructs a detached edge with sentinel id NoEdgeID. It must be
// inserted into exactly one Graph via InsertEdge before its id is
// meaningful.
func NewEdge(from, to int, weight float64) *Edge {
	return &Edge{id: NoEdgeID, from: from, to: to, weight: weight}
}

// ID returns the edge's assigned id, or NoEdgeID if not yet inserted.
func (e *Edge) ID() EdgeID { return e.id }

// From returns the edge's source vertex.
func (e *Edge) From() int { return e.from }

// To returns the edge's destination vertex.
func (e *Edge) To() int { return e.to }

// Weight returns the edge's graph-topology weight. This system keeps it
// at 0 for all edges emitted by the compiler; traversal cost is taken
// from the edge attribute columns instead (see package edgeattrs).
func (e *Edge) Weight() float64 { return e.weight }

// Graph is a directed graph over densely labeled vertices 0..V-1, with
// edges referenced everywhere by dense integer id rather than by pointer.
// A Graph is built incrementally via AddEdge/InsertEdge and is intended to
// be frozen (read-only) once fully constructed; reads are safe for
// concurrent use once construction has stopped.
type Graph struct {
	v         int
	adjOut    [][]EdgeID
	indegree  []int
	edgesByID []*Edge
}

// New returns an empty graph over v vertices (0..v-1), with no edges.
func New(v int) *Graph {
	return &Graph{
		v:         v,
		adjOut:    make([][]EdgeID, v),
		indegree:  make([]int, v),
		edgesByID: make([]*Edge, 0, v),
	}
}

// V returns the number of vertices.
func (g *Graph) V() int { return g.v }

// E returns the number of edges currently in the graph.
func (g *Graph) E() int { return len(g.edgesByID) }

func (g *Graph) validateVertex(op string, v int) error {
	if v < 0 || v >= g.v {
		return &ArgumentError{Op: op, Msg: "vertex id out of range"}
	}
	return nil
}

// AddEdge validates its arguments, constructs a new edge from v to w with
// the given topology weight, inserts it, and returns its assigned id.
// Fails with an ArgumentError if v or w is out of range, or weight is
// negative or NaN.
func (g *Graph) AddEdge(v, w int, weight float64) (EdgeID, error) {
	if err := g.validateVertex("AddEdge", v); err != nil {
		return NoEdgeID, err
	}
	if err := g.validateVertex("AddEdge", w); err != nil {
		return NoEdgeID, err
	}
	if math.IsNaN(weight) || weight < 0 {
		return NoEdgeID, &ArgumentError{Op: "AddEdge", Msg: "weight must be non-negative and not NaN"}
	}
	return g.InsertEdge(NewEdge(v, w, weight))
}

// InsertEdge inserts a previously-constructed, detached Edge into the
// graph, assigning it the next sequential id. Fails with an ArgumentError
// if the edge's endpoints are out of range, its weight is invalid, or it
// has already been assigned to a graph (its id is not NoEdgeID).
func (g *Graph) InsertEdge(e *Edge) (EdgeID, error) {
	if e.id != NoEdgeID {
		return NoEdgeID, &ArgumentError{Op: "InsertEdge", Msg: "edge already assigned to a graph"}
	}
	if err := g.validateVertex("InsertEdge", e.from); err != nil {
		return NoEdgeID, err
	}
	if err := g.validateVertex("InsertEdge", e.to); err != nil {
		return NoEdgeID, err
	}
	if math.IsNaN(e.weight) || e.weight < 0 {
		return NoEdgeID, &ArgumentError{Op: "InsertEdge", Msg: "weight must be non-negative and not NaN"}
	}
	id := EdgeID(len(g.edgesByID))
	e.id = id
	g.edgesByID = append(g.edgesByID, e)
	g.adjOut[e.from] = append(g.adjOut[e.from], id)
	g.indegree[e.to]++
	return id, nil
}

// OutEdges returns the ids of edges leaving vertex v, in insertion order.
// The caller must not mutate the returned slice.
func (g *Graph) OutEdges(v int) []EdgeID {
	return g.adjOut[v]
}

// Outdegree returns the number of edges leaving vertex v.
func (g *Graph) Outdegree(v int) int {
	return len(g.adjOut[v])
}

// Indegree returns the number of edges arriving at vertex v.
func (g *Graph) Indegree(v int) int {
	return g.indegree[v]
}

// EdgeByID returns the edge with the given id. Panics if id is out of
// the dense [0, E) range, matching the "state error" treatment of an
// invariant violation that must never occur in correct caller code.
func (g *Graph) EdgeByID(id EdgeID) *Edge {
	if id < 0 || int(id) >= len(g.edgesByID) {
		panic(&StateError{Op: "EdgeByID", Msg: "edge id out of dense range"})
	}
	return g.edgesByID[id]
}

// Edges returns all edges in id order. The caller must not mutate the
// returned slice.
func (g *Graph) Edges() []*Edge {
	return g.edgesByID
}

// Reverse returns a new graph with every edge flipped (from/to swapped)
// and weights preserved. Edge ids in the reversed graph are reassigned
// densely in the same order as the original graph's edge iteration.
func (g *Graph) Reverse() *Graph {
	rev := New(g.v)
	for _, e := range g.edgesByID {
		if _, err := rev.AddEdge(e.to, e.from, e.weight); err != nil {
			// Unreachable: e's endpoints and weight were already validated
			// when it was inserted into g.
			panic(&StateError{Op: "Reverse", Msg: err.Error()})
		}
	}
	return rev
}
