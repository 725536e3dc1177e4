package shortestpath

import (
	"math"

	"github.com/arybakin/routeweave/graph"
)

// Algorithm names the search driver that produced a Route.
type Algorithm string

const (
	AlgorithmDijkstra Algorithm = "dijkstra"
	AlgorithmAStar    Algorithm = "astar"
)

// Route is an immutable result of a shortest-path search: whether a path
// was found, its endpoints, the metric and algorithm used, its total
// cost, and the sequence of edge ids in traversal order. EdgeIDs is empty
// when StartVertex == GoalVertex, and empty with TotalCost == +Inf when
// the goal is unreachable.
type Route struct {
	Found       bool
	StartVertex int
	GoalVertex  int
	Metric      Metric
	Algorithm   Algorithm
	TotalCost   float64
	EdgeIDs     []graph.EdgeID
}

// notFound builds the canonical "no path" result for the given query.
func notFound(start, goal int, m Metric, alg Algorithm) *Route {
	return &Route{
		Found:       false,
		StartVertex: start,
		GoalVertex:  goal,
		Metric:      m,
		Algorithm:   alg,
		TotalCost:   math.Inf(1),
		EdgeIDs:     nil,
	}
}

// reconstructPath walks parentEdge from goal back to source, pushing edge
// ids, then reverses them into traversal order. The sentinel NoEdgeID at
// any vertex on the walk other than the source is a state error: it means
// the vertex was reported reachable but has no recorded predecessor.
func reconstructPath(g *graph.Graph, parentEdge []graph.EdgeID, source, goal int) []graph.EdgeID {
	if source == goal {
		return nil
	}
	stack := make([]graph.EdgeID, 0, 8)
	v := goal
	for v != source {
		e := parentEdge[v]
		if e == graph.NoEdgeID {
			panic(&StateError{Op: "reconstructPath", Msg: "reachable vertex has sentinel parent edge"})
		}
		stack = append(stack, e)
		v = g.EdgeByID(e).From()
	}
	edges := make([]graph.EdgeID, len(stack))
	for i, e := range stack {
		edges[len(stack)-1-i] = e
	}
	return edges
}
