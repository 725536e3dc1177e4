package shortestpath

import (
	"math"

	"github.com/arybakin/routeweave/edgeattrs"
	"github.com/arybakin/routeweave/graph"
)

// Dijkstra runs a single-source shortest-path search from source, relaxing
// edges by the given metric's cost, and stops as soon as goal is
// finalized. It returns a Route describing the path to goal, or a
// not-found Route if goal is unreachable. Fails with an ArgumentError if
// source or goal is out of range.
func Dijkstra(g *graph.Graph, attrs *edgeattrs.Columns, metric Metric, source, goal int) (*Route, error) {
	if source < 0 || source >= g.V() {
		return nil, &ArgumentError{Op: "Dijkstra", Msg: "source vertex out of range"}
	}
	if goal < 0 || goal >= g.V() {
		return nil, &ArgumentError{Op: "Dijkstra", Msg: "goal vertex out of range"}
	}

	distTo := make([]float64, g.V())
	parentEdge := make([]graph.EdgeID, g.V())
	visited := make([]bool, g.V())
	for v := range distTo {
		distTo[v] = math.Inf(1)
		parentEdge[v] = graph.NoEdgeID
	}
	distTo[source] = 0

	pq := newVertexPQ(g.V())
	pq.push(source, 0)

	for !pq.empty() {
		item := pq.popMin()
		v := item.vertex
		if visited[v] {
			continue
		}
		visited[v] = true
		if v == goal {
			break
		}
		for _, e := range g.OutEdges(v) {
			w := g.EdgeByID(e).To()
			if visited[w] {
				continue
			}
			cand := distTo[v] + cost(attrs, metric, e)
			if cand < distTo[w] {
				distTo[w] = cand
				parentEdge[w] = e
				pq.push(w, cand)
			}
		}
	}

	if !visited[goal] {
		return notFound(source, goal, metric, AlgorithmDijkstra), nil
	}
	return &Route{
		Found:       true,
		StartVertex: source,
		GoalVertex:  goal,
		Metric:      metric,
		Algorithm:   AlgorithmDijkstra,
		TotalCost:   distTo[goal],
		EdgeIDs:     reconstructPath(g, parentEdge, source, goal),
	}, nil
}
