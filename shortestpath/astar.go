package shortestpath

import (
	"math"

	"github.com/arybakin/routeweave/edgeattrs"
	"github.com/arybakin/routeweave/graph"
)

// heuristic returns h(v), an admissible estimate of remaining cost from v
// to goal under the given metric. For Distance it is the straight-line
// Euclidean distance. For Time it is that same distance divided by vmax,
// which must be a valid upper bound on traversal speed for the estimate
// to remain admissible.
func heuristic(vs *graph.VertexStore, metric Metric, v, goal int, vmax float64) float64 {
	vx, vy := vs.XY(v)
	gx, gy := vs.XY(goal)
	d := math.Hypot(vx-gx, vy-gy)
	if metric == Time {
		return d / vmax
	}
	return d
}

// AStar runs a point-to-point A* search from source to goal, relaxing
// edges by the given metric's cost and prioritizing the open set by
// f-score = g-score + heuristic. It terminates as soon as goal is popped,
// and is guaranteed to return the same optimal cost as Dijkstra whenever
// the heuristic is admissible.
//
// vs supplies planar vertex coordinates for the heuristic and must not be
// nil. For the Time metric, vmax must be a strictly positive upper bound
// on traversal speed (meters/second); for Distance it is unused.
func AStar(g *graph.Graph, attrs *edgeattrs.Columns, vs *graph.VertexStore, metric Metric, source, goal int, vmax float64) (*Route, error) {
	if vs == nil {
		return nil, &ArgumentError{Op: "AStar", Msg: "vertex store is required"}
	}
	if source < 0 || source >= g.V() {
		return nil, &ArgumentError{Op: "AStar", Msg: "source vertex out of range"}
	}
	if goal < 0 || goal >= g.V() {
		return nil, &ArgumentError{Op: "AStar", Msg: "goal vertex out of range"}
	}
	if metric == Time && vmax <= 0 {
		return nil, &ArgumentError{Op: "AStar", Msg: "vmax must be strictly positive for the time metric"}
	}

	gScore := make([]float64, g.V())
	parentEdge := make([]graph.EdgeID, g.V())
	visited := make([]bool, g.V())
	for v := range gScore {
		gScore[v] = math.Inf(1)
		parentEdge[v] = graph.NoEdgeID
	}
	gScore[source] = 0

	pq := newVertexPQ(g.V())
	pq.push(source, heuristic(vs, metric, source, goal, vmax))

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
			cand := gScore[v] + cost(attrs, metric, e)
			if cand < gScore[w] {
				gScore[w] = cand
				parentEdge[w] = e
				pq.push(w, cand+heuristic(vs, metric, w, goal, vmax))
			}
		}
	}

	if !visited[goal] {
		return notFound(source, goal, metric, AlgorithmAStar), nil
	}
	return &Route{
		Found:       true,
		StartVertex: source,
		GoalVertex:  goal,
		Metric:      metric,
		Algorithm:   AlgorithmAStar,
		TotalCost:   gScore[goal],
		EdgeIDs:     reconstructPath(g, parentEdge, source, goal),
	}, nil
}
