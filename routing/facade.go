package routing

import (
	"math"

	"github.com/arybakin/routeweave/edgeattrs"
	"github.com/arybakin/routeweave/graph"
	"github.com/arybakin/routeweave/instructions"
	"github.com/arybakin/routeweave/reconstruct"
	"github.com/arybakin/routeweave/shortestpath"
	"github.com/arybakin/routeweave/spatial"
)

// Facade is the vertex-to-vertex and lat/lon query entry point over one
// Network. It offers the four named {Distance, Time} x {Dijkstra, A*}
// combinations as its Dijkstra/AStar methods parametrized by metric,
// plus the end-to-end lat/lon pipeline in Query.
type Facade struct {
	net  *Network
	vmax float64
}

// NewFacade wraps net for querying. net must not be nil.
func NewFacade(net *Network, opts ...FacadeOption) (*Facade, error) {
	if net == nil {
		return nil, &ArgumentError{Op: "NewFacade", Msg: "network is nil"}
	}
	cfg := defaultFacadeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.vmax <= 0 {
		return nil, &ArgumentError{Op: "NewFacade", Msg: "vmax must be strictly positive"}
	}
	return &Facade{net: net, vmax: cfg.vmax}, nil
}

// Dijkstra finds the shortest vertex-to-vertex path under metric using
// Dijkstra's algorithm.
func (f *Facade) Dijkstra(metric shortestpath.Metric, source, goal int) (*shortestpath.Route, error) {
	return shortestpath.Dijkstra(f.net.Graph, f.net.Attrs, metric, source, goal)
}

// AStar finds the shortest vertex-to-vertex path under metric using A*,
// with the facade's configured vmax bounding the TIME-metric heuristic.
func (f *Facade) AStar(metric shortestpath.Metric, source, goal int) (*shortestpath.Route, error) {
	return shortestpath.AStar(f.net.Graph, f.net.Attrs, f.net.Vertices, metric, source, goal, f.vmax)
}

// LatLon is a single geographic coordinate, in degrees.
type LatLon struct {
	Lat float64
	Lon float64
}

// QueryResult is the outcome of an end-to-end lat/lon query: whether a
// route was found, its total cost under the metric used to search for
// it, its polyline from the query's start point to its goal point, and
// the derived turn-by-turn instructions.
type QueryResult struct {
	Found        bool
	Metric       shortestpath.Metric
	TotalCost    float64
	Path         []LatLon
	Instructions []instructions.Instruction
}

// notFoundResult builds the canonical "no route" QueryResult for the
// given metric.
func notFoundResult(metric shortestpath.Metric) *QueryResult {
	return &QueryResult{Found: false, Metric: metric, TotalCost: math.Inf(1)}
}

// Query answers an end-to-end lat/lon routing request under the given
// metric: it snaps both endpoints onto the network's nearest segments,
// special-cases the two snaps landing on the same edge, and otherwise
// enumerates the four combinations of {start edge's from/to vertex} x
// {goal edge's from/to vertex}, running A* under metric for each and
// keeping the combination with the lowest partial-start + path +
// partial-goal total cost. A boundary partial edge's cost is its full
// edge cost under metric scaled by the fraction of the edge the query
// point cuts off, consistent with the compiler's constant-speed-per-edge
// assumption (time scales linearly with distance along one edge).
func (f *Facade) Query(startLat, startLon, goalLat, goalLon float64, metric shortestpath.Metric, opts ...instructions.Option) (*QueryResult, error) {
	sx, sy := f.net.Projection.Forward(startLat, startLon)
	gx, gy := f.net.Projection.Forward(goalLat, goalLon)

	startSnap, ok := f.net.Snapper.Snap(sx, sy)
	if !ok {
		return notFoundResult(metric), nil
	}
	goalSnap, ok := f.net.Snapper.Snap(gx, gy)
	if !ok {
		return notFoundResult(metric), nil
	}

	if startSnap.EdgeID == goalSnap.EdgeID {
		return f.sameEdgeResult(startSnap, goalSnap, metric, opts)
	}

	best, ok := f.bestEndpointCombination(startSnap, goalSnap, metric)
	if !ok {
		return notFoundResult(metric), nil
	}

	xs, ys := reconstruct.Reconstruct(
		f.net.Geometry,
		int(startSnap.EdgeID), startSnap.T, best.startEntryIsFromVertex,
		best.route.EdgeIDs,
		int(goalSnap.EdgeID), goalSnap.T, best.goalEntryIsFromVertex,
	)

	edgeIDs := make([]graph.EdgeID, 0, len(best.route.EdgeIDs)+2)
	edgeIDs = append(edgeIDs, startSnap.EdgeID)
	edgeIDs = append(edgeIDs, best.route.EdgeIDs...)
	edgeIDs = append(edgeIDs, goalSnap.EdgeID)

	return &QueryResult{
		Found:        true,
		Metric:       metric,
		TotalCost:    best.totalCost,
		Path:         f.toLatLon(xs, ys),
		Instructions: instructions.Generate(f.net.Geometry, f.net.Attrs, edgeIDs, opts...),
	}, nil
}

// sameEdgeResult handles the short-circuit case where both query points
// snap to the same edge: the route is the sub-polyline of that one
// edge between the two snap parameters, with no graph search at all.
func (f *Facade) sameEdgeResult(startSnap, goalSnap spatial.SegmentSnapResult, metric shortestpath.Metric, opts []instructions.Option) (*QueryResult, error) {
	cost := math.Abs(goalSnap.T-startSnap.T) * edgeCost(f.net.Attrs, metric, int(startSnap.EdgeID))

	xs, ys := reconstruct.SameEdge(f.net.Geometry, int(startSnap.EdgeID), startSnap.T, goalSnap.T)

	return &QueryResult{
		Found:        true,
		Metric:       metric,
		TotalCost:    cost,
		Path:         f.toLatLon(xs, ys),
		Instructions: instructions.Generate(f.net.Geometry, f.net.Attrs, []graph.EdgeID{startSnap.EdgeID}, opts...),
	}, nil
}

// endpointChoice is the winning combination found by
// bestEndpointCombination: which endpoint of each boundary edge the
// route entered/left through, the between-vertices Route, and its
// partial-aware total cost.
type endpointChoice struct {
	startEntryIsFromVertex bool
	goalEntryIsFromVertex  bool
	route                  *shortestpath.Route
	totalCost              float64
}

// bestEndpointCombination runs A* under metric over all four
// combinations of the start edge's endpoints and the goal edge's
// endpoints, and returns the one minimizing partialStart + pathCost +
// partialGoal. Reports found=false if none of the four combinations
// reach a vertex.
func (f *Facade) bestEndpointCombination(startSnap, goalSnap spatial.SegmentSnapResult, metric shortestpath.Metric) (endpointChoice, bool) {
	startEdgeCost := edgeCost(f.net.Attrs, metric, int(startSnap.EdgeID))
	goalEdgeCost := edgeCost(f.net.Attrs, metric, int(goalSnap.EdgeID))

	startCandidates := []struct {
		vertex     int
		isFromEdge bool
	}{
		{startSnap.FromVertex, true},
		{startSnap.ToVertex, false},
	}
	goalCandidates := []struct {
		vertex     int
		isFromEdge bool
	}{
		{goalSnap.FromVertex, true},
		{goalSnap.ToVertex, false},
	}

	best := endpointChoice{totalCost: math.Inf(1)}
	haveBest := false

	for _, sc := range startCandidates {
		partialStart := boundaryCost(startSnap.T, sc.isFromEdge, startEdgeCost)
		for _, gc := range goalCandidates {
			route, err := shortestpath.AStar(f.net.Graph, f.net.Attrs, f.net.Vertices, metric, sc.vertex, gc.vertex, f.vmax)
			if err != nil || !route.Found {
				continue
			}
			partialGoal := boundaryCost(goalSnap.T, gc.isFromEdge, goalEdgeCost)
			total := partialStart + route.TotalCost + partialGoal
			if total < best.totalCost {
				best = endpointChoice{
					startEntryIsFromVertex: sc.isFromEdge,
					goalEntryIsFromVertex:  gc.isFromEdge,
					route:                  route,
					totalCost:              total,
				}
				haveBest = true
			}
		}
	}
	return best, haveBest
}

// boundaryCost is the cost, under whichever metric edgeFullCost was
// computed in, of the portion of an edge from a query point at
// arc-length parameter t to the endpoint the route entered/left
// through: t*edgeFullCost to the from-endpoint, (1-t)*edgeFullCost to
// the to-endpoint.
func boundaryCost(t float64, isFromEdge bool, edgeFullCost float64) float64 {
	if isFromEdge {
		return t * edgeFullCost
	}
	return (1 - t) * edgeFullCost
}

// edgeCost returns edge id's full cost under metric.
func edgeCost(attrs *edgeattrs.Columns, metric shortestpath.Metric, id int) float64 {
	if metric == shortestpath.Time {
		return attrs.TimeSeconds(id)
	}
	return attrs.DistanceMeters(id)
}

// toLatLon inverse-projects a planar polyline back into geographic
// coordinates.
func (f *Facade) toLatLon(xs, ys []float64) []LatLon {
	out := make([]LatLon, len(xs))
	for i := range xs {
		lat, lon := f.net.Projection.Inverse(xs[i], ys[i])
		out[i] = LatLon{Lat: lat, Lon: lon}
	}
	return out
}
