package shortestpath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/arybakin/routeweave/edgeattrs"
	"github.com/arybakin/routeweave/graph"
)

// buildTriangle constructs scenario A from the specification: three
// vertices at (0,0), (5,0), (10,0), edges 0->1 (d=5,t=5), 1->2 (d=5,t=5),
// 0->2 (d=9,t=20).
func buildTriangle(t *testing.T) (*graph.Graph, *edgeattrs.Columns, *graph.VertexStore) {
	t.Helper()
	g := graph.New(3)
	attrs := edgeattrs.New(3)

	e01, err := g.AddEdge(0, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	e12, err := g.AddEdge(1, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	e02, err := g.AddEdge(0, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	attrs.SetEdgeCount(g.E())
	must(t, attrs.SetDistanceMeters(int(e01), 5))
	must(t, attrs.SetTimeSeconds(int(e01), 5))
	must(t, attrs.SetDistanceMeters(int(e12), 5))
	must(t, attrs.SetTimeSeconds(int(e12), 5))
	must(t, attrs.SetDistanceMeters(int(e02), 9))
	must(t, attrs.SetTimeSeconds(int(e02), 20))

	vs, err := graph.NewVertexStore([]float64{0, 5, 10}, []float64{0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	return g, attrs, vs
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func TestScenarioADijkstraDistance(t *testing.T) {
	g, attrs, _ := buildTriangle(t)
	route, err := Dijkstra(g, attrs, Distance, 0, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !route.Found || route.TotalCost != 9 {
		t.Fatalf("want found cost 9, got found=%v cost=%v", route.Found, route.TotalCost)
	}
	if len(route.EdgeIDs) != 1 || route.EdgeIDs[0] != 2 {
		t.Errorf("want single edge [e_02], got %v", route.EdgeIDs)
	}
}

func TestScenarioADijkstraTime(t *testing.T) {
	g, attrs, _ := buildTriangle(t)
	route, err := Dijkstra(g, attrs, Time, 0, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !route.Found || route.TotalCost != 10 {
		t.Fatalf("want found cost 10, got found=%v cost=%v", route.Found, route.TotalCost)
	}
	if len(route.EdgeIDs) != 2 || route.EdgeIDs[0] != 0 || route.EdgeIDs[1] != 1 {
		t.Errorf("want [e_01, e_12], got %v", route.EdgeIDs)
	}
}

func TestScenarioAAStarDistanceMatchesDijkstra(t *testing.T) {
	g, attrs, vs := buildTriangle(t)
	route, err := AStar(g, attrs, vs, Distance, 0, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !route.Found || route.TotalCost != 9 {
		t.Fatalf("want found cost 9, got found=%v cost=%v", route.Found, route.TotalCost)
	}
}

func TestScenarioAAStarTimeMatchesDijkstra(t *testing.T) {
	g, attrs, vs := buildTriangle(t)
	route, err := AStar(g, attrs, vs, Time, 0, 2, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !route.Found || route.TotalCost != 10 {
		t.Fatalf("want found cost 10, got found=%v cost=%v", route.Found, route.TotalCost)
	}
}

func TestAStarRequiresVertexStore(t *testing.T) {
	g, attrs, _ := buildTriangle(t)
	if _, err := AStar(g, attrs, nil, Distance, 0, 2, 1); err == nil {
		t.Fatal("expected error when vertex store is nil")
	}
}

func TestAStarTimeRequiresPositiveVmax(t *testing.T) {
	g, attrs, vs := buildTriangle(t)
	if _, err := AStar(g, attrs, vs, Time, 0, 2, 0); err == nil {
		t.Fatal("expected error for non-positive vmax with time metric")
	}
	if _, err := AStar(g, attrs, vs, Time, 0, 2, -5); err == nil {
		t.Fatal("expected error for negative vmax with time metric")
	}
}

func TestSameStartAndGoalIsTrivial(t *testing.T) {
	g, attrs, vs := buildTriangle(t)
	route, err := Dijkstra(g, attrs, Distance, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !route.Found || route.TotalCost != 0 || len(route.EdgeIDs) != 0 {
		t.Errorf("trivial route should be found, cost 0, no edges; got %+v", route)
	}
	route2, err := AStar(g, attrs, vs, Distance, 1, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !route2.Found || route2.TotalCost != 0 || len(route2.EdgeIDs) != 0 {
		t.Errorf("trivial A* route should be found, cost 0, no edges; got %+v", route2)
	}
}

func TestUnreachableGoal(t *testing.T) {
	g := graph.New(2)
	attrs := edgeattrs.New(0)
	attrs.SetEdgeCount(0)
	route, err := Dijkstra(g, attrs, Distance, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if route.Found || !math.IsInf(route.TotalCost, 1) || len(route.EdgeIDs) != 0 {
		t.Errorf("unreachable goal should report not found, +Inf cost, no edges; got %+v", route)
	}
}

// buildRandomGraph produces a random connected-ish weighted digraph for
// property-based comparisons between Dijkstra and A*.
func buildRandomGraph(t *testing.T, seed int64, n, extraEdges int) (*graph.Graph, *edgeattrs.Columns, *graph.VertexStore) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	g := graph.New(n)
	attrs := edgeattrs.New(n * 2)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = rng.Float64() * 1000
		ys[i] = rng.Float64() * 1000
	}
	// Ensure connectivity with a chain 0->1->2->...->n-1.
	addEdge := func(v, w int) {
		id, err := g.AddEdge(v, w, 0)
		if err != nil {
			t.Fatal(err)
		}
		attrs.SetEdgeCount(g.E())
		d := math.Hypot(xs[v]-xs[w], ys[v]-ys[w]) + 1
		must(t, attrs.SetDistanceMeters(int(id), d))
		must(t, attrs.SetTimeSeconds(int(id), d/10))
	}
	for i := 0; i < n-1; i++ {
		addEdge(i, i+1)
	}
	for i := 0; i < extraEdges; i++ {
		v := rng.Intn(n)
		w := rng.Intn(n)
		if v == w {
			continue
		}
		addEdge(v, w)
	}
	vs, err := graph.NewVertexStore(xs, ys)
	if err != nil {
		t.Fatal(err)
	}
	return g, attrs, vs
}

func TestDijkstraMatchesAStarRandomized(t *testing.T) {
	const eps = 1e-6
	for seed := int64(0); seed < 20; seed++ {
		g, attrs, vs := buildRandomGraph(t, seed, 30, 40)
		for pair := 0; pair < 10; pair++ {
			rng := rand.New(rand.NewSource(seed*1000 + int64(pair)))
			s := rng.Intn(g.V())
			gl := rng.Intn(g.V())
			for _, metric := range []Metric{Distance, Time} {
				dRoute, err := Dijkstra(g, attrs, metric, s, gl)
				if err != nil {
					t.Fatal(err)
				}
				var vmax float64 = 1
				if metric == Time {
					vmax = 50
				}
				aRoute, err := AStar(g, attrs, vs, metric, s, gl, vmax)
				if err != nil {
					t.Fatal(err)
				}
				if dRoute.Found != aRoute.Found {
					t.Fatalf("seed=%d pair=%d metric=%v: found mismatch: dijkstra=%v astar=%v", seed, pair, metric, dRoute.Found, aRoute.Found)
				}
				if dRoute.Found {
					relEps := eps * math.Max(1, dRoute.TotalCost)
					if math.Abs(dRoute.TotalCost-aRoute.TotalCost) > relEps {
						t.Fatalf("seed=%d pair=%d metric=%v: cost mismatch: dijkstra=%v astar=%v", seed, pair, metric, dRoute.TotalCost, aRoute.TotalCost)
					}
				}
			}
		}
	}
}

func TestPathIntegrity(t *testing.T) {
	g, attrs, _ := buildRandomGraph(t, 42, 15, 20)
	for s := 0; s < g.V(); s++ {
		for gl := 0; gl < g.V(); gl++ {
			route, err := Dijkstra(g, attrs, Distance, s, gl)
			if err != nil {
				t.Fatal(err)
			}
			if !route.Found {
				continue
			}
			if len(route.EdgeIDs) == 0 {
				if s != gl {
					t.Errorf("empty path for s=%d goal=%d but they differ", s, gl)
				}
				continue
			}
			if g.EdgeByID(route.EdgeIDs[0]).From() != s {
				t.Errorf("first edge does not start at source for s=%d goal=%d", s, gl)
			}
			for i := 0; i+1 < len(route.EdgeIDs); i++ {
				if g.EdgeByID(route.EdgeIDs[i]).To() != g.EdgeByID(route.EdgeIDs[i+1]).From() {
					t.Errorf("path discontinuity at index %d for s=%d goal=%d", i, s, gl)
				}
			}
			last := route.EdgeIDs[len(route.EdgeIDs)-1]
			if g.EdgeByID(last).To() != gl {
				t.Errorf("last edge does not end at goal for s=%d goal=%d", s, gl)
			}
			sum := 0.0
			for _, e := range route.EdgeIDs {
				sum += attrs.DistanceMeters(int(e))
			}
			if math.Abs(sum-route.TotalCost) > 1e-6 {
				t.Errorf("sum of edge distances %v does not match total cost %v", sum, route.TotalCost)
			}
		}
	}
}
