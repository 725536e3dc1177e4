package instructions

import (
	"math"
	"testing"

	"github.com/arybakin/routeweave/edgeattrs"
	"github.com/arybakin/routeweave/geometry"
	"github.com/arybakin/routeweave/graph"
)

// buildFixture builds a geometry+attrs pair for the given edges, each
// described by its polyline points, distance, and street name (empty
// string means absent).
type edgeSpec struct {
	xs, ys   []float64
	distance float64
	street   string
}

func buildFixture(t *testing.T, specs []edgeSpec) (*geometry.EdgeGeometry, *edgeattrs.Columns, []graph.EdgeID) {
	t.Helper()
	b := geometry.NewBuilder(len(specs), len(specs)*2)
	attrs := edgeattrs.New(len(specs))
	ids := make([]graph.EdgeID, len(specs))
	for i, s := range specs {
		id, err := b.AppendEdge(s.xs, s.ys)
		if err != nil {
			t.Fatal(err)
		}
		attrs.SetEdgeCount(id + 1)
		if err := attrs.SetDistanceMeters(id, s.distance); err != nil {
			t.Fatal(err)
		}
		if s.street != "" {
			if err := attrs.SetStreetName(id, s.street); err != nil {
				t.Fatal(err)
			}
		}
		ids[i] = graph.EdgeID(id)
	}
	geom, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return geom, attrs, ids
}

func TestGenerateEmptyRoute(t *testing.T) {
	if got := Generate(nil, nil, nil); got != nil {
		t.Errorf("want nil for empty route, got %v", got)
	}
}

func TestGenerateSingleEdgeStartThenArrive(t *testing.T) {
	geom, attrs, ids := buildFixture(t, []edgeSpec{
		{xs: []float64{0, 10}, ys: []float64{0, 0}, distance: 10, street: "Main St"},
	})
	got := Generate(geom, attrs, ids)
	want := []Instruction{
		{Maneuver: Start, StreetName: "Main St", DistanceMeters: 0},
		{Maneuver: Arrive, StreetName: "Main St", DistanceMeters: 10},
	}
	assertInstructions(t, want, got)
}

func TestGenerateStreetNameChangeContinuesWhenAngleShallow(t *testing.T) {
	// Two collinear edges (0° turn), differing street names -> CONTINUE.
	geom, attrs, ids := buildFixture(t, []edgeSpec{
		{xs: []float64{0, 10}, ys: []float64{0, 0}, distance: 10, street: "First St"},
		{xs: []float64{10, 20}, ys: []float64{0, 0}, distance: 10, street: "Second St"},
	})
	got := Generate(geom, attrs, ids)
	want := []Instruction{
		{Maneuver: Start, StreetName: "First St", DistanceMeters: 0},
		{Maneuver: Continue, StreetName: "Second St", DistanceMeters: 10},
		{Maneuver: Arrive, StreetName: "Second St", DistanceMeters: 10},
	}
	assertInstructions(t, want, got)
}

func TestGenerateStreetNameChangeWithSharpTurnEmitsLeft(t *testing.T) {
	// First edge heads east; second turns 90 degrees north (left turn).
	geom, attrs, ids := buildFixture(t, []edgeSpec{
		{xs: []float64{0, 10}, ys: []float64{0, 0}, distance: 10, street: "First St"},
		{xs: []float64{10, 10}, ys: []float64{0, 10}, distance: 10, street: "Second St"},
	})
	got := Generate(geom, attrs, ids)
	if len(got) != 3 {
		t.Fatalf("want 3 instructions, got %d: %+v", len(got), got)
	}
	if got[1].Maneuver != Left {
		t.Errorf("want LEFT, got %v", got[1].Maneuver)
	}
}

func TestGenerateStreetNameChangeWithSharpTurnEmitsRight(t *testing.T) {
	// First edge heads east; second turns 90 degrees south (right turn).
	geom, attrs, ids := buildFixture(t, []edgeSpec{
		{xs: []float64{0, 10}, ys: []float64{0, 0}, distance: 10, street: "First St"},
		{xs: []float64{10, 10}, ys: []float64{0, -10}, distance: 10, street: "Second St"},
	})
	got := Generate(geom, attrs, ids)
	if len(got) != 3 {
		t.Fatalf("want 3 instructions, got %d: %+v", len(got), got)
	}
	if got[1].Maneuver != Right {
		t.Errorf("want RIGHT, got %v", got[1].Maneuver)
	}
}

func TestGenerateAbsentStreetNameNormalizesToSentinel(t *testing.T) {
	geom, attrs, ids := buildFixture(t, []edgeSpec{
		{xs: []float64{0, 10}, ys: []float64{0, 0}, distance: 10, street: ""},
	})
	got := Generate(geom, attrs, ids)
	if got[0].StreetName != UnnamedRoad {
		t.Errorf("want sentinel %q, got %q", UnnamedRoad, got[0].StreetName)
	}
}

func TestGenerateStreetNameComparisonIsCaseInsensitive(t *testing.T) {
	geom, attrs, ids := buildFixture(t, []edgeSpec{
		{xs: []float64{0, 10}, ys: []float64{0, 0}, distance: 10, street: "Main St"},
		{xs: []float64{10, 20}, ys: []float64{0, 0}, distance: 10, street: "MAIN ST"},
	})
	got := Generate(geom, attrs, ids)
	if len(got) != 2 {
		t.Fatalf("want START and ARRIVE only (no street change), got %d: %+v", len(got), got)
	}
	if got[1].Maneuver != Arrive || math.Abs(got[1].DistanceMeters-20) > 1e-9 {
		t.Errorf("want ARRIVE with accumulated distance 20, got %+v", got[1])
	}
}

func TestGenerateSharpBendOnSameStreetRequiresOptInAndSpamGuard(t *testing.T) {
	// Same street, sharp 90-degree bend, but accumulated distance (10m)
	// is under the default 120m spam guard: no KEEP_LEFT without opt-in
	// and none even with opt-in since the guard isn't met.
	geom, attrs, ids := buildFixture(t, []edgeSpec{
		{xs: []float64{0, 10}, ys: []float64{0, 0}, distance: 10, street: "Winding Rd"},
		{xs: []float64{10, 10}, ys: []float64{0, 10}, distance: 10, street: "Winding Rd"},
	})

	got := Generate(geom, attrs, ids)
	if len(got) != 2 {
		t.Fatalf("without opt-in want START/ARRIVE only, got %d: %+v", len(got), got)
	}

	got = Generate(geom, attrs, ids, WithSharpBendEmission(true))
	if len(got) != 2 {
		t.Fatalf("under spam guard want START/ARRIVE only, got %d: %+v", len(got), got)
	}
}

func TestGenerateSharpBendEmittedWhenSpamGuardMet(t *testing.T) {
	geom, attrs, ids := buildFixture(t, []edgeSpec{
		{xs: []float64{0, 200}, ys: []float64{0, 0}, distance: 200, street: "Winding Rd"},
		{xs: []float64{200, 200}, ys: []float64{0, 10}, distance: 10, street: "Winding Rd"},
	})
	got := Generate(geom, attrs, ids, WithSharpBendEmission(true))
	if len(got) != 3 {
		t.Fatalf("want START/KEEP_LEFT/ARRIVE, got %d: %+v", len(got), got)
	}
	if got[1].Maneuver != KeepLeft {
		t.Errorf("want KEEP_LEFT, got %v", got[1].Maneuver)
	}
	if math.Abs(got[1].DistanceMeters-200) > 1e-9 {
		t.Errorf("want accumulated distance 200, got %v", got[1].DistanceMeters)
	}
}

func assertInstructions(t *testing.T, want, got []Instruction) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("want %d instructions, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if want[i].Maneuver != got[i].Maneuver ||
			want[i].StreetName != got[i].StreetName ||
			math.Abs(want[i].DistanceMeters-got[i].DistanceMeters) > 1e-9 {
			t.Errorf("instruction %d: want %+v, got %+v", i, want[i], got[i])
		}
	}
}
