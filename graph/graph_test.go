package graph

import (
	"math"
	"testing"
)

func TestEdgeIDDensity(t *testing.T) {
	g := New(4)
	ids := make([]EdgeID, 0, 4)
	for i := 0; i < 3; i++ {
		id, err := g.AddEdge(0, 1, 1.0)
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}
	for i, id := range ids {
		if int(id) != i {
			t.Errorf("edge %d: want id %d, got %d", i, i, id)
		}
		if g.EdgeByID(id).ID() != id {
			t.Errorf("EdgeByID(%d).ID() = %d, want %d", id, g.EdgeByID(id).ID(), id)
		}
	}
}

func TestAddEdgeValidatesVertices(t *testing.T) {
	g := New(3)
	if _, err := g.AddEdge(-1, 1, 1.0); err == nil {
		t.Error("expected error for negative vertex")
	}
	if _, err := g.AddEdge(0, 3, 1.0); err == nil {
		t.Error("expected error for out-of-range vertex")
	}
}

func TestAddEdgeValidatesWeight(t *testing.T) {
	g := New(2)
	if _, err := g.AddEdge(0, 1, -1.0); err == nil {
		t.Error("expected error for negative weight")
	}
	if _, err := g.AddEdge(0, 1, math.NaN()); err == nil {
		t.Error("expected error for NaN weight")
	}
}

func TestDetachedEdgeSentinelAndWriteOnce(t *testing.T) {
	e := NewEdge(0, 1, 2.0)
	if e.ID() != NoEdgeID {
		t.Fatalf("detached edge should have sentinel id, got %d", e.ID())
	}
	g1 := New(2)
	id, err := g1.InsertEdge(e)
	if err != nil {
		t.Fatal(err)
	}
	if id != 0 {
		t.Fatalf("first inserted edge should get id 0, got %d", id)
	}
	if e.ID() != 0 {
		t.Fatalf("edge's own id should now be 0, got %d", e.ID())
	}
	g2 := New(2)
	if _, err := g2.InsertEdge(e); err == nil {
		t.Fatal("expected argument error inserting an already-assigned edge into a second graph")
	}
}

func TestOutEdgesAndDegrees(t *testing.T) {
	g := New(3)
	e1, _ := g.AddEdge(0, 1, 1)
	e2, _ := g.AddEdge(0, 2, 1)
	g.AddEdge(1, 2, 1)

	out := g.OutEdges(0)
	if len(out) != 2 || out[0] != e1 || out[1] != e2 {
		t.Errorf("unexpected OutEdges(0): %v", out)
	}
	if g.Outdegree(0) != 2 {
		t.Errorf("Outdegree(0) = %d, want 2", g.Outdegree(0))
	}
	if g.Indegree(2) != 2 {
		t.Errorf("Indegree(2) = %d, want 2", g.Indegree(2))
	}
	if g.Indegree(0) != 0 {
		t.Errorf("Indegree(0) = %d, want 0", g.Indegree(0))
	}
}

func TestEdgeIterationOrder(t *testing.T) {
	g := New(3)
	g.AddEdge(0, 1, 1)
	g.AddEdge(1, 2, 1)
	g.AddEdge(0, 2, 1)
	for i, e := range g.Edges() {
		if int(e.ID()) != i {
			t.Errorf("edge at position %d has id %d", i, e.ID())
		}
	}
}

func TestReverse(t *testing.T) {
	g := New(3)
	g.AddEdge(0, 1, 5)
	g.AddEdge(1, 2, 7)

	rev := g.Reverse()
	if rev.V() != g.V() {
		t.Fatalf("reversed graph should preserve vertex count")
	}
	if rev.Outdegree(1) != 1 || rev.Outdegree(2) != 1 || rev.Outdegree(0) != 0 {
		t.Fatalf("reversed graph has unexpected outdegrees")
	}
	e := rev.EdgeByID(rev.OutEdges(2)[0])
	if e.From() != 2 || e.To() != 1 || e.Weight() != 7 {
		t.Errorf("reversed edge mismatch: %+v", e)
	}
}

func TestEdgeByIDOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range edge id")
		}
	}()
	g := New(2)
	g.EdgeByID(0)
}
