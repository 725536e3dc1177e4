package edgeattrs

import (
	"math"
	"testing"
)

func TestSetEdgeCountNeverShrinks(t *testing.T) {
	c := New(0)
	c.SetEdgeCount(5)
	if c.EdgeCount() != 5 {
		t.Fatalf("EdgeCount() = %d, want 5", c.EdgeCount())
	}
	c.SetEdgeCount(3)
	if c.EdgeCount() != 5 {
		t.Fatalf("EdgeCount() should not shrink, got %d", c.EdgeCount())
	}
}

func TestDistanceAndTimeRoundTrip(t *testing.T) {
	c := New(2)
	c.SetEdgeCount(2)
	if err := c.SetDistanceMeters(0, 12.5); err != nil {
		t.Fatal(err)
	}
	if err := c.SetTimeSeconds(0, 3.2); err != nil {
		t.Fatal(err)
	}
	if got := c.DistanceMeters(0); got != 12.5 {
		t.Errorf("DistanceMeters(0) = %v, want 12.5", got)
	}
	if got := c.TimeSeconds(0); got != 3.2 {
		t.Errorf("TimeSeconds(0) = %v, want 3.2", got)
	}
}

func TestRejectsNegativeAndNaN(t *testing.T) {
	c := New(1)
	c.SetEdgeCount(1)
	if err := c.SetDistanceMeters(0, -1); err == nil {
		t.Error("expected error for negative distance")
	}
	if err := c.SetDistanceMeters(0, math.NaN()); err == nil {
		t.Error("expected error for NaN distance")
	}
	if err := c.SetTimeSeconds(0, -1); err == nil {
		t.Error("expected error for negative time")
	}
}

func TestOutOfRangeID(t *testing.T) {
	c := New(1)
	c.SetEdgeCount(1)
	if err := c.SetDistanceMeters(5, 1.0); err == nil {
		t.Error("expected error for out-of-range id")
	}
}

func TestStreetNamePresenceAbsence(t *testing.T) {
	c := New(2)
	c.SetEdgeCount(2)
	if err := c.SetStreetName(0, "Main St"); err != nil {
		t.Fatal(err)
	}
	name, ok := c.StreetName(0)
	if !ok || name != "Main St" {
		t.Errorf("StreetName(0) = (%q, %v), want (\"Main St\", true)", name, ok)
	}
	name, ok = c.StreetName(1)
	if ok || name != "" {
		t.Errorf("StreetName(1) should be absent, got (%q, %v)", name, ok)
	}
}

func TestEnsureCapacityGrowsGeometrically(t *testing.T) {
	c := New(1)
	before := cap(c.distanceMeters)
	c.EnsureCapacity(100)
	after := cap(c.distanceMeters)
	if after < 100 {
		t.Fatalf("expected capacity >= 100, got %d", after)
	}
	if after == before {
		t.Fatalf("expected capacity to grow")
	}
}
