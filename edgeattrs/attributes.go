// Package edgeattrs holds the routable graph's per-edge attribute
// columns: growable, parallel arrays indexed by edge id, kept in sync
// with the owning graph's edge count via an explicit SetEdgeCount call.
package edgeattrs

import (
	"math"

	"github.com/pkg/errors"
)

const noStreetName = ""

// Columns is a set of growable parallel arrays keyed by edge id:
// distance in meters, time in seconds, and an optional street name.
// Capacity grows geometrically; the valid index range is always
// [0, edgeCount).
type Columns struct {
	distanceMeters []float64
	timeSeconds    []float64
	streetName     []string
	hasStreetName  []bool
	edgeCount      int
}

// New returns an empty Columns store with room for at least capacityHint
// edges without reallocating.
func New(capacityHint int) *Columns {
	if capacityHint < 0 {
		capacityHint = 0
	}
	return &Columns{
		distanceMeters: make([]float64, 0, capacityHint),
		timeSeconds:    make([]float64, 0, capacityHint),
		streetName:     make([]string, 0, capacityHint),
		hasStreetName:  make([]bool, 0, capacityHint),
		edgeCount:      0,
	}
}

// EdgeCount returns the number of valid edge slots.
func (c *Columns) EdgeCount() int { return c.edgeCount }

// EnsureCapacity doubles backing storage until at least n slots fit
// without reallocation. It never shrinks capacity and does not change
// EdgeCount.
func (c *Columns) EnsureCapacity(n int) {
	if cap(c.distanceMeters) >= n {
		return
	}
	newCap := cap(c.distanceMeters)
	if newCap == 0 {
		newCap = 1
	}
	for newCap < n {
		newCap *= 2
	}
	c.distanceMeters = growFloat64(c.distanceMeters, newCap)
	c.timeSeconds = growFloat64(c.timeSeconds, newCap)
	c.streetName = growString(c.streetName, newCap)
	c.hasStreetName = growBool(c.hasStreetName, newCap)
}

func growFloat64(s []float64, newCap int) []float64 {
	grown := make([]float64, len(s), newCap)
	copy(grown, s)
	return grown
}

func growString(s []string, newCap int) []string {
	grown := make([]string, len(s), newCap)
	copy(grown, s)
	return grown
}

func growBool(s []bool, newCap int) []bool {
	grown := make([]bool, len(s), newCap)
	copy(grown, s)
	return grown
}

// SetEdgeCount expands the valid index range (and backing capacity, if
// needed) to n. It never shrinks the valid range; calling it with n less
// than or equal to the current edge count is a no-op.
func (c *Columns) SetEdgeCount(n int) {
	if n <= c.edgeCount {
		return
	}
	c.EnsureCapacity(n)
	c.distanceMeters = c.distanceMeters[:n]
	c.timeSeconds = c.timeSeconds[:n]
	c.streetName = c.streetName[:n]
	c.hasStreetName = c.hasStreetName[:n]
	c.edgeCount = n
}

func (c *Columns) validateID(op string, id int) error {
	if id < 0 || id >= c.edgeCount {
		return errors.Errorf("edgeattrs: %s: edge id %d out of range [0, %d)", op, id, c.edgeCount)
	}
	return nil
}

// SetDistanceMeters sets distanceMeters[id]. Rejects negative or NaN
// values, and ids outside [0, EdgeCount).
func (c *Columns) SetDistanceMeters(id int, meters float64) error {
	if err := c.validateID("SetDistanceMeters", id); err != nil {
		return err
	}
	if math.IsNaN(meters) || meters < 0 {
		return errors.Errorf("edgeattrs: SetDistanceMeters: value must be non-negative and not NaN, got %v", meters)
	}
	c.distanceMeters[id] = meters
	return nil
}

// DistanceMeters returns distanceMeters[id]. Panics on an out-of-range id,
// which is treated as a caller state error rather than recoverable input.
func (c *Columns) DistanceMeters(id int) float64 {
	if id < 0 || id >= c.edgeCount {
		panic(errors.Errorf("edgeattrs: DistanceMeters: edge id %d out of range [0, %d)", id, c.edgeCount))
	}
	return c.distanceMeters[id]
}

// SetTimeSeconds sets timeSeconds[id]. Rejects negative or NaN values,
// and ids outside [0, EdgeCount).
func (c *Columns) SetTimeSeconds(id int, seconds float64) error {
	if err := c.validateID("SetTimeSeconds", id); err != nil {
		return err
	}
	if math.IsNaN(seconds) || seconds < 0 {
		return errors.Errorf("edgeattrs: SetTimeSeconds: value must be non-negative and not NaN, got %v", seconds)
	}
	c.timeSeconds[id] = seconds
	return nil
}

// TimeSeconds returns timeSeconds[id]. Panics on an out-of-range id.
func (c *Columns) TimeSeconds(id int) float64 {
	if id < 0 || id >= c.edgeCount {
		panic(errors.Errorf("edgeattrs: TimeSeconds: edge id %d out of range [0, %d)", id, c.edgeCount))
	}
	return c.timeSeconds[id]
}

// SetStreetName sets the street name for id. An empty string clears it
// (street name absent).
func (c *Columns) SetStreetName(id int, name string) error {
	if err := c.validateID("SetStreetName", id); err != nil {
		return err
	}
	c.streetName[id] = name
	c.hasStreetName[id] = name != noStreetName
	return nil
}

// StreetName returns the street name for id and whether it is present.
func (c *Columns) StreetName(id int) (name string, ok bool) {
	if id < 0 || id >= c.edgeCount {
		panic(errors.Errorf("edgeattrs: StreetName: edge id %d out of range [0, %d)", id, c.edgeCount))
	}
	return c.streetName[id], c.hasStreetName[id]
}
