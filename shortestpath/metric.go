package shortestpath

import (
	"github.com/arybakin/routeweave/edgeattrs"
	"github.com/arybakin/routeweave/graph"
)

// Metric selects which edge attribute column is used as traversal cost.
type Metric int

const (
	// Distance costs edges by attrs.DistanceMeters.
	Distance Metric = iota
	// Time costs edges by attrs.TimeSeconds.
	Time
)

func (m Metric) String() string {
	switch m {
	case Distance:
		return "distance"
	case Time:
		return "time"
	default:
		return "unknown"
	}
}

// cost returns the traversal cost of edge id under metric m.
func cost(attrs *edgeattrs.Columns, m Metric, id graph.EdgeID) float64 {
	if m == Time {
		return attrs.TimeSeconds(int(id))
	}
	return attrs.DistanceMeters(int(id))
}
