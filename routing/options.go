package routing

import "github.com/arybakin/routeweave/spatial"

// DefaultCellSize is the SegmentSnapper grid cell size, in meters, used
// when NewNetwork is not given WithCellSize. A city-block-scale cell
// keeps ring expansion shallow for typical snap queries without
// indexing every segment into one oversized cell.
const DefaultCellSize = 250.0

// DefaultVmax is the free-flow speed ceiling, in meters per second, used
// for the A* TIME-metric heuristic when NewFacade is not given WithVmax.
// It must be an upper bound on every edge's actual speed for the
// heuristic to remain admissible; 180 km/h comfortably exceeds this
// system's motorway default of 120 km/h.
const DefaultVmax = 50.0

// netConfig holds NewNetwork's options.
type netConfig struct {
	cellSize    float64
	snapperOpts []spatial.Option
}

// NetworkOption configures NewNetwork, following the functional-options
// idiom of LdDl-osm2ch/parser.go's NewParser(fileName string, options
// ...func(*Parser)).
type NetworkOption func(*netConfig)

func defaultNetConfig() netConfig {
	return netConfig{cellSize: DefaultCellSize}
}

// WithCellSize overrides the SegmentSnapper grid's cell size, in meters.
func WithCellSize(meters float64) NetworkOption {
	return func(c *netConfig) { c.cellSize = meters }
}

// WithMaxRing overrides the SegmentSnapper's ring-expansion bound,
// passed through to spatial.NewSegmentSnapper.
func WithMaxRing(n int) NetworkOption {
	return func(c *netConfig) { c.snapperOpts = append(c.snapperOpts, spatial.WithMaxRing(n)) }
}

// facadeConfig holds NewFacade's options.
type facadeConfig struct {
	vmax float64
}

// FacadeOption configures NewFacade.
type FacadeOption func(*facadeConfig)

func defaultFacadeConfig() facadeConfig {
	return facadeConfig{vmax: DefaultVmax}
}

// WithVmax overrides the free-flow speed ceiling used by the A*
// TIME-metric heuristic. Must be strictly positive.
func WithVmax(metersPerSecond float64) FacadeOption {
	return func(c *facadeConfig) { c.vmax = metersPerSecond }
}
