// Package routing assembles the lower-level graph, geometry, spatial
// index, shortest-path, reconstruction, and instruction packages into
// the end-to-end query this module exists to serve: given a compiled
// network and two (lat, lon) points, find a route, its polyline, and
// its turn-by-turn directions.
package routing

import (
	"github.com/pkg/errors"

	"github.com/arybakin/routeweave/compiler"
	"github.com/arybakin/routeweave/edgeattrs"
	"github.com/arybakin/routeweave/geometry"
	"github.com/arybakin/routeweave/geoproj"
	"github.com/arybakin/routeweave/graph"
	"github.com/arybakin/routeweave/spatial"
)

// Network is a compiled graph projected into a local planar frame and
// indexed for nearest-segment snapping: everything a Facade needs to
// answer lat/lon queries against one region.
type Network struct {
	Graph      *graph.Graph
	Attrs      *edgeattrs.Columns
	Geometry   *geometry.EdgeGeometry
	Vertices   *graph.VertexStore
	Projection *geoproj.Projection
	Snapper    *spatial.SegmentSnapper
}

// NewNetwork projects compiled's lon/lat degree output into planar
// meters about the mean of its vertex coordinates, builds a
// VertexStore over the projected vertices, and indexes the projected
// edge geometry for nearest-segment snapping.
func NewNetwork(compiled *compiler.Compiled, opts ...NetworkOption) (*Network, error) {
	if compiled == nil {
		return nil, &ArgumentError{Op: "NewNetwork", Msg: "compiled network is nil"}
	}
	cfg := defaultNetConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.cellSize <= 0 {
		return nil, &ArgumentError{Op: "NewNetwork", Msg: "cell size must be strictly positive"}
	}

	proj, err := geoproj.NewFromMean(compiled.VertexLat, compiled.VertexLon)
	if err != nil {
		return nil, errors.Wrap(err, "routing: NewNetwork")
	}

	vx, vy, err := proj.ProjectAll(compiled.VertexLat, compiled.VertexLon)
	if err != nil {
		return nil, errors.Wrap(err, "routing: NewNetwork")
	}
	vs, err := graph.NewVertexStore(vx, vy)
	if err != nil {
		return nil, errors.Wrap(err, "routing: NewNetwork")
	}

	// Geometry.FlatXY is lon/lat degrees (x=lon, y=lat); Forward takes
	// (lat, lon), so the flat arrays are passed y-then-x.
	gLon, gLat := compiled.Geometry.FlatXY()
	gx, gy, err := proj.ProjectAll(gLat, gLon)
	if err != nil {
		return nil, errors.Wrap(err, "routing: NewNetwork")
	}
	projGeom, err := geometry.NewFromFlat(compiled.Geometry.EdgeStart(), gx, gy)
	if err != nil {
		return nil, errors.Wrap(err, "routing: NewNetwork")
	}

	snapper, err := spatial.NewSegmentSnapper(compiled.Graph, projGeom, cfg.cellSize, cfg.snapperOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "routing: NewNetwork")
	}

	return &Network{
		Graph:      compiled.Graph,
		Attrs:      compiled.Attrs,
		Geometry:   projGeom,
		Vertices:   vs,
		Projection: proj,
		Snapper:    snapper,
	}, nil
}
