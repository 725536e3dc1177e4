// Package compiler implements the three-pass reduction of an OSM
// extract into a compact routable graph: a dense vertex set, a
// directed Graph of sequential edge ids, the parallel EdgeAttributes
// columns (distance, time, street name), and the CSR EdgeGeometry
// polyline store, plus the per-vertex lat/lon arrays a caller projects
// into planar coordinates before routing.
package compiler

import (
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"

	"github.com/arybakin/routeweave/edgeattrs"
	"github.com/arybakin/routeweave/geometry"
	"github.com/arybakin/routeweave/graph"
)

// Compiled is the output of Compile: the routable graph, its edge
// attribute columns, its per-edge geometry, and the per-vertex
// coordinates, in original (unprojected) lat/lon degrees. Geometry's
// x/y are longitude/latitude degrees at this stage — a caller projects
// both VertexLat/VertexLon and Geometry into planar meters before
// running the spatial index or shortest-path engine (see package
// geoproj and the routing façade).
type Compiled struct {
	Graph     *graph.Graph
	Attrs     *edgeattrs.Columns
	Geometry  *geometry.EdgeGeometry
	VertexLat []float64
	VertexLon []float64
}

// pendingAttr holds an emitted edge's attributes until the final edge
// count is known, mirroring the teacher's "accumulate into a slice,
// commit in one pass" idiom (osm_prepare_ways.go's waysMedium).
type pendingAttr struct {
	distanceMeters float64
	timeSeconds    float64
	streetName     string
	hasStreetName  bool
}

// Compile reads filename and produces a Compiled network, dispatching
// to the osmxml or osmpbf scanner by extension.
func Compile(filename string, opts ...Option) (*Compiled, error) {
	return CompileSource(FileSource{Filename: filename}, opts...)
}

// CompileSource runs the three-pass compile against src, which must
// yield a fresh, rewound Scanner for each pass via NewScanner.
func CompileSource(src Source, opts ...Option) (*Compiled, error) {
	cfg := newConfig(opts)

	nodeLat, nodeLon, nodeIndex, err := pass1Nodes(src, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "pass 1: nodes")
	}

	vertexID, vertexLat, vertexLon, err := pass2Usage(src, cfg, nodeLat, nodeLon, nodeIndex)
	if err != nil {
		return nil, errors.Wrap(err, "pass 2: usage counting")
	}

	g := graph.New(len(vertexLat))
	gb := geometry.NewBuilder(len(vertexLat)*2, len(vertexLat)*4)
	pending, err := pass3Emit(src, cfg, nodeLat, nodeLon, nodeIndex, vertexID, g, gb)
	if err != nil {
		return nil, errors.Wrap(err, "pass 3: edge emission")
	}

	geom, err := gb.Build()
	if err != nil {
		return nil, &CompileError{Stage: "pass 3: edge emission", Msg: err.Error()}
	}
	if geom.EdgeCount() != g.E() {
		return nil, &CompileError{Stage: "pass 3: edge emission", Msg: "geometry edge count does not match graph edge count"}
	}

	attrs := edgeattrs.New(len(pending))
	attrs.SetEdgeCount(len(pending))
	for id, p := range pending {
		if err := attrs.SetDistanceMeters(id, p.distanceMeters); err != nil {
			return nil, &CompileError{Stage: "pass 3: edge emission", Msg: err.Error()}
		}
		if err := attrs.SetTimeSeconds(id, p.timeSeconds); err != nil {
			return nil, &CompileError{Stage: "pass 3: edge emission", Msg: err.Error()}
		}
		if p.hasStreetName {
			if err := attrs.SetStreetName(id, p.streetName); err != nil {
				return nil, &CompileError{Stage: "pass 3: edge emission", Msg: err.Error()}
			}
		}
	}

	return &Compiled{
		Graph:     g,
		Attrs:     attrs,
		Geometry:  geom,
		VertexLat: vertexLat,
		VertexLon: vertexLon,
	}, nil
}

// pass1Nodes records every <node>'s (osmId, lat, lon) in scan order.
// nodeIndex maps an osm node id to its position in nodeLat/nodeLon. A
// repeated node id is a fatal CompileError.
func pass1Nodes(src Source, cfg *config) (nodeLat, nodeLon []float64, nodeIndex map[osm.NodeID]int, err error) {
	if cfg.verbose {
		fmt.Print("compiler: pass 1 (nodes)... ")
	}
	st := time.Now()

	scanner, err := src.NewScanner()
	if err != nil {
		return nil, nil, nil, err
	}
	defer scanner.Close()

	nodeIndex = make(map[osm.NodeID]int)
	for scanner.Scan() {
		obj := scanner.Object()
		if obj.ObjectID().Type() != "node" {
			continue
		}
		node := obj.(*osm.Node)
		if _, dup := nodeIndex[node.ID]; dup {
			return nil, nil, nil, &CompileError{Stage: "pass 1: nodes", Msg: fmt.Sprintf("duplicate node id %d", node.ID)}
		}
		nodeIndex[node.ID] = len(nodeLat)
		nodeLat = append(nodeLat, node.Lat)
		nodeLon = append(nodeLon, node.Lon)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, nil, err
	}

	if cfg.verbose {
		fmt.Printf("%d nodes in %v\n", len(nodeLat), time.Since(st))
	}
	return nodeLat, nodeLon, nodeIndex, nil
}

// pass2Usage scans every routable <way>, marks its first and last node
// as endpoints, and increments a per-node use-count for every node it
// touches. A node becomes a routing vertex iff it is an endpoint or has
// use-count >= 2. Routing vertices are assigned dense ids in node-scan
// order.
func pass2Usage(src Source, cfg *config, nodeLat, nodeLon []float64, nodeIndex map[osm.NodeID]int) (vertexID map[osm.NodeID]int, vertexLat, vertexLon []float64, err error) {
	if cfg.verbose {
		fmt.Print("compiler: pass 2 (usage counting)... ")
	}
	st := time.Now()

	scanner, err := src.NewScanner()
	if err != nil {
		return nil, nil, nil, err
	}
	defer scanner.Close()

	isEndpoint := make(map[osm.NodeID]bool)
	useCount := make(map[osm.NodeID]int)
	for scanner.Scan() {
		obj := scanner.Object()
		if obj.ObjectID().Type() != "way" {
			continue
		}
		way := obj.(*osm.Way)
		if !routableWay(way) {
			continue
		}
		first := way.Nodes[0].ID
		last := way.Nodes[len(way.Nodes)-1].ID
		isEndpoint[first] = true
		isEndpoint[last] = true
		for _, nd := range way.Nodes {
			useCount[nd.ID]++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, nil, err
	}

	vertexID = make(map[osm.NodeID]int)
	// Iterate in node-scan order (nodeIndex values are that order's
	// positions) rather than map order, so vertex ids are deterministic
	// across runs over the same file.
	ordered := make([]osm.NodeID, len(nodeIndex))
	for id, idx := range nodeIndex {
		ordered[idx] = id
	}
	for _, id := range ordered {
		if isEndpoint[id] || useCount[id] >= 2 {
			idx := nodeIndex[id]
			vertexID[id] = len(vertexLat)
			vertexLat = append(vertexLat, nodeLat[idx])
			vertexLon = append(vertexLon, nodeLon[idx])
		}
	}

	if cfg.verbose {
		fmt.Printf("%d routing vertices in %v\n", len(vertexLat), time.Since(st))
	}
	return vertexID, vertexLat, vertexLon, nil
}

// routableWay reports whether way has at least 2 node refs and a
// highway tag in the closed RoutableHighways set.
func routableWay(way *osm.Way) bool {
	if len(way.Nodes) < 2 {
		return false
	}
	return isRoutable(way.Tags.Find("highway"))
}

// pass3Emit walks every routable way's node references, accumulating
// haversine distance and polyline geometry between consecutive routing
// vertices, and emits one or two directed edges per segment according
// to the way's oneway tag.
func pass3Emit(src Source, cfg *config, nodeLat, nodeLon []float64, nodeIndex map[osm.NodeID]int, vertexID map[osm.NodeID]int, g *graph.Graph, gb *geometry.Builder) ([]pendingAttr, error) {
	if cfg.verbose {
		fmt.Print("compiler: pass 3 (edge emission)... ")
	}
	st := time.Now()

	scanner, err := src.NewScanner()
	if err != nil {
		return nil, err
	}
	defer scanner.Close()

	var pending []pendingAttr

	for scanner.Scan() {
		obj := scanner.Object()
		if obj.ObjectID().Type() != "way" {
			continue
		}
		way := obj.(*osm.Way)
		if !routableWay(way) {
			continue
		}
		if err := emitWayEdges(way, nodeLat, nodeLon, nodeIndex, vertexID, g, gb, &pending); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if cfg.verbose {
		fmt.Printf("%d edges in %v\n", len(pending), time.Since(st))
	}
	return pending, nil
}

func emitWayEdges(way *osm.Way, nodeLat, nodeLon []float64, nodeIndex map[osm.NodeID]int, vertexID map[osm.NodeID]int, g *graph.Graph, gb *geometry.Builder, pending *[]pendingAttr) error {
	highway := way.Tags.Find("highway")
	speed := defaultSpeedMps(highway)
	if maxspeed := way.Tags.Find("maxspeed"); maxspeed != "" {
		if mps, ok := parseMaxspeed(maxspeed); ok && mps > 0 {
			speed = mps
		}
	}
	streetName := way.Tags.Find("name")

	onewayTag := way.Tags.Find("oneway")
	forwardOnly := onewayTag == "yes" || onewayTag == "true" || onewayTag == "1"
	reverseOnly := onewayTag == "-1"

	nodeLL := func(id osm.NodeID) (lat, lon float64, err error) {
		idx, ok := nodeIndex[id]
		if !ok {
			return 0, 0, &CompileError{Stage: "pass 3: edge emission", Msg: fmt.Sprintf("way %d references missing node %d", way.ID, id)}
		}
		return nodeLat[idx], nodeLon[idx], nil
	}

	// Find the first node reference that is a routing vertex, validating
	// every node reference scanned along the way against nodeIndex (not
	// only those from startIdx+1 onward) so a missing node ahead of the
	// way's first routing vertex still aborts compilation.
	startIdx := -1
	startV := -1
	for i, nd := range way.Nodes {
		if _, _, err := nodeLL(nd.ID); err != nil {
			return err
		}
		if vid, ok := vertexID[nd.ID]; ok {
			startIdx = i
			startV = vid
			break
		}
	}
	if startIdx == -1 {
		// No routing vertex on this way at all; nothing to emit.
		return nil
	}

	lat0, lon0, err := nodeLL(way.Nodes[startIdx].ID)
	if err != nil {
		return err
	}
	bufLat := []float64{lat0}
	bufLon := []float64{lon0}
	accum := 0.0
	prevLat, prevLon := lat0, lon0

	for i := startIdx + 1; i < len(way.Nodes); i++ {
		nd := way.Nodes[i]
		lat, lon, err := nodeLL(nd.ID)
		if err != nil {
			return err
		}
		accum += geo.Distance(orb.Point{prevLon, prevLat}, orb.Point{lon, lat})
		bufLat = append(bufLat, lat)
		bufLon = append(bufLon, lon)
		prevLat, prevLon = lat, lon

		vid, ok := vertexID[nd.ID]
		if !ok {
			continue
		}
		if vid == startV {
			// Degenerate same-vertex segment: reset without emitting.
			bufLat = []float64{lat}
			bufLon = []float64{lon}
			accum = 0
			continue
		}

		if !reverseOnly {
			if err := emitEdge(g, gb, pending, startV, vid, accum, speed, streetName, bufLon, bufLat, false); err != nil {
				return err
			}
		}
		if !forwardOnly {
			if err := emitEdge(g, gb, pending, vid, startV, accum, speed, streetName, bufLon, bufLat, true); err != nil {
				return err
			}
		}

		startV = vid
		bufLat = []float64{lat}
		bufLon = []float64{lon}
		accum = 0
	}
	return nil
}

// emitEdge inserts one directed edge into g, appends its polyline
// (reversed iff reverse) to gb, and queues its attributes. xs/ys are
// the segment buffer in way-traversal order.
func emitEdge(g *graph.Graph, gb *geometry.Builder, pending *[]pendingAttr, from, to int, distanceMeters, speedMps float64, streetName string, xs, ys []float64, reverse bool) error {
	id, err := g.AddEdge(from, to, 0)
	if err != nil {
		return err
	}

	px, py := xs, ys
	if reverse {
		px, py = reversed(xs), reversed(ys)
	}
	geomID, err := gb.AppendEdge(px, py)
	if err != nil {
		return err
	}
	if geomID != int(id) {
		return &CompileError{Stage: "pass 3: edge emission", Msg: "geometry id drifted from graph edge id"}
	}

	*pending = append(*pending, pendingAttr{
		distanceMeters: distanceMeters,
		timeSeconds:    distanceMeters / speedMps,
		streetName:     streetName,
		hasStreetName:  streetName != "",
	})
	return nil
}

func reversed(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[len(xs)-1-i] = v
	}
	return out
}
