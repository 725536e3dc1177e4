// Command routeweave-compile reduces an OSM extract into a routable
// graph and writes it out as a pair of CSV files, following the
// flag-driven CLI and "edges.csv + vertices.csv" output shape of
// LdDl-osm2ch/cmd/osm2ch/main.go.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strings"

	geojson "github.com/paulmach/go.geojson"

	"github.com/arybakin/routeweave/compiler"
)

var (
	osmFileName = flag.String("file", "my_graph.osm.pbf", "Filename of *.osm/*.osm.pbf file to compile")
	out         = flag.String("out", "my_graph.csv", "Base filename for output CSVs; vertices are written to the same name with a _vertices suffix")
	geomFormat  = flag.String("geomf", "wkt", "Format of output geometry. Expected values: wkt / geojson")
	verbose     = flag.Bool("verbose", true, "Print progress for each compile pass")
)

func main() {
	flag.Parse()

	compiled, err := compiler.Compile(*osmFileName, compiler.WithVerbose(*verbose))
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	base := strings.TrimSuffix(*out, ".csv")
	fnameEdges := base + ".csv"
	fnameVertices := base + "_vertices.csv"

	if err := writeVertices(fnameVertices, compiled); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := writeEdges(fnameEdges, compiled, strings.ToLower(*geomFormat)); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func writeVertices(fname string, compiled *compiler.Compiled) error {
	file, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer file.Close()
	w := csv.NewWriter(file)
	defer w.Flush()
	w.Comma = ';'

	// vertex_id - int, dense id assigned during pass 2 (usage counting)
	// lat/lon - float64, degrees
	if err := w.Write([]string{"vertex_id", "lat", "lon"}); err != nil {
		return err
	}
	for v := 0; v < len(compiled.VertexLat); v++ {
		if err := w.Write([]string{
			fmt.Sprintf("%d", v),
			fmt.Sprintf("%f", compiled.VertexLat[v]),
			fmt.Sprintf("%f", compiled.VertexLon[v]),
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeEdges(fname string, compiled *compiler.Compiled, geomFormat string) error {
	file, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer file.Close()
	w := csv.NewWriter(file)
	defer w.Flush()
	w.Comma = ';'

	// edge_id - int, dense id assigned during pass 3 (edge emission)
	// from_vertex_id/to_vertex_id - int
	// distance_meters/time_seconds - float64
	// street_name - string, empty when the way carried no name tag
	// geom - geometry (WKT or GeoJSON representation), lon/lat degrees
	if err := w.Write([]string{"edge_id", "from_vertex_id", "to_vertex_id", "distance_meters", "time_seconds", "street_name", "geom"}); err != nil {
		return err
	}

	for _, edge := range compiled.Graph.Edges() {
		id := int(edge.ID())
		xs, ys := compiled.Geometry.Points(id)
		geomStr := formatGeometry(geomFormat, xs, ys)
		streetName, _ := compiled.Attrs.StreetName(id)
		if err := w.Write([]string{
			fmt.Sprintf("%d", id),
			fmt.Sprintf("%d", edge.From()),
			fmt.Sprintf("%d", edge.To()),
			fmt.Sprintf("%f", compiled.Attrs.DistanceMeters(id)),
			fmt.Sprintf("%f", compiled.Attrs.TimeSeconds(id)),
			streetName,
			geomStr,
		}); err != nil {
			return err
		}
	}
	return nil
}

// formatGeometry renders one edge's polyline (x=lon, y=lat degrees) as
// WKT or GeoJSON, following converter_wkt.go/converter_geojson.go's
// string formatting.
func formatGeometry(format string, xs, ys []float64) string {
	if format == "geojson" {
		pts := make([][]float64, len(xs))
		for i := range xs {
			pts[i] = []float64{xs[i], ys[i]}
		}
		b, err := geojson.NewLineStringGeometry(pts).MarshalJSON()
		if err != nil {
			fmt.Printf("Warning. Can not convert geometry to geojson format: %s\n", err.Error())
			return ""
		}
		return string(b)
	}
	parts := make([]string, len(xs))
	for i := range xs {
		parts[i] = fmt.Sprintf("%f %f", xs[i], ys[i])
	}
	return fmt.Sprintf("LINESTRING(%s)", strings.Join(parts, ","))
}
