// Command routeweave-server compiles an OSM extract in-process and
// serves it over HTTP, following the flag-then-ListenAndServe shape of
// mohamedThameurSassi-Projet-transport-intermodal/Server/main.go.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/arybakin/routeweave/compiler"
	"github.com/arybakin/routeweave/httpapi"
	"github.com/arybakin/routeweave/routing"
)

var (
	osmFileName = flag.String("file", "my_graph.osm.pbf", "Filename of *.osm/*.osm.pbf file to compile and serve")
	addr        = flag.String("addr", ":8080", "Address to listen on")
	cellSize    = flag.Float64("cellsize", routing.DefaultCellSize, "Spatial index cell size, in meters")
	staticDir   = flag.String("static", "", "Directory to serve under /static/ (test page assets); unset disables static serving")
	verbose     = flag.Bool("verbose", true, "Print progress while compiling")
)

func main() {
	flag.Parse()

	fmt.Printf("routeweave-server: compiling %s\n", *osmFileName)
	compiled, err := compiler.Compile(*osmFileName, compiler.WithVerbose(*verbose))
	if err != nil {
		log.Fatal(err)
	}

	net, err := routing.NewNetwork(compiled, routing.WithCellSize(*cellSize))
	if err != nil {
		log.Fatal(err)
	}

	server, err := httpapi.NewServer(net)
	if err != nil {
		log.Fatal(err)
	}
	if *staticDir != "" {
		server.ServeStatic("/static/", *staticDir)
	}

	fmt.Printf("routeweave-server: listening on %s\n", *addr)
	log.Fatal(http.ListenAndServe(*addr, server.Handler()))
}
