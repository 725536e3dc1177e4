// Package httpapi exposes a compiled routing network over HTTP, following
// the handler/router shape of server.go in the fbenz-osmrouting teacher's
// routing server and the gorilla/mux registration style of
// mohamedThameurSassi's routing_handler.go.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/arybakin/routeweave/routing"
)

// Server wraps one compiled Network behind a mux.Router. A new Facade is
// constructed per request in handleRoute because vmax is a per-query
// parameter, not a property of the network.
type Server struct {
	net    *routing.Network
	router *mux.Router
}

// NewServer registers the routing endpoints against net and returns a
// Server ready for Handler().
func NewServer(net *routing.Network) (*Server, error) {
	if net == nil {
		return nil, &routing.ArgumentError{Op: "NewServer", Msg: "net must not be nil"}
	}
	s := &Server{net: net, router: mux.NewRouter()}
	s.router.HandleFunc("/route", s.handleRoute).Methods(http.MethodGet)
	return s, nil
}

// Handler returns the CORS-wrapped router suitable for http.ListenAndServe.
func (s *Server) Handler() http.Handler {
	return cors.AllowAll().Handler(s.router)
}

// ServeStatic mounts dir under prefix using http.FileServer, for serving
// a test page alongside the /route API, following
// fbenz-osmrouting/src/server/testpage.go's role in that teacher's
// server without inlining its Google-Maps-specific HTML here. A request
// for a missing asset falls through to http.FileServer's own 404.
func (s *Server) ServeStatic(prefix, dir string) {
	s.router.PathPrefix(prefix).Handler(http.StripPrefix(prefix, http.FileServer(http.Dir(dir))))
}
