package httpapi

import (
	"net/http"
	"strconv"

	geojson "github.com/paulmach/go.geojson"

	"github.com/arybakin/routeweave/routing"
	"github.com/arybakin/routeweave/shortestpath"
)

// distanceModeVmax is the placeholder vmax passed to the facade for a
// DISTANCE-metric query, where the facade's vmax has no effect on the
// search. Per spec.md §9 Open Question (b),
// this value is never reused for a TIME-metric query: that always
// requires an explicit, validated &vmax= query parameter.
const distanceModeVmax = 1.0

// handleRoute implements GET /route?lat1=&lon1=&lat2=&lon2=[&metric=distance|time&vmax=].
func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat1, ok := parseFloatParam(q, "lat1")
	if !ok {
		writeError(w, http.StatusBadRequest, "missing or invalid lat1")
		return
	}
	lon1, ok := parseFloatParam(q, "lon1")
	if !ok {
		writeError(w, http.StatusBadRequest, "missing or invalid lon1")
		return
	}
	lat2, ok := parseFloatParam(q, "lat2")
	if !ok {
		writeError(w, http.StatusBadRequest, "missing or invalid lat2")
		return
	}
	lon2, ok := parseFloatParam(q, "lon2")
	if !ok {
		writeError(w, http.StatusBadRequest, "missing or invalid lon2")
		return
	}

	metric, vmax, ok, msg := parseMetricAndVmax(q)
	if !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	facade, err := routing.NewFacade(s.net, routing.WithVmax(vmax))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := facade.Query(lat1, lon1, lat2, lon2, metric)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !result.Found {
		writeError(w, http.StatusOK, "no route found")
		return
	}

	coords := make([][]float64, len(result.Path))
	for i, p := range result.Path {
		coords[i] = []float64{p.Lon, p.Lat}
	}
	feature := geojson.NewFeature(geojson.NewLineStringGeometry(coords))
	feature.Properties["instructions"] = renderInstructions(result.Instructions)
	feature.Properties["totalCost"] = result.TotalCost
	feature.Properties["metric"] = result.Metric.String()

	body, err := feature.MarshalJSON()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unable to encode route as geojson")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func parseFloatParam(q map[string][]string, key string) (float64, bool) {
	vals, ok := q[key]
	if !ok || len(vals) == 0 || vals[0] == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(vals[0], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseMetricAndVmax resolves the optional metric and vmax query
// parameters, defaulting to Distance with the fixed placeholder vmax
// and requiring an explicit, strictly positive vmax for Time.
func parseMetricAndVmax(q map[string][]string) (metric shortestpath.Metric, vmax float64, ok bool, msg string) {
	metricStr := "distance"
	if vals, present := q["metric"]; present && len(vals) > 0 && vals[0] != "" {
		metricStr = vals[0]
	}

	switch metricStr {
	case "distance":
		return shortestpath.Distance, distanceModeVmax, true, ""
	case "time":
		v, vok := parseFloatParam(q, "vmax")
		if !vok || v <= 0 {
			return 0, 0, false, "metric=time requires a strictly positive vmax"
		}
		return shortestpath.Time, v, true, ""
	default:
		return 0, 0, false, "metric must be \"distance\" or \"time\""
	}
}
