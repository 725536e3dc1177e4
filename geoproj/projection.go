// Package geoproj implements a local tangent-plane projection between
// WGS84 geographic coordinates and planar meters, suitable for regional
// (province/state scale) routing extracts.
package geoproj

import (
	"math"

	"github.com/pkg/errors"
)

// earthRadius is the mean Earth radius in meters, matching the haversine
// radius used elsewhere in this module so distances computed on the
// projected plane agree with great-circle distances at small scale.
const earthRadius = 6371000.0

// Projection is an equirectangular projection about a fixed reference
// point (lat0, lon0). It is only accurate at regional scale: error grows
// with distance from the reference point.
type Projection struct {
	lat0Rad float64
	lon0Rad float64
	cosLat0 float64
}

// New builds a Projection referenced at (lat0, lon0), given in degrees.
func New(lat0, lon0 float64) *Projection {
	lat0Rad := lat0 * math.Pi / 180.0
	return &Projection{
		lat0Rad: lat0Rad,
		lon0Rad: lon0 * math.Pi / 180.0,
		cosLat0: math.Cos(lat0Rad),
	}
}

// NewFromMean builds a Projection referenced at the arithmetic mean of the
// given vertex latitudes and longitudes (degrees). Returns an argument
// error if the two slices are empty or of mismatched length.
func NewFromMean(lats, lons []float64) (*Projection, error) {
	if len(lats) != len(lons) {
		return nil, errors.Errorf("geoproj: mismatched array lengths: %d lats, %d lons", len(lats), len(lons))
	}
	if len(lats) == 0 {
		return nil, errors.New("geoproj: cannot compute mean of empty coordinate set")
	}
	var sumLat, sumLon float64
	for i := range lats {
		sumLat += lats[i]
		sumLon += lons[i]
	}
	n := float64(len(lats))
	return New(sumLat/n, sumLon/n), nil
}

// Forward projects a single (lat, lon) in degrees to planar (x, y) meters.
func (p *Projection) Forward(lat, lon float64) (x, y float64) {
	latRad := lat * math.Pi / 180.0
	lonRad := lon * math.Pi / 180.0
	x = earthRadius * (lonRad - p.lon0Rad) * p.cosLat0
	y = earthRadius * (latRad - p.lat0Rad)
	return x, y
}

// Inverse projects planar (x, y) meters back to (lat, lon) degrees.
func (p *Projection) Inverse(x, y float64) (lat, lon float64) {
	latRad := p.lat0Rad + y/earthRadius
	lonRad := p.lon0Rad + x/(earthRadius*p.cosLat0)
	return latRad * 180.0 / math.Pi, lonRad * 180.0 / math.Pi
}

// ProjectAll projects parallel lat/lon arrays into freshly allocated x/y
// arrays. Returns an argument error if the input arrays are of mismatched
// length.
func (p *Projection) ProjectAll(lats, lons []float64) (xs, ys []float64, err error) {
	if len(lats) != len(lons) {
		return nil, nil, errors.Errorf("geoproj: mismatched array lengths: %d lats, %d lons", len(lats), len(lons))
	}
	xs = make([]float64, len(lats))
	ys = make([]float64, len(lats))
	for i := range lats {
		xs[i], ys[i] = p.Forward(lats[i], lons[i])
	}
	return xs, ys, nil
}
