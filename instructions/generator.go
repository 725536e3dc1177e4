package instructions

import (
	"math"
	"strings"

	"github.com/arybakin/routeweave/edgeattrs"
	"github.com/arybakin/routeweave/geometry"
	"github.com/arybakin/routeweave/graph"
)

// DefaultSharpTurnDegrees is the |theta| threshold at or above which a
// transition is considered a turn (LEFT/RIGHT) rather than a CONTINUE,
// and at or above which a sharp bend on an unchanged street may be reported.
const DefaultSharpTurnDegrees = 50.0

// DefaultSpamGuardMeters is the minimum accumulated distance since the
// last emission before a same-street sharp bend is reported, avoiding a
// flood of KEEP_LEFT/KEEP_RIGHT instructions on a winding street.
const DefaultSpamGuardMeters = 120.0

type config struct {
	emitSharpBends    bool
	sharpTurnDegrees  float64
	spamGuardMeters   float64
}

func defaultConfig() config {
	return config{
		emitSharpBends:   false,
		sharpTurnDegrees: DefaultSharpTurnDegrees,
		spamGuardMeters:  DefaultSpamGuardMeters,
	}
}

// Option configures Generate.
type Option func(*config)

// WithSharpBendEmission enables reporting KEEP_LEFT/KEEP_RIGHT for sharp
// bends that do not coincide with a street name change.
func WithSharpBendEmission(enabled bool) Option {
	return func(c *config) { c.emitSharpBends = enabled }
}

// WithSharpTurnDegrees overrides the |theta| threshold, in degrees, that
// distinguishes a turn from a continuation.
func WithSharpTurnDegrees(degrees float64) Option {
	return func(c *config) { c.sharpTurnDegrees = degrees }
}

// WithSpamGuardMeters overrides the minimum accumulated distance before
// a same-street sharp bend may be emitted.
func WithSpamGuardMeters(meters float64) Option {
	return func(c *config) { c.spamGuardMeters = meters }
}

// Generate derives the maneuver stream for a route's edge sequence. An
// empty edgeIDs yields an empty instruction list. The first instruction
// is always START on the first edge's street name with a zero
// accumulator; the last is always ARRIVE carrying the remaining
// accumulated distance.
func Generate(geom *geometry.EdgeGeometry, attrs *edgeattrs.Columns, edgeIDs []graph.EdgeID, opts ...Option) []Instruction {
	if len(edgeIDs) == 0 {
		return nil
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	sharpThresholdRad := cfg.sharpTurnDegrees * math.Pi / 180

	currentStreet := streetNameOf(attrs, int(edgeIDs[0]))
	instrs := []Instruction{{Maneuver: Start, StreetName: currentStreet, DistanceMeters: 0}}

	acc := 0.0
	for i := 0; i+1 < len(edgeIDs); i++ {
		acc += attrs.DistanceMeters(int(edgeIDs[i]))

		theta := turnAngle(geom, int(edgeIDs[i]), int(edgeIDs[i+1]))
		nextStreet := streetNameOf(attrs, int(edgeIDs[i+1]))

		switch {
		case !strings.EqualFold(currentStreet, nextStreet):
			m := Continue
			if math.Abs(theta) >= sharpThresholdRad {
				if theta > 0 {
					m = Left
				} else {
					m = Right
				}
			}
			instrs = append(instrs, Instruction{Maneuver: m, StreetName: nextStreet, DistanceMeters: acc})
			acc = 0
			currentStreet = nextStreet
		case cfg.emitSharpBends && math.Abs(theta) >= sharpThresholdRad && acc >= cfg.spamGuardMeters:
			m := KeepLeft
			if theta < 0 {
				m = KeepRight
			}
			instrs = append(instrs, Instruction{Maneuver: m, StreetName: currentStreet, DistanceMeters: acc})
			acc = 0
		}
	}
	acc += attrs.DistanceMeters(int(edgeIDs[len(edgeIDs)-1]))
	instrs = append(instrs, Instruction{Maneuver: Arrive, StreetName: currentStreet, DistanceMeters: acc})
	return instrs
}

func streetNameOf(attrs *edgeattrs.Columns, id int) string {
	name, ok := attrs.StreetName(id)
	if !ok {
		return UnnamedRoad
	}
	return name
}

// turnAngle computes theta = atan2(v1 x v2, v1 . v2) between the last
// segment direction of edge a and the first segment direction of edge b.
// Positive is left, negative is right.
func turnAngle(geom *geometry.EdgeGeometry, a, b int) float64 {
	v1x, v1y := lastSegmentDirection(geom, a)
	v2x, v2y := firstSegmentDirection(geom, b)
	cross := v1x*v2y - v1y*v2x
	dot := v1x*v2x + v1y*v2y
	return math.Atan2(cross, dot)
}

func lastSegmentDirection(geom *geometry.EdgeGeometry, id int) (dx, dy float64) {
	xs, ys := geom.Points(id)
	n := len(xs)
	return xs[n-1] - xs[n-2], ys[n-1] - ys[n-2]
}

func firstSegmentDirection(geom *geometry.EdgeGeometry, id int) (dx, dy float64) {
	xs, ys := geom.Points(id)
	return xs[1] - xs[0], ys[1] - ys[0]
}
