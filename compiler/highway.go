package compiler

// LinkType is the road-class taxonomy used purely as the key into the
// default free-flow speed table; it never gates routability, which is
// governed entirely by RoutableHighways below.
type LinkType uint8

const (
	LinkMotorway LinkType = iota
	LinkTrunk
	LinkPrimary
	LinkSecondary
	LinkTertiary
	LinkResidential
	LinkLivingStreet
	LinkService
	LinkUnclassified
)

// RoutableHighways is the closed set of OSM `highway` tag values this
// system treats as drivable roads. A way whose `highway` tag is not a
// member — including an absent tag — is skipped entirely by passes 2
// and 3.
var RoutableHighways = map[string]struct{}{
	"motorway":       {},
	"trunk":          {},
	"primary":        {},
	"secondary":      {},
	"tertiary":       {},
	"unclassified":   {},
	"residential":    {},
	"living_street":  {},
	"service":        {},
	"motorway_link":  {},
	"trunk_link":     {},
	"primary_link":   {},
	"secondary_link": {},
	"tertiary_link":  {},
}

// linkTypeByHighway maps a routable highway value to its LinkType. Link
// variants (e.g. motorway_link) map to the same LinkType as their
// parent class, matching the teacher's linkTypeByHighway table
// restricted to spec's 14-value closed set.
var linkTypeByHighway = map[string]LinkType{
	"motorway":       LinkMotorway,
	"motorway_link":  LinkMotorway,
	"trunk":          LinkTrunk,
	"trunk_link":     LinkTrunk,
	"primary":        LinkPrimary,
	"primary_link":   LinkPrimary,
	"secondary":      LinkSecondary,
	"secondary_link": LinkSecondary,
	"tertiary":       LinkTertiary,
	"tertiary_link":  LinkTertiary,
	"unclassified":   LinkUnclassified,
	"residential":    LinkResidential,
	"living_street":  LinkLivingStreet,
	"service":        LinkService,
}

// defaultSpeedKmhByLinkType is the teacher's defaultSpeedByLinkType
// table (LdDl-osm2ch/link_type.go), restricted to the LinkTypes reachable
// from spec's routable set. The teacher's table has no entry for
// LINK_LIVING_STREET; this port fills that gap with the residential
// figure, since living_street traffic behaves like a slow residential
// street and the teacher gives no other guidance.
var defaultSpeedKmhByLinkType = map[LinkType]float64{
	LinkMotorway:     120,
	LinkTrunk:        100,
	LinkPrimary:      80,
	LinkSecondary:    60,
	LinkTertiary:     40,
	LinkResidential:  30,
	LinkLivingStreet: 30,
	LinkService:      30,
	LinkUnclassified: 30,
}

const kmhToMps = 1.0 / 3.6

// defaultSpeedMps returns the free-flow speed, in meters per second, for
// a way with the given highway tag value. highway must already be a
// member of RoutableHighways.
func defaultSpeedMps(highway string) float64 {
	lt := linkTypeByHighway[highway]
	return defaultSpeedKmhByLinkType[lt] * kmhToMps
}

// isRoutable reports whether highway is a member of the closed routable
// set.
func isRoutable(highway string) bool {
	_, ok := RoutableHighways[highway]
	return ok
}
