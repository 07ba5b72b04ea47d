package osm2graph

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// NodeRef is a single point of way geometry. References are resolved
// through the location cache during scanning; a reference missing from
// the cache keeps Resolved == false and zero Point.
type NodeRef struct {
	ID       osm.NodeID
	Point    orb.Point
	Resolved bool
}

// Way is a single road element prepared by the scanner: source OSM way
// identifier, flattened tags and node references with cached locations.
type Way struct {
	ID    osm.WayID
	Tags  map[string]string
	Nodes []NodeRef
}
