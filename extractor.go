package osm2graph

import (
	"fmt"
)

// Extractor turns an OSM road network into directed weighted graph written
// as two flat CSV tables: vertices (id,lat,lon) and edges (source,target,weight)
type Extractor struct {
	weighting        WeightingMode
	speedByHighway   map[string]float64
	fallbackSpeedKmh float64
	verbose          bool
	progress         func(objects int)
}

func (extractor *Extractor) String() string {
	return fmt.Sprintf(`
Graph extractor parameters:
	weighting: '%s'
	speed_overrides (km/h): %v
	fallback_speed (km/h): %f
	verbose: %t
	`,
		extractor.weighting,
		extractor.speedByHighway,
		extractor.fallbackSpeedKmh,
		extractor.verbose,
	)
}

func NewExtractor(options ...func(*Extractor)) *Extractor {
	extractor := &Extractor{
		weighting:        WEIGHT_TRAVEL_TIME,
		fallbackSpeedKmh: DEFAULT_FALLBACK_SPEED,
		verbose:          false,
	}
	for _, option := range options {
		option(extractor)
	}
	return extractor
}

// WithWeighting sets unit of edge weights
func WithWeighting(weighting WeightingMode) func(*Extractor) {
	return func(extractor *Extractor) {
		extractor.weighting = weighting
	}
}

// WithSpeeds overrides free flow speeds for given highway classes (km/h).
// Classes missing from the given map keep their default speeds.
func WithSpeeds(speedByHighway map[string]float64) func(*Extractor) {
	return func(extractor *Extractor) {
		extractor.speedByHighway = speedByHighway
	}
}

// WithFallbackSpeed sets speed for ways carrying no parseable limit and no known highway class (km/h)
func WithFallbackSpeed(fallbackSpeedKmh float64) func(*Extractor) {
	return func(extractor *Extractor) {
		extractor.fallbackSpeedKmh = fallbackSpeedKmh
	}
}

// WithVerbose enables process messages
func WithVerbose(verbose bool) func(*Extractor) {
	return func(extractor *Extractor) {
		extractor.verbose = verbose
	}
}

// WithProgress registers callback fired after every 50000 scanned OSM objects
func WithProgress(progress func(objects int)) func(*Extractor) {
	return func(extractor *Extractor) {
		extractor.progress = progress
	}
}
