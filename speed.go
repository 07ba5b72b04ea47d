package osm2graph

import (
	"math"
	"strconv"
	"strings"
)

// DEFAULT_FALLBACK_SPEED is speed of last resort for ways carrying no
// parseable limit and no known highway class (km/h)
const DEFAULT_FALLBACK_SPEED = 50.0

// defaultSpeedByHighway is free flow speed for each highway class (km/h)
var defaultSpeedByHighway = map[string]float64{
	"motorway":       110.0,
	"motorway_link":  70.0,
	"trunk":          90.0,
	"trunk_link":     70.0,
	"primary":        70.0,
	"primary_link":   60.0,
	"secondary":      60.0,
	"secondary_link": 50.0,
	"tertiary":       50.0,
	"tertiary_link":  40.0,
	"unclassified":   40.0,
	"residential":    30.0,
	"living_street":  10.0,
	"service":        20.0,
	"cycleway":       20.0,
	"path":           10.0,
}

// SpeedEstimator evaluates traversal speed of a way by its tags.
// Resolution order: `maxspeed` tag if parseable, then speed of the way's
// highway class, then the fallback constant. Estimated speed is always
// positive and finite.
type SpeedEstimator struct {
	speedByHighway map[string]float64
	fallbackKmh    float64
}

// NewSpeedEstimator prepares estimator with given per-class speed overrides (km/h).
// Classes missing from the given map keep their default speeds.
func NewSpeedEstimator(speedByHighway map[string]float64, fallbackKmh float64) *SpeedEstimator {
	merged := make(map[string]float64, len(defaultSpeedByHighway))
	for highway, speed := range defaultSpeedByHighway {
		merged[highway] = speed
	}
	for highway, speed := range speedByHighway {
		merged[highway] = speed
	}
	if !positiveFinite(fallbackKmh) {
		fallbackKmh = DEFAULT_FALLBACK_SPEED
	}
	return &SpeedEstimator{
		speedByHighway: merged,
		fallbackKmh:    fallbackKmh,
	}
}

// EstimateSpeed returns traversal speed for given way tags (meters per second)
func (estimator *SpeedEstimator) EstimateSpeed(tags map[string]string) float64 {
	if speed, ok := parseMaxspeed(tags["maxspeed"]); ok {
		return speed
	}
	if speed, ok := estimator.highwaySpeed(tags["highway"]); ok {
		return speed
	}
	return estimator.fallbackKmh / 3.6
}

func (estimator *SpeedEstimator) highwaySpeed(highway string) (float64, bool) {
	speedKmh, ok := estimator.speedByHighway[highway]
	if !ok || !positiveFinite(speedKmh) {
		return 0, false
	}
	return speedKmh / 3.6, true
}

// parseMaxspeed evaluates raw `maxspeed` tag value in meters per second.
// Handles 'mph' suffix and metric unit spellings. 'none', non-positive
// values and garbage are reported as not parseable.
func parseMaxspeed(raw string) (float64, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" || value == "none" {
		return 0, false
	}
	if strings.HasSuffix(value, "mph") {
		mph, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(value, "mph")), 64)
		if err != nil || !positiveFinite(mph) {
			return 0, false
		}
		// Miles per hour to meters per second
		return mph * 0.44704, true
	}
	for _, unit := range [...]string{"km/h", "kph", "kmh"} {
		value = strings.ReplaceAll(value, unit, "")
	}
	kmh, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || !positiveFinite(kmh) {
		return 0, false
	}
	return kmh / 3.6, true
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
