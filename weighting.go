package osm2graph

import (
	"fmt"
)

// WeightingMode determines unit of edge weights in the output graph
type WeightingMode uint16

const (
	// WEIGHT_TRAVEL_TIME Edge weight is travel time in seconds
	WEIGHT_TRAVEL_TIME = WeightingMode(iota + 1)
	// WEIGHT_DISTANCE Edge weight is distance in meters
	WEIGHT_DISTANCE
	// WEIGHT_UNDEFINED Undefined weighting
	WEIGHT_UNDEFINED = WeightingMode(0)
)

func (iotaIdx WeightingMode) String() string {
	return [...]string{"undefined", "travel_time", "distance"}[iotaIdx]
}

// ParseWeightingMode parses weighting mode provided as a string
func ParseWeightingMode(value string) (WeightingMode, error) {
	switch value {
	case "travel_time":
		return WEIGHT_TRAVEL_TIME, nil
	case "distance":
		return WEIGHT_DISTANCE, nil
	default:
		return WEIGHT_UNDEFINED, fmt.Errorf("Weighting mode '%s' is not handled. Expected values: 'travel_time' / 'distance'", value)
	}
}
