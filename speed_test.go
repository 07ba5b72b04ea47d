package osm2graph

import (
	"math"
	"testing"
)

func TestEstimateSpeedMaxspeed(t *testing.T) {
	estimator := NewSpeedEstimator(nil, 0)
	correctValues := map[string]float64{
		"50":      50.0 / 3.6,
		"30 mph":  30.0 * 0.44704,
		"30mph":   30.0 * 0.44704,
		"60 km/h": 60.0 / 3.6,
		"5 kph":   5.0 / 3.6,
		"20kmh":   20.0 / 3.6,
		" 90 ":    90.0 / 3.6,
	}
	for maxspeed, res := range correctValues {
		speed := estimator.EstimateSpeed(map[string]string{"maxspeed": maxspeed})
		if math.Abs(speed-res) > 1e-6 {
			t.Errorf("Speed for maxspeed '%s' must be %f, but got %f", maxspeed, res, speed)
		}
	}
}

func TestEstimateSpeedHighway(t *testing.T) {
	estimator := NewSpeedEstimator(nil, 0)
	speed := estimator.EstimateSpeed(map[string]string{"highway": "residential"})
	res := 30.0 / 3.6
	if math.Abs(speed-res) > 1e-6 {
		t.Errorf("Speed for residential highway must be %f, but got %f", res, speed)
	}
	speed = estimator.EstimateSpeed(map[string]string{"highway": "motorway"})
	res = 110.0 / 3.6
	if math.Abs(speed-res) > 1e-6 {
		t.Errorf("Speed for motorway must be %f, but got %f", res, speed)
	}
}

func TestEstimateSpeedMaxspeedBeatsHighway(t *testing.T) {
	estimator := NewSpeedEstimator(nil, 0)
	speed := estimator.EstimateSpeed(map[string]string{"highway": "residential", "maxspeed": "70"})
	res := 70.0 / 3.6
	if math.Abs(speed-res) > 1e-6 {
		t.Errorf("Parseable maxspeed must win over highway class: expected %f, but got %f", res, speed)
	}
}

func TestEstimateSpeedFallthrough(t *testing.T) {
	estimator := NewSpeedEstimator(nil, 0)
	// Unparseable limits must fall through to the highway class
	res := 30.0 / 3.6
	for _, maxspeed := range []string{"none", "walk", "0", "-30", "50; 30"} {
		speed := estimator.EstimateSpeed(map[string]string{"highway": "residential", "maxspeed": maxspeed})
		if math.Abs(speed-res) > 1e-6 {
			t.Errorf("Speed for maxspeed '%s' must fall through to %f, but got %f", maxspeed, res, speed)
		}
	}
}

func TestEstimateSpeedFallback(t *testing.T) {
	estimator := NewSpeedEstimator(nil, 0)
	res := DEFAULT_FALLBACK_SPEED / 3.6
	for _, tags := range []map[string]string{
		{},
		{"maxspeed": "none"},
		{"highway": "footway"},
		{"highway": "track", "maxspeed": "fast"},
	} {
		speed := estimator.EstimateSpeed(tags)
		if math.Abs(speed-res) > 1e-6 {
			t.Errorf("Speed for tags %v must be the fallback %f, but got %f", tags, res, speed)
		}
	}
}

func TestEstimateSpeedAlwaysPositive(t *testing.T) {
	estimator := NewSpeedEstimator(map[string]float64{"residential": -5.0}, -1.0)
	for _, tags := range []map[string]string{
		{},
		{"highway": "residential"},
		{"maxspeed": "1e999"},
	} {
		speed := estimator.EstimateSpeed(tags)
		if !(speed > 0) || math.IsInf(speed, 1) {
			t.Errorf("Estimated speed for tags %v must be positive and finite, but got %f", tags, speed)
		}
	}
}

func TestEstimateSpeedOverrides(t *testing.T) {
	estimator := NewSpeedEstimator(map[string]float64{"residential": 25.0}, 36.0)
	speed := estimator.EstimateSpeed(map[string]string{"highway": "residential"})
	res := 25.0 / 3.6
	if math.Abs(speed-res) > 1e-6 {
		t.Errorf("Overridden residential speed must be %f, but got %f", res, speed)
	}
	// Classes missing from the override keep defaults
	speed = estimator.EstimateSpeed(map[string]string{"highway": "service"})
	res = 20.0 / 3.6
	if math.Abs(speed-res) > 1e-6 {
		t.Errorf("Service speed must keep its default %f, but got %f", res, speed)
	}
	speed = estimator.EstimateSpeed(map[string]string{})
	res = 10.0
	if math.Abs(speed-res) > 1e-6 {
		t.Errorf("Overridden fallback speed must be %f, but got %f", res, speed)
	}
}

func TestParseMaxspeed(t *testing.T) {
	speed, ok := parseMaxspeed("30 MPH")
	if !ok {
		t.Errorf("Value '30 MPH' must be parseable")
	}
	res := 30.0 * 0.44704
	if math.Abs(speed-res) > 1e-6 {
		t.Errorf("Value '30 MPH' must be parsed as %f, but got %f", res, speed)
	}
	for _, value := range []string{"", "none", "NONE", "signals", "0", "-10", "10; 20"} {
		if _, ok := parseMaxspeed(value); ok {
			t.Errorf("Value '%s' must not be parseable", value)
		}
	}
}
