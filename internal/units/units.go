package units

import "strings"

// System is the process-wide measurement system used by the forecast request
// and every formatter.
type System string

const (
	Metric   System = "metric"
	Imperial System = "imperial"
)

// Parse reads a stored or user-supplied value. Anything unrecognised yields
// Metric and false.
func Parse(s string) (System, bool) {
	switch System(strings.ToLower(strings.TrimSpace(s))) {
	case Metric:
		return Metric, true
	case Imperial:
		return Imperial, true
	}
	return Metric, false
}

// Toggle flips metric and imperial.
func (s System) Toggle() System {
	if s == Imperial {
		return Metric
	}
	return Imperial
}

func (s System) IsImperial() bool {
	return s == Imperial
}

// TemperatureGlyph is appended to formatted temperatures.
func (s System) TemperatureGlyph() string {
	if s.IsImperial() {
		return "°F"
	}
	return "°C"
}

// WindGlyph is appended to formatted wind speeds.
func (s System) WindGlyph() string {
	if s.IsImperial() {
		return "mph"
	}
	return "km/h"
}

// TemperatureParam is the provider value for temperature_unit.
func (s System) TemperatureParam() string {
	if s.IsImperial() {
		return "fahrenheit"
	}
	return "celsius"
}

// WindSpeedParam is the provider value for wind_speed_unit.
func (s System) WindSpeedParam() string {
	if s.IsImperial() {
		return "mph"
	}
	return "kmh"
}

func (s System) String() string {
	if s.IsImperial() {
		return string(Imperial)
	}
	return string(Metric)
}
