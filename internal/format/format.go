// Package format turns forecast values into display strings. Every function
// accepts absent (nil) input and renders Placeholder for it.
package format

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/FlameInTheDark/uwuweather/internal/units"
)

// Placeholder is rendered wherever a value is absent.
const Placeholder = "—"

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

func round(v float64) string {
	r := math.Round(v)
	if r == 0 {
		r = 0 // no "-0"
	}
	return strconv.FormatFloat(r, 'f', 0, 64)
}

func Temperature(v *float64, u units.System) string {
	if v == nil {
		return Placeholder
	}
	return round(*v) + u.TemperatureGlyph()
}

// Degrees renders a bare rounded temperature with a degree sign, as used in
// the daily max/min pair.
func Degrees(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return round(*v) + "°"
}

// Wind renders speed with its unit glyph and, when known, the compass point
// the wind blows from.
func Wind(speed, direction *float64, u units.System) string {
	if speed == nil {
		return Placeholder
	}
	s := round(*speed) + " " + u.WindGlyph()
	if direction != nil {
		s += " " + Compass(*direction)
	}
	return s
}

// Compass maps a bearing in degrees onto the 16-point rose.
func Compass(deg float64) string {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	i := int(math.Round(deg/22.5)) % 16
	return compassPoints[i]
}

func Percent(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return round(*v) + "%"
}

// Millimetres renders precipitation depth with one decimal, dropping a
// trailing ".0".
func Millimetres(v *float64) string {
	if v == nil {
		return Placeholder
	}
	s := strconv.FormatFloat(*v, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	if s == "-0" {
		s = "0"
	}
	return s + " mm"
}

// Pressure renders surface pressure in hPa. Zero is treated as missing.
func Pressure(v *float64) string {
	if v == nil || *v == 0 {
		return Placeholder
	}
	return round(*v) + " hPa"
}

// Clock renders t as HH:MM in its own zone.
func Clock(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return t.Format("15:04")
}

// Weekday renders the short English day name.
func Weekday(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return t.Format("Mon")
}

// Range joins the first and last clock labels, e.g. "10:00 → 12:00".
func Range(from, to time.Time) string {
	return Clock(from) + " → " + Clock(to)
}
