// Package report assembles windowed forecast views and formatted strings into
// what the command line, the Discord bot and the MCP tools display.
package report

import (
	"time"

	"github.com/FlameInTheDark/uwuweather/internal/forecast"
	"github.com/FlameInTheDark/uwuweather/internal/format"
	"github.com/FlameInTheDark/uwuweather/internal/place"
	"github.com/FlameInTheDark/uwuweather/internal/units"
	"github.com/FlameInTheDark/uwuweather/internal/window"
)

// Current is the formatted current-conditions block. Every field holds either
// a rendered value or format.Placeholder.
type Current struct {
	Summary       string
	Icon          format.Icon
	Temperature   string
	Apparent      string
	Humidity      string
	Wind          string
	Gusts         string
	Pressure      string
	CloudCover    string
	Precipitation string
}

type HourlyRow struct {
	Label         string
	Temperature   string
	Icon          format.Icon
	Precipitation string
}

type DailyRow struct {
	Label         string
	Temperature   string
	Icon          format.Icon
	Precipitation string
}

// NowcastRow keeps the raw amount next to its label for chart surfaces.
type NowcastRow struct {
	Label  string
	Value  string
	Amount *float64
}

type Report struct {
	Location     place.Location
	Flag         string
	Units        units.System
	UnitsLabel   string
	Timezone     string
	GeneratedAt  time.Time
	Current      Current
	Hourly       []HourlyRow
	Daily        []DailyRow
	Nowcast      []NowcastRow
	NowcastRange string
}

// Build windows series against now and formats it in u. The series must have
// been fetched in u; no conversion happens here.
func Build(loc place.Location, series *forecast.Series, u units.System, now time.Time) *Report {
	r := &Report{
		Location:     loc,
		Flag:         format.Flag(loc.Label),
		Units:        u,
		UnitsLabel:   u.TemperatureGlyph(),
		GeneratedAt:  now,
		NowcastRange: format.Placeholder,
	}
	if series == nil {
		r.Current = buildCurrent(forecast.Current{}, u)
		return r
	}
	r.Timezone = series.Timezone
	r.Current = buildCurrent(series.Current, u)

	views := window.Extract(series, now)
	for _, p := range views.Hourly {
		r.Hourly = append(r.Hourly, HourlyRow{
			Label:         format.Clock(p.Time),
			Temperature:   format.Temperature(p.Temperature, u),
			Icon:          format.IconFor(p.WeatherCode),
			Precipitation: format.Percent(p.PrecipitationProbability),
		})
	}
	for _, p := range views.Daily {
		r.Daily = append(r.Daily, DailyRow{
			Label:         format.Weekday(p.Date),
			Temperature:   format.Degrees(p.TemperatureMax) + " / " + format.Degrees(p.TemperatureMin),
			Icon:          format.IconFor(p.WeatherCode),
			Precipitation: format.Millimetres(p.PrecipitationSum),
		})
	}
	for _, p := range views.Nowcast {
		r.Nowcast = append(r.Nowcast, NowcastRow{
			Label:  format.Clock(p.Time),
			Value:  format.Millimetres(p.Precipitation),
			Amount: p.Precipitation,
		})
	}
	if n := len(views.Nowcast); n > 0 {
		r.NowcastRange = format.Range(views.Nowcast[0].Time, views.Nowcast[n-1].Time)
	}
	return r
}

func buildCurrent(c forecast.Current, u units.System) Current {
	return Current{
		Summary:       format.WeatherText(c.WeatherCode),
		Icon:          format.IconFor(c.WeatherCode),
		Temperature:   format.Temperature(c.Temperature, u),
		Apparent:      format.Temperature(c.Apparent, u),
		Humidity:      format.Percent(c.Humidity),
		Wind:          format.Wind(c.WindSpeed, c.WindDirection, u),
		Gusts:         format.Wind(c.WindGusts, nil, u),
		Pressure:      format.Pressure(c.Pressure),
		CloudCover:    format.Percent(c.CloudCover),
		Precipitation: format.Millimetres(c.Precipitation),
	}
}

// Marker is the prefix shown before a place label: its flag, or a pin when
// the label has no country code.
func Marker(loc place.Location) string {
	if loc.Label == place.MyLocationLabel {
		return "📍"
	}
	if f := format.Flag(loc.Label); f != "" {
		return f
	}
	return "🗺️"
}
