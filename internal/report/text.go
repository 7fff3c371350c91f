package report

import (
	"fmt"
	"io"
	"strings"
)

// Markdown renders the whole report as Markdown text.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("# Weather for %s %s\n", Marker(r.Location), r.Location.Label))
	b.WriteString(fmt.Sprintf("Coordinates: %.4f, %.4f\nUnits: %s\n", r.Location.Lat, r.Location.Lon, r.UnitsLabel))
	if r.Timezone != "" {
		b.WriteString(fmt.Sprintf("Timezone: %s\n", r.Timezone))
	}

	c := r.Current
	b.WriteString(fmt.Sprintf("\n## Now: %s %s\n", c.Icon.Emoji(), c.Summary))
	b.WriteString(fmt.Sprintf(
		"Temperature: %s (feels like %s)\nHumidity: %s\nWind: %s, gusts %s\n"+
			"Pressure: %s\nCloud cover: %s\nPrecipitation: %s\n",
		c.Temperature, c.Apparent, c.Humidity, c.Wind, c.Gusts,
		c.Pressure, c.CloudCover, c.Precipitation))

	if len(r.Nowcast) > 0 {
		b.WriteString(fmt.Sprintf("\n## Next 2 hours (%s)\n", r.NowcastRange))
		for _, n := range r.Nowcast {
			b.WriteString(fmt.Sprintf("%s  %s\n", n.Label, n.Value))
		}
	}

	if len(r.Hourly) > 0 {
		b.WriteString("\n## Next 24 hours\n")
		for _, h := range r.Hourly {
			b.WriteString(fmt.Sprintf("%s  %s %s  %s\n", h.Label, h.Icon.Emoji(), h.Temperature, h.Precipitation))
		}
	}

	if len(r.Daily) > 0 {
		b.WriteString("\n## Next 5 days\n")
		for _, d := range r.Daily {
			b.WriteString(fmt.Sprintf("%s  %s %s  %s\n", d.Label, d.Icon.Emoji(), d.Temperature, d.Precipitation))
		}
	}
	return b.String()
}

func (r *Report) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.Markdown())
	return int64(n), err
}
