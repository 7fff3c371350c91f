package main

import (
	"strings"
	"testing"
	"time"

	"github.com/FlameInTheDark/uwuweather/internal/format"
	"github.com/FlameInTheDark/uwuweather/internal/place"
	"github.com/FlameInTheDark/uwuweather/internal/report"
	"github.com/FlameInTheDark/uwuweather/internal/units"
)

func TestReportEmbed(t *testing.T) {
	rep := &report.Report{
		Location:   place.Location{Label: "Paris, FR"},
		UnitsLabel: units.Metric.TemperatureGlyph(),
		Timezone:   "Europe/Paris",
		Current: report.Current{
			Summary:     "Rain",
			Icon:        format.Rain,
			Temperature: "12°C",
		},
		Daily: []report.DailyRow{
			{Label: "Mon", Temperature: "14° / 8°", Icon: format.Rain, Precipitation: "3.2 mm"},
		},
	}

	e := reportEmbed(rep, 1500*time.Millisecond)
	if e.Author.Name != "\U0001F1EB\U0001F1F7 Paris, FR" {
		t.Errorf("author = %q", e.Author.Name)
	}
	if e.Title != "🌧️ Rain" {
		t.Errorf("title = %q", e.Title)
	}
	if e.Fields[0].Value != "12°C" {
		t.Errorf("temperature field = %q", e.Fields[0].Value)
	}
	last := e.Fields[len(e.Fields)-1]
	if last.Name != "Next 5 days" || !strings.Contains(last.Value, "14° / 8°") {
		t.Errorf("daily field = %+v", last)
	}
	for _, f := range e.Fields {
		if f.Name == "Next 24 hours" || strings.HasPrefix(f.Name, "Next 2 hours") {
			t.Errorf("empty view rendered as %q", f.Name)
		}
	}
	if !strings.Contains(e.Footer.Text, "Units: °C · Europe/Paris · Response time: 1.50s") {
		t.Errorf("footer = %q", e.Footer.Text)
	}
}

func TestSavedList(t *testing.T) {
	if got := savedList(nil); !strings.Contains(got, "No saved places") {
		t.Errorf("empty list = %q", got)
	}
	got := savedList([]place.Location{{Label: place.MyLocationLabel, Lat: 1, Lon: 2}})
	if !strings.Contains(got, "📍 My location") {
		t.Errorf("list = %q", got)
	}
}
