package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

const geocodePayload = `{"results":[
  {"name":"Singapore","country_code":"SG","latitude":1.28967,"longitude":103.85007},
  {"name":"Singapore","admin1":"Michigan","country_code":"US","latitude":42.67,"longitude":-86.2}
]}`

const forecastPayload = `{
  "utc_offset_seconds": 28800,
  "timezone": "Asia/Singapore",
  "current": {"time": "2025-03-01T10:15", "temperature_2m": 31.2, "weather_code": 2, "wind_speed_10m": 11, "wind_direction_10m": 190},
  "daily": {
    "time": ["2025-03-01","2025-03-02","2025-03-03","2025-03-04","2025-03-05","2025-03-06","2025-03-07"],
    "weather_code": [2,3,61,63,95,0,1],
    "temperature_2m_max": [31,31,30,30,29,32,31],
    "temperature_2m_min": [25,25,24,24,24,26,25],
    "precipitation_sum": [0,0.4,5,12.3,20,0,0]
  }
}`

type cliEnv struct {
	args  []string
	units []string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	env := &cliEnv{}

	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(geocodePayload))
	}))
	t.Cleanup(geo.Close)
	wx := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.units = append(env.units, r.URL.Query().Get("temperature_unit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(forecastPayload))
	}))
	t.Cleanup(wx.Close)

	t.Setenv("UWUWEATHER_GEOCODING_URL", geo.URL)
	t.Setenv("UWUWEATHER_FORECAST_URL", wx.URL)
	t.Setenv("UWUWEATHER_STATE_FILE", filepath.Join(dir, "state.json"))
	env.args = []string{"uwuweather", "--config", filepath.Join(dir, "none.yaml")}
	return env
}

func (e *cliEnv) run(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	defer func() { stdout = prev }()

	if err := newCommand().Run(context.Background(), append(append([]string{}, e.args...), args...)); err != nil {
		t.Fatalf("run %v: %v", args, err)
	}
	return buf.String()
}

func TestShowCommand(t *testing.T) {
	env := newCLIEnv(t)

	out := env.run(t, "show", "Singapore")
	for _, want := range []string{"Singapore, SG", "Temperature: 31°C", "Wind: 11 km/h S", "## Next 5 days"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "mm\n") < 5 {
		t.Errorf("expected five daily rows:\n%s", out)
	}

	out = env.run(t, "show", "--lat", "1.35", "--lon", "103.82")
	if !strings.Contains(out, "📍 My location") {
		t.Errorf("coordinates should show as My location:\n%s", out)
	}
}

func TestSearchCommandListsCandidates(t *testing.T) {
	env := newCLIEnv(t)
	out := env.run(t, "search", "Singapore")
	if !strings.Contains(out, " 1. ") || !strings.Contains(out, "Singapore, Michigan, US") {
		t.Errorf("candidates missing:\n%s", out)
	}
}

func TestUnitsCommand(t *testing.T) {
	env := newCLIEnv(t)

	if out := env.run(t, "units"); !strings.Contains(out, "metric") {
		t.Errorf("units = %q", out)
	}
	if out := env.run(t, "units", "toggle"); !strings.Contains(out, "imperial (°F, mph)") {
		t.Errorf("toggle = %q", out)
	}
	env.run(t, "show", "Singapore")
	if last := env.units[len(env.units)-1]; last != "fahrenheit" {
		t.Errorf("temperature_unit = %q, want fahrenheit after toggle", last)
	}
}

func TestSavedPlacesCommands(t *testing.T) {
	env := newCLIEnv(t)

	if out := env.run(t, "saved"); !strings.Contains(out, "No saved places") {
		t.Errorf("saved = %q", out)
	}
	if out := env.run(t, "save"); !strings.Contains(out, "Load a location first") {
		t.Errorf("save with nothing loaded = %q", out)
	}
	if len(env.units) != 0 {
		t.Errorf("save with nothing loaded fetched %d forecasts", len(env.units))
	}
	if out := env.run(t, "saved"); !strings.Contains(out, "No saved places") {
		t.Errorf("default location should not be saved, got %q", out)
	}
	if out := env.run(t, "save", "Singapore"); !strings.Contains(out, "Saved Singapore, SG") {
		t.Errorf("save = %q", out)
	}
	fetches := len(env.units)
	if out := env.run(t, "save"); !strings.Contains(out, "Singapore, SG is already saved") {
		t.Errorf("second save = %q", out)
	}
	if len(env.units) != fetches {
		t.Errorf("saving the last location should not fetch")
	}
	out := env.run(t, "saved")
	if !strings.Contains(out, " 1. \U0001F1F8\U0001F1EC Singapore, SG") {
		t.Errorf("saved = %q", out)
	}
	if out := env.run(t, "forget", "1"); !strings.Contains(out, "Removed Singapore, SG") {
		t.Errorf("forget = %q", out)
	}
}
