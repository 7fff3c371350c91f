package forecast

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/FlameInTheDark/uwuweather/internal/units"
)

const samplePayload = `{
  "latitude": 1.29,
  "longitude": 103.85,
  "utc_offset_seconds": 28800,
  "timezone": "Asia/Singapore",
  "current": {
    "time": "2025-03-01T10:15",
    "temperature_2m": 31.2,
    "relative_humidity_2m": 70,
    "apparent_temperature": 36.1,
    "precipitation": 0.0,
    "weather_code": 2,
    "cloud_cover": 40,
    "wind_speed_10m": 11.0,
    "wind_gusts_10m": 20.5,
    "wind_direction_10m": 190,
    "surface_pressure": null
  },
  "hourly": {
    "time": ["2025-03-01T10:00", "2025-03-01T11:00", "2025-03-01T12:00"],
    "temperature_2m": [30.5, 31.0, null],
    "precipitation_probability": [10, 20],
    "weather_code": [1, 61, 95]
  },
  "daily": {
    "time": ["2025-03-01", "2025-03-02"],
    "weather_code": [2, 63],
    "temperature_2m_max": [31.4, 30.9],
    "temperature_2m_min": [25.1, 24.8],
    "precipitation_sum": [0, 12.25]
  }
}`

func TestFetchSendsBatchedQuery(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forecast" {
			t.Errorf("path = %q, want /forecast", r.URL.Path)
		}
		got = map[string]string{}
		for k := range r.URL.Query() {
			got[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	if _, err := c.Fetch(context.Background(), 1.2899, 103.8517, units.Imperial); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	want := map[string]string{
		"latitude":         "1.2899",
		"longitude":        "103.8517",
		"timezone":         "auto",
		"forecast_days":    "7",
		"past_days":        "0",
		"temperature_unit": "fahrenheit",
		"wind_speed_unit":  "mph",
		"minutely_15":      "precipitation",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("param %s = %q, want %q", k, got[k], v)
		}
	}
	for _, k := range []string{"current", "hourly", "daily"} {
		if got[k] == "" {
			t.Errorf("param %s missing", k)
		}
	}
	if !strings.Contains(got["current"], "wind_direction_10m") {
		t.Errorf("current fields = %q, want wind_direction_10m", got["current"])
	}
}

func TestFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":true,"reason":"bad"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).Fetch(context.Background(), 0, 0, units.Metric)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestFetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, nil).Fetch(context.Background(), 0, 0, units.Metric)
	if err == nil {
		t.Fatal("expected error for closed server")
	}
	if errors.Is(err, ErrUnavailable) {
		t.Errorf("transport failure should not be ErrUnavailable: %v", err)
	}
}

func TestDecodeAppliesOffsetAndAlignment(t *testing.T) {
	s, err := Decode([]byte(samplePayload))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	wantNow := time.Date(2025, 3, 1, 2, 15, 0, 0, time.UTC)
	if !s.Current.Time.Equal(wantNow) {
		t.Errorf("current time = %v, want %v", s.Current.Time.UTC(), wantNow)
	}
	if s.Current.Pressure != nil {
		t.Errorf("pressure = %v, want absent", *s.Current.Pressure)
	}
	if s.Current.WeatherCode == nil || *s.Current.WeatherCode != 2 {
		t.Errorf("weather code = %v, want 2", s.Current.WeatherCode)
	}

	if s.Hourly.Len() != 3 {
		t.Fatalf("hourly len = %d, want 3", s.Hourly.Len())
	}
	if len(s.Hourly.PrecipitationProbability) != 3 || s.Hourly.PrecipitationProbability[2] != nil {
		t.Errorf("short precipitation_probability should be padded with absent values")
	}
	if s.Hourly.Temperature[2] != nil {
		t.Errorf("null temperature should stay absent")
	}
	if len(s.Hourly.Pressure) != 3 {
		t.Errorf("missing hourly field should align to time axis, got %d", len(s.Hourly.Pressure))
	}
	if c := At(s.Hourly.WeatherCode, 2); c == nil || *c != 95 {
		t.Errorf("hourly code[2] = %v, want 95", c)
	}
	if At(s.Hourly.Temperature, 10) != nil {
		t.Errorf("At past the end should be nil")
	}

	if s.Daily.Len() != 2 {
		t.Fatalf("daily len = %d, want 2", s.Daily.Len())
	}
	if s.Daily.Time[1].Weekday() != time.Sunday {
		t.Errorf("daily[1] weekday = %v, want Sunday", s.Daily.Time[1].Weekday())
	}
	if s.Nowcast.Len() != 0 {
		t.Errorf("missing minutely_15 should decode as empty, got %d", s.Nowcast.Len())
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("<html>")); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}
