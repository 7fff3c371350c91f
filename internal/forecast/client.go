package forecast

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/FlameInTheDark/uwuweather/internal/units"
)

// DefaultBaseURL is the public Open-Meteo forecast API.
const DefaultBaseURL = "https://api.open-meteo.com/v1"

const forecastDays = 7

// ErrUnavailable is returned when the provider answers with a non-2xx status
// or a body that cannot be decoded.
var ErrUnavailable = errors.New("forecast unavailable")

var (
	CurrentFields = []string{
		"temperature_2m", "relative_humidity_2m", "apparent_temperature", "precipitation",
		"weather_code", "cloud_cover", "wind_speed_10m", "wind_gusts_10m", "wind_direction_10m", "surface_pressure",
	}
	HourlyFields = []string{
		"temperature_2m", "precipitation_probability", "precipitation", "weather_code",
		"wind_speed_10m", "cloud_cover", "surface_pressure",
	}
	DailyFields = []string{
		"weather_code", "temperature_2m_max", "temperature_2m_min", "precipitation_sum",
		"precipitation_probability_max", "wind_speed_10m_max",
	}
	NowcastFields = []string{"precipitation"}
)

// Client is a thin wrapper around resty.Client for the Open-Meteo forecast API.
type Client struct {
	baseURL string
	client  *resty.Client
}

// NewClient creates a new Client. A nil httpClient gets a resty client with a
// 10-second timeout and no retries.
func NewClient(baseURL string, httpClient *resty.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = resty.New().
			SetTimeout(10 * time.Second).
			SetRetryCount(0)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
	}
}

// Params builds the single batched query for lat/lon in the given units.
func Params(lat, lon float64, u units.System) map[string]string {
	return map[string]string{
		"latitude":         strconv.FormatFloat(lat, 'f', -1, 64),
		"longitude":        strconv.FormatFloat(lon, 'f', -1, 64),
		"timezone":         "auto",
		"current":          strings.Join(CurrentFields, ","),
		"hourly":           strings.Join(HourlyFields, ","),
		"daily":            strings.Join(DailyFields, ","),
		"minutely_15":      strings.Join(NowcastFields, ","),
		"forecast_days":    strconv.Itoa(forecastDays),
		"past_days":        "0",
		"temperature_unit": u.TemperatureParam(),
		"wind_speed_unit":  u.WindSpeedParam(),
	}
}

// Fetch retrieves current, hourly, daily and 15-minute series in one round
// trip. There is no retry.
func (c *Client) Fetch(ctx context.Context, lat, lon float64, u units.System) (*Series, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(Params(lat, lon, u)).
		Get(c.baseURL + "/forecast")
	if err != nil {
		return nil, fmt.Errorf("fetch forecast: %w", err)
	}
	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, fmt.Errorf("forecast API returned %s: %w", resp.Status(), ErrUnavailable)
	}

	series, err := Decode(resp.Bytes())
	if err != nil {
		return nil, err
	}
	return series, nil
}
