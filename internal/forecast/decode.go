package forecast

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

const (
	minuteLayout = "2006-01-02T15:04"
	dateLayout   = "2006-01-02"
)

type rawResponse struct {
	UTCOffsetSeconds int         `json:"utc_offset_seconds"`
	Timezone         string      `json:"timezone"`
	Current          *rawCurrent `json:"current"`
	Hourly           *rawHourly  `json:"hourly"`
	Daily            *rawDaily   `json:"daily"`
	Minutely15       *rawNowcast `json:"minutely_15"`
}

type rawCurrent struct {
	Time                string   `json:"time"`
	Temperature2m       *float64 `json:"temperature_2m"`
	RelativeHumidity2m  *float64 `json:"relative_humidity_2m"`
	ApparentTemperature *float64 `json:"apparent_temperature"`
	Precipitation       *float64 `json:"precipitation"`
	WeatherCode         *float64 `json:"weather_code"`
	CloudCover          *float64 `json:"cloud_cover"`
	WindSpeed10m        *float64 `json:"wind_speed_10m"`
	WindGusts10m        *float64 `json:"wind_gusts_10m"`
	WindDirection10m    *float64 `json:"wind_direction_10m"`
	SurfacePressure     *float64 `json:"surface_pressure"`
}

type rawHourly struct {
	Time                     []string   `json:"time"`
	Temperature2m            []*float64 `json:"temperature_2m"`
	PrecipitationProbability []*float64 `json:"precipitation_probability"`
	Precipitation            []*float64 `json:"precipitation"`
	WeatherCode              []*float64 `json:"weather_code"`
	WindSpeed10m             []*float64 `json:"wind_speed_10m"`
	CloudCover               []*float64 `json:"cloud_cover"`
	SurfacePressure          []*float64 `json:"surface_pressure"`
}

type rawDaily struct {
	Time                        []string   `json:"time"`
	WeatherCode                 []*float64 `json:"weather_code"`
	Temperature2mMax            []*float64 `json:"temperature_2m_max"`
	Temperature2mMin            []*float64 `json:"temperature_2m_min"`
	PrecipitationSum            []*float64 `json:"precipitation_sum"`
	PrecipitationProbabilityMax []*float64 `json:"precipitation_probability_max"`
	WindSpeed10mMax             []*float64 `json:"wind_speed_10m_max"`
}

type rawNowcast struct {
	Time          []string   `json:"time"`
	Precipitation []*float64 `json:"precipitation"`
}

// Decode parses a forecast payload. Missing sub-objects become empty series.
// Provider timestamps are local wall-clock times; they are pinned to the
// payload's UTC offset so they compare correctly against time.Now.
func Decode(data []byte) (*Series, error) {
	var raw rawResponse
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode forecast response: %v: %w", err, ErrUnavailable)
	}

	loc := time.FixedZone(raw.Timezone, raw.UTCOffsetSeconds)
	s := &Series{Timezone: raw.Timezone}

	if c := raw.Current; c != nil {
		s.Current = Current{
			Time:          parseTime(minuteLayout, c.Time, loc),
			Temperature:   c.Temperature2m,
			Apparent:      c.ApparentTemperature,
			Humidity:      c.RelativeHumidity2m,
			Precipitation: c.Precipitation,
			WeatherCode:   toCode(c.WeatherCode),
			CloudCover:    c.CloudCover,
			WindSpeed:     c.WindSpeed10m,
			WindGusts:     c.WindGusts10m,
			WindDirection: c.WindDirection10m,
			Pressure:      c.SurfacePressure,
		}
	}

	if h := raw.Hourly; h != nil {
		n := len(h.Time)
		s.Hourly = Hourly{
			Time:                     parseTimes(minuteLayout, h.Time, loc),
			Temperature:              align(h.Temperature2m, n),
			PrecipitationProbability: align(h.PrecipitationProbability, n),
			Precipitation:            align(h.Precipitation, n),
			WeatherCode:              toCodes(h.WeatherCode, n),
			WindSpeed:                align(h.WindSpeed10m, n),
			CloudCover:               align(h.CloudCover, n),
			Pressure:                 align(h.SurfacePressure, n),
		}
	}

	if d := raw.Daily; d != nil {
		n := len(d.Time)
		s.Daily = Daily{
			Time:                        parseTimes(dateLayout, d.Time, loc),
			WeatherCode:                 toCodes(d.WeatherCode, n),
			TemperatureMax:              align(d.Temperature2mMax, n),
			TemperatureMin:              align(d.Temperature2mMin, n),
			PrecipitationSum:            align(d.PrecipitationSum, n),
			PrecipitationProbabilityMax: align(d.PrecipitationProbabilityMax, n),
			WindSpeedMax:                align(d.WindSpeed10mMax, n),
		}
	}

	if m := raw.Minutely15; m != nil {
		n := len(m.Time)
		s.Nowcast = Nowcast{
			Time:          parseTimes(minuteLayout, m.Time, loc),
			Precipitation: align(m.Precipitation, n),
		}
	}

	return s, nil
}

// align pads or truncates values to n entries so every index below n is
// addressable; padded entries are absent.
func align(values []*float64, n int) []*float64 {
	out := make([]*float64, n)
	copy(out, values)
	return out
}

func toCodes(values []*float64, n int) []*int {
	out := make([]*int, n)
	for i := 0; i < n && i < len(values); i++ {
		out[i] = toCode(values[i])
	}
	return out
}

func toCode(v *float64) *int {
	if v == nil || math.IsNaN(*v) {
		return nil
	}
	code := int(math.Round(*v))
	return &code
}

func parseTimes(layout string, values []string, loc *time.Location) []time.Time {
	out := make([]time.Time, len(values))
	for i, v := range values {
		out[i] = parseTime(layout, v, loc)
	}
	return out
}

// parseTime returns the zero time for values it cannot read, keeping index
// alignment intact.
func parseTime(layout, value string, loc *time.Location) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation(layout, value, loc)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, value); err != nil {
			return time.Time{}
		}
	}
	return t
}
