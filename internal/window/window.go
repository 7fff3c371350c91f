// Package window slices a fetched forecast into the bounded, forward-looking
// views shown to the user. Every function takes the reference instant
// explicitly and nothing is cached between calls.
package window

import (
	"time"

	"github.com/FlameInTheDark/uwuweather/internal/forecast"
)

const (
	MaxHourly       = 24
	MaxDaily        = 5
	NowcastHorizon  = 2 * time.Hour
	NowcastFallback = 8
)

type HourlyPoint struct {
	Time                     time.Time
	Temperature              *float64
	PrecipitationProbability *float64
	Precipitation            *float64
	WeatherCode              *int
	WindSpeed                *float64
}

type DailyPoint struct {
	Date             time.Time
	WeatherCode      *int
	TemperatureMax   *float64
	TemperatureMin   *float64
	PrecipitationSum *float64
	PrecipitationMax *float64
	WindSpeedMax     *float64
}

type NowcastPoint struct {
	Time          time.Time
	Precipitation *float64
}

// Views holds the three time-relative views of one fetch.
type Views struct {
	Hourly  []HourlyPoint
	Daily   []DailyPoint
	Nowcast []NowcastPoint
}

// Extract windows every sub-series of s against now.
func Extract(s *forecast.Series, now time.Time) Views {
	if s == nil {
		return Views{}
	}
	return Views{
		Hourly:  Hourly(s.Hourly, now),
		Daily:   Daily(s.Daily),
		Nowcast: Nowcast(s.Nowcast, now),
	}
}

// Upcoming returns the indices of times at or after now, in array order,
// stopping once limit indices are collected.
func Upcoming(times []time.Time, now time.Time, limit int) []int {
	idx := make([]int, 0, min(limit, len(times)))
	for i, t := range times {
		if len(idx) == limit {
			break
		}
		if t.IsZero() || t.Before(now) {
			continue
		}
		idx = append(idx, i)
	}
	return idx
}

// Within returns the indices of times inside [from, to], in array order.
func Within(times []time.Time, from, to time.Time) []int {
	var idx []int
	for i, t := range times {
		if t.IsZero() || t.Before(from) || t.After(to) {
			continue
		}
		idx = append(idx, i)
	}
	return idx
}

func Hourly(h forecast.Hourly, now time.Time) []HourlyPoint {
	idx := Upcoming(h.Time, now, MaxHourly)
	out := make([]HourlyPoint, 0, len(idx))
	for _, i := range idx {
		out = append(out, HourlyPoint{
			Time:                     h.Time[i],
			Temperature:              forecast.At(h.Temperature, i),
			PrecipitationProbability: forecast.At(h.PrecipitationProbability, i),
			Precipitation:            forecast.At(h.Precipitation, i),
			WeatherCode:              forecast.At(h.WeatherCode, i),
			WindSpeed:                forecast.At(h.WindSpeed, i),
		})
	}
	return out
}

// Daily takes the leading entries as delivered; the provider already starts
// at today.
func Daily(d forecast.Daily) []DailyPoint {
	n := min(MaxDaily, d.Len())
	out := make([]DailyPoint, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, DailyPoint{
			Date:             d.Time[i],
			WeatherCode:      forecast.At(d.WeatherCode, i),
			TemperatureMax:   forecast.At(d.TemperatureMax, i),
			TemperatureMin:   forecast.At(d.TemperatureMin, i),
			PrecipitationSum: forecast.At(d.PrecipitationSum, i),
			PrecipitationMax: forecast.At(d.PrecipitationProbabilityMax, i),
			WindSpeedMax:     forecast.At(d.WindSpeedMax, i),
		})
	}
	return out
}

// Nowcast returns the 15-minute points in [now, now+2h]. When none qualify it
// returns the first eight raw points regardless of their age, so a non-empty
// series always yields a non-empty view.
func Nowcast(n forecast.Nowcast, now time.Time) []NowcastPoint {
	idx := Within(n.Time, now, now.Add(NowcastHorizon))
	if len(idx) == 0 {
		for i := 0; i < min(NowcastFallback, n.Len()); i++ {
			idx = append(idx, i)
		}
	}
	out := make([]NowcastPoint, 0, len(idx))
	for _, i := range idx {
		out = append(out, NowcastPoint{
			Time:          n.Time[i],
			Precipitation: forecast.At(n.Precipitation, i),
		})
	}
	return out
}
