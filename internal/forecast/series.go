package forecast

import "time"

// Series is one batched forecast response. Every slice inside a sub-series is
// index-aligned with that sub-series' Time slice; a nil element is an absent
// value.
type Series struct {
	Timezone string
	Current  Current
	Hourly   Hourly
	Daily    Daily
	Nowcast  Nowcast
}

// Current is the snapshot of present conditions.
type Current struct {
	Time          time.Time
	Temperature   *float64
	Apparent      *float64
	Humidity      *float64
	Precipitation *float64
	WeatherCode   *int
	CloudCover    *float64
	WindSpeed     *float64
	WindGusts     *float64
	WindDirection *float64
	Pressure      *float64
}

type Hourly struct {
	Time                     []time.Time
	Temperature              []*float64
	PrecipitationProbability []*float64
	Precipitation            []*float64
	WeatherCode              []*int
	WindSpeed                []*float64
	CloudCover               []*float64
	Pressure                 []*float64
}

func (h Hourly) Len() int { return len(h.Time) }

type Daily struct {
	Time                        []time.Time
	WeatherCode                 []*int
	TemperatureMax              []*float64
	TemperatureMin              []*float64
	PrecipitationSum            []*float64
	PrecipitationProbabilityMax []*float64
	WindSpeedMax                []*float64
}

func (d Daily) Len() int { return len(d.Time) }

// Nowcast is the 15-minute precipitation series.
type Nowcast struct {
	Time          []time.Time
	Precipitation []*float64
}

func (n Nowcast) Len() int { return len(n.Time) }

// At returns values[i], or nil when the slice is shorter than i.
func At[T any](values []*T, i int) *T {
	if i < 0 || i >= len(values) {
		return nil
	}
	return values[i]
}
