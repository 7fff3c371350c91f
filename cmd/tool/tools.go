package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"resty.dev/v3"

	"github.com/FlameInTheDark/uwuweather/internal/config"
	"github.com/FlameInTheDark/uwuweather/internal/forecast"
	"github.com/FlameInTheDark/uwuweather/internal/geocode"
	"github.com/FlameInTheDark/uwuweather/internal/place"
	"github.com/FlameInTheDark/uwuweather/internal/report"
	"github.com/FlameInTheDark/uwuweather/internal/session"
	"github.com/FlameInTheDark/uwuweather/internal/state"
	"github.com/FlameInTheDark/uwuweather/internal/units"
)

type SearchPlacesArguments struct {
	Query string `json:"query" jsonschema:"required,description=Place to look up. Eg: Springfield, Illinois, US"`
}

type WeatherForecastArguments struct {
	Place string   `json:"place,omitempty" jsonschema:"description=Place to get the forecast for. Eg: London, GB"`
	Lat   *float64 `json:"lat,omitempty" jsonschema:"description=Latitude, used with lon instead of place"`
	Lon   *float64 `json:"lon,omitempty" jsonschema:"description=Longitude, used with lat instead of place"`
	Units string   `json:"units,omitempty" jsonschema:"enum=metric,enum=imperial,description=Unit system, metric by default"`
}

// Tools serves MCP tool calls. Every call gets its own in-memory session, so
// nothing persists between calls.
type Tools struct {
	cfg      config.Config
	http     *resty.Client
	resolver *place.Resolver
	fetcher  *forecast.Client
}

func NewTools(cfg config.Config) *Tools {
	httpClient := resty.New().
		SetTimeout(cfg.HTTPTimeout).
		SetRetryCount(0)
	return &Tools{
		cfg:      cfg,
		http:     httpClient,
		resolver: place.NewResolver(geocode.NewClient(cfg.GeocodingURL, httpClient), cfg.Language),
		fetcher:  forecast.NewClient(cfg.ForecastURL, httpClient),
	}
}

func (t *Tools) Close() error {
	return t.http.Close()
}

func (t *Tools) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*t.cfg.HTTPTimeout)
}

// SearchPlaces lists every candidate for the query.
func (t *Tools) SearchPlaces(args SearchPlacesArguments) string {
	q := place.ParseQuery(args.Query)
	if q.IsEmpty() {
		return "Query is empty"
	}
	ctx, cancel := t.context()
	defer cancel()

	candidates, err := t.resolver.Resolve(ctx, q)
	if err != nil {
		slog.Error("unable to search location", slog.String("error", err.Error()))
		return fmt.Sprintf("Unable to search for '%s': %s", args.Query, err.Error())
	}
	if len(candidates) == 0 {
		return "No location found"
	}

	var b strings.Builder
	for i, c := range candidates {
		b.WriteString(fmt.Sprintf("[%d] Name: %s\n[%d] Coordinates: %.4f, %.4f\n\n", i+1, c.Label, i+1, c.Lat, c.Lon))
	}
	return b.String()
}

// Forecast renders the full report for a place or for coordinates.
func (t *Tools) Forecast(args WeatherForecastArguments) string {
	u := t.cfg.UnitSystem()
	if args.Units != "" {
		var ok bool
		if u, ok = units.Parse(args.Units); !ok {
			return fmt.Sprintf("Unknown units '%s', use metric or imperial", args.Units)
		}
	}

	store := state.NewStore(state.NewMemoryBackend())
	if err := store.SetUnits(u); err != nil {
		return fmt.Sprintf("Unable to set units: %s", err.Error())
	}
	s := session.New(t.resolver, t.fetcher, store)

	ctx, cancel := t.context()
	defer cancel()

	var (
		rep *report.Report
		err error
	)
	switch {
	case args.Lat != nil && args.Lon != nil:
		rep, err = s.Load(ctx, place.Location{Label: place.MyLocationLabel, Lat: *args.Lat, Lon: *args.Lon})
	case strings.TrimSpace(args.Place) != "":
		_, rep, err = s.Search(ctx, args.Place)
	default:
		return "Either place or both lat and lon are required"
	}
	if errors.Is(err, session.ErrNoMatch) {
		return "No location found"
	}
	if err != nil {
		slog.Error("unable to get weather forecast", slog.String("error", err.Error()))
		return fmt.Sprintf("Unable to get weather forecast: %s", err.Error())
	}
	return rep.Markdown()
}
