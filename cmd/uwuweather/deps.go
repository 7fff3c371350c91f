package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
	"resty.dev/v3"

	"github.com/FlameInTheDark/uwuweather/internal/config"
	"github.com/FlameInTheDark/uwuweather/internal/forecast"
	"github.com/FlameInTheDark/uwuweather/internal/geocode"
	"github.com/FlameInTheDark/uwuweather/internal/place"
	"github.com/FlameInTheDark/uwuweather/internal/session"
	"github.com/FlameInTheDark/uwuweather/internal/state"
)

// deps holds the collaborators shared by every session of one process.
type deps struct {
	cfg      config.Config
	http     *resty.Client
	resolver *place.Resolver
	fetcher  *forecast.Client
}

func newDeps(cfg config.Config) *deps {
	httpClient := resty.New().
		SetTimeout(cfg.HTTPTimeout).
		SetRetryCount(0)
	return &deps{
		cfg:      cfg,
		http:     httpClient,
		resolver: place.NewResolver(geocode.NewClient(cfg.GeocodingURL, httpClient), cfg.Language),
		fetcher:  forecast.NewClient(cfg.ForecastURL, httpClient),
	}
}

// session opens a session persisted in the given state file.
func (d *deps) session(stateFile string) *session.Session {
	store := state.NewStore(state.NewFileBackend(stateFile))
	return session.New(d.resolver, d.fetcher, store,
		session.WithDefaultLocation(d.cfg.DefaultLocation.Location()),
		session.WithDefaultUnits(d.cfg.UnitSystem()),
	)
}

func (d *deps) Close() error {
	return d.http.Close()
}

func setupLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// load reads flags and config shared by every sub-command.
func load(c *cli.Command) (*deps, error) {
	setupLogger(c.Bool("verbose"))
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	return newDeps(cfg), nil
}
