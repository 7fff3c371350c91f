// Package session holds the explicit per-user context: unit system, active
// location and request sequencing. It drives the resolve, fetch and render
// pipeline and writes persisted state after each successful operation.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/FlameInTheDark/uwuweather/internal/forecast"
	"github.com/FlameInTheDark/uwuweather/internal/place"
	"github.com/FlameInTheDark/uwuweather/internal/report"
	"github.com/FlameInTheDark/uwuweather/internal/state"
	"github.com/FlameInTheDark/uwuweather/internal/units"
)

var (
	// ErrNoMatch is returned when a non-empty query resolves to no candidates.
	ErrNoMatch = errors.New("no matching location found")
	// ErrSuperseded is returned by a load whose response arrived after a newer
	// load was issued. Nothing is changed.
	ErrSuperseded = errors.New("load superseded by a newer request")
	// ErrNoActiveLocation is returned when an operation needs a loaded location.
	ErrNoActiveLocation = errors.New("no location loaded")
)

// DefaultLocation is shown when there is neither a query nor a last location.
var DefaultLocation = place.Location{Label: "Singapore, SG", Lat: 1.2899, Lon: 103.8517}

// Resolver turns a parsed query into ordered candidates.
type Resolver interface {
	Resolve(ctx context.Context, q place.Query) ([]place.Candidate, error)
}

// Fetcher retrieves one batched forecast in the given units.
type Fetcher interface {
	Fetch(ctx context.Context, lat, lon float64, u units.System) (*forecast.Series, error)
}

type Option func(*Session)

// WithDefaultLocation overrides DefaultLocation for Boot.
func WithDefaultLocation(loc place.Location) Option {
	return func(s *Session) { s.fallback = loc }
}

// WithDefaultUnits sets the units used when none are persisted.
func WithDefaultUnits(u units.System) Option {
	return func(s *Session) { s.defaultUnits = u }
}

// WithClock replaces time.Now as the windowing reference.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

type Session struct {
	resolver     Resolver
	fetcher      Fetcher
	store        *state.Store
	fallback     place.Location
	defaultUnits units.System
	now          func() time.Time

	seq atomic.Uint64

	mu     sync.Mutex
	units  units.System
	active state.Maybe[place.Location]
}

// New creates a session and reads the persisted unit preference.
func New(resolver Resolver, fetcher Fetcher, store *state.Store, opts ...Option) *Session {
	s := &Session{
		resolver:     resolver,
		fetcher:      fetcher,
		store:        store,
		fallback:     DefaultLocation,
		defaultUnits: units.Metric,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.units = store.Units().OrElse(s.defaultUnits)
	return s
}

func (s *Session) Units() units.System {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.units
}

// Active returns the location of the last successful load.
func (s *Session) Active() state.Maybe[place.Location] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Load fetches and renders the forecast for loc in the current units. Each
// call is tagged with a sequence number; if a newer Load starts before this
// one finishes, this one returns ErrSuperseded and leaves the session alone.
// If the units change while the fetch is in flight, the fetch is repeated in
// the new units.
func (s *Session) Load(ctx context.Context, loc place.Location) (*report.Report, error) {
	seq := s.seq.Add(1)

	for {
		u := s.Units()

		slog.Debug("Loading forecast", slog.String("label", loc.Label), slog.String("units", u.String()), slog.Uint64("seq", seq))
		series, err := s.fetcher.Fetch(ctx, loc.Lat, loc.Lon, u)
		if s.seq.Load() != seq {
			slog.Debug("Discarding stale forecast", slog.String("label", loc.Label), slog.Uint64("seq", seq))
			return nil, ErrSuperseded
		}
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", loc.Label, err)
		}

		s.mu.Lock()
		if s.seq.Load() != seq {
			s.mu.Unlock()
			return nil, ErrSuperseded
		}
		if s.units != u {
			s.mu.Unlock()
			slog.Debug("Units changed during fetch, refetching", slog.String("label", loc.Label), slog.Uint64("seq", seq))
			continue
		}
		s.active = state.Some(loc)
		s.mu.Unlock()

		if err := s.store.SetLastLocation(loc); err != nil {
			slog.Warn("Failed to persist last location", slog.String("error", err.Error()))
		}
		return report.Build(loc, series, u, s.now()), nil
	}
}

// Search resolves raw and loads the first candidate. A blank query is a no-op
// and returns nothing. All candidates are returned for disambiguation.
func (s *Session) Search(ctx context.Context, raw string) ([]place.Candidate, *report.Report, error) {
	q := place.ParseQuery(raw)
	if q.IsEmpty() {
		return nil, nil, nil
	}
	candidates, err := s.resolver.Resolve(ctx, q)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve %q: %w", q.Name, err)
	}
	if len(candidates) == 0 {
		return nil, nil, ErrNoMatch
	}
	rep, err := s.Load(ctx, candidates[0].Location())
	if err != nil {
		return candidates, nil, err
	}
	return candidates, rep, nil
}

// Boot picks the first location to show: the startup query if it resolves,
// then the persisted last location, then the default location.
func (s *Session) Boot(ctx context.Context, query string) (*report.Report, error) {
	if place.ParseQuery(query).IsEmpty() {
		return s.bootFallback(ctx)
	}
	_, rep, err := s.Search(ctx, query)
	switch {
	case err == nil:
		return rep, nil
	case errors.Is(err, ErrSuperseded), errors.Is(err, context.Canceled):
		return nil, err
	case errors.Is(err, ErrNoMatch):
		slog.Info("No match for startup query, showing fallback", slog.String("query", query))
	default:
		slog.Warn("Startup query failed, showing fallback", slog.String("query", query), slog.String("error", err.Error()))
	}
	return s.bootFallback(ctx)
}

func (s *Session) bootFallback(ctx context.Context) (*report.Report, error) {
	if last, ok := s.store.LastLocation().Get(); ok {
		return s.Load(ctx, last)
	}
	return s.Load(ctx, s.fallback)
}

// SetUnits persists u and, when a location is loaded, re-fetches it so every
// number comes from the provider in the new system. The report is nil when
// nothing is loaded.
func (s *Session) SetUnits(ctx context.Context, u units.System) (*report.Report, error) {
	s.mu.Lock()
	s.units = u
	active, ok := s.active.Get()
	s.mu.Unlock()

	if err := s.store.SetUnits(u); err != nil {
		slog.Warn("Failed to persist units", slog.String("error", err.Error()))
	}
	if !ok {
		return nil, nil
	}
	return s.Load(ctx, active)
}

// ToggleUnits flips metric and imperial; see SetUnits.
func (s *Session) ToggleUnits(ctx context.Context) (units.System, *report.Report, error) {
	u := s.Units().Toggle()
	rep, err := s.SetUnits(ctx, u)
	return u, rep, err
}

// Current returns the active location, or the persisted last location when
// nothing has been loaded in this session.
func (s *Session) Current() state.Maybe[place.Location] {
	if active := s.Active(); active.Present() {
		return active
	}
	return s.store.LastLocation()
}

// SaveCurrent adds the current location to the saved places without fetching.
// It reports false when an entry at the same position already exists.
func (s *Session) SaveCurrent() (bool, error) {
	loc, ok := s.Current().Get()
	if !ok {
		return false, ErrNoActiveLocation
	}
	return s.store.AddSavedPlace(loc)
}

func (s *Session) RemoveSaved(index int) (place.Location, error) {
	return s.store.RemoveSavedPlace(index)
}

func (s *Session) Saved() []place.Location {
	return s.store.SavedPlaces().OrElse(nil)
}
