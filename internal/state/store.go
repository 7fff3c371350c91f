// Package state persists the user's unit preference, last viewed location and
// saved places. Each field is read and written on its own; anything that
// cannot be parsed reads as absent.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/FlameInTheDark/uwuweather/internal/place"
	"github.com/FlameInTheDark/uwuweather/internal/units"
)

const (
	KeyUnits = "units"
	KeyLast  = "last"
	KeySaved = "saved"

	// MaxSaved caps the saved-places list.
	MaxSaved = 12
)

var ErrIndexOutOfRange = errors.New("saved place index out of range")

// Store reads and writes persisted fields through a Backend.
type Store struct {
	backend Backend

	// savedMu serialises read-modify-write of the saved list.
	savedMu sync.Mutex
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// raw returns the stored string for key. Backend read failures are logged
// and treated as absent.
func (s *Store) raw(key string) (string, bool) {
	v, ok, err := s.backend.Get(key)
	if err != nil {
		slog.Warn("Failed to read persisted state", slog.String("key", key), slog.String("error", err.Error()))
		return "", false
	}
	return v, ok
}

func (s *Store) Units() Maybe[units.System] {
	v, ok := s.raw(KeyUnits)
	if !ok {
		return None[units.System]()
	}
	u, ok := units.Parse(v)
	if !ok {
		slog.Warn("Ignoring unknown stored units", slog.String("value", v))
		return None[units.System]()
	}
	return Some(u)
}

func (s *Store) SetUnits(u units.System) error {
	if err := s.backend.Set(KeyUnits, u.String()); err != nil {
		return fmt.Errorf("persist units: %w", err)
	}
	return nil
}

func (s *Store) LastLocation() Maybe[place.Location] {
	v, ok := s.raw(KeyLast)
	if !ok {
		return None[place.Location]()
	}
	if !gjson.Valid(v) {
		slog.Warn("Ignoring malformed last location")
		return None[place.Location]()
	}
	loc, ok := parseLocation(gjson.Parse(v))
	if !ok {
		slog.Warn("Ignoring malformed last location")
		return None[place.Location]()
	}
	return Some(loc)
}

// SetLastLocation overwrites the last location unconditionally.
func (s *Store) SetLastLocation(loc place.Location) error {
	data, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("encode last location: %w", err)
	}
	if err := s.backend.Set(KeyLast, string(data)); err != nil {
		return fmt.Errorf("persist last location: %w", err)
	}
	return nil
}

// SavedPlaces returns the saved list, most recent first. Entries that cannot
// be read are skipped; a list that cannot be read at all is absent.
func (s *Store) SavedPlaces() Maybe[[]place.Location] {
	v, ok := s.raw(KeySaved)
	if !ok {
		return None[[]place.Location]()
	}
	if !gjson.Valid(v) {
		slog.Warn("Ignoring malformed saved places")
		return None[[]place.Location]()
	}
	list := gjson.Parse(v)
	if !list.IsArray() {
		slog.Warn("Ignoring malformed saved places")
		return None[[]place.Location]()
	}

	var out []place.Location
	list.ForEach(func(_, item gjson.Result) bool {
		if loc, ok := parseLocation(item); ok {
			out = append(out, loc)
		}
		return len(out) < MaxSaved
	})
	return Some(out)
}

// AddSavedPlace inserts loc at the front of the saved list. It reports false
// without writing when a saved place already sits at the same position.
func (s *Store) AddSavedPlace(loc place.Location) (bool, error) {
	s.savedMu.Lock()
	defer s.savedMu.Unlock()

	list := s.SavedPlaces().OrElse(nil)
	for _, existing := range list {
		if existing.SamePosition(loc) {
			return false, nil
		}
	}

	list = append([]place.Location{loc}, list...)
	if len(list) > MaxSaved {
		list = list[:MaxSaved]
	}
	if err := s.writeSaved(list); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveSavedPlace deletes the entry at index and returns it.
func (s *Store) RemoveSavedPlace(index int) (place.Location, error) {
	s.savedMu.Lock()
	defer s.savedMu.Unlock()

	list := s.SavedPlaces().OrElse(nil)
	if index < 0 || index >= len(list) {
		return place.Location{}, fmt.Errorf("remove %d of %d: %w", index, len(list), ErrIndexOutOfRange)
	}
	removed := list[index]
	list = append(list[:index:index], list[index+1:]...)
	if err := s.writeSaved(list); err != nil {
		return place.Location{}, err
	}
	return removed, nil
}

func (s *Store) writeSaved(list []place.Location) error {
	if list == nil {
		list = []place.Location{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode saved places: %w", err)
	}
	if err := s.backend.Set(KeySaved, string(data)); err != nil {
		return fmt.Errorf("persist saved places: %w", err)
	}
	return nil
}

// parseLocation accepts {"name": string, "lat": number, "lon": number} with
// coordinates inside the valid range.
func parseLocation(r gjson.Result) (place.Location, bool) {
	if !r.IsObject() {
		return place.Location{}, false
	}
	name, lat, lon := r.Get("name"), r.Get("lat"), r.Get("lon")
	if name.Type != gjson.String || lat.Type != gjson.Number || lon.Type != gjson.Number {
		return place.Location{}, false
	}
	loc := place.Location{Label: name.String(), Lat: lat.Float(), Lon: lon.Float()}
	if math.Abs(loc.Lat) > 90 || math.Abs(loc.Lon) > 180 {
		return place.Location{}, false
	}
	return loc, true
}
