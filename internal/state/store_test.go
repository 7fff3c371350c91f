package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/FlameInTheDark/uwuweather/internal/place"
	"github.com/FlameInTheDark/uwuweather/internal/units"
)

func loc(label string, lat, lon float64) place.Location {
	return place.Location{Label: label, Lat: lat, Lon: lon}
}

func TestMaybe(t *testing.T) {
	m := Some(3)
	if v, ok := m.Get(); !ok || v != 3 {
		t.Errorf("Some(3).Get() = %v, %v", v, ok)
	}
	n := None[string]()
	if n.Present() || n.OrElse("x") != "x" {
		t.Errorf("None should be absent and fall back")
	}
}

func TestUnits(t *testing.T) {
	be := NewMemoryBackend()
	s := NewStore(be)

	if s.Units().Present() {
		t.Fatal("units should be absent on an empty store")
	}
	if err := s.SetUnits(units.Imperial); err != nil {
		t.Fatal(err)
	}
	if got := s.Units().OrElse(units.Metric); got != units.Imperial {
		t.Errorf("units = %s, want imperial", got)
	}

	_ = be.Set(KeyUnits, "kelvin")
	if s.Units().Present() {
		t.Errorf("unknown units should read as absent")
	}
}

func TestLastLocation(t *testing.T) {
	be := NewMemoryBackend()
	s := NewStore(be)

	want := loc("Singapore, SG", 1.2899, 103.8517)
	if err := s.SetLastLocation(want); err != nil {
		t.Fatal(err)
	}
	got, ok := s.LastLocation().Get()
	if !ok || got != want {
		t.Fatalf("last = %+v, %v, want %+v", got, ok, want)
	}

	for _, raw := range []string{
		"not json",
		`[]`,
		`{"name":"x"}`,
		`{"name":"x","lat":"1","lon":2}`,
		`{"name":"x","lat":91,"lon":2}`,
		`null`,
	} {
		_ = be.Set(KeyLast, raw)
		if s.LastLocation().Present() {
			t.Errorf("last location %q should read as absent", raw)
		}
	}
}

func TestAddSavedPlaceDedupAndOrder(t *testing.T) {
	s := NewStore(NewMemoryBackend())

	added, err := s.AddSavedPlace(loc("Paris, FR", 48.85341, 2.3488))
	if err != nil || !added {
		t.Fatalf("first add = %v, %v", added, err)
	}
	if _, err := s.AddSavedPlace(loc("Tokyo, JP", 35.6895, 139.69171)); err != nil {
		t.Fatal(err)
	}

	added, err = s.AddSavedPlace(loc("Paris again", 48.8534105, 2.3488004))
	if err != nil {
		t.Fatal(err)
	}
	if added {
		t.Errorf("place within tolerance should not be added")
	}

	list := s.SavedPlaces().OrElse(nil)
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].Label != "Tokyo, JP" || list[1].Label != "Paris, FR" {
		t.Errorf("order = %v, want most recent first", list)
	}

	added, _ = s.AddSavedPlace(loc("Near Paris", 48.85342, 2.3488))
	if !added {
		t.Errorf("place 1e-5 away should be added")
	}
}

func TestAddSavedPlaceCap(t *testing.T) {
	s := NewStore(NewMemoryBackend())
	for i := 0; i < 20; i++ {
		if _, err := s.AddSavedPlace(loc("p", float64(i), float64(i))); err != nil {
			t.Fatal(err)
		}
		if n := len(s.SavedPlaces().OrElse(nil)); n > MaxSaved {
			t.Fatalf("after %d adds len = %d", i+1, n)
		}
	}
	list := s.SavedPlaces().OrElse(nil)
	if len(list) != MaxSaved {
		t.Fatalf("len = %d, want %d", len(list), MaxSaved)
	}
	if list[0].Lat != 19 || list[MaxSaved-1].Lat != 8 {
		t.Errorf("kept %v..%v, want newest 19..8", list[0].Lat, list[MaxSaved-1].Lat)
	}
}

func TestRemoveSavedPlace(t *testing.T) {
	s := NewStore(NewMemoryBackend())
	for _, l := range []place.Location{loc("a", 1, 1), loc("b", 2, 2), loc("c", 3, 3)} {
		_, _ = s.AddSavedPlace(l)
	}

	removed, err := s.RemoveSavedPlace(1)
	if err != nil {
		t.Fatal(err)
	}
	if removed.Label != "b" {
		t.Errorf("removed %q, want b", removed.Label)
	}
	list := s.SavedPlaces().OrElse(nil)
	if len(list) != 2 || list[0].Label != "c" || list[1].Label != "a" {
		t.Errorf("list = %v", list)
	}

	if _, err := s.RemoveSavedPlace(5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("err = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := s.RemoveSavedPlace(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestSavedPlacesLenient(t *testing.T) {
	be := NewMemoryBackend()
	s := NewStore(be)

	_ = be.Set(KeySaved, "{broken")
	if s.SavedPlaces().Present() {
		t.Errorf("corrupt list should be absent")
	}

	_ = be.Set(KeySaved, `[{"name":"ok","lat":1,"lon":2},{"name":5},"junk",{"name":"ok2","lat":-3,"lon":4}]`)
	list := s.SavedPlaces().OrElse(nil)
	if len(list) != 2 || list[1].Label != "ok2" {
		t.Errorf("list = %v, want the two well-formed entries", list)
	}

	// A corrupt list does not block new saves.
	_ = be.Set(KeySaved, "oops")
	if added, err := s.AddSavedPlace(loc("x", 1, 1)); err != nil || !added {
		t.Errorf("add over corrupt list = %v, %v", added, err)
	}
}

func TestFileBackendRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	s := NewStore(NewFileBackend(path))

	if s.Units().Present() || s.LastLocation().Present() {
		t.Fatal("missing file should read as empty")
	}
	if err := s.SetUnits(units.Imperial); err != nil {
		t.Fatal(err)
	}
	if err := s.SetLastLocation(loc("Paris, FR", 48.85, 2.35)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddSavedPlace(loc("Paris, FR", 48.85, 2.35)); err != nil {
		t.Fatal(err)
	}

	reopened := NewStore(NewFileBackend(path))
	if reopened.Units().OrElse(units.Metric) != units.Imperial {
		t.Errorf("units not persisted")
	}
	if l, ok := reopened.LastLocation().Get(); !ok || l.Label != "Paris, FR" {
		t.Errorf("last = %+v, %v", l, ok)
	}
	if n := len(reopened.SavedPlaces().OrElse(nil)); n != 1 {
		t.Errorf("saved len = %d, want 1", n)
	}
}

func TestFileBackendCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("<<garbage>>"), 0o644); err != nil {
		t.Fatal(err)
	}
	be := NewFileBackend(path)
	if _, ok, err := be.Get(KeyUnits); ok || err != nil {
		t.Fatalf("Get on corrupt file = %v, %v", ok, err)
	}
	if err := be.Set(KeyUnits, "metric"); err != nil {
		t.Fatal(err)
	}
	if v, ok, _ := be.Get(KeyUnits); !ok || v != "metric" {
		t.Errorf("Get after rewrite = %q, %v", v, ok)
	}
}

func TestSavedPlacesConcurrentChanges(t *testing.T) {
	s := NewStore(NewFileBackend(filepath.Join(t.TempDir(), "state.json")))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.AddSavedPlace(loc(fmt.Sprintf("Place %d", i), float64(i), float64(i))); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if n := len(s.SavedPlaces().OrElse(nil)); n != 10 {
		t.Fatalf("saved after 10 concurrent adds = %d, want 10", n)
	}

	for i := 0; i < 2; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := s.RemoveSavedPlace(0); err != nil {
				t.Error(err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := s.AddSavedPlace(loc(fmt.Sprintf("Extra %d", i), -float64(i+1), -float64(i+1))); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if n := len(s.SavedPlaces().OrElse(nil)); n != 10 {
		t.Errorf("saved after mixed changes = %d, want 10", n)
	}
}
