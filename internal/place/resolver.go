package place

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// MaxCandidates is how many results the resolver asks the geocoder for.
const MaxCandidates = 8

// ErrLookupRejected marks a geocoding response that arrived but could not be
// used (non-2xx status or an unreadable body). The resolver turns it into
// zero candidates.
var ErrLookupRejected = errors.New("geocoding lookup rejected")

// Lookup is the request sent to the geocoding collaborator.
type Lookup struct {
	Name        string
	CountryCode string
	Count       int
	Language    string
}

// Match is a raw geocoding hit in provider relevance order.
type Match struct {
	Name        string
	Admin1      string
	CountryCode string
	Latitude    float64
	Longitude   float64
}

// Geocoder looks up places by name.
type Geocoder interface {
	Search(ctx context.Context, lookup Lookup) ([]Match, error)
}

// Resolver turns a parsed query into an ordered candidate list.
type Resolver struct {
	geocoder Geocoder
	language string
}

func NewResolver(geocoder Geocoder, language string) *Resolver {
	if language == "" {
		language = "en"
	}
	return &Resolver{geocoder: geocoder, language: language}
}

// Resolve looks the query up and applies the region hint. An empty query, a
// rejected lookup or a lookup with no hits all produce an empty list and a
// nil error. Only transport failures are returned as errors, so callers can
// tell "no such place" apart from "provider unreachable".
func (r *Resolver) Resolve(ctx context.Context, q Query) ([]Candidate, error) {
	if q.IsEmpty() {
		return nil, nil
	}

	matches, err := r.geocoder.Search(ctx, Lookup{
		Name:        q.Name,
		CountryCode: q.CountryCode,
		Count:       MaxCandidates,
		Language:    r.language,
	})
	if err != nil {
		if errors.Is(err, ErrLookupRejected) {
			slog.Warn("Geocoding lookup rejected", slog.String("name", q.Name), slog.String("error", err.Error()))
			return nil, nil
		}
		return nil, err
	}

	matches = FilterByRegion(matches, q.RegionHint)

	candidates := make([]Candidate, 0, len(matches))
	for _, m := range matches {
		candidates = append(candidates, Candidate{
			Label:     Label(m.Name, m.Admin1, m.CountryCode),
			Lat:       m.Latitude,
			Lon:       m.Longitude,
			RegionRaw: m.Admin1,
		})
	}
	return candidates, nil
}

// FilterByRegion keeps matches whose admin1 equals or starts with the hint,
// ignoring case. When nothing survives the filter the input is returned
// unchanged, so a hint never empties a successful lookup.
func FilterByRegion(matches []Match, hint string) []Match {
	hint = strings.ToLower(strings.TrimSpace(hint))
	if hint == "" {
		return matches
	}

	var filtered []Match
	for _, m := range matches {
		if strings.HasPrefix(strings.ToLower(m.Admin1), hint) {
			filtered = append(filtered, m)
		}
	}
	if len(filtered) == 0 {
		return matches
	}
	return filtered
}
