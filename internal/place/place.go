package place

import (
	"math"
	"strings"
)

// SameTolerance is the coordinate distance, in degrees, under which two
// positions are treated as the same place.
const SameTolerance = 1e-6

// MyLocationLabel labels coordinates supplied directly by the user.
const MyLocationLabel = "My location"

// Candidate is a single geocoding result. Candidates are never mutated after
// the resolver builds them.
type Candidate struct {
	Label     string
	Lat       float64
	Lon       float64
	RegionRaw string
}

// Location returns the candidate as a loadable location.
func (c Candidate) Location() Location {
	return Location{Label: c.Label, Lat: c.Lat, Lon: c.Lon}
}

// Location is a labelled coordinate pair. It is the shape of the active
// location, the persisted last location and every saved place.
type Location struct {
	Label string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

// SamePosition reports whether both locations lie within SameTolerance on
// each axis.
func (l Location) SamePosition(o Location) bool {
	return math.Abs(l.Lat-o.Lat) < SameTolerance && math.Abs(l.Lon-o.Lon) < SameTolerance
}

// Label builds "<name>, <region>, <CC>", skipping empty segments.
func Label(name, region, countryCode string) string {
	segments := make([]string, 0, 3)
	for _, s := range []string{name, region, countryCode} {
		if s = strings.TrimSpace(s); s != "" {
			segments = append(segments, s)
		}
	}
	return strings.Join(segments, ", ")
}
