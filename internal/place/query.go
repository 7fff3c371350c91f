package place

import "strings"

// Query is a parsed free-text place description. An empty Name means there is
// nothing to search for.
type Query struct {
	Name        string
	RegionHint  string
	CountryCode string
}

// IsEmpty reports whether the query should be treated as a no-op.
func (q Query) IsEmpty() bool {
	return q.Name == ""
}

// ParseQuery splits "City, Region, CC" into its parts. It never fails.
//
// The last segment becomes the country code when it is exactly two letters.
// A country code that is the only segment after the name is not also used as
// the region hint.
func ParseQuery(raw string) Query {
	collapsed := strings.Join(strings.Fields(raw), " ")

	var parts []string
	for _, p := range strings.Split(collapsed, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return Query{}
	}

	q := Query{Name: parts[0]}
	if last := parts[len(parts)-1]; isCountryCode(last) {
		q.CountryCode = strings.ToUpper(last)
	}
	if len(parts) >= 2 {
		q.RegionHint = parts[1]
		if len(parts) == 2 && q.CountryCode != "" {
			q.RegionHint = ""
		}
	}
	return q
}

func isCountryCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}
