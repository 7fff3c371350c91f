package format

import "strings"

const regionalIndicatorA = 0x1F1E6

// Flag derives an emoji flag from a label whose last comma-separated segment
// is a two-letter country code, e.g. "Paris, FR". Anything else yields "".
func Flag(label string) string {
	i := strings.LastIndex(label, ",")
	if i < 0 {
		return ""
	}
	cc := strings.TrimSpace(label[i+1:])
	if len(cc) != 2 {
		return ""
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(cc) {
		if r < 'A' || r > 'Z' {
			return ""
		}
		b.WriteRune(regionalIndicatorA + (r - 'A'))
	}
	return b.String()
}
