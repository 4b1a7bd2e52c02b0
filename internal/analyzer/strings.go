package analyzer

import "github.com/xrash/smetrics"

// textDistance is the unit-cost edit distance between two strings, used for
// free-text fields (extra contents, lyric syllables, metadata values).
func textDistance(a, b string) int {
	if a == b {
		return 0
	}
	return smetrics.WagnerFischer(a, b, 1, 1, 1)
}

// floatTol mirrors the precision of offsets and durations in source files;
// four decimal places is the worst encoder precision seen in the wild.
const floatTol = 1e-4

// differentEnough reports whether two quarter-note positions differ beyond
// encoder rounding noise.
func differentEnough(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d > floatTol
}

// quantityCost converts a quarter-note delta into an edit cost, at least 1.
func quantityCost(a, b float64) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if c := int(d); c > 1 {
		return c
	}
	return 1
}
