package engine

import (
	"math"
	"strconv"
	"strings"
)

// parseNumber parses s as a float64. The whole string must be a valid
// floating-point literal; partial parses and locale separators are
// rejected. strconv also accepts "NaN" and "Inf" spellings, which are
// not literals, so non-finite results are rejected too. Parse failure
// is reported through the bool, never an error.
func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parseVersion splits s on "." and parses every component as a
// non-negative integer. Versions may have any number of components;
// they are not fixed to major.minor.patch. An empty string, an empty
// component, or any negative or non-numeric component fails the whole
// parse.
func parseVersion(s string) ([]int64, bool) {
	if s == "" {
		return nil, false
	}
	parts := strings.Split(s, ".")
	components := make([]int64, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil || n < 0 {
			return nil, false
		}
		components = append(components, n)
	}
	return components, true
}

// compareVersions is a three-way compare of parsed version components.
// The first differing component decides; if one version is a strict
// prefix of the other, the shorter one is smaller. Missing trailing
// components are absent, not zero: "1.2" < "1.2.0".
func compareVersions(a, b []int64) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
