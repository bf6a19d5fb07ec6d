// Package normalize canonicalizes raw document and query strings for
// comparison. Normalization is a pure function and idempotent:
// Normalize(Normalize(x)) == Normalize(x).
package normalize

import "strings"

// allowed reports whether a lowercased rune survives normalization. The set
// deliberately keeps unit and ratio symbols common in datasheets
// (percentages, dimensions, code separators).
func allowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	}
	switch r {
	case ':', '.', '-', '_', '%', '/', ' ':
		return true
	}
	return false
}

// Normalize lowercases text, collapses all whitespace runs (tabs, returns)
// into single spaces, strips characters outside [a-z0-9:.\-_%/ ], and trims
// leading and trailing space. It is total: any input yields a result.
func Normalize(text string) string {
	mapped := strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f' {
			return ' '
		}
		r = toLower(r)
		if allowed(r) {
			return r
		}
		return -1
	}, text)
	// Fields collapses interior runs and drops leading/trailing space.
	return strings.Join(strings.Fields(mapped), " ")
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
