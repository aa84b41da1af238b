// file: internal/years/years.go
// version: 1.2.0
// guid: 2d3e4f5a-6b7c-8d9e-0f1a-2b3c4d5e6f7a

// Package years holds the pure year predicates and the local album-level
// signals (dominance, consensus) that run before any external lookup.
package years

import (
	"strconv"
	"strings"
	"time"
)

// IsEmptyYear reports whether a stored year value carries no information.
// Blank, whitespace-only, and the literal "0" all count as empty. Note that
// NeedsUpdate deliberately does not treat "0" the same way: a track holding
// "0" is empty for signal purposes but still needs rewriting once a real
// year is known.
func IsEmptyYear(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed == "" || trimmed == "0"
}

// IsValidYear reports whether value parses as a plausible 4-digit year
// within [minYear, maxYear]. maxYear of 0 means the current calendar year.
func IsValidYear(value string, minYear, maxYear int) bool {
	_, ok := ParseYear(value, minYear, maxYear)
	return ok
}

// ParseYear parses and range-checks a year value. Non-numeric, out-of-range,
// and overflowing input all normalize to "absent" rather than erroring.
func ParseYear(value string, minYear, maxYear int) (int, bool) {
	if maxYear <= 0 {
		maxYear = time.Now().Year()
	}
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, false
	}
	year, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, false
	}
	if year < minYear || year > maxYear {
		return 0, false
	}
	return year, true
}

// NeedsUpdate reports whether a track's raw year field differs from the
// proposed year. The comparison is on raw values, so "0" differs from any
// real year even though IsEmptyYear treats it as empty.
func NeedsUpdate(current string, proposed int) bool {
	if proposed <= 0 {
		return false
	}
	return strings.TrimSpace(current) != strconv.Itoa(proposed)
}
