// file: internal/albumtype/albumtype.go
// version: 1.1.0
// guid: 0f1a2b3c-4d5e-6f7a-8b9c-0d1e2f3a4b5c

// Package albumtype classifies album titles into the categories the
// fallback chain treats specially.
package albumtype

import "strings"

// Type is an album title category.
type Type uint8

// Album categories, first keyword match wins in declaration order.
const (
	Normal Type = iota
	Special
	Compilation
	Reissue
	Soundtrack
)

// Strategy is the fallback treatment a category maps to.
type Strategy uint8

// Fallback strategies.
const (
	StrategyNone Strategy = iota
	StrategyMarkAndSkip
	StrategyMarkAndUpdate
)

var specialKeywords = []string{
	"b-sides", "b sides", "demo", "vault", "rarities", "unreleased", "outtakes",
}

var compilationKeywords = []string{
	"greatest hits", "best of", "anthology", "compilation",
}

var reissueKeywords = []string{
	"remaster", "anniversary", "deluxe", "expanded", "redux", "reissue",
}

var soundtrackKeywords = []string{
	"soundtrack", "motion picture", "music from the", "various artists",
}

// Detect classifies an album title by case-insensitive substring match
// against the keyword sets. Categories are checked in priority order and
// the first hit wins; titles matching nothing are Normal.
func Detect(album string) Type {
	lower := strings.ToLower(album)
	for _, kw := range specialKeywords {
		if strings.Contains(lower, kw) {
			return Special
		}
	}
	for _, kw := range compilationKeywords {
		if strings.Contains(lower, kw) {
			return Compilation
		}
	}
	for _, kw := range reissueKeywords {
		if strings.Contains(lower, kw) {
			return Reissue
		}
	}
	for _, kw := range soundtrackKeywords {
		if strings.Contains(lower, kw) {
			return Soundtrack
		}
	}
	return Normal
}

// Strategy maps a category to its fallback treatment. Special and
// compilation albums preserve whatever year they have; reissues accept the
// proposed year but are queued for a human look. Soundtracks carry no
// strategy here because they are compensated inside the scorer instead.
func (t Type) Strategy() Strategy {
	switch t {
	case Special, Compilation:
		return StrategyMarkAndSkip
	case Reissue:
		return StrategyMarkAndUpdate
	case Normal, Soundtrack:
		return StrategyNone
	}
	return StrategyNone
}

// String implements fmt.Stringer for logs and verification metadata.
func (t Type) String() string {
	switch t {
	case Normal:
		return "normal"
	case Special:
		return "special"
	case Compilation:
		return "compilation"
	case Reissue:
		return "reissue"
	case Soundtrack:
		return "soundtrack"
	}
	return "unknown"
}
