// file: internal/scoring/score.go
// version: 1.4.0
// guid: 928b2c05-ea7d-4832-ac62-aac98876dd6c

// Package scoring ranks external candidate releases against a library query
// and aggregates the scored years into a single resolution. Every
// contribution is integer arithmetic on deterministic inputs, so identical
// queries always produce identical scores.
package scoring

import (
	"strings"
	"time"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/barad1tos/GenreUpdater-sub004/internal/models"
)

// Query describes the album being resolved, plus the optional artist
// context that refines candidate scores.
type Query struct {
	Artist string
	Album  string
	Region string // artist home region, ISO 3166-1 alpha-2, optional

	ActivityStart int // artist activity window, 0 = unknown
	ActivityEnd   int

	Soundtrack bool // the query itself is a various-artists/soundtrack case

	CurrentYear int            // injected for reproducible tests; 0 = now
	SourceTrust map[string]int // per-source provenance bonus
}

// Score contributions. The base keeps typical totals in confidence range;
// the bonuses and penalties are tuned so that a same-title same-artist
// official album from a trusted source lands well above the trust bar.
const (
	scoreBase = 40

	titleExactBonus     = 30
	titleSubstringBonus = 15
	titleMismatch       = -30

	artistExactBonus       = 20
	artistCrossScriptBonus = 8 // transliterated match, penalized not rejected
	artistFuzzyBonus       = 10
	artistMismatch         = -25

	typeAlbumBonus         = 15
	typeEPPenalty          = -5
	typeSinglePenalty      = -10
	typeCompilationPenalty = -8
	typeLivePenalty        = -8
	typeRemixPenalty       = -6

	statusOfficialBonus  = 10
	statusBootlegPenalty = -25
	statusPromoPenalty   = -10
	statusPseudoPenalty  = -15

	reissuePenalty = -10

	countryHomeBonus  = 8
	countryMajorBonus = 3

	groupYearAgreeBonus  = 12
	groupYearGapStep     = -2 // per year of disagreement
	groupYearGapFloor    = -16
	futureYearPenalty    = -30
	activityStartBonus   = 8 // year within a few years of activity start
	activityBeforeStart  = -20
	activityAfterEnd     = -12
	soundtrackCompBonus  = 15
	activityStartWindow  = 2
	activityEndSlack     = 1
)

// majorMarkets are countries that get a small bonus when the artist's home
// region is unknown or differs.
var majorMarkets = map[string]bool{
	"US": true, "GB": true, "DE": true, "JP": true, "FR": true,
}

// DefaultSourceTrust is the provenance bonus per lookup source.
func DefaultSourceTrust() map[string]int {
	return map[string]int{
		"musicbrainz": 10,
		"discogs":     5,
		"itunes":      3,
	}
}

// ScoreRelease computes the additive integer score of one candidate against
// the query. Candidates without a usable year are the caller's problem;
// this function only ranks.
func ScoreRelease(c models.CandidateRelease, q Query) int {
	score := scoreBase

	score += titleScore(c.Title, q.Album)
	score += artistScore(c.Artist, q.Artist)
	score += typeScore(c.Type, q.Soundtrack)
	score += statusScore(c.Status)

	if c.Reissue {
		score += reissuePenalty
	}

	if c.Country != "" {
		if q.Region != "" && c.Country == q.Region {
			score += countryHomeBonus
		} else if majorMarkets[c.Country] {
			score += countryMajorBonus
		}
	}

	if trust, ok := q.SourceTrust[c.Source]; ok {
		score += trust
	}

	if c.GroupFirstYear > 0 && c.Year > 0 {
		if c.GroupFirstYear == c.Year {
			score += groupYearAgreeBonus
		} else {
			gap := c.Year - c.GroupFirstYear
			if gap < 0 {
				gap = -gap
			}
			penalty := gap * groupYearGapStep
			if penalty < groupYearGapFloor {
				penalty = groupYearGapFloor
			}
			score += penalty
		}
	}

	currentYear := q.CurrentYear
	if currentYear <= 0 {
		currentYear = time.Now().Year()
	}
	if c.Year > currentYear {
		score += futureYearPenalty
	}

	if q.ActivityStart > 0 && c.Year > 0 {
		switch {
		case c.Year < q.ActivityStart:
			score += activityBeforeStart
		case c.Year <= q.ActivityStart+activityStartWindow:
			score += activityStartBonus
		}
		if q.ActivityEnd > 0 && c.Year > q.ActivityEnd+activityEndSlack {
			score += activityAfterEnd
		}
	}

	return score
}

func titleScore(candidate, query string) int {
	ct := models.NormalizeName(candidate)
	qt := models.NormalizeName(query)
	if ct == "" || qt == "" {
		return titleMismatch
	}
	if ct == qt {
		return titleExactBonus
	}
	if containsEither(ct, qt) {
		return titleSubstringBonus
	}
	return titleMismatch
}

func artistScore(candidate, query string) int {
	ca := models.NormalizeName(candidate)
	qa := models.NormalizeName(query)
	if ca == "" || qa == "" {
		return artistMismatch
	}
	if ca == qa {
		return artistExactBonus
	}
	// Names written in different scripts (e.g. a transliterated artist)
	// can still be the same act; accept with a penalty instead of
	// rejecting outright.
	if dominantScript(candidate) != dominantScript(query) {
		return artistCrossScriptBonus
	}
	if fuzzy.MatchNormalizedFold(qa, ca) || fuzzy.MatchNormalizedFold(ca, qa) {
		return artistFuzzyBonus
	}
	return artistMismatch
}

func typeScore(t models.ReleaseType, soundtrackQuery bool) int {
	switch t {
	case models.ReleaseTypeAlbum:
		return typeAlbumBonus
	case models.ReleaseTypeEP:
		return typeEPPenalty
	case models.ReleaseTypeSingle:
		return typeSinglePenalty
	case models.ReleaseTypeCompilation:
		return typeCompilationPenalty
	case models.ReleaseTypeLive:
		return typeLivePenalty
	case models.ReleaseTypeRemix:
		return typeRemixPenalty
	case models.ReleaseTypeSoundtrack:
		if soundtrackQuery {
			return soundtrackCompBonus
		}
		return 0
	}
	return 0
}

func statusScore(s models.ReleaseStatus) int {
	switch s {
	case models.StatusOfficial:
		return statusOfficialBonus
	case models.StatusBootleg:
		return statusBootlegPenalty
	case models.StatusPromotional:
		return statusPromoPenalty
	case models.StatusPseudoRelease:
		return statusPseudoPenalty
	}
	return 0
}

func containsEither(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// scriptNames fixes the tie-break order: a name with equal letter counts in
// two scripts always resolves to the earlier one, keeping scores stable
// across runs.
var scriptNames = []string{"latin", "cyrillic", "han", "kana", "hangul", "greek", "other"}

// dominantScript returns the writing system with the most letters in s.
func dominantScript(s string) string {
	counts := map[string]int{}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		switch {
		case unicode.Is(unicode.Latin, r):
			counts["latin"]++
		case unicode.Is(unicode.Cyrillic, r):
			counts["cyrillic"]++
		case unicode.Is(unicode.Han, r):
			counts["han"]++
		case unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r):
			counts["kana"]++
		case unicode.Is(unicode.Hangul, r):
			counts["hangul"]++
		case unicode.Is(unicode.Greek, r):
			counts["greek"]++
		default:
			counts["other"]++
		}
	}
	best, bestCount := "latin", 0
	for _, script := range scriptNames {
		if counts[script] > bestCount {
			best, bestCount = script, counts[script]
		}
	}
	return best
}
