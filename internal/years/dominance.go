// file: internal/years/dominance.go
// version: 1.1.0
// guid: 4f5a6b7c-8d9e-0f1a-2b3c-4d5e6f7a8b9c

package years

import (
	"sort"

	"github.com/barad1tos/GenreUpdater-sub004/internal/models"
)

// DominantYear computes the local majority year across all tracks of an
// album. A year qualifies only when its count strictly exceeds half of the
// total track count, including tracks with no year at all. When the top two
// counts sit within parityWindow of each other the album is ambiguous and
// needs external resolution, even if the leader clears the majority bar.
// This keeps plurality-but-not-majority years from being silently adopted.
func DominantYear(tracks []models.Track, minYear, maxYear, parityWindow int) (int, bool) {
	if len(tracks) == 0 {
		return 0, false
	}

	counts := make(map[int]int)
	for _, t := range tracks {
		if IsEmptyYear(t.Year) {
			continue
		}
		year, ok := ParseYear(t.Year, minYear, maxYear)
		if !ok {
			continue
		}
		counts[year]++
	}
	if len(counts) == 0 {
		return 0, false
	}

	type candidate struct {
		year  int
		count int
	}
	ranked := make([]candidate, 0, len(counts))
	for year, count := range counts {
		ranked = append(ranked, candidate{year, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].year < ranked[j].year
	})

	leader := ranked[0]
	runnerUp := 0
	if len(ranked) > 1 {
		runnerUp = ranked[1].count
	}

	// Parity check runs even against an absent runner-up: a leader with two
	// votes out of three is still too thin to adopt without confirmation.
	if leader.count-runnerUp <= parityWindow {
		return 0, false
	}
	if leader.count*2 <= len(tracks) {
		return 0, false
	}
	return leader.year, true
}

// MostCommonYear returns the most frequent non-empty valid year across the
// tracks with no majority requirement. This is the "existing year" input of
// the fallback chain, not a dominance signal.
func MostCommonYear(tracks []models.Track, minYear, maxYear int) (int, bool) {
	counts := make(map[int]int)
	for _, t := range tracks {
		if IsEmptyYear(t.Year) {
			continue
		}
		if year, ok := ParseYear(t.Year, minYear, maxYear); ok {
			counts[year]++
		}
	}
	best, bestCount := 0, 0
	for year, count := range counts {
		if count > bestCount || (count == bestCount && year < best) {
			best, bestCount = year, count
		}
	}
	return best, bestCount > 0
}
