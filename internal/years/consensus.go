// file: internal/years/consensus.go
// version: 1.0.1
// guid: 73ec8137-ffa6-43c7-b951-b21dd1f3cf45

package years

import (
	"strings"

	"github.com/barad1tos/GenreUpdater-sub004/internal/models"
)

// ConsensusReleaseYear checks the secondary release-year hint field for
// unanimous agreement. When every track carrying a hint agrees on the same
// valid value, that value is returned as a consensus year. A cheaper and
// higher-trust signal than an external query, so it runs before one.
func ConsensusReleaseYear(tracks []models.Track, minYear, maxYear int) (int, bool) {
	agreed := ""
	for _, t := range tracks {
		hint := strings.TrimSpace(t.ReleaseYearHint)
		if IsEmptyYear(hint) {
			continue
		}
		if agreed == "" {
			agreed = hint
			continue
		}
		if hint != agreed {
			return 0, false
		}
	}
	if agreed == "" {
		return 0, false
	}
	return ParseYear(agreed, minYear, maxYear)
}
