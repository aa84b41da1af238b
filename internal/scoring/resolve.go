// file: internal/scoring/resolve.go
// version: 1.2.0
// guid: 6f7a8b9c-0d1e-2f3a-4b5c-6d7e8f9a0b1c

package scoring

import "sort"

// Resolution is the aggregated outcome of scoring all candidates.
type Resolution struct {
	Year       int
	Confidence int  // 0-100
	Definitive bool // strong enough to bypass the fallback safeguards
	Found      bool
}

// Options controls the resolver thresholds.
type Options struct {
	DefinitiveScore  int // absolute best-score bar for a definitive result
	DefinitiveMargin int // best-vs-runner-up lead that does the same
	StabilityWindow  int // existing-year distance eligible for the tie boost
}

// ResolveYears picks the best year from a map of year to the scores each
// contributing candidate gave it. The representative value per year is the
// maximum, not the sum: several weak candidates proposing the same year must
// not outrank one strong one. Ties prefer the earlier year. An existing year
// within the stability window of the winner keeps its place unless the
// winner's lead is already decisive.
func ResolveYears(scores map[int][]int, existing int, opts Options) Resolution {
	if len(scores) == 0 {
		return Resolution{}
	}

	type ranked struct {
		year int
		best int
	}
	all := make([]ranked, 0, len(scores))
	for year, list := range scores {
		if len(list) == 0 {
			continue
		}
		best := list[0]
		for _, s := range list[1:] {
			if s > best {
				best = s
			}
		}
		all = append(all, ranked{year, best})
	}
	if len(all) == 0 {
		return Resolution{}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].best != all[j].best {
			return all[i].best > all[j].best
		}
		return all[i].year < all[j].year
	})

	winner := all[0]
	runnerUp := 0
	if len(all) > 1 {
		runnerUp = all[1].best
	}

	// Stability preference: when the existing year is a near-miss of the
	// winner, keep it rather than churn the library by a year or two.
	if existing > 0 && existing != winner.year {
		if rep, ok := representative(scores, existing); ok {
			gap := winner.year - existing
			if gap < 0 {
				gap = -gap
			}
			if gap <= opts.StabilityWindow && winner.best-rep < opts.DefinitiveMargin {
				winner = ranked{existing, rep}
			}
		}
	}

	confidence := winner.best
	if confidence > 100 {
		confidence = 100
	}
	if confidence < 0 {
		confidence = 0
	}

	definitive := winner.best >= opts.DefinitiveScore ||
		(len(all) > 1 && winner.best-runnerUp >= opts.DefinitiveMargin)

	return Resolution{
		Year:       winner.year,
		Confidence: confidence,
		Definitive: definitive,
		Found:      true,
	}
}

func representative(scores map[int][]int, year int) (int, bool) {
	list, ok := scores[year]
	if !ok || len(list) == 0 {
		return 0, false
	}
	best := list[0]
	for _, s := range list[1:] {
		if s > best {
			best = s
		}
	}
	return best, true
}
