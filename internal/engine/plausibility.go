// file: internal/engine/plausibility.go
// version: 1.1.0
// guid: 5a6b7c8d-9e0f-1a2b-3c4d-5e6f7a8b9c0d

package engine

// Plausibility is the verdict on whether an album's existing year could
// possibly be correct given the artist's known activity window.
type Plausibility uint8

const (
	// PlausibilityInconclusive means no activity data was available. The
	// caller must treat this conservatively, never as permission to apply.
	PlausibilityInconclusive Plausibility = iota
	// PlausibilityImpossible means the existing year predates the artist.
	PlausibilityImpossible
	// PlausibilityPlausible means the existing year falls inside the window.
	PlausibilityPlausible
)

// String implements fmt.Stringer for log lines.
func (p Plausibility) String() string {
	switch p {
	case PlausibilityImpossible:
		return "impossible"
	case PlausibilityPlausible:
		return "plausible"
	}
	return "inconclusive"
}

// checkPlausibility judges an existing year against the artist's activity
// start. activityStart of 0 means the lookup found nothing.
func checkPlausibility(existingYear, activityStart int) Plausibility {
	if existingYear <= 0 {
		// An unparseable existing value can't be defended; treat as
		// impossible so the proposed year wins.
		return PlausibilityImpossible
	}
	if activityStart <= 0 {
		return PlausibilityInconclusive
	}
	if existingYear < activityStart {
		return PlausibilityImpossible
	}
	return PlausibilityPlausible
}
