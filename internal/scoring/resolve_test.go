// file: internal/scoring/resolve_test.go
// version: 1.1.0
// guid: a91e1d5a-b104-4aab-be37-d224b9fdd926

package scoring

import "testing"

func defaultOptions() Options {
	return Options{DefinitiveScore: 85, DefinitiveMargin: 25, StabilityWindow: 2}
}

func TestResolveYearsEmpty(t *testing.T) {
	got := ResolveYears(nil, 0, defaultOptions())
	if got.Found || got.Year != 0 || got.Confidence != 0 || got.Definitive {
		t.Fatalf("empty input must resolve to zero result, got %+v", got)
	}
}

func TestResolveYearsMaxNotSum(t *testing.T) {
	// 2001 is proposed by three weak candidates, 1994 by one strong one.
	scores := map[int][]int{
		2001: {40, 41, 42},
		1994: {80},
	}
	got := ResolveYears(scores, 0, defaultOptions())
	if got.Year != 1994 {
		t.Fatalf("multi-source spam must not beat one strong candidate, got %d", got.Year)
	}
	if got.Confidence != 80 {
		t.Fatalf("confidence must track the representative score, got %d", got.Confidence)
	}
}

func TestResolveYearsTiePrefersEarlier(t *testing.T) {
	scores := map[int][]int{2001: {70}, 1994: {70}}
	got := ResolveYears(scores, 0, defaultOptions())
	if got.Year != 1994 {
		t.Fatalf("tie must prefer the earlier year, got %d", got.Year)
	}
}

func TestResolveYearsDefinitiveByScore(t *testing.T) {
	got := ResolveYears(map[int][]int{1994: {90}}, 0, defaultOptions())
	if !got.Definitive {
		t.Fatal("score above the absolute bar must be definitive")
	}
	got = ResolveYears(map[int][]int{1994: {60}}, 0, defaultOptions())
	if got.Definitive {
		t.Fatal("single candidate below the bar must not be definitive")
	}
}

func TestResolveYearsDefinitiveByMargin(t *testing.T) {
	got := ResolveYears(map[int][]int{1994: {70}, 2001: {40}}, 0, defaultOptions())
	if !got.Definitive {
		t.Fatal("a 30-point lead must be definitive")
	}
	got = ResolveYears(map[int][]int{1994: {70}, 2001: {50}}, 0, defaultOptions())
	if got.Definitive {
		t.Fatal("a 20-point lead must not be definitive")
	}
}

func TestResolveYearsStabilityBoost(t *testing.T) {
	// Existing year 1994 sits one year from the winner with a small lead:
	// keep the existing year.
	scores := map[int][]int{1995: {65}, 1994: {60}}
	got := ResolveYears(scores, 1994, defaultOptions())
	if got.Year != 1994 {
		t.Fatalf("near-miss winner must yield to existing year, got %d", got.Year)
	}

	// A decisive lead overrides the stability preference.
	scores = map[int][]int{1995: {90}, 1994: {50}}
	got = ResolveYears(scores, 1994, defaultOptions())
	if got.Year != 1995 {
		t.Fatalf("decisive winner must not yield, got %d", got.Year)
	}

	// An existing year outside the window gets no boost.
	scores = map[int][]int{2001: {65}, 1994: {60}}
	got = ResolveYears(scores, 1994, defaultOptions())
	if got.Year != 2001 {
		t.Fatalf("existing year outside window must not win, got %d", got.Year)
	}
}

func TestResolveYearsConfidenceClamped(t *testing.T) {
	got := ResolveYears(map[int][]int{1994: {140}}, 0, defaultOptions())
	if got.Confidence != 100 {
		t.Fatalf("confidence must clamp at 100, got %d", got.Confidence)
	}
	got = ResolveYears(map[int][]int{1994: {-10}}, 0, defaultOptions())
	if got.Confidence != 0 {
		t.Fatalf("confidence must clamp at 0, got %d", got.Confidence)
	}
	if !got.Found {
		t.Fatal("a negative-scored candidate is still a found result")
	}
}
