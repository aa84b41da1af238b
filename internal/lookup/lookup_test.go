// file: internal/lookup/lookup_test.go
// version: 1.2.0
// guid: ab3246c8-3ac8-46c8-97d0-1705a685251c

package lookup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/barad1tos/GenreUpdater-sub004/internal/metrics"
	"github.com/barad1tos/GenreUpdater-sub004/internal/models"
	"github.com/barad1tos/GenreUpdater-sub004/internal/scoring"
)

type fakeSource struct {
	name     string
	releases []models.CandidateRelease
	err      error
	calls    int
	failFor  int // error on the first N calls, then succeed
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) SearchReleases(ctx context.Context, artist, album string) ([]models.CandidateRelease, error) {
	f.calls++
	if f.failFor > 0 && f.calls <= f.failFor {
		return nil, errors.New("transient")
	}
	return f.releases, f.err
}

func testOpts() Options {
	return Options{
		RetryAttempts: 3,
		RetryBaseWait: time.Millisecond,
		Resolver:      scoring.Options{DefinitiveScore: 85, DefinitiveMargin: 25, StabilityWindow: 2},
	}
}

func official(source string, year int) models.CandidateRelease {
	return models.CandidateRelease{
		Source: source, Artist: "Mew", Title: "Frengers",
		Year: year, Type: models.ReleaseTypeAlbum, Status: models.StatusOfficial,
	}
}

func TestCandidateYearAggregatesSources(t *testing.T) {
	a := &fakeSource{name: "musicbrainz", releases: []models.CandidateRelease{official("musicbrainz", 2003)}}
	b := &fakeSource{name: "discogs", releases: []models.CandidateRelease{official("discogs", 2003)}}
	s := NewService([]ReleaseSource{a, b}, nil, testOpts())

	res, err := s.CandidateYear(context.Background(), "Mew", "Frengers", 0, false)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !res.Found || res.Year != 2003 {
		t.Fatalf("expected 2003, got %+v", res)
	}
	if res.Candidates != 2 {
		t.Errorf("expected 2 scored candidates, got %d", res.Candidates)
	}
}

func TestCandidateYearRetriesThenSucceeds(t *testing.T) {
	src := &fakeSource{name: "musicbrainz", failFor: 2, releases: []models.CandidateRelease{official("musicbrainz", 1999)}}
	s := NewService([]ReleaseSource{src}, nil, testOpts())

	res, err := s.CandidateYear(context.Background(), "Mew", "Frengers", 0, false)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !res.Found || res.Year != 1999 {
		t.Fatalf("expected recovery on third try, got %+v", res)
	}
	if src.calls != 3 {
		t.Errorf("expected 3 calls, got %d", src.calls)
	}
}

func TestCandidateYearDegradesOnPersistentFailure(t *testing.T) {
	broken := &fakeSource{name: "discogs", err: errors.New("down")}
	ok := &fakeSource{name: "musicbrainz", releases: []models.CandidateRelease{official("musicbrainz", 2010)}}
	s := NewService([]ReleaseSource{broken, ok}, nil, testOpts())

	res, err := s.CandidateYear(context.Background(), "Mew", "Frengers", 0, false)
	if err != nil {
		t.Fatalf("lookup must degrade, not fail: %v", err)
	}
	if !res.Found || res.Year != 2010 {
		t.Fatalf("expected surviving source's year, got %+v", res)
	}
	if broken.calls != 3 {
		t.Errorf("expected 3 attempts on the broken source, got %d", broken.calls)
	}
}

func TestCandidateYearReportsFailureMetrics(t *testing.T) {
	metrics.Register()
	const source = "broken-backend"
	before := failureCount(t, source)

	broken := &fakeSource{name: source, err: errors.New("down")}
	s := NewService([]ReleaseSource{broken}, nil, testOpts())
	if _, err := s.CandidateYear(context.Background(), "Mew", "Frengers", 0, false); err != nil {
		t.Fatalf("lookup must degrade, not fail: %v", err)
	}

	if got := failureCount(t, source); got != before+1 {
		t.Fatalf("expected failure counter %v, got %v", before+1, got)
	}
	if got := durationSamples(t, source); got < 1 {
		t.Fatalf("expected a duration sample for the failed source, got %d", got)
	}
}

// failureCount reads the per-source lookup failure counter from the default
// prometheus registry.
func failureCount(t *testing.T, source string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "genre_updater_lookup_failures_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "source" && l.GetValue() == source {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func durationSamples(t *testing.T, source string) uint64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "genre_updater_lookup_duration_seconds" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "source" && l.GetValue() == source {
					return m.GetHistogram().GetSampleCount()
				}
			}
		}
	}
	return 0
}

func TestCandidateYearNoSignal(t *testing.T) {
	empty := &fakeSource{name: "musicbrainz"}
	s := NewService([]ReleaseSource{empty}, nil, testOpts())

	res, err := s.CandidateYear(context.Background(), "Unknown", "Nothing", 0, false)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if res.Found {
		t.Fatalf("expected no signal, got %+v", res)
	}
}

func TestCandidateYearIgnoresYearlessCandidates(t *testing.T) {
	src := &fakeSource{name: "musicbrainz", releases: []models.CandidateRelease{
		official("musicbrainz", 0),
		official("musicbrainz", 2005),
	}}
	s := NewService([]ReleaseSource{src}, nil, testOpts())

	res, err := s.CandidateYear(context.Background(), "Mew", "Frengers", 0, false)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if res.Year != 2005 || res.Candidates != 1 {
		t.Fatalf("yearless candidate must be dropped, got %+v", res)
	}
}

type fakeActivity struct {
	begin int
	calls int
}

func (f *fakeActivity) ArtistActivityStart(ctx context.Context, artist string) (int, error) {
	f.calls++
	return f.begin, nil
}

func TestActivityFeedsScoring(t *testing.T) {
	// Two equally plausible years; the one just after activity start gets
	// the activity bonus and must win.
	src := &fakeSource{name: "musicbrainz", releases: []models.CandidateRelease{
		official("musicbrainz", 1996),
		official("musicbrainz", 2015),
	}}
	act := &fakeActivity{begin: 1995}
	s := NewService([]ReleaseSource{src}, act, testOpts())

	res, err := s.CandidateYear(context.Background(), "Mew", "Frengers", 0, false)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if res.Year != 1996 {
		t.Fatalf("expected activity-adjacent year to win, got %+v", res)
	}
	if act.calls != 1 {
		t.Errorf("expected one activity lookup, got %d", act.calls)
	}
}
