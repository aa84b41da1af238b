// file: internal/lookup/lookup.go
// version: 1.4.0
// guid: 3e4f5a6b-7c8d-9e0f-1a2b-3c4d5e6f7a8b

// Package lookup fans an album query out to the configured release sources,
// scores every candidate, and resolves the pile into a single proposed year
// with a confidence value.
package lookup

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/barad1tos/GenreUpdater-sub004/internal/metrics"
	"github.com/barad1tos/GenreUpdater-sub004/internal/models"
	"github.com/barad1tos/GenreUpdater-sub004/internal/scoring"
)

// ReleaseSource is one external candidate provider.
type ReleaseSource interface {
	Name() string
	SearchReleases(ctx context.Context, artist, album string) ([]models.CandidateRelease, error)
}

// ActivitySource optionally supplies artist activity periods. Sources that
// can't are simply not consulted for plausibility.
type ActivitySource interface {
	ArtistActivityStart(ctx context.Context, artist string) (int, error)
}

// Options tunes the aggregation behavior.
type Options struct {
	RetryAttempts int           // per-source tries before giving up
	RetryBaseWait time.Duration // doubled per retry
	Resolver      scoring.Options
	Region        string
	SourceTrust   map[string]int
}

// Service aggregates the sources.
type Service struct {
	sources  []ReleaseSource
	activity ActivitySource
	opts     Options
}

// NewService creates a lookup service over the given sources. activity may
// be nil when no source provides artist life spans.
func NewService(sources []ReleaseSource, activity ActivitySource, opts Options) *Service {
	if opts.RetryAttempts < 1 {
		opts.RetryAttempts = 3
	}
	if opts.RetryBaseWait <= 0 {
		opts.RetryBaseWait = 500 * time.Millisecond
	}
	if opts.SourceTrust == nil {
		opts.SourceTrust = scoring.DefaultSourceTrust()
	}
	return &Service{sources: sources, activity: activity, opts: opts}
}

// Result is the aggregated outcome of one album resolution.
type Result struct {
	scoring.Resolution
	Candidates int // total candidates scored, for logging
}

// CandidateYear queries all sources concurrently, scores every candidate
// release, and resolves the best year. A source that keeps failing after
// retries degrades to contributing nothing; the lookup as a whole only
// reports "no signal" when every source came back empty.
func (s *Service) CandidateYear(ctx context.Context, artist, album string, existingYear int, soundtrack bool) (Result, error) {
	query := scoring.Query{
		Artist:      artist,
		Album:       album,
		Region:      s.opts.Region,
		Soundtrack:  soundtrack,
		SourceTrust: s.opts.SourceTrust,
	}
	if s.activity != nil {
		begin, err := s.activity.ArtistActivityStart(ctx, artist)
		if err != nil {
			log.Printf("[WARN] Activity lookup for %q failed: %v", artist, err)
		} else {
			query.ActivityStart = begin
		}
	}

	var (
		mu         sync.Mutex
		candidates []models.CandidateRelease
		wg         sync.WaitGroup
	)
	for _, src := range s.sources {
		wg.Add(1)
		go func(src ReleaseSource) {
			defer wg.Done()
			start := time.Now()
			found, err := s.searchWithRetry(ctx, src, artist, album)
			metrics.ObserveLookupDuration(src.Name(), time.Since(start))
			if err != nil {
				metrics.IncLookupFailed(src.Name())
				log.Printf("[WARN] Source %s failed for %s - %s: %v", src.Name(), artist, album, err)
				return
			}
			mu.Lock()
			candidates = append(candidates, found...)
			mu.Unlock()
		}(src)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	scores := make(map[int][]int)
	scored := 0
	for _, c := range candidates {
		if c.Year <= 0 {
			continue
		}
		scores[c.Year] = append(scores[c.Year], scoring.ScoreRelease(c, query))
		scored++
	}

	resolution := scoring.ResolveYears(scores, existingYear, s.opts.Resolver)
	return Result{Resolution: resolution, Candidates: scored}, nil
}

// ArtistActivityStart exposes the activity source for plausibility checks,
// returning 0 when none is configured.
func (s *Service) ArtistActivityStart(ctx context.Context, artist string) (int, error) {
	if s.activity == nil {
		return 0, nil
	}
	return s.activity.ArtistActivityStart(ctx, artist)
}

func (s *Service) searchWithRetry(ctx context.Context, src ReleaseSource, artist, album string) ([]models.CandidateRelease, error) {
	var lastErr error
	wait := s.opts.RetryBaseWait
	for attempt := 1; attempt <= s.opts.RetryAttempts; attempt++ {
		found, err := src.SearchReleases(ctx, artist, album)
		if err == nil {
			return found, nil
		}
		lastErr = err
		if attempt == s.opts.RetryAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}
	return nil, lastErr
}
