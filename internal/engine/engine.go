// file: internal/engine/engine.go
// version: 1.4.0
// guid: 6b7c8d9e-0f1a-2b3c-4d5e-6f7a8b9c0d1e

// Package engine is the year reconciliation core: it combines local track
// years, release-year hints, the persistent cache, and scored external
// lookups into one verdict per album, then applies, preserves, or defers.
package engine

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/barad1tos/GenreUpdater-sub004/internal/albumtype"
	"github.com/barad1tos/GenreUpdater-sub004/internal/changelog"
	"github.com/barad1tos/GenreUpdater-sub004/internal/config"
	"github.com/barad1tos/GenreUpdater-sub004/internal/lookup"
	"github.com/barad1tos/GenreUpdater-sub004/internal/metrics"
	"github.com/barad1tos/GenreUpdater-sub004/internal/models"
	"github.com/barad1tos/GenreUpdater-sub004/internal/verification"
	"github.com/barad1tos/GenreUpdater-sub004/internal/yearcache"
	"github.com/barad1tos/GenreUpdater-sub004/internal/years"
)

// YearLookup is the external resolution collaborator.
type YearLookup interface {
	CandidateYear(ctx context.Context, artist, album string, existingYear int, soundtrack bool) (lookup.Result, error)
	ArtistActivityStart(ctx context.Context, artist string) (int, error)
}

// TrackUpdater writes a resolved year back to one track in the library.
type TrackUpdater interface {
	UpdateTrackYear(ctx context.Context, track models.Track, year string) error
}

// Options configures an Engine.
type Options struct {
	Thresholds        config.Thresholds
	BatchSize         int
	BatchDelay        time.Duration
	UpdateConcurrency int
	DisableFallback   bool
	DryRun            bool
}

// Engine resolves album years and carries out the resulting verdicts.
type Engine struct {
	opts    Options
	lookups YearLookup
	updater TrackUpdater
	queue   *verification.Queue
	cache   *yearcache.Cache
	changes *changelog.Log
}

// New assembles an engine from its collaborators.
func New(opts Options, lookups YearLookup, updater TrackUpdater, queue *verification.Queue, cache *yearcache.Cache, changes *changelog.Log) *Engine {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 20
	}
	if opts.UpdateConcurrency <= 0 {
		opts.UpdateConcurrency = 4
	}
	return &Engine{
		opts:    opts,
		lookups: lookups,
		updater: updater,
		queue:   queue,
		cache:   cache,
		changes: changes,
	}
}

// resolution is the proposed year entering the decision chain, whatever
// signal produced it.
type resolution struct {
	Year       int
	Confidence int
	Definitive bool
	Found      bool
	FromLocal  bool // dominance or consensus, no external call made
}

// ResolveAlbum runs the full decision pipeline for one album and returns
// its verdict. Tracks must all share the same album key.
func (e *Engine) ResolveAlbum(ctx context.Context, tracks []models.Track) (models.Verdict, error) {
	verdict, _, err := e.resolveAlbum(ctx, tracks)
	return verdict, err
}

func (e *Engine) resolveAlbum(ctx context.Context, tracks []models.Track) (models.Verdict, resolution, error) {
	if len(tracks) == 0 {
		return models.Verdict{Kind: models.VerdictNoAction}, resolution{}, nil
	}
	t := e.opts.Thresholds
	artist, album := tracks[0].Artist, tracks[0].Album

	existing, hasExisting := years.MostCommonYear(tracks, t.MinValidYear, t.MaxValidYear)
	if !hasExisting {
		existing = 0
	}

	res := e.proposeYear(ctx, tracks, artist, album, existing)
	if err := ctx.Err(); err != nil {
		return models.Verdict{}, res, err
	}

	if !res.Found {
		// Nothing to propose. An album that already has a year simply keeps
		// it; one with no year at all is queued so it isn't lost forever.
		if existing == 0 {
			return models.Verdict{Kind: models.VerdictSkip, Reason: models.ReasonNoYearFound}, res, nil
		}
		return models.Verdict{Kind: models.VerdictNoAction}, res, nil
	}

	// Re-resolving an already-correct year is a no-op: no change-log entry,
	// no mark, no cache churn.
	if res.Year == existing && !anyTrackNeedsUpdate(tracks, res.Year) {
		return models.Verdict{Kind: models.VerdictNoAction}, res, nil
	}

	if e.opts.DisableFallback {
		// Legacy always-apply mode, kept only for backward-compatible runs.
		return models.Verdict{Kind: models.VerdictApply, Year: res.Year}, res, nil
	}

	return e.decide(ctx, artist, album, existing, res), res, nil
}

// proposeYear works through the signal ladder: dominant local year, then
// unanimous release-year hints, then the persistent cache, and only then
// the external sources.
func (e *Engine) proposeYear(ctx context.Context, tracks []models.Track, artist, album string, existing int) resolution {
	t := e.opts.Thresholds

	if year, ok := years.DominantYear(tracks, t.MinValidYear, t.MaxValidYear, t.ParityWindow); ok {
		log.Printf("[DEBUG] %s - %s: dominant local year %d", artist, album, year)
		return resolution{Year: year, Confidence: 100, Definitive: true, Found: true, FromLocal: true}
	}

	if year, ok := years.ConsensusReleaseYear(tracks, t.MinValidYear, t.MaxValidYear); ok {
		log.Printf("[DEBUG] %s - %s: consensus release year %d", artist, album, year)
		return resolution{Year: year, Confidence: t.TrustConfidence, Definitive: true, Found: true, FromLocal: true}
	}

	if e.cache != nil {
		if entry, found, err := e.cache.Lookup(artist, album); err != nil {
			log.Printf("[WARN] Cache lookup for %s - %s failed: %v", artist, album, err)
		} else if found {
			log.Printf("[DEBUG] %s - %s: cached year %d (confidence %d)", artist, album, entry.Year, entry.Confidence)
			return resolution{Year: entry.Year, Confidence: entry.Confidence, Found: true}
		}
	}

	soundtrack := albumtype.Detect(album) == albumtype.Soundtrack
	result, err := e.lookups.CandidateYear(ctx, artist, album, existing, soundtrack)
	if err != nil {
		// Exhausted lookups degrade to "no year found"; the run goes on.
		log.Printf("[WARN] External lookup for %s - %s failed: %v", artist, album, err)
		return resolution{}
	}
	return resolution{
		Year:       result.Year,
		Confidence: result.Confidence,
		Definitive: result.Definitive,
		Found:      result.Found,
	}
}

// decide is the ordered fallback rule chain. First match wins; every album
// reaches exactly one verdict.
func (e *Engine) decide(ctx context.Context, artist, album string, existing int, res resolution) models.Verdict {
	t := e.opts.Thresholds

	// Rule 1: definitive or high-confidence results apply unconditionally,
	// with zero plausibility lookups.
	if res.Definitive || res.Confidence >= t.TrustConfidence {
		return models.Verdict{Kind: models.VerdictApply, Year: res.Year}
	}

	// Rule 2: an absurdly early year with nothing to fall back on.
	if res.Year < t.AbsurdYear && existing == 0 {
		return models.Verdict{Kind: models.VerdictSkip, Reason: models.ReasonAbsurdYearNoExisting}
	}

	// Rule 3: too weak to trust and nothing to anchor to.
	if res.Confidence < t.MinConfidence && existing == 0 {
		return models.Verdict{Kind: models.VerdictSkip, Reason: models.ReasonLowConfidenceNoAnchor}
	}

	// Rule 4: no existing year, the proposed one is acceptable.
	if existing == 0 {
		return models.Verdict{Kind: models.VerdictApply, Year: res.Year}
	}

	// Rule 5: album type overrides.
	switch albumtype.Detect(album) {
	case albumtype.Special:
		return models.Verdict{Kind: models.VerdictSkip, Reason: models.ReasonSpecialAlbumType}
	case albumtype.Compilation:
		return models.Verdict{Kind: models.VerdictSkip, Reason: models.ReasonCompilationAlbumType}
	case albumtype.Reissue:
		return models.Verdict{Kind: models.VerdictApplyAndMark, Year: res.Year, Reason: models.ReasonReissueAlbumType}
	}

	// Rule 6: dramatic changes need the artist's activity window. A gap
	// exactly at the threshold is still non-dramatic.
	gap := existing - res.Year
	if gap < 0 {
		gap = -gap
	}
	if gap > t.DramaticGap {
		activityStart := 0
		if begin, err := e.lookups.ArtistActivityStart(ctx, artist); err != nil {
			log.Printf("[WARN] Activity lookup for %q failed: %v", artist, err)
		} else {
			activityStart = begin
		}
		switch checkPlausibility(existing, activityStart) {
		case PlausibilityImpossible:
			return models.Verdict{Kind: models.VerdictApplyAndMark, Year: res.Year, Reason: models.ReasonImplausibleExisting}
		default:
			// Plausible or inconclusive: missing data is a reason for
			// caution, not permission to apply.
			return models.Verdict{Kind: models.VerdictPreserve, Reason: models.ReasonSuspiciousYearChange}
		}
	}

	// Rule 7: a small correction applies directly.
	return models.Verdict{Kind: models.VerdictApply, Year: res.Year}
}

// carryOut executes a verdict: track updates, change log, cache, and queue.
func (e *Engine) carryOut(ctx context.Context, tracks []models.Track, verdict models.Verdict, res resolution) error {
	artist, album := tracks[0].Artist, tracks[0].Album
	metrics.IncVerdict(verdict.Kind.String())

	if verdict.Applies() {
		if err := e.applyYear(ctx, tracks, verdict.Year); err != nil {
			return err
		}
		if e.cache != nil && !e.opts.DryRun {
			if err := e.cache.Store(artist, album, verdict.Year, res.Confidence); err != nil {
				log.Printf("[WARN] Caching year for %s - %s failed: %v", artist, album, err)
			}
		}
	}

	if verdict.Marked() {
		metrics.IncMark(string(verdict.Reason))
		if e.opts.DryRun {
			return nil
		}
		metadata := map[string]string{
			"confidence": strconv.Itoa(res.Confidence),
		}
		if verdict.Year > 0 {
			metadata["proposed"] = strconv.Itoa(verdict.Year)
		}
		if err := e.queue.MarkForVerification(artist, album, verdict.Reason, metadata); err != nil {
			return fmt.Errorf("mark %s - %s: %w", artist, album, err)
		}
		return nil
	}

	// A clean apply confirms the year; any stale pending entry is resolved.
	if verdict.Kind == models.VerdictApply && !e.opts.DryRun {
		if err := e.queue.RemoveFromPending(artist, album); err != nil {
			log.Printf("[WARN] Clearing pending entry for %s - %s failed: %v", artist, album, err)
		}
	}
	return nil
}

func anyTrackNeedsUpdate(tracks []models.Track, year int) bool {
	for _, track := range tracks {
		if track.Editable && years.NeedsUpdate(track.Year, year) {
			return true
		}
	}
	return false
}
