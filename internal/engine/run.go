// file: internal/engine/run.go
// version: 1.2.0
// guid: 7c8d9e0f-1a2b-3c4d-5e6f-7a8b9c0d1e2f

package engine

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/barad1tos/GenreUpdater-sub004/internal/metrics"
	"github.com/barad1tos/GenreUpdater-sub004/internal/models"
	"github.com/barad1tos/GenreUpdater-sub004/internal/years"
)

// Summary reports what a run did. Operators see degraded confidence in
// these counts rather than silent data loss.
type Summary struct {
	Albums    int
	Applied   int
	Preserved int
	Skipped   int
	NoAction  int
	Marked    int
	Errors    int
}

// String renders the one-line run report.
func (s Summary) String() string {
	return fmt.Sprintf("albums=%d applied=%d preserved=%d skipped=%d no_action=%d marked=%d errors=%d",
		s.Albums, s.Applied, s.Preserved, s.Skipped, s.NoAction, s.Marked, s.Errors)
}

// ProcessTracks groups tracks into albums and resolves each one in bounded
// batches with an inter-batch delay. Cancellation is honored between
// albums; the in-flight album finishes its writes, which is safe because
// re-running an already-correct album is a no-op.
func (e *Engine) ProcessTracks(ctx context.Context, tracks []models.Track) (Summary, error) {
	albums := models.GroupByAlbum(tracks)
	keys := make([]models.AlbumKey, 0, len(albums))
	for k := range albums {
		keys = append(keys, k)
	}
	// Deterministic order: verdicts don't depend on it, but logs and
	// batch boundaries should be reproducible.
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Artist != keys[j].Artist {
			return keys[i].Artist < keys[j].Artist
		}
		return keys[i].Album < keys[j].Album
	})

	metrics.SetAlbums(len(keys))
	var summary Summary
	summary.Albums = len(keys)

	for start := 0; start < len(keys); start += e.opts.BatchSize {
		end := start + e.opts.BatchSize
		if end > len(keys) {
			end = len(keys)
		}
		for _, key := range keys[start:end] {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			e.resolveOne(ctx, albums[key], &summary)
		}
		if end < len(keys) && e.opts.BatchDelay > 0 {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			case <-time.After(e.opts.BatchDelay):
			}
		}
	}

	log.Printf("[INFO] Run complete: %s", summary)
	return summary, nil
}

func (e *Engine) resolveOne(ctx context.Context, tracks []models.Track, summary *Summary) {
	artist, album := tracks[0].Artist, tracks[0].Album

	verdict, res, err := e.resolveAlbum(ctx, tracks)
	if err != nil {
		log.Printf("[ERROR] Resolving %s - %s: %v", artist, album, err)
		summary.Errors++
		return
	}

	if err := e.carryOut(ctx, tracks, verdict, res); err != nil {
		log.Printf("[ERROR] Applying verdict for %s - %s: %v", artist, album, err)
		summary.Errors++
		return
	}

	switch verdict.Kind {
	case models.VerdictApply, models.VerdictApplyAndMark:
		summary.Applied++
		log.Printf("[INFO] %s - %s: applied year %d (%s)", artist, album, verdict.Year, verdict.Kind)
	case models.VerdictPreserve:
		summary.Preserved++
		log.Printf("[INFO] %s - %s: preserved existing year (%s)", artist, album, verdict.Reason)
	case models.VerdictSkip:
		summary.Skipped++
		log.Printf("[INFO] %s - %s: skipped (%s)", artist, album, verdict.Reason)
	default:
		summary.NoAction++
	}
	if verdict.Marked() {
		summary.Marked++
	}
}

// applyYear writes the resolved year to every track that still differs,
// with per-track updates gated by the concurrency semaphore.
func (e *Engine) applyYear(ctx context.Context, tracks []models.Track, year int) error {
	yearStr := strconv.Itoa(year)
	sem := make(chan struct{}, e.opts.UpdateConcurrency)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for _, track := range tracks {
		if !track.Editable || !years.NeedsUpdate(track.Year, year) {
			continue
		}
		if e.opts.DryRun {
			log.Printf("[INFO] (dry-run) would set %s - %s - %s: %q -> %s",
				track.Artist, track.Album, track.Name, track.Year, yearStr)
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(track models.Track) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := e.updater.UpdateTrackYear(ctx, track, yearStr); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("update %s: %w", track.Name, err)
				}
				mu.Unlock()
				return
			}
			e.changes.RecordYearUpdate(track.Artist, track.Album, track.Name, track.Year, yearStr)
		}(track)
	}
	wg.Wait()
	return firstErr
}
