// file: internal/engine/run_test.go
// version: 1.1.0
// guid: 9e0f1a2b-3c4d-5e6f-7a8b-9c0d1e2f3a4b

package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/barad1tos/GenreUpdater-sub004/internal/models"
)

func TestProcessTracksMixedLibrary(t *testing.T) {
	h := newHarness(&fakeLookup{})
	tracks := []models.Track{
		// Dominant year, one straggler to fill.
		{ID: "1", Name: "One", Artist: "A", Album: "Solid", Year: "2003", Editable: true},
		{ID: "2", Name: "Two", Artist: "A", Album: "Solid", Year: "2003", Editable: true},
		{ID: "3", Name: "Three", Artist: "A", Album: "Solid", Year: "2003", Editable: true},
		{ID: "4", Name: "Four", Artist: "A", Album: "Solid", Year: "", Editable: true},
		// No year anywhere, no external signal.
		{ID: "5", Name: "Five", Artist: "B", Album: "Blank", Year: "", Editable: true},
	}

	summary, err := h.engine.ProcessTracks(context.Background(), tracks)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if summary.Albums != 2 || summary.Applied != 1 || summary.Skipped != 1 || summary.Marked != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	if got := h.updater.updates["4"]; got != "2003" {
		t.Errorf("straggler track not updated, got %q", got)
	}
	if _, ok := h.updater.updates["1"]; ok {
		t.Error("already-correct track must not be rewritten")
	}
	if h.changes.Len() != 1 {
		t.Errorf("expected 1 change-log entry, got %d", h.changes.Len())
	}

	pending, err := h.queue.AllPending()
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0].Reason != models.ReasonNoYearFound {
		t.Fatalf("expected the blank album queued, got %+v", pending)
	}
}

func TestProcessTracksCacheGate(t *testing.T) {
	// Confidence 49 applies but is not cached; 50 is cached.
	for _, tc := range []struct {
		confidence int
		cached     bool
	}{
		{49, false},
		{50, true},
	} {
		h := newHarness(&fakeLookup{result: found(1988, tc.confidence)})
		tracks := albumTracks("Cocteau Twins", "Blue Bell Knoll", "")

		if _, err := h.engine.ProcessTracks(context.Background(), tracks); err != nil {
			t.Fatalf("process: %v", err)
		}
		_, found, err := h.engine.cache.Lookup("Cocteau Twins", "Blue Bell Knoll")
		if err != nil {
			t.Fatalf("cache lookup: %v", err)
		}
		if found != tc.cached {
			t.Errorf("confidence %d: cached=%v, want %v", tc.confidence, found, tc.cached)
		}
	}
}

func TestProcessTracksRoundTripWritesNothing(t *testing.T) {
	h := newHarness(&fakeLookup{result: found(2000, 50)})
	tracks := []models.Track{
		{ID: "1", Name: "One", Artist: "A", Album: "B", Year: "2000", Editable: true},
		{ID: "2", Name: "Two", Artist: "A", Album: "B", Year: "2000", Editable: true},
	}

	summary, err := h.engine.ProcessTracks(context.Background(), tracks)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if summary.NoAction != 1 || summary.Applied != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if h.changes.Len() != 0 {
		t.Errorf("round trip must not write change-log entries, got %d", h.changes.Len())
	}
	if pending, _ := h.queue.AllPending(); len(pending) != 0 {
		t.Errorf("round trip must not mark anything, got %d entries", len(pending))
	}
}

func TestProcessTracksCleanApplyClearsPending(t *testing.T) {
	h := newHarness(&fakeLookup{result: found(1994, 75)})
	if err := h.queue.MarkForVerification("Portishead", "Dummy", models.ReasonNoYearFound, nil); err != nil {
		t.Fatalf("seed queue: %v", err)
	}

	tracks := albumTracks("Portishead", "Dummy", "")
	if _, err := h.engine.ProcessTracks(context.Background(), tracks); err != nil {
		t.Fatalf("process: %v", err)
	}
	if pending, _ := h.queue.AllPending(); len(pending) != 0 {
		t.Fatalf("confirmed apply must clear the pending entry, got %+v", pending)
	}
}

func TestProcessTracksDryRun(t *testing.T) {
	h := newHarness(&fakeLookup{result: found(1994, 75)})
	h.engine.opts.DryRun = true

	tracks := albumTracks("Portishead", "Dummy", "")
	summary, err := h.engine.ProcessTracks(context.Background(), tracks)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if summary.Applied != 1 {
		t.Fatalf("dry run still reports the verdict: %+v", summary)
	}
	if len(h.updater.updates) != 0 {
		t.Errorf("dry run must not touch tracks, got %v", h.updater.updates)
	}
	if _, found, _ := h.engine.cache.Lookup("Portishead", "Dummy"); found {
		t.Error("dry run must not write the cache")
	}
}

func TestProcessTracksCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := newHarness(&fakeLookup{result: found(1994, 75)})
	_, err := h.engine.ProcessTracks(ctx, albumTracks("A", "B", ""))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestProcessTracksUpdateFailureCountsAsError(t *testing.T) {
	h := newHarness(&fakeLookup{result: found(1994, 75)})
	h.updater.err = errors.New("library busy")

	summary, err := h.engine.ProcessTracks(context.Background(), albumTracks("A", "B", ""))
	if err != nil {
		t.Fatalf("run must survive per-album failures: %v", err)
	}
	if summary.Errors != 1 || summary.Applied != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}
