// file: internal/verification/queue_test.go
// version: 1.1.0
// guid: 4b5c6d7e-8f9a-0b1c-2d3e-4f5a6b7c8d9e

package verification

import (
	"bytes"
	"strings"
	"testing"

	"github.com/barad1tos/GenreUpdater-sub004/internal/database"
	"github.com/barad1tos/GenreUpdater-sub004/internal/models"
)

func TestMarkAccumulatesAttempts(t *testing.T) {
	q := NewQueue(database.NewMockStore())

	if err := q.MarkForVerification("Mew", "Frengers", models.ReasonNoYearFound, nil); err != nil {
		t.Fatalf("first mark: %v", err)
	}
	if err := q.MarkForVerification("MEW", "frengers", models.ReasonSuspiciousYearChange, map[string]string{"proposed": "2020"}); err != nil {
		t.Fatalf("second mark: %v", err)
	}

	pending, err := q.AllPending()
	if err != nil {
		t.Fatalf("all pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected deduplicated single entry, got %d", len(pending))
	}
	e := pending[0]
	if e.Attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", e.Attempts)
	}
	if e.Reason != models.ReasonSuspiciousYearChange {
		t.Errorf("expected newest reason to win, got %s", e.Reason)
	}
	if e.Metadata["proposed"] != "2020" {
		t.Errorf("expected merged metadata, got %v", e.Metadata)
	}
}

func TestRemoveFromPending(t *testing.T) {
	q := NewQueue(database.NewMockStore())
	if err := q.MarkForVerification("Mew", "Frengers", models.ReasonNoYearFound, nil); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if err := q.RemoveFromPending("mew", "FRENGERS"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	pending, _ := q.AllPending()
	if len(pending) != 0 {
		t.Fatalf("expected empty queue, got %d entries", len(pending))
	}
	// Removing again is a no-op, not an error.
	if err := q.RemoveFromPending("mew", "FRENGERS"); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

func TestStuckAlbumsReport(t *testing.T) {
	q := NewQueue(database.NewMockStore())
	for i := 0; i < 3; i++ {
		if err := q.MarkForVerification("A", "Stuck Album", models.ReasonNoYearFound, nil); err != nil {
			t.Fatalf("mark: %v", err)
		}
	}
	if err := q.MarkForVerification("B", "Fresh Album", models.ReasonNoYearFound, nil); err != nil {
		t.Fatalf("mark: %v", err)
	}

	stuck, err := q.StuckAlbumsReport(3)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(stuck) != 1 || stuck[0].Album != "Stuck Album" {
		t.Fatalf("expected only the stuck album, got %+v", stuck)
	}
}

func TestWriteReport(t *testing.T) {
	entries := []models.VerificationEntry{
		{Artist: "A", Album: "B", Reason: models.ReasonNoYearFound, Attempts: 3},
	}
	var buf bytes.Buffer
	if err := WriteReport(&buf, entries); err != nil {
		t.Fatalf("write report: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "no_year_found") || !strings.Contains(out, "attempts: 3") {
		t.Fatalf("unexpected report output:\n%s", out)
	}
}
