// file: internal/changelog/changelog.go
// version: 1.1.0
// guid: 7e8f9a0b-1c2d-3e4f-5a6b-7c8d9e0f1a2b

// Package changelog records every applied year mutation in a run so the
// operator can audit (or hand-revert) what the engine actually touched.
package changelog

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/barad1tos/GenreUpdater-sub004/internal/models"
)

// Log is a run-scoped, append-only change log. It is safe for concurrent
// appends from parallel album workers; order within the log is append order.
type Log struct {
	mu      sync.Mutex
	runID   string
	started time.Time
	entries []models.ChangeLogEntry
	now     func() time.Time
}

// NewLog starts an empty change log with a fresh run identifier.
func NewLog() *Log {
	now := time.Now()
	entropy := ulid.Monotonic(rand.New(rand.NewSource(now.UnixNano())), 0)
	return &Log{
		runID:   ulid.MustNew(ulid.Timestamp(now), entropy).String(),
		started: now,
		now:     time.Now,
	}
}

// RunID returns the identifier shared by every entry of this run.
func (l *Log) RunID() string { return l.runID }

// RecordYearUpdate appends one applied track mutation.
func (l *Log) RecordYearUpdate(artist, album, trackName, oldYear, newYear string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, models.ChangeLogEntry{
		Timestamp:  l.now(),
		ChangeType: "year_update",
		Artist:     artist,
		Album:      album,
		TrackName:  trackName,
		OldYear:    oldYear,
		NewYear:    newYear,
	})
}

// Entries returns a copy of the recorded entries in append order.
func (l *Log) Entries() []models.ChangeLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.ChangeLogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded changes.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// WriteCSV renders the log with a header row, one line per change.
func (l *Log) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"run_id", "timestamp", "change_type", "artist", "album", "track", "old_year", "new_year"}); err != nil {
		return fmt.Errorf("write changelog header: %w", err)
	}
	for _, e := range l.Entries() {
		record := []string{
			l.runID,
			e.Timestamp.UTC().Format(time.RFC3339),
			e.ChangeType,
			e.Artist, e.Album, e.TrackName,
			e.OldYear, e.NewYear,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write changelog row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the log next to other run artifacts, named by run ID.
func (l *Log) SaveCSV(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create changelog dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("changes-%s.csv", l.runID))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create changelog file: %w", err)
	}
	defer f.Close()
	if err := l.WriteCSV(f); err != nil {
		return "", err
	}
	return path, nil
}
