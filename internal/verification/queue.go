// file: internal/verification/queue.go
// version: 1.2.0
// guid: 3a4b5c6d-7e8f-9a0b-1c2d-3e4f5a6b7c8d

// Package verification keeps the durable queue of albums that need a human
// (or a later automated re-check) before their year can be trusted.
package verification

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/barad1tos/GenreUpdater-sub004/internal/database"
	"github.com/barad1tos/GenreUpdater-sub004/internal/models"
)

// Queue provides deduplicated verification marking over a database store.
// At most one live entry exists per album key; marking an already-pending
// album accumulates attempt history instead of duplicating.
type Queue struct {
	store database.Store
	now   func() time.Time
}

// NewQueue creates a queue over the given store.
func NewQueue(store database.Store) *Queue {
	return &Queue{store: store, now: time.Now}
}

// MarkForVerification records an album as pending. Repeated marks for the
// same key bump the attempt counter, merge metadata, and adopt the newest
// reason; they never error.
func (q *Queue) MarkForVerification(artist, album string, reason models.Reason, metadata map[string]string) error {
	key := models.NewAlbumKey(artist, album)
	now := q.now()

	existing, err := q.store.GetVerification(key)
	switch {
	case errors.Is(err, database.ErrNotFound):
		entry := &models.VerificationEntry{
			Artist: artist, Album: album,
			Reason:    reason,
			Metadata:  cloneMetadata(metadata),
			Attempts:  1,
			FirstSeen: now, LastSeen: now,
		}
		return q.store.UpsertVerification(entry)
	case err != nil:
		return fmt.Errorf("read verification entry: %w", err)
	}

	existing.Reason = reason
	existing.Attempts++
	existing.LastSeen = now
	if existing.Metadata == nil && metadata != nil {
		existing.Metadata = map[string]string{}
	}
	for k, v := range metadata {
		existing.Metadata[k] = v
	}
	return q.store.UpsertVerification(existing)
}

// RemoveFromPending drops an album from the queue, used once its year is
// later confirmed. Removing an absent key is a no-op.
func (q *Queue) RemoveFromPending(artist, album string) error {
	return q.store.DeleteVerification(models.NewAlbumKey(artist, album))
}

// AllPending returns every pending entry in last-seen order.
func (q *Queue) AllPending() ([]models.VerificationEntry, error) {
	return q.store.AllVerifications()
}

// StuckAlbumsReport returns entries whose attempt count has reached
// minAttempts: albums no amount of re-running has resolved.
func (q *Queue) StuckAlbumsReport(minAttempts int) ([]models.VerificationEntry, error) {
	all, err := q.store.AllVerifications()
	if err != nil {
		return nil, err
	}
	var stuck []models.VerificationEntry
	for _, e := range all {
		if e.Attempts >= minAttempts {
			stuck = append(stuck, e)
		}
	}
	return stuck, nil
}

// WriteReport renders entries as YAML for operator review.
func WriteReport(w io.Writer, entries []models.VerificationEntry) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(entries)
}

func cloneMetadata(metadata map[string]string) map[string]string {
	if metadata == nil {
		return nil
	}
	clone := make(map[string]string, len(metadata))
	for k, v := range metadata {
		clone[k] = v
	}
	return clone
}
