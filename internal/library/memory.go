// file: internal/library/memory.go
// version: 1.0.0
// guid: 7a8b9c0d-1e2f-3a4b-5c6d-7e8f9a0b1c2e

package library

import (
	"context"
	"fmt"
	"sync"

	"github.com/barad1tos/GenreUpdater-sub004/internal/models"
)

// MemorySource is an in-memory Source for tests.
type MemorySource struct {
	mu     sync.RWMutex
	tracks []models.Track
}

// NewMemorySource creates a source holding the given tracks.
func NewMemorySource(tracks []models.Track) *MemorySource {
	copied := make([]models.Track, len(tracks))
	copy(copied, tracks)
	return &MemorySource{tracks: copied}
}

// Tracks implements Source.
func (s *MemorySource) Tracks(ctx context.Context) ([]models.Track, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Track, len(s.tracks))
	copy(out, s.tracks)
	return out, nil
}

// UpdateTrackYear implements Source.
func (s *MemorySource) UpdateTrackYear(ctx context.Context, track models.Track, year string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tracks {
		if s.tracks[i].ID == track.ID {
			s.tracks[i] = s.tracks[i].WithYear(year)
			return nil
		}
	}
	return fmt.Errorf("track %s not found", track.ID)
}

// Flush implements Source.
func (s *MemorySource) Flush() error { return nil }
