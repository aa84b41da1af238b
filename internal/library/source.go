// file: internal/library/source.go
// version: 1.1.0
// guid: 1a2b3c4d-5e6f-7a8b-9c0d-1e2f3a4b5c6e

// Package library enumerates tracks from the underlying music library and
// writes resolved years back. Two production sources exist: an iTunes/Music
// XML library and a plain folder tree of tagged audio files.
package library

import (
	"context"
	"fmt"

	"github.com/barad1tos/GenreUpdater-sub004/internal/models"
)

// Source is the track collection collaborator. Tracks returns immutable
// snapshots; updates go through UpdateTrackYear and become visible on the
// next Tracks call.
type Source interface {
	Tracks(ctx context.Context) ([]models.Track, error)
	UpdateTrackYear(ctx context.Context, track models.Track, year string) error
	// Flush persists buffered updates. Sources that write through
	// immediately implement it as a no-op.
	Flush() error
}

// NewSource builds the configured production source.
func NewSource(sourceType, path string) (Source, error) {
	switch sourceType {
	case "itunes":
		return NewITunesSource(path), nil
	case "folder":
		return NewFolderSource(path), nil
	default:
		return nil, fmt.Errorf("unknown source type %q", sourceType)
	}
}
