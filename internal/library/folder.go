// file: internal/library/folder.go
// version: 1.1.0
// guid: 3c4d5e6f-7a8b-9c0d-1e2f-3a4b5c6d7e8f

package library

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dhowden/tag"

	"github.com/barad1tos/GenreUpdater-sub004/internal/models"
)

var audioExtensions = map[string]bool{
	".mp3": true, ".m4a": true, ".flac": true, ".ogg": true, ".opus": true,
}

// FolderSource scans a directory tree of tagged audio files. Reading uses
// embedded tags; writing years back requires the taglib build (see
// writeFileYear), otherwise updates fail with a clear error.
type FolderSource struct {
	root string
}

// NewFolderSource creates a source over the given directory.
func NewFolderSource(root string) *FolderSource {
	return &FolderSource{root: root}
}

// Tracks implements Source. Files whose tags can't be read are logged and
// skipped, never fatal.
func (s *FolderSource) Tracks(ctx context.Context) ([]models.Track, error) {
	var tracks []models.Track
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !audioExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		track, ok := s.readFile(path, d)
		if ok {
			tracks = append(tracks, track)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tracks, nil
}

func (s *FolderSource) readFile(path string, d fs.DirEntry) (models.Track, bool) {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("[WARN] Skipping %s: %v", path, err)
		return models.Track{}, false
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		log.Printf("[WARN] Skipping %s: unreadable tags: %v", path, err)
		return models.Track{}, false
	}

	artist := meta.AlbumArtist()
	if artist == "" {
		artist = meta.Artist()
	}
	track := models.Track{
		ID:       path,
		Name:     meta.Title(),
		Artist:   artist,
		Album:    meta.Album(),
		Editable: true,
	}
	if track.Name == "" {
		track.Name = strings.TrimSuffix(d.Name(), filepath.Ext(path))
	}
	if year := meta.Year(); year != 0 {
		track.Year = strconv.Itoa(year)
	}
	if info, err := d.Info(); err == nil {
		track.DateAdded = info.ModTime()
	}
	return track, true
}

// UpdateTrackYear implements Source by rewriting the file's year tag.
func (s *FolderSource) UpdateTrackYear(ctx context.Context, track models.Track, year string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeFileYear(track.ID, year)
}

// Flush implements Source; folder updates are written through immediately.
func (s *FolderSource) Flush() error { return nil }
