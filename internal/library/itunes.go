// file: internal/library/itunes.go
// version: 1.2.0
// guid: 2b3c4d5e-6f7a-8b9c-0d1e-2f3a4b5c6d7f

package library

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"howett.net/plist"

	"github.com/barad1tos/GenreUpdater-sub004/internal/models"
)

// plistLibrary mirrors the iTunes/Music Library.xml structure, limited to
// the keys this tool reads or writes.
type plistLibrary struct {
	MajorVersion       int                    `plist:"Major Version"`
	MinorVersion       int                    `plist:"Minor Version"`
	ApplicationVersion string                 `plist:"Application Version"`
	MusicFolder        string                 `plist:"Music Folder"`
	Tracks             map[string]*plistTrack `plist:"Tracks"`
}

type plistTrack struct {
	TrackID      int       `plist:"Track ID"`
	PersistentID string    `plist:"Persistent ID"`
	Name         string    `plist:"Name"`
	Artist       string    `plist:"Artist"`
	AlbumArtist  string    `plist:"Album Artist"`
	Album        string    `plist:"Album"`
	Genre        string    `plist:"Genre"`
	Kind         string    `plist:"Kind"`
	Year         int       `plist:"Year"`
	ReleaseDate  time.Time `plist:"Release Date"`
	Location     string    `plist:"Location"`
	DateAdded    time.Time `plist:"Date Added"`
}

// ITunesSource reads and writes an iTunes/Music XML library export. Year
// updates are buffered in memory and persisted by Flush with an atomic
// temp-file rename, the same way iTunes itself rewrites the file.
type ITunesSource struct {
	path string

	mu      sync.Mutex
	library *plistLibrary
	dirty   bool
}

// NewITunesSource creates a source over the given Library.xml path.
func NewITunesSource(path string) *ITunesSource {
	return &ITunesSource{path: path}
}

// Tracks implements Source.
func (s *ITunesSource) Tracks(ctx context.Context) ([]models.Track, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, len(s.library.Tracks))
	for id, t := range s.library.Tracks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		artist := t.AlbumArtist
		if artist == "" {
			artist = t.Artist
		}
		track := models.Track{
			ID:        id,
			Name:      t.Name,
			Artist:    artist,
			Album:     t.Album,
			DateAdded: t.DateAdded,
			Editable:  !strings.Contains(strings.ToLower(t.Kind), "protected"),
		}
		if t.Year != 0 {
			track.Year = strconv.Itoa(t.Year)
		}
		if !t.ReleaseDate.IsZero() {
			track.ReleaseYearHint = strconv.Itoa(t.ReleaseDate.Year())
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

// UpdateTrackYear implements Source. The update lands in the in-memory
// library; call Flush to persist.
func (s *ITunesSource) UpdateTrackYear(ctx context.Context, track models.Track, year string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	yearNum, err := strconv.Atoi(year)
	if err != nil {
		return fmt.Errorf("invalid year %q: %w", year, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return err
	}
	t, ok := s.library.Tracks[track.ID]
	if !ok {
		return fmt.Errorf("track %s not found in library", track.ID)
	}
	t.Year = yearNum
	s.dirty = true
	return nil
}

// Flush writes buffered updates back to the XML file atomically.
func (s *ITunesSource) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty || s.library == nil {
		return nil
	}

	tempFile := s.path + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return fmt.Errorf("create temp library: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tempFile)
	}()

	enc := plist.NewEncoder(f)
	enc.Indent("\t") // match iTunes' own formatting
	if err := enc.Encode(s.library); err != nil {
		return fmt.Errorf("encode library: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp library: %w", err)
	}
	if err := os.Rename(tempFile, s.path); err != nil {
		return fmt.Errorf("replace library: %w", err)
	}
	s.dirty = false
	return nil
}

func (s *ITunesSource) loadLocked() error {
	if s.library != nil {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read library: %w", err)
	}
	var lib plistLibrary
	if _, err := plist.Unmarshal(data, &lib); err != nil {
		return fmt.Errorf("parse library: %w", err)
	}
	if lib.Tracks == nil {
		lib.Tracks = map[string]*plistTrack{}
	}
	s.library = &lib
	return nil
}
