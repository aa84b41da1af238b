// file: internal/models/track.go
// version: 1.1.0
// guid: 3f8a1b2c-9d4e-4f5a-8b6c-7d8e9f0a1b2c

package models

import "time"

// Track is an immutable snapshot of one library track. The engine never
// mutates a Track in place; proposed changes are expressed as new values
// built with the With* constructors and applied by the track source.
type Track struct {
	ID              string
	Name            string
	Artist          string
	Album           string
	Year            string // raw year field as stored; may be empty or "0"
	ReleaseYearHint string // secondary per-track release-year hint
	Editable        bool
	DateAdded       time.Time
}

// WithYear returns a copy of the track carrying the given year value.
func (t Track) WithYear(year string) Track {
	t.Year = year
	return t
}

// Key returns the normalized album key for this track.
func (t Track) Key() AlbumKey {
	return NewAlbumKey(t.Artist, t.Album)
}

// GroupByAlbum buckets tracks by their normalized album key. Bucket order is
// not defined; callers that need stable output sort the keys themselves.
func GroupByAlbum(tracks []Track) map[AlbumKey][]Track {
	groups := make(map[AlbumKey][]Track)
	for _, t := range tracks {
		key := t.Key()
		groups[key] = append(groups[key], t)
	}
	return groups
}
