// file: internal/models/albumkey.go
// version: 1.0.2
// guid: 6d8ab779-002c-4b8b-aeb7-41b1844cd481

package models

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// AlbumKey is the normalized (artist, album) pair used to join all signals:
// track groups, cache entries, and verification entries.
type AlbumKey struct {
	Artist string
	Album  string
}

// stripMarks removes combining marks after NFD decomposition, so that
// "Björk" and "Bjork" produce the same key.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NewAlbumKey builds a case- and diacritic-insensitive key from the raw
// artist and album names.
func NewAlbumKey(artist, album string) AlbumKey {
	return AlbumKey{
		Artist: NormalizeName(artist),
		Album:  NormalizeName(album),
	}
}

// NormalizeName lowercases, strips diacritics, and collapses whitespace.
func NormalizeName(s string) string {
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}
