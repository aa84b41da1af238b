// file: internal/models/albumkey_test.go
// version: 1.0.0
// guid: 90b7d80d-19e6-4b91-b2a5-acb8497e044d

package models

import "testing"

func TestNewAlbumKeyNormalization(t *testing.T) {
	a := NewAlbumKey("Björk", "Médulla")
	b := NewAlbumKey("bjork", "medulla")
	if a != b {
		t.Fatalf("expected diacritic-insensitive keys to match: %v vs %v", a, b)
	}
}

func TestNewAlbumKeyWhitespace(t *testing.T) {
	a := NewAlbumKey("  The  Cure ", "Wish\t")
	if a.Artist != "the cure" || a.Album != "wish" {
		t.Fatalf("unexpected key: %+v", a)
	}
}

func TestGroupByAlbum(t *testing.T) {
	tracks := []Track{
		{ID: "1", Artist: "Mew", Album: "Frengers"},
		{ID: "2", Artist: "MEW", Album: "frengers"},
		{ID: "3", Artist: "Mew", Album: "No More Stories"},
	}
	groups := GroupByAlbum(tracks)
	if len(groups) != 2 {
		t.Fatalf("expected 2 albums, got %d", len(groups))
	}
	if got := len(groups[NewAlbumKey("Mew", "Frengers")]); got != 2 {
		t.Errorf("expected 2 tracks in frengers group, got %d", got)
	}
}

func TestWithYearDoesNotMutate(t *testing.T) {
	orig := Track{ID: "1", Year: "1999"}
	updated := orig.WithYear("2001")
	if orig.Year != "1999" {
		t.Fatal("WithYear mutated the original snapshot")
	}
	if updated.Year != "2001" {
		t.Fatalf("expected 2001, got %q", updated.Year)
	}
}
