// file: internal/database/store_test.go
// version: 2.1.0
// guid: 1e2f3a4b-5c6d-7e8f-9a0b-1c2d3e4f5a6b

package database

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/barad1tos/GenreUpdater-sub004/internal/models"
)

// storeFactories lets every backend run the same conformance tests.
func storeFactories(t *testing.T) map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"mock": func(t *testing.T) Store {
			return NewMockStore()
		},
		"sqlite": func(t *testing.T) Store {
			s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
			if err != nil {
				t.Fatalf("open sqlite: %v", err)
			}
			return s
		},
		"pebble": func(t *testing.T) Store {
			s, err := NewPebbleStore(filepath.Join(t.TempDir(), "pebble"))
			if err != nil {
				t.Fatalf("open pebble: %v", err)
			}
			return s
		},
	}
}

func TestStoreCacheRoundTrip(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			defer s.Close()

			key := models.NewAlbumKey("Portishead", "Dummy")
			if _, err := s.GetCachedYear(key); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}

			entry := &models.CacheEntry{
				Artist: "Portishead", Album: "Dummy",
				Year: 1994, Confidence: 82,
				UpdatedAt: time.Now().UTC().Truncate(time.Second),
			}
			if err := s.UpsertCachedYear(entry); err != nil {
				t.Fatalf("upsert: %v", err)
			}

			got, err := s.GetCachedYear(key)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got.Year != 1994 || got.Confidence != 82 {
				t.Fatalf("unexpected entry: %+v", got)
			}

			entry.Year = 1995
			if err := s.UpsertCachedYear(entry); err != nil {
				t.Fatalf("second upsert: %v", err)
			}
			got, err = s.GetCachedYear(key)
			if err != nil || got.Year != 1995 {
				t.Fatalf("expected overwrite to 1995, got %+v err=%v", got, err)
			}

			if err := s.DeleteCachedYear(key); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, err := s.GetCachedYear(key); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound after delete, got %v", err)
			}
		})
	}
}

func TestStoreVerificationRoundTrip(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			defer s.Close()

			now := time.Now().UTC().Truncate(time.Second)
			entry := &models.VerificationEntry{
				Artist: "Mew", Album: "Frengers",
				Reason:    models.ReasonSuspiciousYearChange,
				Metadata:  map[string]string{"existing": "2001", "proposed": "2020"},
				Attempts:  1,
				FirstSeen: now, LastSeen: now,
			}
			if err := s.UpsertVerification(entry); err != nil {
				t.Fatalf("upsert: %v", err)
			}

			got, err := s.GetVerification(entry.Key())
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got.Reason != models.ReasonSuspiciousYearChange || got.Metadata["existing"] != "2001" {
				t.Fatalf("unexpected entry: %+v", got)
			}

			all, err := s.AllVerifications()
			if err != nil || len(all) != 1 {
				t.Fatalf("expected one pending entry, got %d err=%v", len(all), err)
			}

			if err := s.DeleteVerification(entry.Key()); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, err := s.GetVerification(entry.Key()); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound after delete, got %v", err)
			}
		})
	}
}

func TestStoreKeepsRawNames(t *testing.T) {
	// Lookups go through the normalized key, but the stored entry must keep
	// the library's raw spelling so reports render it unchanged.
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			defer s.Close()

			now := time.Now().UTC().Truncate(time.Second)
			cache := &models.CacheEntry{
				Artist: "Mötley Crüe", Album: "Dr. Feelgood",
				Year: 1989, Confidence: 90, UpdatedAt: now,
			}
			if err := s.UpsertCachedYear(cache); err != nil {
				t.Fatalf("upsert cache: %v", err)
			}
			gotCache, err := s.GetCachedYear(cache.Key())
			if err != nil {
				t.Fatalf("get cache: %v", err)
			}
			if gotCache.Artist != "Mötley Crüe" || gotCache.Album != "Dr. Feelgood" {
				t.Fatalf("cache entry lost raw names: %+v", gotCache)
			}

			pending := &models.VerificationEntry{
				Artist: "Mötley Crüe", Album: "Dr. Feelgood",
				Reason:    models.ReasonNoYearFound,
				Attempts:  1,
				FirstSeen: now, LastSeen: now,
			}
			if err := s.UpsertVerification(pending); err != nil {
				t.Fatalf("upsert verification: %v", err)
			}
			got, err := s.GetVerification(pending.Key())
			if err != nil {
				t.Fatalf("get verification: %v", err)
			}
			if got.Artist != "Mötley Crüe" || got.Album != "Dr. Feelgood" {
				t.Fatalf("verification entry lost raw names: %+v", got)
			}
		})
	}
}

func TestStoreVerificationOrder(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			defer s.Close()

			base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
			for i, album := range []string{"Zeta", "Alpha", "Mid"} {
				e := &models.VerificationEntry{
					Artist: "X", Album: album,
					Reason:    models.ReasonNoYearFound,
					Attempts:  1,
					FirstSeen: base.Add(time.Duration(i) * time.Hour),
					LastSeen:  base.Add(time.Duration(i) * time.Hour),
				}
				if err := s.UpsertVerification(e); err != nil {
					t.Fatalf("upsert: %v", err)
				}
			}
			all, err := s.AllVerifications()
			if err != nil || len(all) != 3 {
				t.Fatalf("expected 3 entries, got %d err=%v", len(all), err)
			}
			if all[0].Album != "Zeta" || all[2].Album != "Mid" {
				t.Fatalf("expected last-seen order, got %v", []string{all[0].Album, all[1].Album, all[2].Album})
			}
		})
	}
}

func TestNewStoreUnknownType(t *testing.T) {
	if _, err := NewStore("bolt", "x"); err == nil {
		t.Fatal("expected error for unknown database type")
	}
}
