// file: internal/database/pebble_store.go
// version: 2.0.1
// guid: 9c0d1e2f-3a4b-5c6d-7e8f-9a0b1c2d3e4f

package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/cockroachdb/pebble/v2"

	"github.com/barad1tos/GenreUpdater-sub004/internal/models"
)

// Key layout: "cache:<artist>\x00<album>" and "verify:<artist>\x00<album>",
// values JSON-encoded. The NUL separator keeps artists whose names contain
// a colon from colliding.
const (
	cachePrefix  = "cache:"
	verifyPrefix = "verify:"
	keySep       = "\x00"
)

// PebbleStore implements the Store interface using PebbleDB.
type PebbleStore struct {
	db *pebble.DB
}

// NewPebbleStore creates a new Pebble store.
func NewPebbleStore(path string) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open Pebble database: %w", err)
	}
	return &PebbleStore{db: db}, nil
}

// Close closes the underlying database.
func (p *PebbleStore) Close() error {
	return p.db.Close()
}

func cacheKey(key models.AlbumKey) []byte {
	return []byte(cachePrefix + key.Artist + keySep + key.Album)
}

func verifyKey(key models.AlbumKey) []byte {
	return []byte(verifyPrefix + key.Artist + keySep + key.Album)
}

// GetCachedYear returns the cached year for an album key, or ErrNotFound.
func (p *PebbleStore) GetCachedYear(key models.AlbumKey) (*models.CacheEntry, error) {
	var e models.CacheEntry
	if err := p.getJSON(cacheKey(key), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// UpsertCachedYear writes or replaces a cache entry.
func (p *PebbleStore) UpsertCachedYear(entry *models.CacheEntry) error {
	return p.setJSON(cacheKey(entry.Key()), entry)
}

// DeleteCachedYear removes a cache entry if present.
func (p *PebbleStore) DeleteCachedYear(key models.AlbumKey) error {
	if err := p.db.Delete(cacheKey(key), pebble.Sync); err != nil {
		return fmt.Errorf("delete year cache: %w", err)
	}
	return nil
}

// GetVerification returns the pending entry for an album key, or ErrNotFound.
func (p *PebbleStore) GetVerification(key models.AlbumKey) (*models.VerificationEntry, error) {
	var e models.VerificationEntry
	if err := p.getJSON(verifyKey(key), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// UpsertVerification writes or replaces a pending entry.
func (p *PebbleStore) UpsertVerification(entry *models.VerificationEntry) error {
	return p.setJSON(verifyKey(entry.Key()), entry)
}

// DeleteVerification removes a pending entry if present.
func (p *PebbleStore) DeleteVerification(key models.AlbumKey) error {
	if err := p.db.Delete(verifyKey(key), pebble.Sync); err != nil {
		return fmt.Errorf("delete verification: %w", err)
	}
	return nil
}

// AllVerifications returns every pending entry ordered by last seen.
func (p *PebbleStore) AllVerifications() ([]models.VerificationEntry, error) {
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(verifyPrefix),
		UpperBound: []byte(verifyPrefix + "\xff"),
	})
	if err != nil {
		return nil, fmt.Errorf("iterate verifications: %w", err)
	}
	defer iter.Close()

	var entries []models.VerificationEntry
	for iter.First(); iter.Valid(); iter.Next() {
		var e models.VerificationEntry
		if err := json.Unmarshal(iter.Value(), &e); err != nil {
			return nil, fmt.Errorf("unmarshal verification: %w", err)
		}
		entries = append(entries, e)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("iterate verifications: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LastSeen.Before(entries[j].LastSeen)
	})
	return entries, nil
}

func (p *PebbleStore) getJSON(key []byte, out interface{}) error {
	value, closer, err := p.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("pebble get: %w", err)
	}
	defer closer.Close()
	if err := json.Unmarshal(value, out); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	return nil
}

func (p *PebbleStore) setJSON(key []byte, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := p.db.Set(key, data, pebble.Sync); err != nil {
		return fmt.Errorf("pebble set: %w", err)
	}
	return nil
}
