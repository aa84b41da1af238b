// file: internal/yearcache/yearcache.go
// version: 1.1.0
// guid: 5c6d7e8f-9a0b-1c2d-3e4f-5a6b7c8d9e0f

// Package yearcache persists resolved years across runs, gated on
// confidence so a low-quality guess can never become tomorrow's ground
// truth.
package yearcache

import (
	"errors"
	"fmt"
	"time"

	"github.com/barad1tos/GenreUpdater-sub004/internal/database"
	"github.com/barad1tos/GenreUpdater-sub004/internal/models"
)

// Cache is the confidence-gated year cache.
type Cache struct {
	store         database.Store
	minConfidence int // inclusive: exactly at the bar is cacheable
	now           func() time.Time
}

// New creates a cache over the given store.
func New(store database.Store, minConfidence int) *Cache {
	return &Cache{store: store, minConfidence: minConfidence, now: time.Now}
}

// Store persists a resolved year when its confidence clears the minimum
// bar. Below the bar it is a deliberate no-op: absence of a cache entry is
// not evidence of anything, but a poisoned entry is.
func (c *Cache) Store(artist, album string, year, confidence int) error {
	if confidence < c.minConfidence {
		return nil
	}
	entry := &models.CacheEntry{
		Artist: artist, Album: album,
		Year: year, Confidence: confidence,
		UpdatedAt: c.now(),
	}
	if err := c.store.UpsertCachedYear(entry); err != nil {
		return fmt.Errorf("cache year: %w", err)
	}
	return nil
}

// Lookup returns the cached entry for an album, if one exists.
func (c *Cache) Lookup(artist, album string) (*models.CacheEntry, bool, error) {
	entry, err := c.store.GetCachedYear(models.NewAlbumKey(artist, album))
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup cached year: %w", err)
	}
	return entry, true, nil
}

// Invalidate drops a cached year, used when a re-verification disproves it.
func (c *Cache) Invalidate(artist, album string) error {
	return c.store.DeleteCachedYear(models.NewAlbumKey(artist, album))
}
