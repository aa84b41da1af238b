// file: internal/database/store.go
// version: 2.0.0
// guid: 8a9b0c1d-2e3f-4a5b-6c7d-8e9f0a1b2c3d

package database

import (
	"errors"
	"fmt"

	"github.com/barad1tos/GenreUpdater-sub004/internal/models"
)

// ErrNotFound is returned when a keyed record does not exist. Callers treat
// it as "no signal", never as an error worth surfacing.
var ErrNotFound = errors.New("database: not found")

// Store defines the persistence operations shared across runs: the resolved
// year cache and the verification queue. This abstraction supports both
// SQLite (default) and PebbleDB, plus an in-memory mock for tests.
type Store interface {
	Close() error

	// Year cache
	GetCachedYear(key models.AlbumKey) (*models.CacheEntry, error)
	UpsertCachedYear(entry *models.CacheEntry) error
	DeleteCachedYear(key models.AlbumKey) error

	// Verification queue
	GetVerification(key models.AlbumKey) (*models.VerificationEntry, error)
	UpsertVerification(entry *models.VerificationEntry) error
	DeleteVerification(key models.AlbumKey) error
	AllVerifications() ([]models.VerificationEntry, error)
}

// NewStore opens a store of the given type at path.
func NewStore(dbType, path string) (Store, error) {
	switch dbType {
	case "sqlite", "sqlite3":
		return NewSQLiteStore(path)
	case "pebble":
		return NewPebbleStore(path)
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
}
