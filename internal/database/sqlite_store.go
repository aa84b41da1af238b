// file: internal/database/sqlite_store.go
// version: 2.2.0
// guid: 8b9c0d1e-2f3a-4b5c-6d7e-8f9a0b1c2d3e

package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/barad1tos/GenreUpdater-sub004/internal/models"
)

// SQLiteStore implements the Store interface using SQLite3.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) createTables() error {
	// key_artist/key_album hold the normalized lookup key; artist/album keep
	// the raw names so reports render them exactly as the library does.
	schema := `
	CREATE TABLE IF NOT EXISTS year_cache (
		key_artist TEXT NOT NULL,
		key_album TEXT NOT NULL,
		artist TEXT NOT NULL,
		album TEXT NOT NULL,
		year INTEGER NOT NULL,
		confidence INTEGER NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		PRIMARY KEY (key_artist, key_album)
	);

	CREATE TABLE IF NOT EXISTS verification_pending (
		key_artist TEXT NOT NULL,
		key_album TEXT NOT NULL,
		artist TEXT NOT NULL,
		album TEXT NOT NULL,
		reason TEXT NOT NULL,
		metadata TEXT,
		attempts INTEGER NOT NULL DEFAULT 1,
		first_seen TIMESTAMP NOT NULL,
		last_seen TIMESTAMP NOT NULL,
		PRIMARY KEY (key_artist, key_album)
	);

	CREATE INDEX IF NOT EXISTS idx_verification_attempts ON verification_pending(attempts);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetCachedYear returns the cached year for an album key, or ErrNotFound.
func (s *SQLiteStore) GetCachedYear(key models.AlbumKey) (*models.CacheEntry, error) {
	row := s.db.QueryRow(
		`SELECT artist, album, year, confidence, updated_at FROM year_cache WHERE key_artist = ? AND key_album = ?`,
		key.Artist, key.Album,
	)
	var e models.CacheEntry
	err := row.Scan(&e.Artist, &e.Album, &e.Year, &e.Confidence, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query year cache: %w", err)
	}
	return &e, nil
}

// UpsertCachedYear writes or replaces a cache entry. Confidence gating is
// the caller's job; the store persists whatever it is handed.
func (s *SQLiteStore) UpsertCachedYear(entry *models.CacheEntry) error {
	key := entry.Key()
	_, err := s.db.Exec(
		`INSERT INTO year_cache (key_artist, key_album, artist, album, year, confidence, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(key_artist, key_album) DO UPDATE SET
			artist = excluded.artist,
			album = excluded.album,
			year = excluded.year,
			confidence = excluded.confidence,
			updated_at = excluded.updated_at`,
		key.Artist, key.Album, entry.Artist, entry.Album, entry.Year, entry.Confidence, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert year cache: %w", err)
	}
	return nil
}

// DeleteCachedYear removes a cache entry if present.
func (s *SQLiteStore) DeleteCachedYear(key models.AlbumKey) error {
	_, err := s.db.Exec(`DELETE FROM year_cache WHERE key_artist = ? AND key_album = ?`, key.Artist, key.Album)
	if err != nil {
		return fmt.Errorf("delete year cache: %w", err)
	}
	return nil
}

// GetVerification returns the pending entry for an album key, or ErrNotFound.
func (s *SQLiteStore) GetVerification(key models.AlbumKey) (*models.VerificationEntry, error) {
	row := s.db.QueryRow(
		`SELECT artist, album, reason, metadata, attempts, first_seen, last_seen
		 FROM verification_pending WHERE key_artist = ? AND key_album = ?`,
		key.Artist, key.Album,
	)
	return scanVerification(row)
}

// UpsertVerification writes or replaces a pending entry.
func (s *SQLiteStore) UpsertVerification(entry *models.VerificationEntry) error {
	key := entry.Key()
	meta, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("marshal verification metadata: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO verification_pending (key_artist, key_album, artist, album, reason, metadata, attempts, first_seen, last_seen)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(key_artist, key_album) DO UPDATE SET
			artist = excluded.artist,
			album = excluded.album,
			reason = excluded.reason,
			metadata = excluded.metadata,
			attempts = excluded.attempts,
			last_seen = excluded.last_seen`,
		key.Artist, key.Album, entry.Artist, entry.Album, string(entry.Reason), string(meta),
		entry.Attempts, entry.FirstSeen, entry.LastSeen,
	)
	if err != nil {
		return fmt.Errorf("upsert verification: %w", err)
	}
	return nil
}

// DeleteVerification removes a pending entry if present.
func (s *SQLiteStore) DeleteVerification(key models.AlbumKey) error {
	_, err := s.db.Exec(`DELETE FROM verification_pending WHERE key_artist = ? AND key_album = ?`, key.Artist, key.Album)
	if err != nil {
		return fmt.Errorf("delete verification: %w", err)
	}
	return nil
}

// AllVerifications returns every pending entry ordered by last seen.
func (s *SQLiteStore) AllVerifications() ([]models.VerificationEntry, error) {
	rows, err := s.db.Query(
		`SELECT artist, album, reason, metadata, attempts, first_seen, last_seen
		 FROM verification_pending ORDER BY last_seen ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query verifications: %w", err)
	}
	defer rows.Close()

	var entries []models.VerificationEntry
	for rows.Next() {
		e, err := scanVerification(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVerification(scanner rowScanner) (*models.VerificationEntry, error) {
	var e models.VerificationEntry
	var reason string
	var meta sql.NullString
	var firstSeen, lastSeen time.Time
	err := scanner.Scan(&e.Artist, &e.Album, &reason, &meta, &e.Attempts, &firstSeen, &lastSeen)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan verification: %w", err)
	}
	e.Reason = models.Reason(reason)
	e.FirstSeen = firstSeen
	e.LastSeen = lastSeen
	if meta.Valid && meta.String != "" {
		if err := json.Unmarshal([]byte(meta.String), &e.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal verification metadata: %w", err)
		}
	}
	return &e, nil
}
