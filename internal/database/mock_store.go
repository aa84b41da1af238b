// file: internal/database/mock_store.go
// version: 2.0.0
// guid: 0d1e2f3a-4b5c-6d7e-8f9a-0b1c2d3e4f5a

package database

import (
	"sort"
	"sync"

	"github.com/barad1tos/GenreUpdater-sub004/internal/models"
)

// MockStore is an in-memory Store for tests.
type MockStore struct {
	mu            sync.RWMutex
	cache         map[models.AlbumKey]models.CacheEntry
	verifications map[models.AlbumKey]models.VerificationEntry
}

// NewMockStore creates an empty in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{
		cache:         make(map[models.AlbumKey]models.CacheEntry),
		verifications: make(map[models.AlbumKey]models.VerificationEntry),
	}
}

// Close implements Store.
func (m *MockStore) Close() error { return nil }

// GetCachedYear implements Store.
func (m *MockStore) GetCachedYear(key models.AlbumKey) (*models.CacheEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.cache[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

// UpsertCachedYear implements Store.
func (m *MockStore) UpsertCachedYear(entry *models.CacheEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache[entry.Key()] = *entry
	return nil
}

// DeleteCachedYear implements Store.
func (m *MockStore) DeleteCachedYear(key models.AlbumKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cache, key)
	return nil
}

// GetVerification implements Store.
func (m *MockStore) GetVerification(key models.AlbumKey) (*models.VerificationEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.verifications[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

// UpsertVerification implements Store.
func (m *MockStore) UpsertVerification(entry *models.VerificationEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verifications[entry.Key()] = *entry
	return nil
}

// DeleteVerification implements Store.
func (m *MockStore) DeleteVerification(key models.AlbumKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.verifications, key)
	return nil
}

// AllVerifications implements Store.
func (m *MockStore) AllVerifications() ([]models.VerificationEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]models.VerificationEntry, 0, len(m.verifications))
	for _, e := range m.verifications {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LastSeen.Before(entries[j].LastSeen)
	})
	return entries, nil
}
