package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/wowecon/ahtracker/pkg/types"
)

// MemoryStore is a map-backed Store. It is the default when no database
// is configured; discovered mappings are lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	mappings map[string]RealmMapping

	nowFunc func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mappings: make(map[string]RealmMapping),
		nowFunc:  time.Now,
	}
}

// GetMapping returns the mapping for realmKey.
func (s *MemoryStore) GetMapping(_ context.Context, realmKey string) (*RealmMapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.mappings[realmKey]
	if !ok {
		return nil, &domain.NotFoundError{RealmKey: realmKey}
	}
	return &m, nil
}

// UpsertMapping inserts or replaces the mapping for its realm key.
func (s *MemoryStore) UpsertMapping(_ context.Context, m *RealmMapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFunc()
	stored := *m
	stored.UpdatedAt = now
	if prev, ok := s.mappings[m.Descriptor.RealmKey]; ok {
		stored.DiscoveredAt = prev.DiscoveredAt
	} else if stored.DiscoveredAt.IsZero() {
		stored.DiscoveredAt = now
	}
	s.mappings[m.Descriptor.RealmKey] = stored

	m.DiscoveredAt = stored.DiscoveredAt
	m.UpdatedAt = stored.UpdatedAt
	return nil
}

// ListMappings returns all mappings ordered by realm key.
func (s *MemoryStore) ListMappings(_ context.Context) ([]RealmMapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]RealmMapping, 0, len(s.mappings))
	for _, m := range s.mappings {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Descriptor.RealmKey < out[j].Descriptor.RealmKey
	})
	return out, nil
}

// DeleteMapping removes the mapping for realmKey if present.
func (s *MemoryStore) DeleteMapping(_ context.Context, realmKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.mappings, realmKey)
	return nil
}

// Migrate is a no-op for the in-memory store.
func (s *MemoryStore) Migrate(_ context.Context) error { return nil }

// Ping always succeeds.
func (s *MemoryStore) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (s *MemoryStore) Close() {}
