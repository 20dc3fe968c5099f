// Package store persists discovered realm mappings. Business logic
// depends on the Store interface, never on concrete implementations, so
// the service runs with an in-memory store when no database is
// configured.
package store

import (
	"context"
	"time"

	"github.com/wowecon/ahtracker/pkg/types"
)

// Mapping sources.
const (
	SourceStatic    = "static"
	SourceDiscovery = "discovery"
)

// RealmMapping is a realm descriptor plus provenance. Static mappings
// come from configuration; discovery mappings were found by the
// namespace sweep and survive restarts when a database is configured.
type RealmMapping struct {
	Descriptor   domain.RealmDescriptor
	Source       string
	DiscoveredAt time.Time
	UpdatedAt    time.Time
}

// Store defines all data access operations for realm mappings.
type Store interface {
	// GetMapping returns the mapping for a realm key, or a
	// NotFoundError when none exists.
	GetMapping(ctx context.Context, realmKey string) (*RealmMapping, error)
	// UpsertMapping inserts or replaces the mapping keyed by
	// Descriptor.RealmKey, filling in DiscoveredAt and UpdatedAt.
	UpsertMapping(ctx context.Context, m *RealmMapping) error
	// ListMappings returns all mappings ordered by realm key.
	ListMappings(ctx context.Context) ([]RealmMapping, error)
	// DeleteMapping removes a mapping. Deleting an absent key is not
	// an error.
	DeleteMapping(ctx context.Context, realmKey string) error

	// Migrate applies pending schema migrations.
	Migrate(ctx context.Context) error
	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
	// Close releases the store's resources.
	Close()
}
