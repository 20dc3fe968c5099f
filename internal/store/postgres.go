package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wowecon/ahtracker/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgresStore with connection pooling and
// verifies the connection before returning.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// UpsertMapping inserts or replaces the mapping keyed by realm key.
func (s *PostgresStore) UpsertMapping(ctx context.Context, m *RealmMapping) error {
	args := pgx.NamedArgs{
		"realm_key":          m.Descriptor.RealmKey,
		"display_name":       m.Descriptor.DisplayName,
		"region":             string(m.Descriptor.Region),
		"connected_realm_id": m.Descriptor.ConnectedRealmID,
		"namespace":          m.Descriptor.Namespace,
		"source":             m.Source,
	}

	err := s.pool.QueryRow(ctx, queryUpsertMapping, args).Scan(
		&m.DiscoveredAt, &m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting mapping %s: %w", m.Descriptor.RealmKey, err)
	}
	return nil
}

// GetMapping returns the mapping for realmKey, or a NotFoundError when
// no row exists.
func (s *PostgresStore) GetMapping(ctx context.Context, realmKey string) (*RealmMapping, error) {
	m := &RealmMapping{}
	err := scanMapping(s.pool.QueryRow(ctx, queryGetMapping, realmKey), m)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &domain.NotFoundError{RealmKey: realmKey}
	}
	if err != nil {
		return nil, fmt.Errorf("getting mapping %s: %w", realmKey, err)
	}
	return m, nil
}

// ListMappings returns all mappings ordered by realm key.
func (s *PostgresStore) ListMappings(ctx context.Context) ([]RealmMapping, error) {
	rows, err := s.pool.Query(ctx, queryListMappings)
	if err != nil {
		return nil, fmt.Errorf("listing mappings: %w", err)
	}
	defer rows.Close()

	var out []RealmMapping
	for rows.Next() {
		var m RealmMapping
		if err := scanMapping(rows, &m); err != nil {
			return nil, fmt.Errorf("scanning mapping: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mappings: %w", err)
	}
	return out, nil
}

// DeleteMapping removes the mapping for realmKey if present.
func (s *PostgresStore) DeleteMapping(ctx context.Context, realmKey string) error {
	if _, err := s.pool.Exec(ctx, queryDeleteMapping, realmKey); err != nil {
		return fmt.Errorf("deleting mapping %s: %w", realmKey, err)
	}
	return nil
}

// scanTarget is the shared row interface of pgx.Row and pgx.Rows.
type scanTarget interface {
	Scan(dest ...any) error
}

func scanMapping(row scanTarget, m *RealmMapping) error {
	var region string
	err := row.Scan(
		&m.Descriptor.RealmKey,
		&m.Descriptor.DisplayName,
		&region,
		&m.Descriptor.ConnectedRealmID,
		&m.Descriptor.Namespace,
		&m.Source,
		&m.DiscoveredAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return err
	}
	m.Descriptor.Region = domain.Region(region)
	return nil
}
