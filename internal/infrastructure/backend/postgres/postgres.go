// Package postgres stores vault entries in a postgres database. The
// schema is managed through versioned migrations; entries live in one
// table keyed by kind and name.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lockvault/internal/infrastructure/backend"
	"lockvault/internal/infrastructure/migration"
)

type Backend struct {
	pool *pgxpool.Pool
}

// New connects a pool and applies pending migrations.
func New(ctx context.Context, databaseURI, migrationsPath string) (*Backend, error) {
	pool, err := pgxpool.New(ctx, databaseURI)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	mg := migration.New(migrationsPath, databaseURI, migration.DefaultEngine)
	if err := mg.Up(); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return &Backend{pool: pool}, nil
}

// Init is a no-op; migrations already prepared the schema.
func (b *Backend) Init(_ context.Context) error { return nil }

func (b *Backend) List(ctx context.Context, kind backend.Kind) ([]string, error) {
	rows, err := b.pool.Query(ctx,
		"SELECT name FROM vault_entries WHERE kind = $1", string(kind))
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", backend.ErrFailedRead, kind, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: scan name: %v", backend.ErrFailedRead, err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (b *Backend) Read(ctx context.Context, kind backend.Kind, name string) ([]byte, error) {
	var data []byte
	err := b.pool.QueryRow(ctx,
		"SELECT data FROM vault_entries WHERE kind = $1 AND name = $2",
		string(kind), name).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s: %v", backend.ErrFailedRead, kind, name, err)
	}
	return data, nil
}

func (b *Backend) Write(ctx context.Context, kind backend.Kind, name string, data []byte) error {
	_, err := b.pool.Exec(ctx, `
		INSERT INTO vault_entries (kind, name, data, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (kind, name) DO UPDATE
		SET data = EXCLUDED.data, updated_at = NOW()
	`, string(kind), name, data)
	if err != nil {
		return fmt.Errorf("%w: %s/%s: %v", backend.ErrFailedWrite, kind, name, err)
	}
	return nil
}

func (b *Backend) Delete(ctx context.Context, kind backend.Kind, name string) error {
	_, err := b.pool.Exec(ctx,
		"DELETE FROM vault_entries WHERE kind = $1 AND name = $2",
		string(kind), name)
	if err != nil {
		return fmt.Errorf("%w: %s/%s: %v", backend.ErrFailedWrite, kind, name, err)
	}
	return nil
}

func (b *Backend) Close() error {
	b.pool.Close()
	return nil
}
