// Package sqlite keeps a whole vault inside a single sqlite database
// file. One table holds every entry, keyed by kind and name, which maps
// the byte-level contract straight onto an upsert.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"lockvault/internal/infrastructure/backend"
)

type Backend struct {
	db *sql.DB
}

func New(path string) (*Backend, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Backend{db: db}, nil
}

func (b *Backend) Init(ctx context.Context) error {
	_, err := b.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS entries (
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			data BLOB NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (kind, name)
		);

		CREATE INDEX IF NOT EXISTS idx_entries_kind ON entries(kind);
	`)
	if err != nil {
		return fmt.Errorf("init tables: %w", err)
	}
	return nil
}

func (b *Backend) List(ctx context.Context, kind backend.Kind) ([]string, error) {
	rows, err := b.db.QueryContext(ctx,
		"SELECT name FROM entries WHERE kind = ?", string(kind))
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
	err := b.db.QueryRowContext(ctx,
		"SELECT data FROM entries WHERE kind = ? AND name = ?",
		string(kind), name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s: %v", backend.ErrFailedRead, kind, name, err)
	}
	return data, nil
}

func (b *Backend) Write(ctx context.Context, kind backend.Kind, name string, data []byte) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO entries (kind, name, data, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (kind, name) DO UPDATE
		SET data = excluded.data, updated_at = CURRENT_TIMESTAMP
	`, string(kind), name, data)
	if err != nil {
		return fmt.Errorf("%w: %s/%s: %v", backend.ErrFailedWrite, kind, name, err)
	}
	return nil
}

func (b *Backend) Delete(ctx context.Context, kind backend.Kind, name string) error {
	_, err := b.db.ExecContext(ctx,
		"DELETE FROM entries WHERE kind = ? AND name = ?", string(kind), name)
	if err != nil {
		return fmt.Errorf("%w: %s/%s: %v", backend.ErrFailedWrite, kind, name, err)
	}
	return nil
}

func (b *Backend) Close() error {
	return b.db.Close()
}
