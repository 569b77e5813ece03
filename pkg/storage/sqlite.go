package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	collection TEXT NOT NULL,
	id         TEXT NOT NULL,
	payload    TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (collection, id)
)`

// DB wraps a SQLite handle shared by every collection.
type DB struct {
	*sql.DB
}

// Open opens (creating if needed) the SQLite database at path and applies
// the schema. An empty path or ":memory:" opens a private in-memory database.
func Open(ctx context.Context, path string) (*DB, error) {
	path = strings.TrimSpace(path)
	inMemory := path == "" || path == ":memory:"
	if inMemory {
		path = ":memory:"
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	if inMemory {
		// Each connection to ":memory:" is a separate database.
		conn.SetMaxOpenConns(1)
	}

	db := &DB{DB: conn}
	if err := db.migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) migrate(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("storage: migrate: %w", err)
	}
	return nil
}

// SQLite stores records of one collection as JSON payloads.
type SQLite[T any] struct {
	db         *DB
	collection string
	now        func() time.Time
}

var _ Repository[struct{}] = (*SQLite[struct{}])(nil)

// NewSQLite returns a repository over the named collection.
func NewSQLite[T any](db *DB, collection string) *SQLite[T] {
	return &SQLite[T]{db: db, collection: collection, now: time.Now}
}

func (s *SQLite[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM records WHERE collection = ? AND id = ?`,
		s.collection, id,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, fmt.Errorf("%w: %s/%q", ErrNotFound, s.collection, id)
		}
		return zero, fmt.Errorf("storage: get %s/%q: %w", s.collection, id, err)
	}

	var value T
	if err := json.Unmarshal([]byte(payload), &value); err != nil {
		return zero, fmt.Errorf("storage: decode %s/%q: %w", s.collection, id, err)
	}
	return value, nil
}

func (s *SQLite[T]) List(ctx context.Context) ([]T, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, payload FROM records WHERE collection = ? ORDER BY id`,
		s.collection,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: list %s: %w", s.collection, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("storage: scan %s: %w", s.collection, err)
		}
		var value T
		if err := json.Unmarshal([]byte(payload), &value); err != nil {
			return nil, fmt.Errorf("storage: decode %s/%q: %w", s.collection, id, err)
		}
		out = append(out, value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: list %s: %w", s.collection, err)
	}
	return out, nil
}

func (s *SQLite[T]) Put(ctx context.Context, id string, value T) error {
	if id == "" {
		return fmt.Errorf("storage: id is required")
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage: encode %s/%q: %w", s.collection, id, err)
	}
	now := s.now().UTC().Format(time.RFC3339Nano)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (collection, id, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (collection, id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, s.collection, id, string(payload), now, now)
	if err != nil {
		return fmt.Errorf("storage: put %s/%q: %w", s.collection, id, err)
	}
	return nil
}

func (s *SQLite[T]) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM records WHERE collection = ? AND id = ?`,
		s.collection, id,
	)
	if err != nil {
		return fmt.Errorf("storage: delete %s/%q: %w", s.collection, id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: delete %s/%q: %w", s.collection, id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s/%q", ErrNotFound, s.collection, id)
	}
	return nil
}
