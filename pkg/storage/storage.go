// Package storage persists JSON-serialisable records by ID. Repositories are
// generic so the same backends hold template definitions and business
// records.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no record exists for an ID.
var ErrNotFound = errors.New("storage: not found")

// Repository is the persistence contract consumed by the catalog and CLI.
type Repository[T any] interface {
	Get(ctx context.Context, id string) (T, error)
	// List returns every record ordered by ID.
	List(ctx context.Context) ([]T, error)
	// Put inserts or replaces the record stored under id.
	Put(ctx context.Context, id string, value T) error
	Delete(ctx context.Context, id string) error
}
