package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Memory keeps records in a map. It is safe for concurrent use.
type Memory[T any] struct {
	mu      sync.RWMutex
	records map[string]T
}

var _ Repository[struct{}] = (*Memory[struct{}])(nil)

// NewMemory returns an empty in-memory repository.
func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{records: make(map[string]T)}
}

func (m *Memory[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.records[id]
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return value, nil
}

func (m *Memory[T]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.records))
	for id := range m.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.records[id])
	}
	return out, nil
}

func (m *Memory[T]) Put(ctx context.Context, id string, value T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("storage: id is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[id] = value
	return nil
}

func (m *Memory[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	delete(m.records, id)
	return nil
}
