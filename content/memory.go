package content

import (
	"context"
	"sync"
)

// MemoryRepository is an in-process Repository used in development and tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]Item
}

func NewMemoryRepository(items ...Item) *MemoryRepository {
	m := &MemoryRepository{items: make(map[string]Item, len(items))}
	for _, item := range items {
		m.items[item.Slug] = item
	}
	return m
}

func (m *MemoryRepository) GetBySlug(ctx context.Context, slug string) (*Item, error) {
	if slug == "" {
		return nil, ErrMissingSlug
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[slug]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &item, nil
}
