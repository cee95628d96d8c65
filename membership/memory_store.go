package membership

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used in tests and local development. It
// mirrors the Postgres store semantics, including which fields survive an
// upsert of an existing record.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]SubscriberRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[uuid.UUID]SubscriberRecord)}
}

// Upsert implements Store.
func (s *MemoryStore) Upsert(_ context.Context, record SubscriberRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.records[record.ID]
	if ok {
		record.JoinedAt = existing.JoinedAt
		record.SavedItemRefs = existing.SavedItemRefs
	}
	record.SavedItemRefs = slices.Clone(record.SavedItemRefs)
	s.records[record.ID] = record
	return !ok, nil
}

// FindByID implements Store.
func (s *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (*SubscriberRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil, ErrSubscriberNotFound
	}
	record.SavedItemRefs = slices.Clone(record.SavedItemRefs)
	return &record, nil
}

// FindByOrderID implements Store.
func (s *MemoryStore) FindByOrderID(_ context.Context, orderID string) (*SubscriberRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.records {
		if record.ExternalOrderID == orderID {
			record.SavedItemRefs = slices.Clone(record.SavedItemRefs)
			return &record, nil
		}
	}
	return nil, ErrSubscriberNotFound
}

// AppendSavedItem implements Store.
func (s *MemoryStore) AppendSavedItem(_ context.Context, id uuid.UUID, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return ErrSubscriberNotFound
	}
	if !slices.Contains(record.SavedItemRefs, ref) {
		record.SavedItemRefs = append(slices.Clone(record.SavedItemRefs), ref)
	}
	s.records[id] = record
	return nil
}

// RemoveSavedItem implements Store.
func (s *MemoryStore) RemoveSavedItem(_ context.Context, id uuid.UUID, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return ErrSubscriberNotFound
	}
	refs := slices.Clone(record.SavedItemRefs)
	if i := slices.Index(refs, ref); i >= 0 {
		refs = slices.Delete(refs, i, i+1)
	}
	record.SavedItemRefs = refs
	s.records[id] = record
	return nil
}
