package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is a thread-safe in-memory document store, used by tests
// and by the desktop shell before a profile directory exists.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates a new in-memory document store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
	}
}

// List returns all records ordered by creation time.
func (s *MemoryStore) List(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Get returns a record by ID.
func (s *MemoryStore) Get(_ context.Context, id string) (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	return rec, ok, nil
}

// Create inserts a new record; an existing ID is an error.
func (s *MemoryStore) Create(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[rec.ID]; exists {
		return fmt.Errorf("%w: %s", ErrPlaybookExists, rec.ID)
	}
	s.records[rec.ID] = rec
	return nil
}

// Update replaces an existing record; a missing ID is an error.
func (s *MemoryStore) Update(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[rec.ID]; !exists {
		return fmt.Errorf("%w: %s", ErrPlaybookNotFound, rec.ID)
	}
	s.records[rec.ID] = rec
	return nil
}

// Delete removes a record; a missing ID is an error.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[id]; !exists {
		return fmt.Errorf("%w: %s", ErrPlaybookNotFound, id)
	}
	delete(s.records, id)
	return nil
}

// Compile-time interface check.
var _ DocumentStore = (*MemoryStore)(nil)
