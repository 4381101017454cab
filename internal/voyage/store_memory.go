package voyage

import (
	"context"
	"sort"
	"sync"

	"fueleu/pkg/platform/sentinel"
)

// InMemoryStore keeps voyage records in process memory. Used by tests and
// dev runs without a database.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]Record)}
}

func (s *InMemoryStore) List(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok {
		return Record{}, sentinel.ErrNotFound
	}
	return r, nil
}

func (s *InMemoryStore) Create(_ context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// One record per (ID, Year). IDs are globally unique, so checking the
	// ID alone is sufficient.
	if _, exists := s.records[record.ID]; exists {
		return sentinel.ErrConflict
	}
	s.records[record.ID] = record
	return nil
}

func (s *InMemoryStore) SetBaseline(_ context.Context, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.records[id]
	if !ok {
		return Record{}, sentinel.ErrNotFound
	}

	for key, r := range s.records {
		if r.IsBaseline {
			r.IsBaseline = false
			s.records[key] = r
		}
	}
	target.IsBaseline = true
	s.records[id] = target
	return target, nil
}
