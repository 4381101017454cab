package pooling

import (
	"context"
	"sync"
)

// InMemoryStore keeps pools in process memory.
type InMemoryStore struct {
	mu    sync.RWMutex
	pools map[int][]Pool
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{pools: make(map[int][]Pool)}
}

func (s *InMemoryStore) Create(_ context.Context, pool Pool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := pool
	stored.Members = append([]Member{}, pool.Members...)
	s.pools[pool.Year] = append(s.pools[pool.Year], stored)
	return nil
}

func (s *InMemoryStore) ListByYear(_ context.Context, year int) ([]Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Pool, 0, len(s.pools[year]))
	for _, p := range s.pools[year] {
		copied := p
		copied.Members = append([]Member{}, p.Members...)
		out = append(out, copied)
	}
	return out, nil
}
