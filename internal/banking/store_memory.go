package banking

import (
	"context"
	"fmt"
	"sync"

	"fueleu/pkg/platform/sentinel"
)

// InMemoryStore keeps ledger entries in process memory. Appends are
// serialized by the store mutex, which is the whole critical section for a
// single-process deployment.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]LedgerEntry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{entries: make(map[string][]LedgerEntry)}
}

func ledgerKey(shipID string, year int) string {
	return fmt.Sprintf("%s:%d", shipID, year)
}

func (s *InMemoryStore) ListEntries(_ context.Context, shipID string, year int) ([]LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]LedgerEntry{}, s.entries[ledgerKey(shipID, year)]...), nil
}

func (s *InMemoryStore) Append(_ context.Context, entry LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ledgerKey(entry.ShipID, entry.Year)
	if entry.AmountG < 0 {
		var total float64
		for _, e := range s.entries[key] {
			total += e.AmountG
		}
		if total+entry.AmountG < 0 {
			return sentinel.ErrConflict
		}
	}
	s.entries[key] = append(s.entries[key], entry)
	return nil
}
