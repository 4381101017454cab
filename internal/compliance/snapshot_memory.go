package compliance

import (
	"context"
	"fmt"
	"sync"

	"fueleu/pkg/platform/sentinel"
)

// InMemorySnapshotStore keeps snapshots in process memory, newest last.
type InMemorySnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[string][]Snapshot
}

func NewInMemorySnapshotStore() *InMemorySnapshotStore {
	return &InMemorySnapshotStore{snapshots: make(map[string][]Snapshot)}
}

func snapshotKey(shipID string, year int) string {
	return fmt.Sprintf("%s:%d", shipID, year)
}

func (s *InMemorySnapshotStore) Latest(_ context.Context, shipID string, year int) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.snapshots[snapshotKey(shipID, year)]
	if len(history) == 0 {
		return Snapshot{}, sentinel.ErrNotFound
	}
	return history[len(history)-1], nil
}

func (s *InMemorySnapshotStore) Append(_ context.Context, snapshot Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := snapshotKey(snapshot.ShipID, snapshot.Year)
	s.snapshots[key] = append(s.snapshots[key], snapshot)
	return nil
}
