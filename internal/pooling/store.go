package pooling

import "context"

// Store is the persistence port for pools. A pool and its members are
// created in one atomic operation and never mutated afterward.
type Store interface {
	// Create persists a pool with all its members, or nothing.
	Create(ctx context.Context, pool Pool) error

	// ListByYear returns the pools created for a year, oldest first.
	ListByYear(ctx context.Context, year int) ([]Pool, error)
}
