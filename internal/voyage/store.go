package voyage

import "context"

// Store is the persistence port for voyage records. Implementations must
// keep SetBaseline logically atomic: all records unset, then exactly one
// set, in one operation from the caller's perspective.
type Store interface {
	// List returns all records in a stable order.
	List(ctx context.Context) ([]Record, error)

	// Get returns the record with the given ID, or sentinel.ErrNotFound.
	Get(ctx context.Context, id string) (Record, error)

	// Create inserts a new record. Returns sentinel.ErrConflict when a
	// record already exists for the same (ID, Year) key.
	Create(ctx context.Context, record Record) error

	// SetBaseline unsets every baseline flag and sets the flag on the
	// record with the given ID. Returns sentinel.ErrNotFound if the record
	// does not exist; in that case no flag is changed.
	SetBaseline(ctx context.Context, id string) (Record, error)
}
