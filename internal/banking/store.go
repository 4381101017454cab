package banking

import "context"

// Store is the persistence port for the bank ledger. The log is
// append-only; balance is always derived by folding entries in creation
// order, never stored.
type Store interface {
	// ListEntries returns all entries for the key ordered by CreatedAt.
	// Unknown keys yield an empty list.
	ListEntries(ctx context.Context, shipID string, year int) ([]LedgerEntry, error)

	// Append adds one entry. Implementations must reject an append that
	// would take the running balance for the key negative with
	// sentinel.ErrConflict, so the non-negative invariant holds even when
	// several service instances share the store.
	Append(ctx context.Context, entry LedgerEntry) error
}
