package compliance

import "context"

// SnapshotStore is the persistence port for compliance snapshots.
// Snapshots are append-only; the latest CreatedAt wins.
type SnapshotStore interface {
	// Latest returns the most recently created snapshot for the key, or
	// sentinel.ErrNotFound when none exists.
	Latest(ctx context.Context, shipID string, year int) (Snapshot, error)

	// Append stores a new snapshot.
	Append(ctx context.Context, snapshot Snapshot) error
}
