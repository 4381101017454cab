package compliance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fueleu/pkg/platform/sentinel"
)

// PostgresSnapshotStore persists compliance snapshots in PostgreSQL.
type PostgresSnapshotStore struct {
	db *sql.DB
}

// NewPostgresSnapshotStore constructs a PostgreSQL-backed snapshot store.
func NewPostgresSnapshotStore(db *sql.DB) *PostgresSnapshotStore {
	return &PostgresSnapshotStore{db: db}
}

func (s *PostgresSnapshotStore) Latest(ctx context.Context, shipID string, year int) (Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, ship_id, year, cb_g, created_at
		FROM compliance_snapshots
		WHERE ship_id = $1 AND year = $2
		ORDER BY created_at DESC
		LIMIT 1
	`, shipID, year)

	var snap Snapshot
	err := row.Scan(&snap.ID, &snap.ShipID, &snap.Year, &snap.BalanceG, &snap.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, sentinel.ErrNotFound
		}
		return Snapshot{}, fmt.Errorf("latest snapshot: %w", err)
	}
	return snap, nil
}

func (s *PostgresSnapshotStore) Append(ctx context.Context, snapshot Snapshot) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO compliance_snapshots (id, ship_id, year, cb_g, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, snapshot.ID, snapshot.ShipID, snapshot.Year, snapshot.BalanceG, snapshot.CreatedAt)
	if err != nil {
		return fmt.Errorf("append snapshot: %w", err)
	}
	return nil
}
