package banking

import (
	"context"
	"database/sql"
	"fmt"

	"fueleu/pkg/platform/sentinel"
)

// PostgresStore persists bank ledger entries in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed ledger store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListEntries(ctx context.Context, shipID string, year int) ([]LedgerEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ship_id, year, amount_g, created_at
		FROM bank_entries
		WHERE ship_id = $1 AND year = $2
		ORDER BY created_at
	`, shipID, year)
	if err != nil {
		return nil, fmt.Errorf("list bank entries: %w", err)
	}
	defer rows.Close()

	var entries []LedgerEntry
	for rows.Next() {
		var e LedgerEntry
		if err := rows.Scan(&e.ID, &e.ShipID, &e.Year, &e.AmountG, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bank entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bank entries: %w", err)
	}
	return entries, nil
}

// Append inserts one ledger entry. Negative appends take a per-key
// advisory lock and re-check the fold inside the transaction, so two
// service instances cannot both draw from the same surplus; the losing
// append fails with sentinel.ErrConflict and makes no change.
func (s *PostgresStore) Append(ctx context.Context, entry LedgerEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	if entry.AmountG < 0 {
		// Serialize writers for this (ship, year) key for the duration of
		// the transaction.
		if _, err := tx.ExecContext(ctx,
			`SELECT pg_advisory_xact_lock(hashtext($1))`,
			fmt.Sprintf("%s:%d", entry.ShipID, entry.Year)); err != nil {
			return fmt.Errorf("lock ledger key: %w", err)
		}

		var total float64
		err := tx.QueryRowContext(ctx, `
			SELECT COALESCE(SUM(amount_g), 0)
			FROM bank_entries
			WHERE ship_id = $1 AND year = $2
		`, entry.ShipID, entry.Year).Scan(&total)
		if err != nil {
			return fmt.Errorf("fold bank entries: %w", err)
		}
		if total+entry.AmountG < 0 {
			return sentinel.ErrConflict
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO bank_entries (id, ship_id, year, amount_g, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, entry.ID, entry.ShipID, entry.Year, entry.AmountG, entry.CreatedAt); err != nil {
		return fmt.Errorf("append bank entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append: %w", err)
	}
	return nil
}
