package pooling

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore persists pools and their members in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed pool store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts the pool and all members in one transaction so a pool is
// never observable half-written.
func (s *PostgresStore) Create(ctx context.Context, pool Pool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create pool: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO pools (id, year, created_at)
		VALUES ($1, $2, $3)
	`, pool.ID, pool.Year, pool.CreatedAt); err != nil {
		return fmt.Errorf("insert pool: %w", err)
	}

	for i, m := range pool.Members {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO pool_members (pool_id, position, ship_id, cb_before_g, cb_after_g)
			VALUES ($1, $2, $3, $4, $5)
		`, pool.ID, i, m.ShipID, m.CBBeforeG, m.CBAfterG); err != nil {
			return fmt.Errorf("insert pool member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create pool: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByYear(ctx context.Context, year int) ([]Pool, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.year, p.created_at, m.ship_id, m.cb_before_g, m.cb_after_g
		FROM pools p
		JOIN pool_members m ON m.pool_id = p.id
		WHERE p.year = $1
		ORDER BY p.created_at, p.id, m.position
	`, year)
	if err != nil {
		return nil, fmt.Errorf("list pools: %w", err)
	}
	defer rows.Close()

	var pools []Pool
	index := make(map[string]int)
	for rows.Next() {
		var (
			p Pool
			m Member
		)
		if err := rows.Scan(&p.ID, &p.Year, &p.CreatedAt, &m.ShipID, &m.CBBeforeG, &m.CBAfterG); err != nil {
			return nil, fmt.Errorf("scan pool row: %w", err)
		}
		at, ok := index[p.ID]
		if !ok {
			pools = append(pools, p)
			at = len(pools) - 1
			index[p.ID] = at
		}
		pools[at].Members = append(pools[at].Members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pool rows: %w", err)
	}
	return pools, nil
}
