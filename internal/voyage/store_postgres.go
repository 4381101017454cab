package voyage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"fueleu/pkg/platform/sentinel"
)

// PostgresStore persists voyage records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed voyage store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const recordColumns = `id, vessel_type, fuel_type, year, ghg_intensity,
	fuel_consumption_t, distance_km, total_emissions_t, is_baseline`

func (s *PostgresStore) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM voyage_records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list voyage records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan voyage record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate voyage records: %w", err)
	}
	return records, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM voyage_records WHERE id = $1`, id)
	r, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, sentinel.ErrNotFound
		}
		return Record{}, fmt.Errorf("get voyage record: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) Create(ctx context.Context, record Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO voyage_records (`+recordColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		record.ID, record.VesselType, record.FuelType, record.Year,
		record.GHGIntensity, record.FuelConsumptionT, record.DistanceKM,
		record.TotalEmissionsT, record.IsBaseline,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create voyage record: %w", err)
	}
	return nil
}

// SetBaseline clears all baseline flags and sets the flag on one record in
// a single transaction, so readers never observe two baselines.
func (s *PostgresStore) SetBaseline(ctx context.Context, id string) (Record, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, fmt.Errorf("begin set baseline: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE voyage_records SET is_baseline = FALSE WHERE is_baseline`); err != nil {
		return Record{}, fmt.Errorf("clear baselines: %w", err)
	}

	row := tx.QueryRowContext(ctx, `
		UPDATE voyage_records SET is_baseline = TRUE WHERE id = $1
		RETURNING `+recordColumns, id)
	r, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, sentinel.ErrNotFound
		}
		return Record{}, fmt.Errorf("set baseline: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("commit set baseline: %w", err)
	}
	return r, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var r Record
	err := row.Scan(
		&r.ID, &r.VesselType, &r.FuelType, &r.Year, &r.GHGIntensity,
		&r.FuelConsumptionT, &r.DistanceKM, &r.TotalEmissionsT, &r.IsBaseline,
	)
	return r, err
}
