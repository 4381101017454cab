//go:build integration

package containers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// schema bootstraps the tables the stores expect. Kept in the test
// harness; production deployments manage the schema through their own
// migration tooling.
const schema = `
CREATE TABLE IF NOT EXISTS voyage_records (
	id                 TEXT PRIMARY KEY,
	vessel_type        TEXT NOT NULL,
	fuel_type          TEXT NOT NULL,
	year               INT NOT NULL,
	ghg_intensity      DOUBLE PRECISION NOT NULL,
	fuel_consumption_t DOUBLE PRECISION NOT NULL,
	distance_km        DOUBLE PRECISION NOT NULL,
	total_emissions_t  DOUBLE PRECISION NOT NULL,
	is_baseline        BOOLEAN NOT NULL DEFAULT FALSE,
	UNIQUE (id, year)
);

CREATE TABLE IF NOT EXISTS bank_entries (
	id         UUID PRIMARY KEY,
	ship_id    TEXT NOT NULL,
	year       INT NOT NULL,
	amount_g   DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS bank_entries_key_idx
	ON bank_entries (ship_id, year, created_at);

CREATE TABLE IF NOT EXISTS pools (
	id         UUID PRIMARY KEY,
	year       INT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS pool_members (
	pool_id     UUID NOT NULL REFERENCES pools(id) ON DELETE CASCADE,
	position    INT NOT NULL,
	ship_id     TEXT NOT NULL,
	cb_before_g DOUBLE PRECISION NOT NULL,
	cb_after_g  DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (pool_id, position)
);

CREATE TABLE IF NOT EXISTS compliance_snapshots (
	id         UUID PRIMARY KEY,
	ship_id    TEXT NOT NULL,
	year       INT NOT NULL,
	cb_g       DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS compliance_snapshots_key_idx
	ON compliance_snapshots (ship_id, year, created_at DESC);
`

// PostgresContainer wraps a testcontainers PostgreSQL instance with an
// open connection and the service schema applied.
type PostgresContainer struct {
	Container testcontainers.Container
	URL       string
	DB        *sql.DB
}

// NewPostgresContainer starts a new PostgreSQL container and applies the
// schema.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("fueleu_test"),
		tcpostgres.WithUsername("fueleu"),
		tcpostgres.WithPassword("fueleu"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := sql.Open("postgres", url)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to open postgres connection: %v", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to ping postgres: %v", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to apply schema: %v", err)
	}

	// Shared across suites via the Manager; Ryuk handles cleanup.
	return &PostgresContainer{Container: container, URL: url, DB: db}
}

// TruncateTables clears the given tables between tests.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	_, err := p.DB.ExecContext(ctx,
		fmt.Sprintf("TRUNCATE TABLE %s CASCADE", strings.Join(tables, ", ")))
	return err
}
