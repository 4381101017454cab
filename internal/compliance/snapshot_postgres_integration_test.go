//go:build integration

package compliance_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"fueleu/internal/compliance"
	"fueleu/pkg/platform/sentinel"
	"fueleu/pkg/testutil/containers"
)

type PostgresSnapshotSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *compliance.PostgresSnapshotStore
}

func TestPostgresSnapshotSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresSnapshotSuite))
}

func (s *PostgresSnapshotSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = compliance.NewPostgresSnapshotStore(s.postgres.DB)
}

func (s *PostgresSnapshotSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "compliance_snapshots"))
}

func (s *PostgresSnapshotSuite) newSnapshot(shipID string, year int, balance float64, at time.Time) compliance.Snapshot {
	return compliance.Snapshot{
		ID:        uuid.NewString(),
		ShipID:    shipID,
		Year:      year,
		BalanceG:  balance,
		CreatedAt: at,
	}
}

func (s *PostgresSnapshotSuite) TestLatestReturnsNewest() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)

	s.Require().NoError(s.store.Append(ctx, s.newSnapshot("R001", 2024, -100, base)))
	s.Require().NoError(s.store.Append(ctx, s.newSnapshot("R001", 2024, -42, base.Add(time.Second))))
	s.Require().NoError(s.store.Append(ctx, s.newSnapshot("R001", 2024, -77, base.Add(-time.Second))))

	snap, err := s.store.Latest(ctx, "R001", 2024)
	s.Require().NoError(err)
	s.Equal(-42.0, snap.BalanceG)
}

func (s *PostgresSnapshotSuite) TestLatestScopesToKey() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	s.Require().NoError(s.store.Append(ctx, s.newSnapshot("R001", 2024, 10, now)))
	s.Require().NoError(s.store.Append(ctx, s.newSnapshot("R001", 2025, 20, now)))
	s.Require().NoError(s.store.Append(ctx, s.newSnapshot("R002", 2024, 30, now)))

	snap, err := s.store.Latest(ctx, "R001", 2024)
	s.Require().NoError(err)
	s.Equal(10.0, snap.BalanceG)
}

func (s *PostgresSnapshotSuite) TestLatestMissingKey() {
	_, err := s.store.Latest(context.Background(), "R999", 2024)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
