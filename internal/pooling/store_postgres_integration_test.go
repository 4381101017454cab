//go:build integration

package pooling_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"fueleu/internal/pooling"
	"fueleu/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *pooling.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = pooling.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "pool_members", "pools"))
}

func (s *PostgresStoreSuite) newPool(year int, members []pooling.Member) pooling.Pool {
	return pooling.Pool{
		ID:        uuid.NewString(),
		Year:      year,
		Members:   members,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (s *PostgresStoreSuite) TestCreateAndListRoundTrip() {
	ctx := context.Background()
	pool := s.newPool(2024, []pooling.Member{
		{ShipID: "R001", CBBeforeG: 200, CBAfterG: 50},
		{ShipID: "R002", CBBeforeG: -150, CBAfterG: 0},
	})

	s.Require().NoError(s.store.Create(ctx, pool))

	pools, err := s.store.ListByYear(ctx, 2024)
	s.Require().NoError(err)
	s.Require().Len(pools, 1)

	got := pools[0]
	s.Equal(pool.ID, got.ID)
	s.Equal(pool.Year, got.Year)
	s.Require().Len(got.Members, 2)
	s.Equal("R001", got.Members[0].ShipID)
	s.Equal(50.0, got.Members[0].CBAfterG)
	s.Equal("R002", got.Members[1].ShipID)
	s.Equal(0.0, got.Members[1].CBAfterG)
}

func (s *PostgresStoreSuite) TestMemberOrderSurvivesStorage() {
	ctx := context.Background()
	members := []pooling.Member{
		{ShipID: "Z", CBBeforeG: -10, CBAfterG: 0},
		{ShipID: "A", CBBeforeG: 25, CBAfterG: 15},
		{ShipID: "M", CBBeforeG: 0, CBAfterG: 0},
	}

	s.Require().NoError(s.store.Create(ctx, s.newPool(2024, members)))

	pools, err := s.store.ListByYear(ctx, 2024)
	s.Require().NoError(err)
	s.Require().Len(pools, 1)

	for i, m := range pools[0].Members {
		s.Equal(members[i].ShipID, m.ShipID)
	}
}

func (s *PostgresStoreSuite) TestListScopesToYear() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, s.newPool(2024, []pooling.Member{{ShipID: "A"}})))
	s.Require().NoError(s.store.Create(ctx, s.newPool(2025, []pooling.Member{{ShipID: "B"}})))

	pools, err := s.store.ListByYear(ctx, 2024)
	s.Require().NoError(err)
	s.Require().Len(pools, 1)
	s.Equal("A", pools[0].Members[0].ShipID)
}

func (s *PostgresStoreSuite) TestMultiplePoolsOrderedByCreation() {
	ctx := context.Background()

	first := s.newPool(2024, []pooling.Member{{ShipID: "A"}})
	second := s.newPool(2024, []pooling.Member{{ShipID: "B"}})
	second.CreatedAt = first.CreatedAt.Add(time.Second)

	s.Require().NoError(s.store.Create(ctx, first))
	s.Require().NoError(s.store.Create(ctx, second))

	pools, err := s.store.ListByYear(ctx, 2024)
	s.Require().NoError(err)
	s.Require().Len(pools, 2)
	s.Equal(first.ID, pools[0].ID)
	s.Equal(second.ID, pools[1].ID)
}
