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

type RedisSnapshotSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *compliance.RedisSnapshotStore
}

func TestRedisSnapshotSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisSnapshotSuite))
}

func (s *RedisSnapshotSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
	s.store = compliance.NewRedisSnapshotStore(s.redis.Client)
}

func (s *RedisSnapshotSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisSnapshotSuite) TestAppendThenLatestRoundTrip() {
	ctx := context.Background()
	snap := compliance.Snapshot{
		ID:        uuid.NewString(),
		ShipID:    "R001",
		Year:      2024,
		BalanceG:  -340_956_000,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	s.Require().NoError(s.store.Append(ctx, snap))

	got, err := s.store.Latest(ctx, "R001", 2024)
	s.Require().NoError(err)
	s.Equal(snap, got)
}

func (s *RedisSnapshotSuite) TestLastWriteWins() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	s.Require().NoError(s.store.Append(ctx, compliance.Snapshot{ID: uuid.NewString(), ShipID: "R001", Year: 2024, BalanceG: -100, CreatedAt: now}))
	s.Require().NoError(s.store.Append(ctx, compliance.Snapshot{ID: uuid.NewString(), ShipID: "R001", Year: 2024, BalanceG: -42, CreatedAt: now.Add(time.Second)}))

	got, err := s.store.Latest(ctx, "R001", 2024)
	s.Require().NoError(err)
	s.Equal(-42.0, got.BalanceG)
}

func (s *RedisSnapshotSuite) TestKeysAreScoped() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	s.Require().NoError(s.store.Append(ctx, compliance.Snapshot{ID: uuid.NewString(), ShipID: "R001", Year: 2024, BalanceG: 10, CreatedAt: now}))

	_, err := s.store.Latest(ctx, "R001", 2025)
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.Latest(ctx, "R002", 2024)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisSnapshotSuite) TestLatestMissingKey() {
	_, err := s.store.Latest(context.Background(), "R999", 2024)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
