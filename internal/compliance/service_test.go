package compliance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fueleu/internal/platform/config"
	"fueleu/internal/voyage"
	dErrors "fueleu/pkg/domain-errors"
)

// stubLedger is a fixed bank ledger fold keyed by ship ID.
type stubLedger struct {
	totals map[string]float64
}

func (l *stubLedger) TotalBanked(_ context.Context, shipID string, _ int) (float64, error) {
	return l.totals[shipID], nil
}

func seededVoyages(t *testing.T) *voyage.InMemoryStore {
	t.Helper()
	store := voyage.NewInMemoryStore()
	require.NoError(t, voyage.Seed(context.Background(), store))
	return store
}

func TestComputeForShip(t *testing.T) {
	ctx := context.Background()

	t.Run("computes against the configured target", func(t *testing.T) {
		svc, err := New(seededVoyages(t), config.DefaultTargetIntensity)
		require.NoError(t, err)

		balance, err := svc.ComputeForShip(ctx, "R001", 2024, 0)
		require.NoError(t, err)

		assert.Equal(t, "R001", balance.ShipID)
		assert.Equal(t, 2024, balance.Year)
		assert.Equal(t, config.DefaultTargetIntensity, balance.TargetG)
		assert.InDelta(t, 205_000_000, balance.EnergyMJ, 1e-3)
		assert.InDelta(t, -340_956_000, balance.BalanceG, 1.0)
	})

	t.Run("positive override replaces the target for one call", func(t *testing.T) {
		svc, err := New(seededVoyages(t), config.DefaultTargetIntensity)
		require.NoError(t, err)

		strict, err := svc.ComputeForShip(ctx, "R002", 2024, 85)
		require.NoError(t, err)
		assert.Equal(t, 85.0, strict.TargetG)
		assert.Negative(t, strict.BalanceG)

		// The next call without an override is back on the default.
		normal, err := svc.ComputeForShip(ctx, "R002", 2024, 0)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultTargetIntensity, normal.TargetG)
		assert.Positive(t, normal.BalanceG)
	})

	t.Run("unknown ship maps to not found", func(t *testing.T) {
		svc, err := New(seededVoyages(t), config.DefaultTargetIntensity)
		require.NoError(t, err)

		_, err = svc.ComputeForShip(ctx, "GHOST", 2024, 0)

		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
	})

	t.Run("year mismatch maps to not found", func(t *testing.T) {
		svc, err := New(seededVoyages(t), config.DefaultTargetIntensity)
		require.NoError(t, err)

		// R001 only has a 2024 record.
		_, err = svc.ComputeForShip(ctx, "R001", 2030, 0)

		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
	})

	t.Run("writes a snapshot when a store is wired", func(t *testing.T) {
		snapshots := NewInMemorySnapshotStore()
		now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
		svc, err := New(seededVoyages(t), config.DefaultTargetIntensity,
			WithSnapshots(snapshots, config.PolicyRecompute),
			WithClock(func() time.Time { return now }))
		require.NoError(t, err)

		balance, err := svc.ComputeForShip(ctx, "R001", 2024, 0)
		require.NoError(t, err)

		snap, err := snapshots.Latest(ctx, "R001", 2024)
		require.NoError(t, err)
		assert.Equal(t, balance.BalanceG, snap.BalanceG)
		assert.Equal(t, now, snap.CreatedAt)
		assert.NotEmpty(t, snap.ID)
	})
}

func TestCurrentBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("recompute policy reads the voyage record", func(t *testing.T) {
		svc, err := New(seededVoyages(t), config.DefaultTargetIntensity)
		require.NoError(t, err)

		balance, err := svc.CurrentBalance(ctx, "R001", 2024)
		require.NoError(t, err)

		assert.InDelta(t, -340_956_000, balance, 1.0)
	})

	t.Run("snapshot policy reads the latest snapshot", func(t *testing.T) {
		snapshots := NewInMemorySnapshotStore()
		require.NoError(t, snapshots.Append(ctx, Snapshot{ID: "s1", ShipID: "R001", Year: 2024, BalanceG: -100}))
		require.NoError(t, snapshots.Append(ctx, Snapshot{ID: "s2", ShipID: "R001", Year: 2024, BalanceG: -42}))

		svc, err := New(seededVoyages(t), config.DefaultTargetIntensity,
			WithSnapshots(snapshots, config.PolicySnapshot))
		require.NoError(t, err)

		balance, err := svc.CurrentBalance(ctx, "R001", 2024)
		require.NoError(t, err)

		assert.Equal(t, -42.0, balance)
	})

	t.Run("snapshot policy without a snapshot is not found", func(t *testing.T) {
		svc, err := New(seededVoyages(t), config.DefaultTargetIntensity,
			WithSnapshots(NewInMemorySnapshotStore(), config.PolicySnapshot))
		require.NoError(t, err)

		_, err = svc.CurrentBalance(ctx, "R001", 2024)

		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
	})

	t.Run("is side-effect free", func(t *testing.T) {
		snapshots := NewInMemorySnapshotStore()
		svc, err := New(seededVoyages(t), config.DefaultTargetIntensity,
			WithSnapshots(snapshots, config.PolicyRecompute))
		require.NoError(t, err)

		_, err = svc.CurrentBalance(ctx, "R001", 2024)
		require.NoError(t, err)

		_, err = snapshots.Latest(ctx, "R001", 2024)
		assert.Error(t, err, "reads must not historize snapshots")
	})
}

func TestAdjustedForYear(t *testing.T) {
	ctx := context.Background()

	t.Run("adds the ledger fold to the computed balance", func(t *testing.T) {
		svc, err := New(seededVoyages(t), config.DefaultTargetIntensity)
		require.NoError(t, err)
		svc.AttachLedger(&stubLedger{totals: map[string]float64{"R002": -50_000_000}})

		adjusted, err := svc.AdjustedForYear(ctx, 2024)
		require.NoError(t, err)
		require.Len(t, adjusted, 3)

		byShip := make(map[string]AdjustedBalance, len(adjusted))
		for _, a := range adjusted {
			byShip[a.ShipID] = a
		}

		// R002: (89.3368 - 88.0) * 4800 * 41000 with 50M banked away.
		base := ComputeBalance(voyage.SeedRecords[1], config.DefaultTargetIntensity).BalanceG
		assert.InDelta(t, base-50_000_000, byShip["R002"].CBBefore, 1.0)

		// Ships without ledger entries carry the raw balance.
		r001 := ComputeBalance(voyage.SeedRecords[0], config.DefaultTargetIntensity).BalanceG
		assert.InDelta(t, r001, byShip["R001"].CBBefore, 1.0)
	})

	t.Run("works without a ledger attached", func(t *testing.T) {
		svc, err := New(seededVoyages(t), config.DefaultTargetIntensity)
		require.NoError(t, err)

		adjusted, err := svc.AdjustedForYear(ctx, 2025)
		require.NoError(t, err)

		assert.Len(t, adjusted, 2)
	})

	t.Run("results are sorted by ship id", func(t *testing.T) {
		svc, err := New(seededVoyages(t), config.DefaultTargetIntensity)
		require.NoError(t, err)

		adjusted, err := svc.AdjustedForYear(ctx, 2024)
		require.NoError(t, err)

		for i := 1; i < len(adjusted); i++ {
			assert.Less(t, adjusted[i-1].ShipID, adjusted[i].ShipID)
		}
	})

	t.Run("a year with no records yields an empty slice", func(t *testing.T) {
		svc, err := New(seededVoyages(t), config.DefaultTargetIntensity)
		require.NoError(t, err)

		adjusted, err := svc.AdjustedForYear(ctx, 1999)
		require.NoError(t, err)

		assert.NotNil(t, adjusted)
		assert.Empty(t, adjusted)
	})
}
