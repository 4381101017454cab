package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fueleu/internal/voyage"
)

func TestComputeBalance(t *testing.T) {
	t.Run("energy is fuel mass times energy density", func(t *testing.T) {
		record := voyage.Record{ID: "R100", Year: 2024, GHGIntensity: 90, FuelConsumptionT: 100}

		got := ComputeBalance(record, 89.3368)

		assert.InDelta(t, 4_100_000, got.EnergyMJ, 1e-6)
	})

	t.Run("balance is delta times energy", func(t *testing.T) {
		record := voyage.Record{ID: "R100", Year: 2024, GHGIntensity: 90, FuelConsumptionT: 100}

		got := ComputeBalance(record, 89.3368)

		// delta = 89.3368 - 90 = -0.6632; cb = -0.6632 * 4,100,000
		assert.InDelta(t, -2_719_120, got.BalanceG, 1.0)
	})

	t.Run("reference fleet example", func(t *testing.T) {
		record := voyage.Record{
			ID: "R001", VesselType: "Container", FuelType: "HFO", Year: 2024,
			GHGIntensity: 91.0, FuelConsumptionT: 5000, DistanceKM: 12000, TotalEmissionsT: 4500,
		}

		got := ComputeBalance(record, 89.3368)

		assert.InDelta(t, 205_000_000, got.EnergyMJ, 1e-3)
		assert.InDelta(t, -340_956_000, got.BalanceG, 1.0)
	})

	t.Run("surplus when intensity beats the target", func(t *testing.T) {
		record := voyage.Record{ID: "R200", Year: 2024, GHGIntensity: 88, FuelConsumptionT: 100}

		got := ComputeBalance(record, 89.3368)

		assert.Positive(t, got.BalanceG)
	})

	t.Run("zero fuel consumption yields zero balance", func(t *testing.T) {
		record := voyage.Record{ID: "R300", Year: 2024, GHGIntensity: 95}

		got := ComputeBalance(record, 89.3368)

		assert.Zero(t, got.EnergyMJ)
		assert.Zero(t, got.BalanceG)
	})

	t.Run("referentially transparent", func(t *testing.T) {
		record := voyage.Record{ID: "R400", Year: 2025, GHGIntensity: 92.4, FuelConsumptionT: 1234.5}

		first := ComputeBalance(record, 91.0)
		second := ComputeBalance(record, 91.0)

		assert.Equal(t, first, second)
	})

	t.Run("target is a parameter, never baked in", func(t *testing.T) {
		record := voyage.Record{ID: "R500", Year: 2024, GHGIntensity: 90, FuelConsumptionT: 10}

		strict := ComputeBalance(record, 85)
		lenient := ComputeBalance(record, 95)

		assert.Negative(t, strict.BalanceG)
		assert.Positive(t, lenient.BalanceG)
		assert.InDelta(t, strict.EnergyMJ, lenient.EnergyMJ, 1e-9)
	})
}
