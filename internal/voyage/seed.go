package voyage

import (
	"context"
	"errors"

	"fueleu/pkg/platform/sentinel"
)

// SeedRecords is a small reference fleet for dev runs and tests.
var SeedRecords = []Record{
	{ID: "R001", VesselType: "Container", FuelType: "HFO", Year: 2024, GHGIntensity: 91.0, FuelConsumptionT: 5000, DistanceKM: 12000, TotalEmissionsT: 4500, IsBaseline: true},
	{ID: "R002", VesselType: "BulkCarrier", FuelType: "LNG", Year: 2024, GHGIntensity: 88.0, FuelConsumptionT: 4800, DistanceKM: 11500, TotalEmissionsT: 4200},
	{ID: "R003", VesselType: "Tanker", FuelType: "MGO", Year: 2024, GHGIntensity: 93.5, FuelConsumptionT: 5200, DistanceKM: 12500, TotalEmissionsT: 4800},
	{ID: "R004", VesselType: "RoRo", FuelType: "Methanol", Year: 2025, GHGIntensity: 84.2, FuelConsumptionT: 3900, DistanceKM: 9800, TotalEmissionsT: 3300},
	{ID: "R005", VesselType: "Container", FuelType: "HFO", Year: 2025, GHGIntensity: 92.1, FuelConsumptionT: 5100, DistanceKM: 12200, TotalEmissionsT: 4700},
}

// Seed loads the reference fleet into the store, skipping records that
// already exist so repeated startups stay idempotent.
func Seed(ctx context.Context, store Store) error {
	for _, r := range SeedRecords {
		if err := store.Create(ctx, r); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				continue
			}
			return err
		}
	}
	return nil
}
