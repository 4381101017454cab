package compliance

import "fueleu/internal/voyage"

// EnergyDensityMJPerTonne converts fuel mass to energy. Fixed physical
// constant of the scheme: 41000 MJ per tonne of fuel.
const EnergyDensityMJPerTonne = 41000.0

// ComputeBalance converts one voyage record and a target intensity into an
// energy figure and a signed compliance balance in grams CO2e. Pure; zero
// fuel consumption yields a zero balance, which is valid.
func ComputeBalance(record voyage.Record, targetIntensity float64) Balance {
	energyMJ := record.FuelConsumptionT * EnergyDensityMJPerTonne
	delta := targetIntensity - record.GHGIntensity
	return Balance{
		ShipID:   record.ID,
		Year:     record.Year,
		TargetG:  targetIntensity,
		EnergyMJ: energyMJ,
		BalanceG: delta * energyMJ,
	}
}
