package voyage

// Record is one measured operating period for a ship. The record ID doubles
// as the ship identity key in this domain, so banking and pooling address
// ships by record ID. One record exists per (ID, Year); the stores enforce
// the uniqueness.
type Record struct {
	ID               string  `json:"id"`
	VesselType       string  `json:"vessel_type"`
	FuelType         string  `json:"fuel_type"`
	Year             int     `json:"year"`
	GHGIntensity     float64 `json:"ghg_intensity"`       // gCO2e/MJ
	FuelConsumptionT float64 `json:"fuel_consumption_t"`  // tonnes
	DistanceKM       float64 `json:"distance_km"`         // informational
	TotalEmissionsT  float64 `json:"total_emissions_t"`   // informational
	IsBaseline       bool    `json:"is_baseline"`
}

// ComparisonRow ranks one candidate record against the fleet baseline.
type ComparisonRow struct {
	ID                  string  `json:"id"`
	BaselineIntensity   float64 `json:"baseline_intensity"`
	ComparisonIntensity float64 `json:"comparison_intensity"`
	PercentDiff         float64 `json:"percent_diff"`
	Compliant           bool    `json:"compliant"`
}

// ComparisonResult is the full comparison payload: the baseline record plus
// one row per candidate, in candidate order.
type ComparisonResult struct {
	Baseline Record          `json:"baseline"`
	Rows     []ComparisonRow `json:"rows"`
}
