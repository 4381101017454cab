package compliance

import "time"

// Balance is the outcome of one compliance balance computation. A positive
// balance is surplus (intensity beats the target), negative is deficit.
type Balance struct {
	ShipID    string  `json:"ship_id"`
	Year      int     `json:"year"`
	TargetG   float64 `json:"target_intensity"` // gCO2e/MJ
	EnergyMJ  float64 `json:"energy_mj"`
	BalanceG  float64 `json:"cb_g"` // grams CO2e
}

// Snapshot is a historized compliance balance for a (ship, year) key. The
// most recently created snapshot for a key is the "current" one.
type Snapshot struct {
	ID        string    `json:"id"`
	ShipID    string    `json:"ship_id"`
	Year      int       `json:"year"`
	BalanceG  float64   `json:"cb_g"`
	CreatedAt time.Time `json:"created_at"`
}

// AdjustedBalance is a ship's compliance balance for a year after folding
// in its bank ledger. This is the figure pools are formed from.
type AdjustedBalance struct {
	ShipID   string  `json:"ship_id"`
	Year     int     `json:"year"`
	CBBefore float64 `json:"cb_before_g"`
}
