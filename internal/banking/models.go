package banking

import "time"

// LedgerEntry is one append-only bank ledger record. Positive amounts are
// banked surplus; negative amounts are surplus consumed by an apply.
// Entries are never mutated or deleted; CreatedAt is the ordering key.
type LedgerEntry struct {
	ID        string    `json:"id"`
	ShipID    string    `json:"ship_id"`
	Year      int       `json:"year"`
	AmountG   float64   `json:"amount_g"`
	CreatedAt time.Time `json:"created_at"`
}

// Records is the read view of a (ship, year) ledger: the fold plus the
// entries that produce it.
type Records struct {
	ShipID      string        `json:"ship_id"`
	Year        int           `json:"year"`
	TotalBanked float64       `json:"total_banked_g"`
	Entries     []LedgerEntry `json:"entries"`
}

// ApplyResult reports an apply operation with its derived figures.
type ApplyResult struct {
	ShipID        string      `json:"ship_id"`
	Year          int         `json:"year"`
	Entry         LedgerEntry `json:"entry"`
	CBBeforeG     float64     `json:"cb_before_g"`
	AppliedG      float64     `json:"applied_g"`
	CBAfterG      float64     `json:"cb_after_g"`
	RemainingBank float64     `json:"remaining_bank_g"`
}

// BankResult reports a successful bank operation.
type BankResult struct {
	ShipID  string      `json:"ship_id"`
	Year    int         `json:"year"`
	Entry   LedgerEntry `json:"entry"`
	BankedG float64     `json:"amount_banked_g"`
}
