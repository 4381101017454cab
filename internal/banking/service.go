package banking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"fueleu/internal/platform/metrics"
	dErrors "fueleu/pkg/domain-errors"
	"fueleu/pkg/platform/sentinel"
)

// BalanceSource provides the current compliance balance for a (ship, year)
// key. Injected so the staleness policy (recompute vs latest snapshot)
// stays pluggable and out of ledger logic.
type BalanceSource interface {
	CurrentBalance(ctx context.Context, shipID string, year int) (float64, error)
}

// Service implements the banking ledger rules. Both operations are a
// read-then-append against the store; the keyed mutex makes that a single
// critical section per (ship, year) so the running balance never goes
// negative under concurrent calls.
type Service struct {
	store    Store
	balances BalanceSource
	locks    *keyedMutex
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock sets the clock function for testability.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(store Store, balances BalanceSource, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("ledger store is required")
	}
	if balances == nil {
		return nil, fmt.Errorf("balance source is required")
	}
	svc := &Service{
		store:    store,
		balances: balances,
		locks:    newKeyedMutex(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Bank converts the ship's current positive compliance balance into a
// ledger entry that a later period can consume.
func (s *Service) Bank(ctx context.Context, shipID string, year int) (*BankResult, error) {
	unlock := s.locks.lock(ledgerKey(shipID, year))
	defer unlock()

	balance, err := s.balances.CurrentBalance(ctx, shipID, year)
	if err != nil {
		return nil, err
	}
	if balance <= 0 {
		return nil, dErrors.Newf(dErrors.CodeNoSurplus,
			"no surplus to bank for ship %s year %d", shipID, year)
	}

	entry := LedgerEntry{
		ID:        uuid.NewString(),
		ShipID:    shipID,
		Year:      year,
		AmountG:   balance,
		CreatedAt: s.now(),
	}
	if err := s.store.Append(ctx, entry); err != nil {
		return nil, s.appendError(err)
	}

	if s.metrics != nil {
		s.metrics.SurplusBanked.Inc()
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "surplus banked",
			"ship_id", shipID, "year", year, "amount_g", balance)
	}

	return &BankResult{ShipID: shipID, Year: year, Entry: entry, BankedG: balance}, nil
}

// Apply draws banked surplus to offset the caller-supplied current deficit.
// The appended entry is negative; the derived figures report the balance
// after the offset and what remains banked.
func (s *Service) Apply(ctx context.Context, shipID string, year int, cbCurrent float64) (*ApplyResult, error) {
	if cbCurrent >= 0 {
		return nil, dErrors.Newf(dErrors.CodeNoDeficit,
			"no deficit to apply surplus to for ship %s year %d", shipID, year)
	}

	unlock := s.locks.lock(ledgerKey(shipID, year))
	defer unlock()

	bankTotal, err := s.totalBanked(ctx, shipID, year)
	if err != nil {
		return nil, err
	}
	if bankTotal <= 0 {
		return nil, dErrors.Newf(dErrors.CodeNoBankedSurplus,
			"no banked surplus available for ship %s year %d", shipID, year)
	}

	applyAmount := math.Min(bankTotal, math.Abs(cbCurrent))
	entry := LedgerEntry{
		ID:        uuid.NewString(),
		ShipID:    shipID,
		Year:      year,
		AmountG:   -applyAmount,
		CreatedAt: s.now(),
	}
	if err := s.store.Append(ctx, entry); err != nil {
		return nil, s.appendError(err)
	}

	if s.metrics != nil {
		s.metrics.SurplusApplied.Inc()
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "banked surplus applied",
			"ship_id", shipID, "year", year, "applied_g", applyAmount)
	}

	return &ApplyResult{
		ShipID:        shipID,
		Year:          year,
		Entry:         entry,
		CBBeforeG:     cbCurrent,
		AppliedG:      applyAmount,
		CBAfterG:      cbCurrent + applyAmount,
		RemainingBank: bankTotal - applyAmount,
	}, nil
}

// Records returns the entries and fold for a key. Pure read; unknown keys
// yield an empty list and a zero total.
func (s *Service) Records(ctx context.Context, shipID string, year int) (*Records, error) {
	entries, err := s.store.ListEntries(ctx, shipID, year)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list ledger entries")
	}

	var total float64
	for _, e := range entries {
		total += e.AmountG
	}
	if entries == nil {
		entries = []LedgerEntry{}
	}
	return &Records{ShipID: shipID, Year: year, TotalBanked: total, Entries: entries}, nil
}

// TotalBanked folds the ledger for a key. Implements the ledger reader
// port the compliance service aggregates through.
func (s *Service) TotalBanked(ctx context.Context, shipID string, year int) (float64, error) {
	return s.totalBanked(ctx, shipID, year)
}

func (s *Service) totalBanked(ctx context.Context, shipID string, year int) (float64, error) {
	entries, err := s.store.ListEntries(ctx, shipID, year)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list ledger entries")
	}
	var total float64
	for _, e := range entries {
		total += e.AmountG
	}
	return total, nil
}

func (s *Service) appendError(err error) error {
	if errors.Is(err, sentinel.ErrConflict) {
		// Another writer consumed the surplus between our read and append.
		// The ledger is unchanged; the caller may retry.
		return dErrors.Wrap(err, dErrors.CodeConflict, "bank balance changed concurrently, retry")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append ledger entry")
}
