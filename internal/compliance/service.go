package compliance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"fueleu/internal/platform/config"
	"fueleu/internal/platform/metrics"
	"fueleu/internal/voyage"
	dErrors "fueleu/pkg/domain-errors"
	"fueleu/pkg/platform/sentinel"
)

// LedgerReader provides the bank ledger fold for a (ship, year) key. The
// banking service implements it; declared here so this package does not
// depend on the banking vertical.
type LedgerReader interface {
	TotalBanked(ctx context.Context, shipID string, year int) (float64, error)
}

// Service computes compliance balances and maintains snapshots. It also
// acts as the balance source the banking ledger reads through, so the
// staleness policy (recompute vs cached snapshot) is a configuration
// concern, not ledger logic.
type Service struct {
	voyages   voyage.Store
	snapshots SnapshotStore // optional
	ledger    LedgerReader  // optional, needed for adjusted balances
	policy    config.SnapshotPolicy
	target    float64
	logger    *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithSnapshots enables snapshot write-through and the snapshot read policy.
func WithSnapshots(store SnapshotStore, policy config.SnapshotPolicy) Option {
	return func(s *Service) {
		s.snapshots = store
		s.policy = policy
	}
}

// AttachLedger wires the bank ledger fold used by AdjustedForYear. Called
// once at wiring time: the banking service reads balances through this
// service, so the ledger cannot be a constructor argument.
func (s *Service) AttachLedger(ledger LedgerReader) {
	s.ledger = ledger
}

// WithClock sets the clock function for testability.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(voyages voyage.Store, targetIntensity float64, opts ...Option) (*Service, error) {
	if voyages == nil {
		return nil, fmt.Errorf("voyage store is required")
	}
	if targetIntensity <= 0 {
		return nil, fmt.Errorf("target intensity must be positive")
	}
	svc := &Service{
		voyages: voyages,
		policy:  config.PolicyRecompute,
		target:  targetIntensity,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// TargetIntensity returns the configured default regulatory target.
func (s *Service) TargetIntensity() float64 { return s.target }

// ComputeForShip computes the compliance balance for a (ship, year) key.
// targetOverride, when positive, replaces the configured target for this
// invocation only. When a snapshot store is wired the result is historized
// so later snapshot-policy reads see it.
func (s *Service) ComputeForShip(ctx context.Context, shipID string, year int, targetOverride float64) (Balance, error) {
	record, err := s.fetchRecord(ctx, shipID, year)
	if err != nil {
		return Balance{}, err
	}

	target := s.target
	if targetOverride > 0 {
		target = targetOverride
	}
	balance := ComputeBalance(record, target)

	if s.metrics != nil {
		s.metrics.BalancesComputed.Inc()
	}

	if s.snapshots != nil {
		snap := Snapshot{
			ID:        uuid.NewString(),
			ShipID:    balance.ShipID,
			Year:      balance.Year,
			BalanceG:  balance.BalanceG,
			CreatedAt: s.now(),
		}
		if err := s.snapshots.Append(ctx, snap); err != nil && s.logger != nil {
			// Snapshot history is a cache; losing one write is tolerable.
			s.logger.WarnContext(ctx, "failed to append compliance snapshot",
				"ship_id", shipID, "year", year, "error", err.Error())
		}
	}

	return balance, nil
}

// CurrentBalance is the injected lookup the banking ledger banks and
// applies against. Under the snapshot policy it reads the latest snapshot;
// otherwise it recomputes from the voyage record. Side-effect free.
func (s *Service) CurrentBalance(ctx context.Context, shipID string, year int) (float64, error) {
	if s.policy == config.PolicySnapshot && s.snapshots != nil {
		snap, err := s.snapshots.Latest(ctx, shipID, year)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return 0, dErrors.Newf(dErrors.CodeNotFound,
					"no compliance snapshot for ship %s year %d", shipID, year)
			}
			return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read compliance snapshot")
		}
		return snap.BalanceG, nil
	}

	record, err := s.fetchRecord(ctx, shipID, year)
	if err != nil {
		return 0, err
	}
	return ComputeBalance(record, s.target).BalanceG, nil
}

// AdjustedForYear returns, for every record of the year, the compliance
// balance adjusted by the bank ledger fold. These are the figures a pool
// is formed from. Per-ship work fans out concurrently; the calculator is
// pure and the ledger fold is a read, so no coordination is needed beyond
// the errgroup.
func (s *Service) AdjustedForYear(ctx context.Context, year int) ([]AdjustedBalance, error) {
	records, err := s.voyages.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list voyage records")
	}

	var ofYear []voyage.Record
	for _, r := range records {
		if r.Year == year {
			ofYear = append(ofYear, r)
		}
	}
	if len(ofYear) == 0 {
		return []AdjustedBalance{}, nil
	}

	results := make([]AdjustedBalance, len(ofYear))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, record := range ofYear {
		g.Go(func() error {
			base := ComputeBalance(record, s.target).BalanceG

			var bankTotal float64
			if s.ledger != nil {
				total, err := s.ledger.TotalBanked(gctx, record.ID, year)
				if err != nil {
					return err
				}
				bankTotal = total
			}

			mu.Lock()
			results[i] = AdjustedBalance{
				ShipID:   record.ID,
				Year:     year,
				CBBefore: base + bankTotal,
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to compute adjusted balances")
	}

	sort.Slice(results, func(i, j int) bool { return results[i].ShipID < results[j].ShipID })
	return results, nil
}

func (s *Service) fetchRecord(ctx context.Context, shipID string, year int) (voyage.Record, error) {
	record, err := s.voyages.Get(ctx, shipID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return voyage.Record{}, dErrors.Newf(dErrors.CodeNotFound, "voyage record %s not found", shipID)
		}
		return voyage.Record{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to get voyage record")
	}
	// Records are keyed per (ship, year); a year mismatch means the caller
	// asked for a period this ship has no record for.
	if year != 0 && record.Year != year {
		return voyage.Record{}, dErrors.Newf(dErrors.CodeNotFound,
			"voyage record %s has no data for year %d", shipID, year)
	}
	return record, nil
}
