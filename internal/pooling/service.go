package pooling

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"fueleu/internal/platform/metrics"
	dErrors "fueleu/pkg/domain-errors"
)

// Service runs the redistribution engine and persists its output.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
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

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("pool store is required")
	}
	svc := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Create runs the engine over the supplied member balances and persists
// the resulting pool. Infeasible pools fail before anything is written.
func (s *Service) Create(ctx context.Context, year int, members []MemberInput) (*Pool, error) {
	if year == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "year is required")
	}

	redistributed, err := Redistribute(members)
	if err != nil {
		if s.metrics != nil && dErrors.Is(err, dErrors.CodePoolInfeasible) {
			s.metrics.PoolsRejected.Inc()
		}
		return nil, err
	}

	pool := Pool{
		ID:        uuid.NewString(),
		Year:      year,
		Members:   redistributed,
		CreatedAt: s.now(),
	}
	if err := s.store.Create(ctx, pool); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create pool")
	}

	if s.metrics != nil {
		s.metrics.PoolsCreated.Inc()
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "pool created",
			"pool_id", pool.ID, "year", year, "members", len(members))
	}
	return &pool, nil
}

// ListByYear returns the pools created for a year.
func (s *Service) ListByYear(ctx context.Context, year int) ([]Pool, error) {
	pools, err := s.store.ListByYear(ctx, year)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list pools")
	}
	if pools == nil {
		pools = []Pool{}
	}
	return pools, nil
}
