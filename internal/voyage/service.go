package voyage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	dErrors "fueleu/pkg/domain-errors"
	"fueleu/pkg/platform/sentinel"
)

// Service exposes voyage record operations to the transport layer.
type Service struct {
	store  Store
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("voyage store is required")
	}
	svc := &Service{store: store}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

func (s *Service) List(ctx context.Context) ([]Record, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list voyage records")
	}
	return records, nil
}

func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	record, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Record{}, dErrors.Newf(dErrors.CodeNotFound, "voyage record %s not found", id)
		}
		return Record{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to get voyage record")
	}
	return record, nil
}

// SetBaseline designates one record as the fleet baseline. The store
// guarantees at most one baseline exists afterwards.
func (s *Service) SetBaseline(ctx context.Context, id string) (Record, error) {
	record, err := s.store.SetBaseline(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Record{}, dErrors.Newf(dErrors.CodeNotFound, "voyage record %s not found", id)
		}
		return Record{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to set baseline")
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "baseline set", "record_id", id)
	}
	return record, nil
}

// Comparison ranks every non-baseline record against the current baseline.
func (s *Service) Comparison(ctx context.Context) (*ComparisonResult, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list voyage records")
	}

	var baseline *Record
	candidates := make([]Record, 0, len(records))
	for _, r := range records {
		if r.IsBaseline && baseline == nil {
			b := r
			baseline = &b
			continue
		}
		candidates = append(candidates, r)
	}
	if baseline == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "no baseline defined")
	}

	rows, err := Compare(*baseline, candidates)
	if err != nil {
		return nil, err
	}
	return &ComparisonResult{Baseline: *baseline, Rows: rows}, nil
}
