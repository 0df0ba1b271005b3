// Package finder is the retrieval use case: single-plan lookup, random
// discovery, and criteria search, instrumented and bounded by a per-query
// timeout.
package finder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bizradar/planfinder/internal/domain"
	"github.com/bizradar/planfinder/internal/domain/plan"
	"github.com/bizradar/planfinder/internal/domain/search/criteria"
	"github.com/bizradar/planfinder/internal/metrics"
)

// DefaultQueryTimeout bounds a single backend call when the config does not
// say otherwise.
const DefaultQueryTimeout = 5 * time.Second

// Service handles plan retrieval on top of a storage backend.
type Service struct {
	backend Backend
	// backendName labels metrics, never behavior.
	backendName string
	timeout     time.Duration
	logger      *zap.Logger
}

// New creates a finder service. backendName is the driver label used in
// logs and metrics ("redis", "sqlite").
func New(backend Backend, backendName string, timeout time.Duration, logger *zap.Logger) *Service {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		backend:     backend,
		backendName: backendName,
		timeout:     timeout,
		logger:      logger,
	}
}

// FindByID returns the plan with the given identifier.
func (s *Service) FindByID(ctx context.Context, id string) (plan.Plan, error) {
	if id == "" {
		return plan.Plan{}, fmt.Errorf("%w: plan id is required", domain.ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	p, err := s.backend.FindByID(ctx, id)
	err = deadlineToTimeout(err)
	s.observe("find_by_id", start, err)

	if err != nil {
		if !errors.Is(err, domain.ErrPlanNotFound) {
			s.logger.Error("Plan lookup failed",
				zap.String("plan_id", id),
				zap.String("backend", s.backendName),
				zap.Error(err),
			)
		}
		return plan.Plan{}, err
	}
	return p, nil
}

// Random returns one uniformly random plan. ok is false when no plans exist.
func (s *Service) Random(ctx context.Context) (plan.Plan, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	p, ok, err := s.backend.Random(ctx)
	err = deadlineToTimeout(err)
	s.observe("random", start, err)

	if err != nil {
		s.logger.Error("Random plan failed",
			zap.String("backend", s.backendName),
			zap.Error(err),
		)
		return plan.Plan{}, false, err
	}
	return p, ok, nil
}

// Search returns one page of plans matching the criteria plus the total
// match count.
func (s *Service) Search(ctx context.Context, c criteria.Criteria) ([]plan.Plan, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	plans, total, err := s.backend.Search(ctx, c)
	err = deadlineToTimeout(err)
	s.observe("search", start, err)

	if err != nil {
		s.logger.Error("Plan search failed",
			zap.String("backend", s.backendName),
			zap.Int("page", c.Page()),
			zap.Int("per_page", c.PerPage()),
			zap.Error(err),
		)
		return nil, 0, err
	}

	metrics.SearchResultsReturned.WithLabelValues(s.backendName).Observe(float64(len(plans)))
	s.logger.Debug("Plan search completed",
		zap.String("backend", s.backendName),
		zap.Int("returned", len(plans)),
		zap.Int("total", total),
		zap.Duration("duration", time.Since(start)),
	)
	return plans, total, nil
}

// observe records the operation counter and duration histogram.
func (s *Service) observe(operation string, start time.Time, err error) {
	metrics.FinderRequestsTotal.WithLabelValues(operation, outcomeFor(err)).Inc()
	metrics.FinderRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// deadlineToTimeout normalizes a raw context deadline into the backend
// timeout sentinel, for drivers that return it unclassified.
func deadlineToTimeout(err error) error {
	if err == nil || errors.Is(err, domain.ErrBackendTimeout) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrBackendTimeout, err)
	}
	return err
}

func outcomeFor(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, domain.ErrPlanNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidSortToken):
		return metrics.OutcomeInvalid
	case errors.Is(err, domain.ErrBackendTimeout):
		return metrics.OutcomeTimeout
	case errors.Is(err, domain.ErrBackendUnavailable):
		return metrics.OutcomeUnavailable
	default:
		return metrics.OutcomeError
	}
}
