package planfinder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	dbRedis "github.com/bizradar/planfinder/internal/db/redis"
	domplan "github.com/bizradar/planfinder/internal/domain/plan"
	"github.com/bizradar/planfinder/internal/domain/search/criteria"
	"github.com/bizradar/planfinder/internal/repository/indexed"
	"github.com/bizradar/planfinder/internal/repository/relational"
	finderuc "github.com/bizradar/planfinder/internal/usecase/finder"
	healthuc "github.com/bizradar/planfinder/internal/usecase/health"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces so tests can substitute the wired services.
type finderUseCase interface {
	FindByID(ctx context.Context, id string) (domplan.Plan, error)
	Random(ctx context.Context) (domplan.Plan, bool, error)
	Search(ctx context.Context, c criteria.Criteria) ([]domplan.Plan, int, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

type backendPinger interface {
	Ping(ctx context.Context) error
}

// Client is the planfinder SDK entry point.
type Client struct {
	finder  finderUseCase
	health  healthUseCase
	pinger  backendPinger
	closeFn func()
	obs     *observer
}

// New creates a planfinder Client and connects to the backend.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		readinessTimeout: defaultReadinessTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("planfinder: backend required (use WithRedis or WithSQLite)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	backend, pinger, closeFn, err := createBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	finderSvc := finderuc.New(backend, cfg.driver, cfg.queryTimeout, zap.NewNop())
	healthSvc := healthuc.New(pinger, cfg.driver)

	return &Client{
		finder:  finderSvc,
		health:  healthSvc,
		pinger:  pinger,
		closeFn: closeFn,
		obs:     obs,
	}, nil
}

func createBackend(ctx context.Context, cfg *clientConfig) (finderuc.Backend, backendPinger, func(), error) {
	switch cfg.driver {
	case "redis":
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("planfinder: create redis store: %w", err)
		}
		if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
			store.Close()
			return nil, nil, nil, fmt.Errorf("planfinder: backend not ready: %w", err)
		}
		if err := indexed.EnsureIndex(ctx, store); err != nil {
			store.Close()
			return nil, nil, nil, fmt.Errorf("planfinder: ensure index: %w", err)
		}
		return indexed.New(store), store, store.Close, nil
	case "sqlite":
		sqlDB, err := relational.Open(cfg.sqlitePath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("planfinder: open sqlite database: %w", err)
		}
		repo := relational.New(sqlDB)
		return repo, repo, func() { _ = sqlDB.Close() }, nil
	default:
		return nil, nil, nil, fmt.Errorf("planfinder: unknown driver %q", cfg.driver)
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.closeFn != nil {
		c.closeFn()
	}
}

// Ping checks backend connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.pinger.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Plan fetches a single plan by ID. Returns ErrPlanNotFound when no plan
// has that ID; backend failures surface as ErrBackendUnavailable or
// ErrBackendTimeout, never as a not-found.
func (c *Client) Plan(ctx context.Context, id string) (_ Plan, err error) {
	start := time.Now()
	defer func() { c.obs.observe("plan", start, err) }()

	p, err := c.finder.FindByID(ctx, id)
	if err != nil {
		return Plan{}, err
	}
	return planFromDomain(&p), nil
}

// RandomPlan fetches a uniformly random plan. ok is false when the
// corpus is empty.
func (c *Client) RandomPlan(ctx context.Context) (_ Plan, ok bool, err error) {
	start := time.Now()
	defer func() { c.obs.observe("random_plan", start, err) }()

	p, ok, err := c.finder.Random(ctx)
	if err != nil || !ok {
		return Plan{}, ok, err
	}
	return planFromDomain(&p), true, nil
}

// Search runs a filtered, sorted, paginated query and returns one page
// of results along with the total match count.
func (c *Client) Search(ctx context.Context, q Query) (_ SearchPage, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	crit, err := q.criteria()
	if err != nil {
		return SearchPage{}, err
	}

	plans, total, err := c.finder.Search(ctx, crit)
	if err != nil {
		return SearchPage{}, err
	}

	items := make([]Plan, len(plans))
	for i := range plans {
		items[i] = planFromDomain(&plans[i])
	}
	return SearchPage{
		Items:   items,
		Total:   total,
		Page:    crit.Page(),
		PerPage: crit.PerPage(),
	}, nil
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok" or "error"
	Checks map[string]string // component → "ok"/"error"
}

// Health checks the health of the configured backend.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.health.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}
