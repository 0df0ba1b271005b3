// Package indexed implements the plan backend against the FT-indexed
// document store. Filter criteria become analyzed match and numeric range
// clauses; results come back in backend relevance order unless a sort is
// given.
package indexed

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/bizradar/planfinder/internal/db"
	"github.com/bizradar/planfinder/internal/domain"
	"github.com/bizradar/planfinder/internal/domain/plan"
	"github.com/bizradar/planfinder/internal/domain/search/criteria"
	"github.com/bizradar/planfinder/internal/domain/search/filter"
)

// Keyspace layout. Ingestion writes plan hashes under KeyPrefix; this
// service owns the FT index over them.
const (
	// IndexName is the FT index over plan hashes.
	IndexName = "planfinder:plans:idx"
	// KeyPrefix prefixes every plan hash key.
	KeyPrefix = "planfinder:plan:"
)

// store is the consumer interface for plan retrieval (ISP).
type store interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	SearchPage(ctx context.Context, q *db.PageQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// Repo implements finder.Backend on an FT-indexed store.
type Repo struct {
	store store
}

// New creates an indexed plan repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// FindByID retrieves a single plan by identifier.
//
// Unlike the point lookup this replaces, backend failures are NOT collapsed
// into "not found": only an empty hash maps to ErrPlanNotFound, while
// transport failures surface as ErrBackendUnavailable or ErrBackendTimeout.
func (r *Repo) FindByID(ctx context.Context, id string) (plan.Plan, error) {
	fields, err := r.store.HGetAll(ctx, KeyPrefix+id)
	if err != nil {
		return plan.Plan{}, fmt.Errorf("find plan %s: %w", id, classifyStoreErr(err))
	}
	if len(fields) == 0 {
		return plan.Plan{}, fmt.Errorf("find plan %s: %w", id, domain.ErrPlanNotFound)
	}
	return planFromHash(id, fields), nil
}

// Random returns one uniformly random plan, or ok=false on an empty corpus.
//
// The store has no random-scoring query primitive, so uniform selection is
// delegated as a count plus a single-record page at a random offset: two
// O(1) backend calls, never an application-side scan. If the corpus shrank
// between the two calls the fetch is retried once with a fresh count.
func (r *Repo) Random(ctx context.Context) (plan.Plan, bool, error) {
	for attempt := 0; attempt < 2; attempt++ {
		total, err := r.store.SearchCount(ctx, IndexName, "*")
		if err != nil {
			return plan.Plan{}, false, fmt.Errorf("count plans: %w", classifyStoreErr(err))
		}
		if total == 0 {
			return plan.Plan{}, false, nil
		}

		sr, err := r.store.SearchPage(ctx, &db.PageQuery{
			IndexName: IndexName,
			Offset:    rand.IntN(total),
			Limit:     1,
		})
		if err != nil {
			return plan.Plan{}, false, fmt.Errorf("random plan: %w", classifyStoreErr(err))
		}
		if len(sr.Entries) > 0 {
			entry := sr.Entries[0]
			return planFromEntry(entry), true, nil
		}
	}
	return plan.Plan{}, false, nil
}

// Search returns the plans matching the criteria, as an ordered page plus
// the total match count. Absent criteria contribute no clause.
func (r *Repo) Search(ctx context.Context, c criteria.Criteria) ([]plan.Plan, int, error) {
	expr, err := buildExpression(c)
	if err != nil {
		return nil, 0, fmt.Errorf("build filter: %w", err)
	}

	q := &db.PageQuery{
		IndexName: IndexName,
		Filters:   expr,
		Offset:    c.Offset(),
		Limit:     c.PerPage(),
	}
	if sort := c.Sort(); !sort.IsZero() {
		q.SortField = string(sort.Field())
		q.SortAsc = sort.Ascending()
	}

	sr, err := r.store.SearchPage(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("search plans: %w", classifyStoreErr(err))
	}

	plans := make([]plan.Plan, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		plans = append(plans, planFromEntry(entry))
	}
	return plans, sr.Total, nil
}

// buildExpression translates criteria into the conjunctive filter set:
// a free-text clause for the keyword, match clauses for the text keys,
// gte on market_size, lte on required_capital and time_to_market.
func buildExpression(c criteria.Criteria) (filter.Expression, error) {
	var conds []filter.Condition

	if kw := c.Keyword(); kw != "" {
		cond, err := filter.NewText(kw)
		if err != nil {
			return filter.Expression{}, err
		}
		conds = append(conds, cond)
	}

	matches := []struct {
		key   string
		value string
	}{
		{"industry", c.Industry()},
		{"sentiment", c.Sentiment()},
		{"technology_stack", c.TechnologyStack()},
		{"geographic_relevance", c.GeographicRelevance()},
	}
	for _, m := range matches {
		if m.value == "" {
			continue
		}
		cond, err := filter.NewMatch(m.key, m.value)
		if err != nil {
			return filter.Expression{}, err
		}
		conds = append(conds, cond)
	}

	if v := c.MarketSizeMin(); v != nil {
		cond, err := filter.NewRange("market_size", filter.AtLeast(*v))
		if err != nil {
			return filter.Expression{}, err
		}
		conds = append(conds, cond)
	}
	if v := c.RequiredCapitalMax(); v != nil {
		cond, err := filter.NewRange("required_capital", filter.AtMost(*v))
		if err != nil {
			return filter.Expression{}, err
		}
		conds = append(conds, cond)
	}
	if v := c.TimeToMarketMax(); v != nil {
		cond, err := filter.NewRange("time_to_market", filter.AtMost(*v))
		if err != nil {
			return filter.Expression{}, err
		}
		conds = append(conds, cond)
	}

	return filter.NewExpression(conds)
}

// classifyStoreErr maps db sentinels to the domain error taxonomy.
func classifyStoreErr(err error) error {
	switch {
	case errors.Is(err, db.ErrTimeout):
		return fmt.Errorf("%w: %w", domain.ErrBackendTimeout, err)
	case errors.Is(err, db.ErrUnavailable):
		return fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	default:
		return err
	}
}
