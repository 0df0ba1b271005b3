// Package browse binds interactive filter state to the finder: every
// mutation re-runs the search asynchronously and only the freshest
// response may land, so a slow earlier query can never overwrite the
// results of a later one.
package browse

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/bizradar/planfinder/internal/domain/plan"
	"github.com/bizradar/planfinder/internal/domain/search/criteria"
	"github.com/bizradar/planfinder/internal/domain/search/sortspec"
)

// Searcher runs a criteria search. Satisfied by the finder service.
type Searcher interface {
	Search(ctx context.Context, c criteria.Criteria) ([]plan.Plan, int, error)
}

// State is the browser lifecycle phase.
type State string

const (
	// StateIdle means no search has been requested yet.
	StateIdle State = "idle"
	// StateLoading means the latest search is in flight.
	StateLoading State = "loading"
	// StateLoaded means results reflect the current filter state.
	StateLoaded State = "loaded"
	// StateErrored means the latest search failed.
	StateErrored State = "errored"
)

// Browser holds one user's filter state and the page of results it maps to.
// All methods are safe for concurrent use.
type Browser struct {
	searcher Searcher
	logger   *zap.Logger

	mu      sync.Mutex
	params  criteria.Params
	state   State
	results []plan.Plan
	total   int
	err     error

	// generation increments on every mutation; a response whose
	// generation no longer matches is stale and gets dropped.
	generation uint64

	wg sync.WaitGroup
}

// New creates a browser with the default filter state: no filters, newest
// first by popularity.
func New(searcher Searcher, logger *zap.Logger) *Browser {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Browser{
		searcher: searcher,
		logger:   logger,
		state:    StateIdle,
	}
	b.params.Sort = sortspec.MustNew(sortspec.FieldTotalUps, sortspec.Desc)
	return b
}

// SetKeyword updates the free-text filter and refreshes.
func (b *Browser) SetKeyword(ctx context.Context, v string) {
	b.mutate(ctx, func(p *criteria.Params) { p.Keyword = v })
}

// SetIndustry updates the industry filter and refreshes.
func (b *Browser) SetIndustry(ctx context.Context, v string) {
	b.mutate(ctx, func(p *criteria.Params) { p.Industry = v })
}

// SetSentiment updates the sentiment filter and refreshes.
func (b *Browser) SetSentiment(ctx context.Context, v string) {
	b.mutate(ctx, func(p *criteria.Params) { p.Sentiment = v })
}

// SetTechnologyStack updates the technology stack filter and refreshes.
func (b *Browser) SetTechnologyStack(ctx context.Context, v string) {
	b.mutate(ctx, func(p *criteria.Params) { p.TechnologyStack = v })
}

// SetGeographicRelevance updates the geography filter and refreshes.
func (b *Browser) SetGeographicRelevance(ctx context.Context, v string) {
	b.mutate(ctx, func(p *criteria.Params) { p.GeographicRelevance = v })
}

// SetMarketSizeMin updates the market size lower bound and refreshes.
// Pass nil to clear.
func (b *Browser) SetMarketSizeMin(ctx context.Context, v *float64) {
	b.mutate(ctx, func(p *criteria.Params) { p.MarketSizeMin = v })
}

// SetRequiredCapitalMax updates the capital upper bound and refreshes.
// Pass nil to clear.
func (b *Browser) SetRequiredCapitalMax(ctx context.Context, v *float64) {
	b.mutate(ctx, func(p *criteria.Params) { p.RequiredCapitalMax = v })
}

// SetTimeToMarketMax updates the time-to-market upper bound and refreshes.
// Pass nil to clear.
func (b *Browser) SetTimeToMarketMax(ctx context.Context, v *float64) {
	b.mutate(ctx, func(p *criteria.Params) { p.TimeToMarketMax = v })
}

// ToggleSort applies the sort toggle rules: selecting the active field
// flips its direction, selecting a new field starts it ascending.
func (b *Browser) ToggleSort(ctx context.Context, field sortspec.Field) {
	b.mutate(ctx, func(p *criteria.Params) { p.Sort = p.Sort.Toggle(field) })
}

// SetPage moves to the given page without touching the filters.
func (b *Browser) SetPage(ctx context.Context, page int) {
	b.refresh(ctx, func(p *criteria.Params) { p.Page = page })
}

// Refresh re-runs the search with the current filter state.
func (b *Browser) Refresh(ctx context.Context) {
	b.refresh(ctx, nil)
}

// mutate applies a filter change, which always resets to the first page.
func (b *Browser) mutate(ctx context.Context, apply func(*criteria.Params)) {
	b.refresh(ctx, func(p *criteria.Params) {
		apply(p)
		p.Page = 1
	})
}

func (b *Browser) refresh(ctx context.Context, apply func(*criteria.Params)) {
	b.mu.Lock()
	if apply != nil {
		apply(&b.params)
	}
	b.generation++
	gen := b.generation

	c, err := criteria.New(b.params)
	if err != nil {
		b.state = StateErrored
		b.err = err
		b.mu.Unlock()
		return
	}
	b.state = StateLoading
	b.err = nil
	b.mu.Unlock()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		plans, total, err := b.searcher.Search(ctx, c)

		b.mu.Lock()
		defer b.mu.Unlock()
		if gen != b.generation {
			// A newer mutation superseded this query.
			b.logger.Debug("Discarding stale search response",
				zap.Uint64("generation", gen),
				zap.Uint64("current", b.generation),
			)
			return
		}
		if err != nil {
			b.state = StateErrored
			b.err = err
			return
		}
		b.state = StateLoaded
		b.results = plans
		b.total = total
	}()
}

// Wait blocks until every in-flight search has finished.
func (b *Browser) Wait() { b.wg.Wait() }

// Results returns the current page of plans.
func (b *Browser) Results() []plan.Plan {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.results
}

// Total returns the match count across all pages.
func (b *Browser) Total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total
}

// State returns the current lifecycle phase.
func (b *Browser) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Err returns the error of the latest failed search, if any.
func (b *Browser) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// Sort returns the active sort.
func (b *Browser) Sort() sortspec.Sort {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.params.Sort
}

// Page returns the current page number.
func (b *Browser) Page() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.params.Page == 0 {
		return 1
	}
	return b.params.Page
}
