// Package criteria defines the transient, request-scoped filter set for
// plan searches. A Criteria value is constructed fresh per request,
// validated once at the boundary, and never shared across requests.
package criteria

import (
	"fmt"

	"github.com/bizradar/planfinder/internal/domain"
	"github.com/bizradar/planfinder/internal/domain/search/sortspec"
)

// Pagination limits.
const (
	// DefaultPerPage is the fixed result page size.
	DefaultPerPage = 10
	// MaxPerPage caps the page size a caller may request.
	MaxPerPage = 100
)

// Params holds the raw optional filter fields. Zero values mean the
// criterion is absent: omission is a wildcard, never "match nothing".
type Params struct {
	// Keyword is free text matched against the plan's narrative fields
	// (title, executive summary, problem, solution).
	Keyword string

	Industry            string
	Sentiment           string
	TechnologyStack     string
	GeographicRelevance string

	// MarketSizeMin filters market_size >= min.
	MarketSizeMin *float64
	// RequiredCapitalMax filters required_capital <= max.
	RequiredCapitalMax *float64
	// TimeToMarketMax filters time_to_market <= max.
	TimeToMarketMax *float64

	Sort    sortspec.Sort
	Page    int
	PerPage int
}

// Criteria is a validated, immutable filter set.
type Criteria struct {
	p Params
}

// New validates and normalizes filter parameters. Rejections carry
// domain.ErrValidation so every caller gets the error taxonomy for free.
// Defaults: page=1, perPage=10. PerPage is clamped to MaxPerPage.
func New(p Params) (Criteria, error) {
	if p.MarketSizeMin != nil && *p.MarketSizeMin < 0 {
		return Criteria{}, fmt.Errorf("%w: market_size must not be negative", domain.ErrValidation)
	}
	if p.RequiredCapitalMax != nil && *p.RequiredCapitalMax < 0 {
		return Criteria{}, fmt.Errorf("%w: required_capital must not be negative", domain.ErrValidation)
	}
	if p.TimeToMarketMax != nil && *p.TimeToMarketMax < 0 {
		return Criteria{}, fmt.Errorf("%w: time_to_market must not be negative", domain.ErrValidation)
	}
	if p.Page < 0 {
		return Criteria{}, fmt.Errorf("%w: page must be positive", domain.ErrValidation)
	}
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PerPage < 0 {
		return Criteria{}, fmt.Errorf("%w: per_page must be positive", domain.ErrValidation)
	}
	if p.PerPage == 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return Criteria{p: p}, nil
}

// Keyword returns the free-text filter ("" = absent).
func (c Criteria) Keyword() string { return c.p.Keyword }

// Industry returns the industry filter ("" = absent).
func (c Criteria) Industry() string { return c.p.Industry }

// Sentiment returns the sentiment filter ("" = absent).
func (c Criteria) Sentiment() string { return c.p.Sentiment }

// TechnologyStack returns the technology stack filter ("" = absent).
func (c Criteria) TechnologyStack() string { return c.p.TechnologyStack }

// GeographicRelevance returns the geographic relevance filter ("" = absent).
func (c Criteria) GeographicRelevance() string { return c.p.GeographicRelevance }

// MarketSizeMin returns the market size lower bound (nil = absent).
func (c Criteria) MarketSizeMin() *float64 { return c.p.MarketSizeMin }

// RequiredCapitalMax returns the required capital upper bound (nil = absent).
func (c Criteria) RequiredCapitalMax() *float64 { return c.p.RequiredCapitalMax }

// TimeToMarketMax returns the time to market upper bound (nil = absent).
func (c Criteria) TimeToMarketMax() *float64 { return c.p.TimeToMarketMax }

// Sort returns the sort order (zero value = backend-native order).
func (c Criteria) Sort() sortspec.Sort { return c.p.Sort }

// Page returns the 1-based page number.
func (c Criteria) Page() int { return c.p.Page }

// PerPage returns the page size.
func (c Criteria) PerPage() int { return c.p.PerPage }

// Offset returns the record offset of the first result on the page.
func (c Criteria) Offset() int { return (c.p.Page - 1) * c.p.PerPage }

// IsEmpty reports whether no filter field is populated. An empty criteria
// set returns the unfiltered listing.
func (c Criteria) IsEmpty() bool {
	return c.p.Keyword == "" &&
		c.p.Industry == "" &&
		c.p.Sentiment == "" &&
		c.p.TechnologyStack == "" &&
		c.p.GeographicRelevance == "" &&
		c.p.MarketSizeMin == nil &&
		c.p.RequiredCapitalMax == nil &&
		c.p.TimeToMarketMax == nil
}
