package planfinder

import (
	"time"

	domplan "github.com/bizradar/planfinder/internal/domain/plan"
	"github.com/bizradar/planfinder/internal/domain/search/criteria"
	"github.com/bizradar/planfinder/internal/domain/search/sortspec"
)

// SectionEntry is one heading within a plan section.
type SectionEntry struct {
	Text  string
	Items []string
}

// Section maps heading names to their content.
type Section map[string]SectionEntry

// Plan is a business plan record.
type Plan struct {
	ID                   string
	Title                string
	ExecutiveSummary     string
	Problem              string
	Solution             string
	MarketAnalysis       Section
	Competition          Section
	MarketingStrategy    Section
	ManagementTeam       Section
	FinancialProjections Section
	Industry             string
	Sentiment            string
	TechnologyStack      string
	GeographicRelevance  string
	MarketSize           float64
	RequiredCapital      float64
	TimeToMarket         float64
	TotalUps             int
	TotalDowns           int
	CreatedAt            time.Time
}

// Query is a conjunctive filter set for Search. Zero-value fields are
// absent; an empty Query returns the unfiltered listing.
//
// On the redis driver string fields match exactly, MarketSizeMin is a
// lower bound, and the Max fields are upper bounds. On the sqlite driver
// every field, numeric bounds included, becomes a substring match.
type Query struct {
	// Keyword is free text matched against the plan's narrative fields
	// (title, executive summary, problem, solution). On the redis driver
	// any one term matching suffices; on sqlite each narrative column is
	// tried as a substring match.
	Keyword string

	Industry            string
	Sentiment           string
	TechnologyStack     string
	GeographicRelevance string

	MarketSizeMin      *float64
	RequiredCapitalMax *float64
	TimeToMarketMax    *float64

	// Sort is a token like "created_at_desc", "popularity_desc" or
	// "date_asc". Empty means backend-native order.
	Sort string

	Page    int // 1-based; 0 means page 1
	PerPage int // 0 means the default page size
}

// SearchPage is one page of search results.
type SearchPage struct {
	Items   []Plan
	Total   int
	Page    int
	PerPage int
}

// Float returns a pointer to v, for Query bound fields.
func Float(v float64) *float64 { return &v }

func (q Query) criteria() (criteria.Criteria, error) {
	p := criteria.Params{
		Keyword:             q.Keyword,
		Industry:            q.Industry,
		Sentiment:           q.Sentiment,
		TechnologyStack:     q.TechnologyStack,
		GeographicRelevance: q.GeographicRelevance,
		MarketSizeMin:       q.MarketSizeMin,
		RequiredCapitalMax:  q.RequiredCapitalMax,
		TimeToMarketMax:     q.TimeToMarketMax,
		Page:                q.Page,
		PerPage:             q.PerPage,
	}

	if q.Sort != "" {
		sort, err := sortspec.Parse(q.Sort)
		if err != nil {
			return criteria.Criteria{}, err
		}
		p.Sort = sort
	}

	return criteria.New(p)
}

func sectionFromDomain(s domplan.Section) Section {
	if s == nil {
		return nil
	}
	out := make(Section, len(s))
	for name, e := range s {
		out[name] = SectionEntry{Text: e.Text, Items: e.Items}
	}
	return out
}

func planFromDomain(p *domplan.Plan) Plan {
	return Plan{
		ID:                   p.ID,
		Title:                p.Title,
		ExecutiveSummary:     p.ExecutiveSummary,
		Problem:              p.Problem,
		Solution:             p.Solution,
		MarketAnalysis:       sectionFromDomain(p.MarketAnalysis),
		Competition:          sectionFromDomain(p.Competition),
		MarketingStrategy:    sectionFromDomain(p.MarketingStrategy),
		ManagementTeam:       sectionFromDomain(p.ManagementTeam),
		FinancialProjections: sectionFromDomain(p.FinancialProjections),
		Industry:             p.Industry,
		Sentiment:            p.Sentiment,
		TechnologyStack:      p.TechnologyStack,
		GeographicRelevance:  p.GeographicRelevance,
		MarketSize:           p.MarketSize,
		RequiredCapital:      p.RequiredCapital,
		TimeToMarket:         p.TimeToMarket,
		TotalUps:             p.TotalUps,
		TotalDowns:           p.TotalDowns,
		CreatedAt:            p.CreatedAt,
	}
}
