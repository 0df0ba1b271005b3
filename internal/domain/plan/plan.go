// Package plan defines the business plan record, the single entity this
// service retrieves and filters. Records are produced by an external
// ingestion pipeline; this service never creates, updates, or deletes them.
package plan

import "time"

// Plan is one AI-generated business plan document.
type Plan struct {
	// ID is opaque, unique, and immutable once assigned by ingestion.
	ID string `json:"id"`

	Title            string `json:"title"`
	ExecutiveSummary string `json:"executive_summary"`
	Problem          string `json:"problem"`
	Solution         string `json:"solution"`

	MarketAnalysis       Section `json:"market_analysis,omitempty"`
	Competition          Section `json:"competition,omitempty"`
	MarketingStrategy    Section `json:"marketing_strategy,omitempty"`
	ManagementTeam       Section `json:"management_team,omitempty"`
	FinancialProjections Section `json:"financial_projections,omitempty"`

	// Short-text filter keys.
	Industry            string `json:"industry"`
	Sentiment           string `json:"sentiment"`
	TechnologyStack     string `json:"technology_stack"`
	GeographicRelevance string `json:"geographic_relevance"`

	// Numeric filter fields.
	MarketSize      float64 `json:"market_size"`
	RequiredCapital float64 `json:"required_capital"`
	TimeToMarket    float64 `json:"time_to_market"`

	TotalUps   int `json:"total_ups"`
	TotalDowns int `json:"total_downs"`

	CreatedAt time.Time `json:"created_at"`
}
