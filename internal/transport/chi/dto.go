package chi

import (
	"time"

	"github.com/bizradar/planfinder/internal/domain/plan"
)

// ErrorCode is the machine-readable error discriminator in error responses.
type ErrorCode string

const (
	codePlanNotFound       ErrorCode = "plan_not_found"
	codeNoPlans            ErrorCode = "no_plans"
	codeValidationFailed   ErrorCode = "validation_failed"
	codeInvalidSort        ErrorCode = "invalid_sort"
	codeBackendTimeout     ErrorCode = "backend_timeout"
	codeBackendUnavailable ErrorCode = "backend_unavailable"
	codeUnauthorized       ErrorCode = "unauthorized"
	codeRateLimited        ErrorCode = "rate_limited"
	codeInternalError      ErrorCode = "internal_error"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// PlanResponse is the wire form of a business plan.
type PlanResponse struct {
	ID                   string       `json:"id"`
	Title                string       `json:"title"`
	ExecutiveSummary     string       `json:"executive_summary,omitempty"`
	Problem              string       `json:"problem,omitempty"`
	Solution             string       `json:"solution,omitempty"`
	MarketAnalysis       plan.Section `json:"market_analysis,omitempty"`
	Competition          plan.Section `json:"competition,omitempty"`
	MarketingStrategy    plan.Section `json:"marketing_strategy,omitempty"`
	ManagementTeam       plan.Section `json:"management_team,omitempty"`
	FinancialProjections plan.Section `json:"financial_projections,omitempty"`
	Industry             string       `json:"industry,omitempty"`
	Sentiment            string       `json:"sentiment,omitempty"`
	TechnologyStack      string       `json:"technology_stack,omitempty"`
	GeographicRelevance  string       `json:"geographic_relevance,omitempty"`
	MarketSize           float64      `json:"market_size"`
	RequiredCapital      float64      `json:"required_capital"`
	TimeToMarket         float64      `json:"time_to_market"`
	TotalUps             int          `json:"total_ups"`
	TotalDowns           int          `json:"total_downs"`
	CreatedAt            time.Time    `json:"created_at"`
}

// SearchResponse is one page of search results.
type SearchResponse struct {
	Items   []PlanResponse `json:"items"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
	Sort    string         `json:"sort,omitempty"`
}

// HealthResponse mirrors the health report.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func planToResponse(p *plan.Plan) PlanResponse {
	return PlanResponse{
		ID:                   p.ID,
		Title:                p.Title,
		ExecutiveSummary:     p.ExecutiveSummary,
		Problem:              p.Problem,
		Solution:             p.Solution,
		MarketAnalysis:       p.MarketAnalysis,
		Competition:          p.Competition,
		MarketingStrategy:    p.MarketingStrategy,
		ManagementTeam:       p.ManagementTeam,
		FinancialProjections: p.FinancialProjections,
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
