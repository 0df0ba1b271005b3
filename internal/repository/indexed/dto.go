package indexed

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/bizradar/planfinder/internal/db"
	"github.com/bizradar/planfinder/internal/domain/plan"
)

// Hash field names. Scalar fields are stored as plain strings, nested
// sections as JSON blobs, created_at as unix milliseconds so the NUMERIC
// index can sort on it.
const (
	fieldTitle                = "title"
	fieldExecutiveSummary     = "executive_summary"
	fieldProblem              = "problem"
	fieldSolution             = "solution"
	fieldMarketAnalysis       = "market_analysis"
	fieldCompetition          = "competition"
	fieldMarketingStrategy    = "marketing_strategy"
	fieldManagementTeam       = "management_team"
	fieldFinancialProjections = "financial_projections"
	fieldIndustry             = "industry"
	fieldSentiment            = "sentiment"
	fieldTechnologyStack      = "technology_stack"
	fieldGeographicRelevance  = "geographic_relevance"
	fieldMarketSize           = "market_size"
	fieldRequiredCapital      = "required_capital"
	fieldTimeToMarket         = "time_to_market"
	fieldTotalUps             = "total_ups"
	fieldTotalDowns           = "total_downs"
	fieldCreatedAt            = "created_at"
)

// BuildHashFields converts a plan into the flat hash representation the
// ingestion pipeline writes. It is the inverse of planFromHash and exists
// to pin down the wire contract.
func BuildHashFields(p *plan.Plan) map[string]string {
	m := map[string]string{
		fieldTitle:               p.Title,
		fieldExecutiveSummary:    p.ExecutiveSummary,
		fieldProblem:             p.Problem,
		fieldSolution:            p.Solution,
		fieldIndustry:            p.Industry,
		fieldSentiment:           p.Sentiment,
		fieldTechnologyStack:     p.TechnologyStack,
		fieldGeographicRelevance: p.GeographicRelevance,
		fieldMarketSize:          formatFloat(p.MarketSize),
		fieldRequiredCapital:     formatFloat(p.RequiredCapital),
		fieldTimeToMarket:        formatFloat(p.TimeToMarket),
		fieldTotalUps:            strconv.Itoa(p.TotalUps),
		fieldTotalDowns:          strconv.Itoa(p.TotalDowns),
		fieldCreatedAt:           strconv.FormatInt(p.CreatedAt.UnixMilli(), 10),
	}

	sections := []struct {
		name    string
		section plan.Section
	}{
		{fieldMarketAnalysis, p.MarketAnalysis},
		{fieldCompetition, p.Competition},
		{fieldMarketingStrategy, p.MarketingStrategy},
		{fieldManagementTeam, p.ManagementTeam},
		{fieldFinancialProjections, p.FinancialProjections},
	}
	for _, s := range sections {
		if s.section == nil {
			continue
		}
		if data, err := json.Marshal(s.section); err == nil {
			m[s.name] = string(data)
		}
	}

	return m
}

// planFromEntry maps a search hit to a plan, deriving the identifier from
// the hash key.
func planFromEntry(entry db.SearchEntry) plan.Plan {
	return planFromHash(strings.TrimPrefix(entry.Key, KeyPrefix), entry.Fields)
}

// planFromHash converts flat hash fields back into a plan. The mapping is
// lossless for every declared field, so a record built from a search hit is
// identical to one fetched by id.
func planFromHash(id string, m map[string]string) plan.Plan {
	p := plan.Plan{
		ID:                  id,
		Title:               m[fieldTitle],
		ExecutiveSummary:    m[fieldExecutiveSummary],
		Problem:             m[fieldProblem],
		Solution:            m[fieldSolution],
		Industry:            m[fieldIndustry],
		Sentiment:           m[fieldSentiment],
		TechnologyStack:     m[fieldTechnologyStack],
		GeographicRelevance: m[fieldGeographicRelevance],
		MarketSize:          parseFloat(m[fieldMarketSize]),
		RequiredCapital:     parseFloat(m[fieldRequiredCapital]),
		TimeToMarket:        parseFloat(m[fieldTimeToMarket]),
		TotalUps:            parseInt(m[fieldTotalUps]),
		TotalDowns:          parseInt(m[fieldTotalDowns]),
	}

	if ms, ok := m[fieldCreatedAt]; ok {
		if millis, err := strconv.ParseInt(ms, 10, 64); err == nil {
			p.CreatedAt = time.UnixMilli(millis).UTC()
		}
	}

	p.MarketAnalysis = parseSection(m[fieldMarketAnalysis])
	p.Competition = parseSection(m[fieldCompetition])
	p.MarketingStrategy = parseSection(m[fieldMarketingStrategy])
	p.ManagementTeam = parseSection(m[fieldManagementTeam])
	p.FinancialProjections = parseSection(m[fieldFinancialProjections])

	return p
}

func parseSection(raw string) plan.Section {
	if raw == "" {
		return nil
	}
	var s plan.Section
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil
	}
	return s
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}
