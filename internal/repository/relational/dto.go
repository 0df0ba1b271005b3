package relational

import (
	"encoding/json"
	"time"

	"github.com/bizradar/planfinder/internal/domain/plan"
)

// rowScanner abstracts *sql.Row and *sql.Rows for scanPlan.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanPlan reads one plan row. Sections are stored as JSON text,
// created_at as unix milliseconds.
func scanPlan(row rowScanner) (plan.Plan, error) {
	var p plan.Plan
	var marketAnalysis, competition, marketingStrategy, managementTeam, financialProjections string
	var createdAtMillis int64

	err := row.Scan(
		&p.ID, &p.Title, &p.ExecutiveSummary, &p.Problem, &p.Solution,
		&marketAnalysis, &competition, &marketingStrategy, &managementTeam, &financialProjections,
		&p.Industry, &p.Sentiment, &p.TechnologyStack, &p.GeographicRelevance,
		&p.MarketSize, &p.RequiredCapital, &p.TimeToMarket, &p.TotalUps, &p.TotalDowns,
		&createdAtMillis,
	)
	if err != nil {
		return plan.Plan{}, err
	}

	p.MarketAnalysis = decodeSection(marketAnalysis)
	p.Competition = decodeSection(competition)
	p.MarketingStrategy = decodeSection(marketingStrategy)
	p.ManagementTeam = decodeSection(managementTeam)
	p.FinancialProjections = decodeSection(financialProjections)
	if createdAtMillis != 0 {
		p.CreatedAt = time.UnixMilli(createdAtMillis).UTC()
	}

	return p, nil
}

func decodeSection(raw string) plan.Section {
	if raw == "" {
		return nil
	}
	var s plan.Section
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil
	}
	return s
}

func encodeSection(s plan.Section) string {
	if s == nil {
		return ""
	}
	data, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(data)
}
