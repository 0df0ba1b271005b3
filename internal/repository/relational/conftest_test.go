package relational

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bizradar/planfinder/internal/domain/plan"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func insertPlan(t *testing.T, db *sql.DB, p plan.Plan) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO business_plans (`+planColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.ExecutiveSummary, p.Problem, p.Solution,
		encodeSection(p.MarketAnalysis), encodeSection(p.Competition),
		encodeSection(p.MarketingStrategy), encodeSection(p.ManagementTeam),
		encodeSection(p.FinancialProjections),
		p.Industry, p.Sentiment, p.TechnologyStack, p.GeographicRelevance,
		p.MarketSize, p.RequiredCapital, p.TimeToMarket, p.TotalUps, p.TotalDowns,
		p.CreatedAt.UnixMilli(),
	)
	require.NoError(t, err)
}

type planOption func(*plan.Plan)

func withTitle(v string) planOption          { return func(p *plan.Plan) { p.Title = v } }
func withSolution(v string) planOption       { return func(p *plan.Plan) { p.Solution = v } }
func withIndustry(v string) planOption       { return func(p *plan.Plan) { p.Industry = v } }
func withSentiment(v string) planOption      { return func(p *plan.Plan) { p.Sentiment = v } }
func withCapital(v float64) planOption       { return func(p *plan.Plan) { p.RequiredCapital = v } }
func withMarketSize(v float64) planOption    { return func(p *plan.Plan) { p.MarketSize = v } }
func withUps(v int) planOption               { return func(p *plan.Plan) { p.TotalUps = v } }
func withCreatedAt(v time.Time) planOption   { return func(p *plan.Plan) { p.CreatedAt = v } }
func withTechnologyStack(v string) planOption {
	return func(p *plan.Plan) { p.TechnologyStack = v }
}

func newPlan(id string, opts ...planOption) plan.Plan {
	p := plan.Plan{
		ID:               id,
		Title:            "Plan " + id,
		ExecutiveSummary: "Summary for " + id,
		Industry:         "retail",
		Sentiment:        "neutral",
		MarketAnalysis: plan.Section{
			"overview": plan.Entry{Text: "Overview for " + id},
		},
		MarketSize:      500000,
		RequiredCapital: 100000,
		TimeToMarket:    12,
		CreatedAt:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}
