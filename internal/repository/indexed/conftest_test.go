package indexed

import (
	"context"
	"testing"
	"time"

	"github.com/bizradar/planfinder/internal/db"
	"github.com/bizradar/planfinder/internal/domain/plan"
	"github.com/bizradar/planfinder/internal/domain/search/criteria"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hGetAllFn     func(ctx context.Context, key string) (map[string]string, error)
	searchPageFn  func(ctx context.Context, q *db.PageQuery) (*db.SearchResult, error)
	searchCountFn func(ctx context.Context, index, query string) (int, error)
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hGetAllFn != nil {
		return m.hGetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) SearchPage(ctx context.Context, q *db.PageQuery) (*db.SearchResult, error) {
	if m.searchPageFn != nil {
		return m.searchPageFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchCount(ctx context.Context, index, query string) (int, error) {
	if m.searchCountFn != nil {
		return m.searchCountFn(ctx, index, query)
	}
	return 0, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms)
	return repo, ms
}

func mustCriteria(t *testing.T, p criteria.Params) criteria.Criteria {
	t.Helper()
	c, err := criteria.New(p)
	if err != nil {
		t.Fatalf("criteria.New: %v", err)
	}
	return c
}

func float64Ptr(v float64) *float64 { return &v }

// testPlan is a fully-populated record for mapping tests.
func testPlan(id string) plan.Plan {
	return plan.Plan{
		ID:               id,
		Title:            "Solar kiosk network",
		ExecutiveSummary: "Off-grid retail kiosks powered by solar.",
		Problem:          "Rural retailers lack reliable electricity.",
		Solution:         "Prefab kiosks with panels and battery storage.",
		MarketAnalysis: plan.Section{
			"overview": plan.Entry{Text: "Growing demand for off-grid retail."},
			"segments": plan.Entry{Items: []string{"rural retail", "mobile top-up"}},
		},
		Competition: plan.Section{
			"direct": plan.Entry{Items: []string{"diesel generators", "grid extension"}},
		},
		MarketingStrategy: plan.Section{
			"channels": plan.Entry{Text: "Distributor partnerships."},
		},
		ManagementTeam: plan.Section{
			"founders": plan.Entry{Items: []string{"ops lead", "hardware lead"}},
		},
		FinancialProjections: plan.Section{
			"year_one": plan.Entry{Text: "Break-even at 40 kiosks."},
		},
		Industry:            "energy",
		Sentiment:           "positive",
		TechnologyStack:     "iot",
		GeographicRelevance: "east-africa",
		MarketSize:          2500000,
		RequiredCapital:     120000,
		TimeToMarket:        9,
		TotalUps:            42,
		TotalDowns:          3,
		CreatedAt:           time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC),
	}
}
