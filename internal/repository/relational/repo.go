package relational

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bizradar/planfinder/internal/domain"
	"github.com/bizradar/planfinder/internal/domain/plan"
	"github.com/bizradar/planfinder/internal/domain/search/criteria"
	"github.com/bizradar/planfinder/internal/domain/search/sortspec"
)

const planColumns = `id, title, executive_summary, problem, solution,
	market_analysis, competition, marketing_strategy, management_team, financial_projections,
	industry, sentiment, technology_stack, geographic_relevance,
	market_size, required_capital, time_to_market, total_ups, total_downs, created_at`

// sortColumns is the closed set of ORDER BY targets. Sort fields arrive
// pre-validated as sortspec values, but only names present here ever reach
// SQL text, so no caller input can extend the clause.
var sortColumns = map[sortspec.Field]string{
	sortspec.FieldCreatedAt:       "created_at",
	sortspec.FieldTotalUps:        "total_ups",
	sortspec.FieldMarketSize:      "market_size",
	sortspec.FieldRequiredCapital: "required_capital",
	sortspec.FieldTimeToMarket:    "time_to_market",
	sortspec.FieldTitle:           "title",
}

// Repo implements finder.Backend on SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a relational plan repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Ping checks that the database file is reachable.
func (r *Repo) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	return nil
}

// FindByID retrieves a single plan by identifier.
func (r *Repo) FindByID(ctx context.Context, id string) (plan.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM business_plans WHERE id = ?`
	p, err := scanPlan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return plan.Plan{}, fmt.Errorf("find plan %s: %w", id, domain.ErrPlanNotFound)
		}
		return plan.Plan{}, fmt.Errorf("find plan %s: %w", id, classify(err))
	}
	return p, nil
}

// Random returns one uniformly random plan, or ok=false on an empty table.
// Selection is delegated to the engine's RANDOM() ordering, never an
// application-side scan.
func (r *Repo) Random(ctx context.Context) (plan.Plan, bool, error) {
	query := `SELECT ` + planColumns + ` FROM business_plans ORDER BY RANDOM() LIMIT 1`
	p, err := scanPlan(r.db.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return plan.Plan{}, false, nil
		}
		return plan.Plan{}, false, fmt.Errorf("random plan: %w", classify(err))
	}
	return p, true, nil
}

// Search returns the plans matching the criteria plus the total match count.
//
// Every populated criterion becomes a substring predicate, the numeric
// bounds included: market_size_min matches rows whose market_size contains
// the bound's digits rather than rows at or above it. That is the
// documented contract of this driver, kept deliberately distinct from the
// indexed backend's range semantics.
func (r *Repo) Search(ctx context.Context, c criteria.Criteria) ([]plan.Plan, int, error) {
	where, args := buildWhere(c)

	countQuery := `SELECT COUNT(*) FROM business_plans` + where
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting plans: %w", classify(err))
	}

	query := `SELECT ` + planColumns + ` FROM business_plans` + where
	if sort := c.Sort(); !sort.IsZero() {
		col, ok := sortColumns[sort.Field()]
		if !ok {
			return nil, 0, fmt.Errorf("sort field %q: %w", sort.Field(), domain.ErrInvalidSortToken)
		}
		dir := "DESC"
		if sort.Ascending() {
			dir = "ASC"
		}
		query += " ORDER BY " + col + " " + dir
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, c.PerPage(), c.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("searching plans: %w", classify(err))
	}
	defer rows.Close()

	var plans []plan.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning plan: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating plans: %w", classify(err))
	}
	return plans, total, nil
}

// keywordColumns are the narrative columns a free-text keyword is matched
// against, mirroring the text fields of the indexed schema.
var keywordColumns = []string{"title", "executive_summary", "problem", "solution"}

// buildWhere assembles the conjunctive LIKE predicates for every populated
// criterion. The keyword becomes a disjunction over the narrative columns;
// values travel as bind parameters only.
func buildWhere(c criteria.Criteria) (string, []any) {
	var preds []string
	var args []any

	like := func(col, value string) {
		preds = append(preds, col+" LIKE '%' || ? || '%'")
		args = append(args, value)
	}

	if kw := c.Keyword(); kw != "" {
		ors := make([]string, 0, len(keywordColumns))
		for _, col := range keywordColumns {
			ors = append(ors, col+" LIKE '%' || ? || '%'")
			args = append(args, kw)
		}
		preds = append(preds, "("+strings.Join(ors, " OR ")+")")
	}

	if v := c.Industry(); v != "" {
		like("industry", v)
	}
	if v := c.Sentiment(); v != "" {
		like("sentiment", v)
	}
	if v := c.TechnologyStack(); v != "" {
		like("technology_stack", v)
	}
	if v := c.GeographicRelevance(); v != "" {
		like("geographic_relevance", v)
	}
	if v := c.MarketSizeMin(); v != nil {
		like("market_size", formatBound(*v))
	}
	if v := c.RequiredCapitalMax(); v != nil {
		like("required_capital", formatBound(*v))
	}
	if v := c.TimeToMarketMax(); v != nil {
		like("time_to_market", formatBound(*v))
	}

	if len(preds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(preds, " AND "), args
}

// formatBound renders a numeric bound in plain decimal notation so the
// substring predicate lines up with how the engine renders REAL columns.
func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// classify maps driver failures to the backend error taxonomy.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrBackendTimeout, err)
	}
	return fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
}
