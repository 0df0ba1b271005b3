package indexed

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizradar/planfinder/internal/db"
)

// indexManager is the consumer interface for index lifecycle (ISP).
type indexManager interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// PlanIndex returns the FT index definition over plan hashes: tag fields
// for the exact-match filter keys, sortable numerics for the range and
// sort fields, text fields for the narrative keyword search (title doubles
// as the lexicographic sort target).
func PlanIndex() *db.IndexDefinition {
	return db.NewIndex(IndexName).
		Prefix(KeyPrefix).
		Tag(fieldIndustry).
		Tag(fieldSentiment).
		Tag(fieldTechnologyStack).
		Tag(fieldGeographicRelevance).
		SortableNumeric(fieldMarketSize).
		SortableNumeric(fieldRequiredCapital).
		SortableNumeric(fieldTimeToMarket).
		SortableNumeric(fieldTotalUps).
		SortableNumeric(fieldTotalDowns).
		SortableNumeric(fieldCreatedAt).
		SortableText(fieldTitle).
		Text(fieldExecutiveSummary).
		Text(fieldProblem).
		Text(fieldSolution).
		MustBuild()
}

// EnsureIndex creates the plan index if it does not exist yet. Idempotent:
// an index created concurrently by another instance is not an error.
func EnsureIndex(ctx context.Context, m indexManager) error {
	exists, err := m.IndexExists(ctx, IndexName)
	if err != nil {
		return fmt.Errorf("check plan index: %w", err)
	}
	if exists {
		return nil
	}

	if err := m.CreateIndex(ctx, PlanIndex()); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create plan index: %w", err)
	}
	return nil
}
