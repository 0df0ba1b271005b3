package finder

import (
	"context"

	"github.com/bizradar/planfinder/internal/domain/plan"
	"github.com/bizradar/planfinder/internal/domain/search/criteria"
)

// Backend defines the storage contract for plan retrieval. The indexed and
// relational drivers both satisfy it; the service never knows which one it
// is talking to.
type Backend interface {
	// FindByID returns the plan with the given identifier, or
	// domain.ErrPlanNotFound.
	FindByID(ctx context.Context, id string) (plan.Plan, error)

	// Random returns one uniformly random plan. ok is false when the
	// corpus is empty.
	Random(ctx context.Context) (plan.Plan, bool, error)

	// Search returns one page of matching plans plus the total match
	// count across all pages.
	Search(ctx context.Context, c criteria.Criteria) ([]plan.Plan, int, error)
}
