package browse

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"github.com/bizradar/planfinder/internal/domain"
	"github.com/bizradar/planfinder/internal/domain/plan"
	"github.com/bizradar/planfinder/internal/domain/search/criteria"
	"github.com/bizradar/planfinder/internal/domain/search/sortspec"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// mockSearcher records criteria and returns canned pages. A non-nil gate
// channel blocks each Search call until the test releases it.
type mockSearcher struct {
	mu    sync.Mutex
	calls []criteria.Criteria
	gate  chan struct{}

	searchFn func(c criteria.Criteria) ([]plan.Plan, int, error)
}

func (m *mockSearcher) Search(_ context.Context, c criteria.Criteria) ([]plan.Plan, int, error) {
	m.mu.Lock()
	m.calls = append(m.calls, c)
	gate := m.gate
	m.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if m.searchFn != nil {
		return m.searchFn(c)
	}
	return nil, 0, nil
}

func (m *mockSearcher) lastCall(t *testing.T) criteria.Criteria {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		t.Fatal("no search calls recorded")
	}
	return m.calls[len(m.calls)-1]
}

func TestNew_DefaultsToPopularityDesc(t *testing.T) {
	b := New(&mockSearcher{}, nil)

	if b.State() != StateIdle {
		t.Fatalf("expected idle state, got %s", b.State())
	}
	if got := b.Sort().Token(); got != "total_ups_desc" {
		t.Fatalf("expected total_ups_desc, got %s", got)
	}
	if b.Page() != 1 {
		t.Fatalf("expected page 1, got %d", b.Page())
	}
}

func TestRefresh_LoadsResults(t *testing.T) {
	ms := &mockSearcher{
		searchFn: func(_ criteria.Criteria) ([]plan.Plan, int, error) {
			return []plan.Plan{{ID: "plan-1"}}, 1, nil
		},
	}
	b := New(ms, nil)

	b.Refresh(context.Background())
	b.Wait()

	if b.State() != StateLoaded {
		t.Fatalf("expected loaded, got %s", b.State())
	}
	if len(b.Results()) != 1 || b.Results()[0].ID != "plan-1" {
		t.Fatalf("unexpected results: %+v", b.Results())
	}
	if b.Total() != 1 {
		t.Fatalf("expected total 1, got %d", b.Total())
	}
}

func TestSetIndustry_ResetsPage(t *testing.T) {
	ms := &mockSearcher{}
	b := New(ms, nil)
	ctx := context.Background()

	b.SetPage(ctx, 3)
	b.Wait()
	b.SetIndustry(ctx, "fintech")
	b.Wait()

	c := ms.lastCall(t)
	if c.Industry() != "fintech" {
		t.Fatalf("expected industry fintech, got %s", c.Industry())
	}
	if c.Page() != 1 {
		t.Fatalf("filter change must reset to page 1, got %d", c.Page())
	}
}

func TestSetPage_KeepsFilters(t *testing.T) {
	ms := &mockSearcher{}
	b := New(ms, nil)
	ctx := context.Background()

	b.SetSentiment(ctx, "positive")
	b.Wait()
	b.SetPage(ctx, 2)
	b.Wait()

	c := ms.lastCall(t)
	if c.Sentiment() != "positive" {
		t.Fatalf("expected sentiment to survive paging, got %s", c.Sentiment())
	}
	if c.Page() != 2 {
		t.Fatalf("expected page 2, got %d", c.Page())
	}
}

func TestToggleSort_FlipsAndSwitches(t *testing.T) {
	ms := &mockSearcher{}
	b := New(ms, nil)
	ctx := context.Background()

	// Active field flips: total_ups desc -> asc.
	b.ToggleSort(ctx, sortspec.FieldTotalUps)
	b.Wait()
	if got := b.Sort().Token(); got != "total_ups_asc" {
		t.Fatalf("expected total_ups_asc, got %s", got)
	}

	// New field starts ascending.
	b.ToggleSort(ctx, sortspec.FieldCreatedAt)
	b.Wait()
	if got := b.Sort().Token(); got != "created_at_asc" {
		t.Fatalf("expected created_at_asc, got %s", got)
	}

	c := ms.lastCall(t)
	if c.Page() != 1 {
		t.Fatalf("sort change must reset to page 1, got %d", c.Page())
	}
}

func TestRefresh_DiscardsStaleResponse(t *testing.T) {
	gate := make(chan struct{})
	ms := &mockSearcher{
		gate: gate,
		searchFn: func(c criteria.Criteria) ([]plan.Plan, int, error) {
			if c.Industry() == "stale" {
				return []plan.Plan{{ID: "stale-plan"}}, 1, nil
			}
			return []plan.Plan{{ID: "fresh-plan"}}, 1, nil
		},
	}
	b := New(ms, nil)
	ctx := context.Background()

	// First query blocks on the gate; the second mutation supersedes it
	// before either response lands.
	b.SetIndustry(ctx, "stale")
	b.SetIndustry(ctx, "fresh")
	close(gate)
	b.Wait()

	if b.State() != StateLoaded {
		t.Fatalf("expected loaded, got %s", b.State())
	}
	results := b.Results()
	if len(results) != 1 || results[0].ID != "fresh-plan" {
		t.Fatalf("stale response must not land, got %+v", results)
	}
}

func TestRefresh_ErroredState(t *testing.T) {
	wantErr := errors.New("backend down")
	ms := &mockSearcher{
		searchFn: func(_ criteria.Criteria) ([]plan.Plan, int, error) {
			return nil, 0, wantErr
		},
	}
	b := New(ms, nil)

	b.Refresh(context.Background())
	b.Wait()

	if b.State() != StateErrored {
		t.Fatalf("expected errored, got %s", b.State())
	}
	if !errors.Is(b.Err(), wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, b.Err())
	}
}

func TestRefresh_RecoversAfterError(t *testing.T) {
	fail := true
	ms := &mockSearcher{
		searchFn: func(_ criteria.Criteria) ([]plan.Plan, int, error) {
			if fail {
				return nil, 0, errors.New("transient")
			}
			return []plan.Plan{{ID: "plan-1"}}, 1, nil
		},
	}
	b := New(ms, nil)
	ctx := context.Background()

	b.Refresh(ctx)
	b.Wait()
	if b.State() != StateErrored {
		t.Fatalf("expected errored, got %s", b.State())
	}

	fail = false
	b.Refresh(ctx)
	b.Wait()
	if b.State() != StateLoaded {
		t.Fatalf("expected loaded after recovery, got %s", b.State())
	}
	if b.Err() != nil {
		t.Fatalf("expected cleared error, got %v", b.Err())
	}
}

func TestInvalidFilterState_ErrorsWithoutSearching(t *testing.T) {
	ms := &mockSearcher{}
	b := New(ms, nil)
	ctx := context.Background()

	negative := -1.0
	b.SetMarketSizeMin(ctx, &negative)
	b.Wait()

	if b.State() != StateErrored {
		t.Fatalf("expected errored, got %s", b.State())
	}
	if !errors.Is(b.Err(), domain.ErrValidation) {
		t.Fatalf("browser error must carry the validation sentinel, got %v", b.Err())
	}
	ms.mu.Lock()
	calls := len(ms.calls)
	ms.mu.Unlock()
	if calls != 0 {
		t.Fatalf("invalid state must not reach the backend, got %d calls", calls)
	}
}

func TestSetKeyword_ResetsPage(t *testing.T) {
	ms := &mockSearcher{}
	b := New(ms, nil)
	ctx := context.Background()

	b.SetPage(ctx, 4)
	b.Wait()
	b.SetKeyword(ctx, "solar kiosk")
	b.Wait()

	c := ms.lastCall(t)
	if c.Keyword() != "solar kiosk" {
		t.Fatalf("expected keyword to reach the backend, got %q", c.Keyword())
	}
	if c.Page() != 1 {
		t.Fatalf("keyword change must reset to page 1, got %d", c.Page())
	}
}
