package reconcile

import (
	"context"
	"errors"
	"testing"

	"catalog-mirror/core/mirror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// staticAdapter returns a fixed desired collection.
type staticAdapter struct {
	root    string
	desired Collection
	err     error
}

func (a *staticAdapter) Name() string { return "static" }
func (a *staticAdapter) Root() string { return a.root }
func (a *staticAdapter) Desired(ctx context.Context, existing map[string]any) (Collection, error) {
	return a.desired, a.err
}

// failingStore fails writes to one path.
type failingStore struct {
	*mirror.MemoryStore
	failPath string
}

func (s *failingStore) Set(ctx context.Context, path string, value any) error {
	if path == s.failPath {
		return errors.New("permission denied")
	}
	return s.MemoryStore.Set(ctx, path, value)
}

func seed(t *testing.T, store *mirror.MemoryStore, path string, value any) {
	t.Helper()
	require.NoError(t, store.Set(context.Background(), path, value))
	store.ResetOps()
}

func TestReconcileAndApply_Converges(t *testing.T) {
	ctx := context.Background()
	store := mirror.NewMemoryStore()
	seed(t, store, "Supliers", map[string]any{
		"old": map[string]any{"id": "old", "name": "Gone"},
		"s1":  map[string]any{"id": "s1", "name": "Before"},
	})
	adapter := &staticAdapter{root: "Supliers", desired: Collection{
		"s1": Fields{"id": "s1", "name": "After"},
		"s2": Fields{"id": "s2", "name": "New", "delivery_price": nil},
	}}

	plan, executed, err := ReconcileAndApply(ctx, store, adapter, ReconcileOptions{}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 3, executed)
	assert.Equal(t, 1, plan.Summary.Skips)

	got, err := store.Get(ctx, "Supliers")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"s1": map[string]any{"id": "s1", "name": "After"},
		"s2": map[string]any{"id": "s2", "name": "New"},
	}, got)
}

func TestReconcileAndApply_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := mirror.NewMemoryStore()
	adapter := &staticAdapter{root: "Category", desired: Collection{
		"c1": Fields{"id": "c1", "name": "Fruit", "subcategory": Collection{
			"s1": Fields{"header": "Apples", "id": "s1", "img": ""},
		}},
		"c2": Fields{"id": "c2", "name": "Empty", "subcategory": Collection{}},
	}}

	_, executed, err := ReconcileAndApply(ctx, store, adapter, ReconcileOptions{}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, executed)

	store.ResetOps()
	plan, executed, err := ReconcileAndApply(ctx, store, adapter, ReconcileOptions{}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 0, executed)
	assert.Empty(t, plan.Actions)
	assert.Empty(t, store.Ops())
}

func TestReconcileAndApply_ObjectLeafIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := mirror.NewMemoryStore()
	adapter := &staticAdapter{root: "Products", desired: Collection{
		"p1": Fields{"id": "p1", "popularity": map[string]any{"name": "High", "code": nil, "meta": map[string]any{}}},
	}}

	_, executed, err := ReconcileAndApply(ctx, store, adapter, ReconcileOptions{}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, executed)

	popularity, err := store.Get(ctx, "Products/p1/popularity")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "High"}, popularity)

	store.ResetOps()
	plan, executed, err := ReconcileAndApply(ctx, store, adapter, ReconcileOptions{}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 0, executed)
	assert.Empty(t, plan.Actions)
	assert.Empty(t, store.Ops())
}

func TestReconcileAndApply_DryRunDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	store := mirror.NewMemoryStore()
	adapter := &staticAdapter{root: "Products", desired: Collection{"p1": Fields{"id": "p1"}}}

	plan, executed, err := ReconcileAndApply(ctx, store, adapter, ReconcileOptions{DryRun: true}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 0, executed)
	assert.Len(t, plan.Actions, 1)
	assert.Empty(t, store.Ops())
}

func TestReconcileAndApply_AdapterError(t *testing.T) {
	adapter := &staticAdapter{root: "Products", err: errors.New("boom")}

	plan, _, err := ReconcileAndApply(context.Background(), mirror.NewMemoryStore(), adapter, ReconcileOptions{}, zap.NewNop())
	assert.Nil(t, plan)
	assert.ErrorContains(t, err, "boom")
}

func TestApplyPlan_ContinuesAfterFailure(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{MemoryStore: mirror.NewMemoryStore(), failPath: "Products/p1"}
	plan := BuildPlan("Products", Collection{
		"p1": Fields{"id": "p1"},
		"p2": Fields{"id": "p2"},
	}, nil)

	executed, err := ApplyPlan(ctx, store, plan, ReconcileOptions{}, zap.NewNop())
	assert.Equal(t, 1, executed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Products/p1")

	got, getErr := store.Get(ctx, "Products/p2")
	require.NoError(t, getErr)
	assert.Equal(t, map[string]any{"id": "p2"}, got)
}

func TestApplyPlan_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := mirror.NewMemoryStore()
	plan := BuildPlan("Products", Collection{"p1": Fields{"id": "p1"}}, nil)

	executed, err := ApplyPlan(ctx, store, plan, ReconcileOptions{}, zap.NewNop())
	assert.Equal(t, 0, executed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewReport(t *testing.T) {
	plan := &ReconcilePlan{Summary: PlanSummary{Creates: 2}}

	r := NewReport("product", plan, 2, errors.New("partial"))
	assert.Equal(t, "product", r.Entity)
	assert.Equal(t, 2, r.Summary.Creates)
	assert.Equal(t, "partial", r.Error)

	r = NewReport("category", nil, 0, nil)
	assert.Empty(t, r.Error)
}
