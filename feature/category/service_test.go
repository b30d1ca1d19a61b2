package category

import (
	"context"
	"testing"

	"catalog-mirror/core/mirror"
	"catalog-mirror/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestService_Sync_Example(t *testing.T) {
	ctx := context.Background()
	store := mirror.NewMemoryStore()
	svc := NewService(store, zap.NewNop())

	rows := raw(
		`{"id":"c1","name":"Drinks","pathName":""}`,
		`{"id":"s1","name":"Soda","pathName":"Drinks","description":"fizzy"}`,
	)

	h, report, err := svc.Sync(ctx, rows, reconcile.ReconcileOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.Creates)

	got, err := store.Get(ctx, "Category/c1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"id":   "c1",
		"name": "Drinks",
		"subcategory": map[string]any{
			"s1": map[string]any{"header": "Soda", "id": "s1", "img": "fizzy"},
		},
	}, got)

	id, ok := h.CategoryFor("s1")
	assert.True(t, ok)
	assert.Equal(t, "c1", id)
}

func TestService_Sync_UpdatesAndDeletes(t *testing.T) {
	ctx := context.Background()
	store := mirror.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "Category", map[string]any{
		"c1": map[string]any{"id": "c1", "name": "Drinks", "subcategory": map[string]any{
			"s1": map[string]any{"header": "Soda", "id": "s1", "img": "fizzy"},
			"s2": map[string]any{"header": "Tea", "id": "s2", "img": ""},
		}},
		"c9": map[string]any{"id": "c9", "name": "Gone"},
	}))
	store.ResetOps()

	svc := NewService(store, zap.NewNop())
	_, report, err := svc.Sync(ctx, raw(
		`{"id":"c1","name":"Beverages","pathName":""}`,
		`{"id":"s1","name":"Soda","pathName":"Beverages","description":"sparkling"}`,
	), reconcile.ReconcileOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Summary.Sets)
	assert.Equal(t, 2, report.Summary.Deletes)
	assert.ElementsMatch(t, []mirror.Op{
		{Kind: "set", Path: "Category/c1/name", Value: "Beverages"},
		{Kind: "set", Path: "Category/c1/subcategory/s1/img", Value: "sparkling"},
		{Kind: "delete", Path: "Category/c1/subcategory/s2"},
		{Kind: "delete", Path: "Category/c9"},
	}, store.Ops())

	// Second pass is a no-op.
	store.ResetOps()
	_, report, err = svc.Sync(ctx, raw(
		`{"id":"c1","name":"Beverages","pathName":""}`,
		`{"id":"s1","name":"Soda","pathName":"Beverages","description":"sparkling"}`,
	), reconcile.ReconcileOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Executed)
	assert.Empty(t, store.Ops())
}
