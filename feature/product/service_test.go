package product

import (
	"context"
	"encoding/json"
	"testing"

	"catalog-mirror/core/mirror"
	"catalog-mirror/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestService_Sync(t *testing.T) {
	ctx := context.Background()
	store := mirror.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "Products", map[string]any{
		"p1": map[string]any{
			"category_id": "c-old", "count": 4, "description": "Green", "header": "Apple", "id": "p1",
			"img": "https://imagedelivery.net/p1", "popularity": 7, "price": 129.9,
			"subcategory_id": "s1", "suplier_id": "sup1", "brand_id": "b1",
		},
		"gone": map[string]any{"id": "gone"},
	}))
	store.ResetOps()

	svc := NewService(store, "", zap.NewNop())
	report, err := svc.Sync(ctx, []json.RawMessage{json.RawMessage(apple)}, map[string]float64{"p1": 4}, resolver{"s1": "c1"}, reconcile.ReconcileOptions{})
	require.NoError(t, err)
	assert.Equal(t, "product", report.Entity)

	// Only the changed field and the stale product are touched.
	assert.Equal(t, []mirror.Op{
		{Kind: "set", Path: "Products/p1/category_id", Value: "c1"},
		{Kind: "delete", Path: "Products/gone"},
	}, store.Ops())

	p1, err := store.Get(ctx, "Products/p1")
	require.NoError(t, err)
	assert.Equal(t, "https://imagedelivery.net/p1", p1.(map[string]any)["img"])
	assert.Equal(t, "b1", p1.(map[string]any)["brand_id"])
}

func TestService_Sync_UnresolvedCategoryKeepsPriorValue(t *testing.T) {
	ctx := context.Background()
	store := mirror.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "Products/p1", map[string]any{"id": "p1", "category_id": "c1", "header": "Old"}))
	store.ResetOps()

	svc := NewService(store, "", zap.NewNop())
	report, err := svc.Sync(ctx, []json.RawMessage{json.RawMessage(apple)}, nil, resolver{}, reconcile.ReconcileOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.Skips)

	p1, err := store.Get(ctx, "Products/p1")
	require.NoError(t, err)
	assert.Equal(t, "c1", p1.(map[string]any)["category_id"])
	assert.Equal(t, "Apple", p1.(map[string]any)["header"])
}

func TestService_Sync_NewProductWithoutCategory(t *testing.T) {
	ctx := context.Background()
	store := mirror.NewMemoryStore()

	svc := NewService(store, "", zap.NewNop())
	_, err := svc.Sync(ctx, []json.RawMessage{json.RawMessage(apple)}, nil, nil, reconcile.ReconcileOptions{})
	require.NoError(t, err)

	p1, err := store.Get(ctx, "Products/p1")
	require.NoError(t, err)
	assert.NotContains(t, p1.(map[string]any), "category_id")
	assert.Equal(t, "Apple", p1.(map[string]any)["header"])
	assert.Equal(t, 0.0, p1.(map[string]any)["count"])
}
