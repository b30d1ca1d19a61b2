package mirror

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "Products/p1", map[string]any{"id": "p1", "price": 12, "count": nil}))
	require.NoError(t, s.Set(ctx, "Products/p1/header", "Soda"))

	v, err := s.Get(ctx, "Products/p1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "p1", "price": float64(12), "header": "Soda"}, v)

	missing, err := s.Get(ctx, "Products/nope/header")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryStore_PrunesEmptyObjects(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "Category/c1", map[string]any{
		"id":          "c1",
		"subcategory": map[string]any{},
	}))

	v, err := s.Get(ctx, "Category/c1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "c1"}, v)
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "Supliers/a", map[string]any{"id": "a"}))
	require.NoError(t, s.Set(ctx, "Supliers/b", map[string]any{"id": "b"}))
	require.NoError(t, s.Delete(ctx, "Supliers/a"))

	m, err := GetMap(ctx, s, RootSupplier)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"b": map[string]any{"id": "b"}}, m)

	require.NoError(t, s.Delete(ctx, "Supliers/b"))
	root, err := s.Get(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, root, "empty parents are removed")

	assert.Len(t, s.Ops(), 4)
	s.ResetOps()
	assert.Empty(t, s.Ops())
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "Category/c1", map[string]any{"name": "Drinks"}))

	v, err := s.Get(ctx, "Category")
	require.NoError(t, err)
	v.(map[string]any)["c1"].(map[string]any)["name"] = "changed"

	again, err := s.Get(ctx, "Category/c1/name")
	require.NoError(t, err)
	assert.Equal(t, "Drinks", again)
}

func TestGetMap(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	m, err := GetMap(ctx, s, RootProduct)
	require.NoError(t, err)
	assert.Empty(t, m)

	require.NoError(t, s.Set(ctx, "Products", "scalar"))
	_, err = GetMap(ctx, s, RootProduct)
	assert.Error(t, err)
}

func TestJoinSplit(t *testing.T) {
	assert.Equal(t, "Category/c1/subcategory/s1", Join("Category", "/c1/", "", "subcategory/s1"))
	assert.Equal(t, []string{"Category", "c1"}, Split("/Category//c1/"))
	assert.Empty(t, Split("/"))
}

func TestOpen(t *testing.T) {
	s, err := Open(context.Background(), Config{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = Open(context.Background(), Config{Driver: "etcd"})
	assert.Error(t, err)

	_, err = Open(context.Background(), Config{Driver: "firebase"})
	assert.ErrorContains(t, err, "database url")
}
