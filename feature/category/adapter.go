package category

import (
	"context"

	"catalog-mirror/core/mirror"
	"catalog-mirror/core/reconcile"
)

// Adapter implements reconcile.Adapter for the Category collection.
type Adapter struct {
	hierarchy *Hierarchy
}

// NewAdapter creates an adapter over a built hierarchy.
func NewAdapter(h *Hierarchy) *Adapter {
	return &Adapter{hierarchy: h}
}

// Name returns the unique name of this adapter.
func (a *Adapter) Name() string {
	return "category"
}

// Root returns the mirror collection.
func (a *Adapter) Root() string {
	return mirror.RootCategory
}

// Desired returns the category tree. Existing mirror values are not needed.
func (a *Adapter) Desired(_ context.Context, _ map[string]any) (reconcile.Collection, error) {
	return a.hierarchy.Desired(), nil
}
