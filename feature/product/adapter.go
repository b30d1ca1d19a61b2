package product

import (
	"context"
	"encoding/json"

	"catalog-mirror/core/mirror"
	"catalog-mirror/core/reconcile"
)

// Adapter implements reconcile.Adapter for the Products collection.
type Adapter struct {
	rows        []json.RawMessage
	transformer *Transformer
}

// NewAdapter creates an adapter over validated product rows.
func NewAdapter(rows []json.RawMessage, transformer *Transformer) *Adapter {
	return &Adapter{rows: rows, transformer: transformer}
}

// Name returns the unique name of this adapter.
func (a *Adapter) Name() string {
	return "product"
}

// Root returns the mirror collection.
func (a *Adapter) Root() string {
	return mirror.RootProduct
}

// Desired returns the product records, reusing mirrored CDN image links.
func (a *Adapter) Desired(_ context.Context, existing map[string]any) (reconcile.Collection, error) {
	return a.transformer.Transform(a.rows, existing), nil
}
