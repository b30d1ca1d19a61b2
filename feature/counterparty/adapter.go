package counterparty

import (
	"context"
	"encoding/json"

	"catalog-mirror/core/mirror"
	"catalog-mirror/core/reconcile"

	"go.uber.org/zap"
)

// Adapter implements reconcile.Adapter for the Supliers collection.
type Adapter struct {
	rows   []json.RawMessage
	logger *zap.Logger
}

// NewAdapter creates an adapter over fetched counterparty rows.
func NewAdapter(rows []json.RawMessage, logger *zap.Logger) *Adapter {
	return &Adapter{rows: rows, logger: logger}
}

// Name returns the unique name of this adapter.
func (a *Adapter) Name() string {
	return "counterparty"
}

// Root returns the mirror collection.
func (a *Adapter) Root() string {
	return mirror.RootSupplier
}

// Desired returns the supplier records.
func (a *Adapter) Desired(_ context.Context, existing map[string]any) (reconcile.Collection, error) {
	a.logger.Info("Counterparties fetched from mirror", zap.Int("total", len(existing)))
	return Transform(a.rows, a.logger), nil
}
