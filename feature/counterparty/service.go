package counterparty

import (
	"context"
	"encoding/json"

	"catalog-mirror/core/mirror"
	"catalog-mirror/core/reconcile"

	"go.uber.org/zap"
)

// Service syncs the Supliers collection.
type Service struct {
	store  mirror.Store
	logger *zap.Logger
}

// NewService creates a new counterparty service.
func NewService(store mirror.Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger.With(zap.String("entity", "counterparty"))}
}

// Sync reconciles the mirror against the fetched counterparty rows.
func (s *Service) Sync(ctx context.Context, rows []json.RawMessage, opts reconcile.ReconcileOptions) (reconcile.Report, error) {
	adapter := NewAdapter(rows, s.logger)
	plan, executed, err := reconcile.ReconcileAndApply(ctx, s.store, adapter, opts, s.logger)
	report := reconcile.NewReport(adapter.Name(), plan, executed, err)
	if err != nil {
		return report, err
	}

	s.logger.Info("Counterparties synchronized with mirror", zap.Int("executed", executed))
	reconcile.LogSubtree(ctx, s.store, adapter.Root(), s.logger)
	return report, nil
}
