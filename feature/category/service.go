package category

import (
	"context"
	"encoding/json"

	"catalog-mirror/core/mirror"
	"catalog-mirror/core/reconcile"

	"go.uber.org/zap"
)

// Service syncs the Category collection.
type Service struct {
	store  mirror.Store
	logger *zap.Logger
}

// NewService creates a new category service.
func NewService(store mirror.Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger.With(zap.String("entity", "category"))}
}

// Sync builds the hierarchy from fetched rows and reconciles the mirror against it.
// The hierarchy is returned even when the mirror update fails so product sync can still resolve categories.
func (s *Service) Sync(ctx context.Context, rows []json.RawMessage, opts reconcile.ReconcileOptions) (*Hierarchy, reconcile.Report, error) {
	h := BuildHierarchy(ParseFolders(rows, s.logger), s.logger)
	s.logger.Info("Processed category structure", zap.Int("categories", len(h.order)), zap.Int("subcategories", len(h.index)))

	adapter := NewAdapter(h)
	plan, executed, err := reconcile.ReconcileAndApply(ctx, s.store, adapter, opts, s.logger)
	report := reconcile.NewReport(adapter.Name(), plan, executed, err)
	if err != nil {
		return h, report, err
	}

	s.logger.Info("Categories synchronized with mirror", zap.Int("executed", executed))
	reconcile.LogSubtree(ctx, s.store, adapter.Root(), s.logger)
	return h, report, nil
}
