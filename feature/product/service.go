package product

import (
	"context"
	"encoding/json"

	"catalog-mirror/core/mirror"
	"catalog-mirror/core/notify"
	"catalog-mirror/core/reconcile"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Service syncs the Products collection.
type Service struct {
	store     mirror.Store
	cdnPrefix string
	logger    *zap.Logger
}

// NewService creates a new product service.
func NewService(store mirror.Store, cdnPrefix string, logger *zap.Logger) *Service {
	return &Service{store: store, cdnPrefix: cdnPrefix, logger: logger.With(zap.String("entity", "product"))}
}

// Sync reconciles the mirror against fetched product rows. rows must already be
// filtered with FilterValid; stock joins by assortment id.
func (s *Service) Sync(ctx context.Context, rows []json.RawMessage, stock map[string]float64, categories CategoryResolver, opts reconcile.ReconcileOptions) (reconcile.Report, error) {
	adapter := NewAdapter(rows, NewTransformer(categories, stock, s.cdnPrefix, s.logger))
	plan, executed, err := reconcile.ReconcileAndApply(ctx, s.store, adapter, opts, s.logger)
	report := reconcile.NewReport(adapter.Name(), plan, executed, err)
	if err != nil {
		return report, err
	}

	s.logger.Info("Products synchronized with mirror", zap.Int("executed", executed))
	reconcile.LogSubtree(ctx, s.store, adapter.Root(), s.logger)
	return report, nil
}

// ImageList pairs every product with its catalog images URL.
func ImageList(rows []json.RawMessage, imagesURL func(productID string) string) []notify.ProductImage {
	out := make([]notify.ProductImage, 0, len(rows))
	for _, raw := range rows {
		id := gjson.GetBytes(raw, "id").String()
		if id == "" {
			continue
		}
		out = append(out, notify.ProductImage{ProductID: id, ImageLink: imagesURL(id)})
	}
	return out
}
