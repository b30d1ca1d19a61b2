package product

import (
	"encoding/json"
	"strings"

	"catalog-mirror/core/catalog"
	"catalog-mirror/core/reconcile"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// DefaultImageCDNPrefix marks image links already rewritten to the CDN.
const DefaultImageCDNPrefix = "https://imagedelivery.net"

// requiredKeys must be present on every product row.
var requiredKeys = []string{"id", "name", "productFolder", "salePrices", "attributes", "images"}

// CategoryResolver maps a subcategory id to its root category id.
type CategoryResolver interface {
	CategoryFor(subcategoryID string) (string, bool)
}

type noCategories struct{}

func (noCategories) CategoryFor(string) (string, bool) { return "", false }

// Transformer turns catalog product rows into mirror records.
type Transformer struct {
	categories CategoryResolver
	stock      map[string]float64
	cdnPrefix  string
	logger     *zap.Logger
}

// NewTransformer creates a Transformer. An empty cdnPrefix uses DefaultImageCDNPrefix.
func NewTransformer(categories CategoryResolver, stock map[string]float64, cdnPrefix string, logger *zap.Logger) *Transformer {
	if cdnPrefix == "" {
		cdnPrefix = DefaultImageCDNPrefix
	}
	if stock == nil {
		stock = map[string]float64{}
	}
	if categories == nil {
		categories = noCategories{}
	}
	return &Transformer{categories: categories, stock: stock, cdnPrefix: cdnPrefix, logger: logger}
}

// Valid reports whether a row carries every required key.
func Valid(row gjson.Result) bool {
	for _, key := range requiredKeys {
		if !row.Get(key).Exists() {
			return false
		}
	}
	return true
}

// FilterValid drops rows lacking a required key, logging each one.
func FilterValid(rows []json.RawMessage, logger *zap.Logger) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(rows))
	for _, raw := range rows {
		if !Valid(gjson.ParseBytes(raw)) {
			logger.Error("Invalid product data", zap.String("row", string(raw)))
			continue
		}
		out = append(out, raw)
	}
	return out
}

// Transform builds the Products collection. existing is the mirrored collection,
// used to keep image links that already point at the CDN.
func (t *Transformer) Transform(rows []json.RawMessage, existing map[string]any) reconcile.Collection {
	out := make(reconcile.Collection, len(rows))
	for _, raw := range rows {
		row := gjson.ParseBytes(raw)
		if !Valid(row) {
			continue
		}
		id := row.Get("id").String()
		out[id] = t.record(id, row, existing[id])
	}
	return out
}

func (t *Transformer) record(id string, row gjson.Result, current any) reconcile.Fields {
	name := row.Get("name").String()

	var supplierID any
	if href := row.Get("supplier.meta.href"); href.Exists() && href.String() != "" {
		supplierID = catalog.LastSegment(href.String())
	}

	var subcategoryID, categoryID any
	if href := row.Get("productFolder.meta.href").String(); href != "" {
		sub := catalog.LastSegment(href)
		subcategoryID = sub
		if cat, ok := t.categories.CategoryFor(sub); ok {
			categoryID = cat
		} else {
			t.logger.Error("Category ID not found for subcategory ID",
				zap.String("subcategory_id", sub),
				zap.String("product_id", id))
		}
	}

	return reconcile.Fields{
		"category_id":    categoryID,
		"count":          t.stock[id],
		"description":    row.Get("description").String(),
		"header":         name,
		"id":             id,
		"img":            t.imageLink(row, current),
		"popularity":     value(row.Get("attributes.0.value")),
		"price":          price(row.Get("salePrices.0.value")),
		"subcategory_id": subcategoryID,
		"suplier_id":     supplierID,
	}
}

// imageLink keeps a mirrored CDN link, otherwise points at the catalog images listing.
func (t *Transformer) imageLink(row gjson.Result, current any) any {
	if obj, ok := current.(map[string]any); ok {
		if img, ok := obj["img"].(string); ok && strings.HasPrefix(img, t.cdnPrefix) {
			return img
		}
	}
	return value(row.Get("images.meta.href"))
}

// price converts minor units to the sale price.
func price(v gjson.Result) any {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	d, err := decimal.NewFromString(v.Raw)
	if err != nil {
		return nil
	}
	return d.Div(decimal.NewFromInt(100)).InexactFloat64()
}

func value(v gjson.Result) any {
	if !v.Exists() {
		return nil
	}
	return v.Value()
}
