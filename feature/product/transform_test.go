package product

import (
	"encoding/json"
	"testing"

	"catalog-mirror/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type resolver map[string]string

func (r resolver) CategoryFor(sub string) (string, bool) {
	id, ok := r[sub]
	return id, ok
}

const apple = `{
	"id": "p1",
	"name": "Apple",
	"description": "Green",
	"productFolder": {"meta": {"href": "https://api/entity/productfolder/s1"}},
	"supplier": {"meta": {"href": "https://api/entity/counterparty/sup1"}},
	"salePrices": [{"value": 12990}],
	"attributes": [{"name": "Популярность", "value": 7}],
	"images": {"meta": {"href": "https://api/entity/product/p1/images"}}
}`

func TestTransform_FullRecord(t *testing.T) {
	tr := NewTransformer(resolver{"s1": "c1"}, map[string]float64{"p1": 4}, "", zap.NewNop())

	got := tr.Transform([]json.RawMessage{json.RawMessage(apple)}, nil)

	assert.Equal(t, reconcile.Collection{"p1": reconcile.Fields{
		"category_id":    "c1",
		"count":          4.0,
		"description":    "Green",
		"header":         "Apple",
		"id":             "p1",
		"img":            "https://api/entity/product/p1/images",
		"popularity":     7.0,
		"price":          129.9,
		"subcategory_id": "s1",
		"suplier_id":     "sup1",
	}}, got)
}

func TestTransform_Defaults(t *testing.T) {
	row := `{
		"id": "p2",
		"name": "Pear",
		"productFolder": {"meta": {"href": "https://api/entity/productfolder/s404"}},
		"supplier": null,
		"salePrices": [{"value": 100}],
		"attributes": [],
		"images": {"meta": {"href": "https://api/entity/product/p2/images"}}
	}`
	core, logs := observer.New(zap.ErrorLevel)
	tr := NewTransformer(resolver{}, nil, "", zap.New(core))

	got := tr.Transform([]json.RawMessage{json.RawMessage(row)}, nil)["p2"].(reconcile.Fields)

	assert.Nil(t, got["category_id"])
	assert.Nil(t, got["suplier_id"])
	assert.Nil(t, got["popularity"])
	assert.Equal(t, 0.0, got["count"])
	assert.Equal(t, "", got["description"])
	assert.Equal(t, 1.0, got["price"])
	assert.Equal(t, "s404", got["subcategory_id"])
	assert.Equal(t, 1, logs.FilterMessage("Category ID not found for subcategory ID").Len())
}

func TestTransform_ImageLink(t *testing.T) {
	tests := []struct {
		name     string
		existing map[string]any
		want     string
	}{
		{"New product uses catalog link", nil, "https://api/entity/product/p1/images"},
		{"CDN link is kept", map[string]any{"p1": map[string]any{"img": "https://imagedelivery.net/abc/public"}}, "https://imagedelivery.net/abc/public"},
		{"Other link is replaced", map[string]any{"p1": map[string]any{"img": "https://elsewhere/x.png"}}, "https://api/entity/product/p1/images"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTransformer(resolver{"s1": "c1"}, nil, "", zap.NewNop())
			got := tr.Transform([]json.RawMessage{json.RawMessage(apple)}, tt.existing)
			assert.Equal(t, tt.want, got["p1"].(reconcile.Fields)["img"])
		})
	}
}

func TestTransform_CustomCDNPrefix(t *testing.T) {
	tr := NewTransformer(nil, nil, "https://img.shop", zap.NewNop())
	existing := map[string]any{"p1": map[string]any{"img": "https://img.shop/p1.webp"}}

	got := tr.Transform([]json.RawMessage{json.RawMessage(apple)}, existing)
	assert.Equal(t, "https://img.shop/p1.webp", got["p1"].(reconcile.Fields)["img"])
	assert.Nil(t, got["p1"].(reconcile.Fields)["category_id"])
}

func TestPrice(t *testing.T) {
	tests := []struct {
		raw  string
		want any
	}{
		{`{"v": 12990}`, 129.9},
		{`{"v": 1}`, 0.01},
		{`{"v": 0}`, 0.0},
		{`{"v": null}`, nil},
		{`{}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, price(gjson.Get(tt.raw, "v")))
		})
	}
}

func TestFilterValid(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	rows := []json.RawMessage{
		json.RawMessage(apple),
		json.RawMessage(`{"id":"p3","name":"No folder","salePrices":[],"attributes":[],"images":{}}`),
	}

	valid := FilterValid(rows, zap.New(core))
	assert.Len(t, valid, 1)
	assert.Equal(t, 1, logs.FilterMessage("Invalid product data").Len())
}

func TestImageList(t *testing.T) {
	rows := []json.RawMessage{json.RawMessage(apple), json.RawMessage(`{"name":"no id"}`)}
	list := ImageList(rows, func(id string) string { return "https://api/entity/product/" + id + "/images" })

	require.Len(t, list, 1)
	assert.Equal(t, "p1", list[0].ProductID)
	assert.Equal(t, "https://api/entity/product/p1/images", list[0].ImageLink)
}
