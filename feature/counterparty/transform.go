package counterparty

import (
	"encoding/json"

	"catalog-mirror/core/reconcile"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Attribute names carrying supplier details.
const (
	AttrDeliveryPrice = "Стоимость доставки"
	AttrDeliveryTime  = "Срок доставки"
	AttrDescription   = "Описание поставщика"
	AttrLogoLink      = "Ссылка на логотип"
)

// Transform flattens counterparty rows into supplier records keyed by id.
// Missing delivery price or time stays nil; missing description, logo link or phone become "".
func Transform(rows []json.RawMessage, logger *zap.Logger) reconcile.Collection {
	out := make(reconcile.Collection, len(rows))
	for _, raw := range rows {
		row := gjson.ParseBytes(raw)
		id := row.Get("id").String()
		if id == "" {
			logger.Error("Invalid counterparty data", zap.String("row", string(raw)))
			continue
		}

		attrs := row.Get("attributes")
		out[id] = reconcile.Fields{
			"id":                 id,
			"name":               row.Get("name").String(),
			"phone":              row.Get("phone").String(),
			"delivery_price":     attribute(attrs, AttrDeliveryPrice, nil),
			"delivery_time_days": attribute(attrs, AttrDeliveryTime, nil),
			"description":        attribute(attrs, AttrDescription, ""),
			"logo_link":          attribute(attrs, AttrLogoLink, ""),
		}
	}
	return out
}

// attribute returns the value of the first attribute with the given name.
func attribute(attrs gjson.Result, name string, fallback any) any {
	for _, a := range attrs.Array() {
		if a.Get("name").String() == name {
			return a.Get("value").Value()
		}
	}
	return fallback
}
