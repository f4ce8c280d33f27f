package woocommerce

import (
	"encoding/json"

	"catalog-sync/core/utils"
)

var (
	stringFields = []string{
		"name", "slug", "permalink", "type", "status", "description", "short_description",
		"sku", "stock_status", "date_created", "date_modified",
		"price", "regular_price", "sale_price",
	}
	boolFields  = []string{"featured", "on_sale", "purchasable", "virtual", "downloadable"}
	intFields   = []string{"total_sales", "stock_quantity", "parent_id"}
	arrayFields = []string{"categories", "tags", "images", "related_ids"}
)

// normalizeRecord replaces missing or null fields with safe defaults and coerces
// scalars sent with the wrong JSON type. The id and category entries are left
// untouched so that validation sees them exactly as received.
func normalizeRecord(rec map[string]any) {
	for _, f := range stringFields {
		if isScalar(rec[f]) {
			rec[f] = utils.ToString(rec[f])
		}
	}
	for _, f := range boolFields {
		if isScalar(rec[f]) {
			rec[f] = utils.ToBool(rec[f])
		}
	}
	for _, f := range intFields {
		if isScalar(rec[f]) {
			rec[f] = utils.ToInt64(rec[f])
		}
	}
	for _, f := range arrayFields {
		if rec[f] == nil {
			rec[f] = []any{}
		}
	}
}

// isScalar reports whether v is nil or a JSON scalar.
// Objects and arrays are left for the decoder to reject.
func isScalar(v any) bool {
	switch v.(type) {
	case nil, string, bool, float64, json.Number:
		return true
	default:
		return false
	}
}
