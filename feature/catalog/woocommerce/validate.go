package woocommerce

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/models"

	"github.com/go-playground/validator/v10"
)

// newValidator reports field paths by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodePage normalizes, decodes and validates every record of a page.
// The first failing record rejects the page.
func (c *Client) decodePage(page int, raw []map[string]any) ([]models.RemoteProduct, error) {
	products := make([]models.RemoteProduct, 0, len(raw))

	for i, rec := range raw {
		if rec == nil {
			return nil, &ValidationError{Page: page, Index: i, Tag: "null"}
		}
		normalizeRecord(rec)
		id := utils.ToInt64(rec["id"])

		buf, err := json.Marshal(rec)
		if err != nil {
			return nil, &ValidationError{Page: page, Index: i, ProductID: id, Field: "", Tag: "encode"}
		}

		var p models.RemoteProduct
		if err := json.Unmarshal(buf, &p); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				return nil, &ValidationError{Page: page, Index: i, ProductID: id, Field: typeErr.Field, Tag: "type"}
			}
			return nil, &ValidationError{Page: page, Index: i, ProductID: id, Tag: "decode"}
		}

		if err := c.validate.Struct(p); err != nil {
			var fieldErrs validator.ValidationErrors
			if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
				fe := fieldErrs[0]
				return nil, &ValidationError{Page: page, Index: i, ProductID: p.ID, Field: fieldPath(fe.Namespace()), Tag: fe.Tag()}
			}
			return nil, &ValidationError{Page: page, Index: i, ProductID: p.ID, Tag: "invalid"}
		}

		products = append(products, p)
	}

	return products, nil
}

// fieldPath strips the struct name from a validator namespace.
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}
