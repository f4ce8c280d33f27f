package models

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

var hundred = decimal.NewFromInt(100)

// ParsePrice converts a major-unit price string to integer minor units.
// An empty price falls back to regularPrice, then to "0". Half values round
// away from zero. Unparseable input yields 0.
func ParsePrice(price, regularPrice string) int64 {
	raw := strings.TrimSpace(price)
	if raw == "" {
		raw = strings.TrimSpace(regularPrice)
	}
	if raw == "" {
		return 0
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0
	}
	return d.Mul(hundred).Round(0).IntPart()
}

// SortCategories returns a copy of cats ordered by id ascending.
func SortCategories(cats []Category) []Category {
	sorted := make([]Category, len(cats))
	copy(sorted, cats)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// EncodeCategories serializes cats as a JSON array sorted by id.
// Equal sets always produce identical bytes.
func EncodeCategories(cats []Category) datatypes.JSON {
	raw, err := json.Marshal(SortCategories(cats))
	if err != nil {
		// Category holds only ints and strings
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(raw)
}

// DecodeCategories parses a stored category column. Empty input is an empty list.
func DecodeCategories(raw datatypes.JSON) ([]Category, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []Category{}, nil
	}
	var cats []Category
	if err := json.Unmarshal(raw, &cats); err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []Category{}
	}
	return cats, nil
}

// ToMirrorRecord maps a remote product to its mirror row.
func ToMirrorRecord(p RemoteProduct) MirrorProduct {
	downloadable := 0
	if p.Downloadable {
		downloadable = 1
	}
	return MirrorProduct{
		ShopID:       p.ID,
		Name:         p.Name,
		Price:        ParsePrice(p.Price, p.RegularPrice),
		Link:         p.Permalink,
		Categories:   EncodeCategories(p.Categories),
		Downloadable: downloadable,
	}
}
