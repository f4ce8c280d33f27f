package models

import (
	"gorm.io/datatypes"
)

// MirrorProduct represents the local 'products' table.
// ShopID equals the WooCommerce product id and is never generated locally.
type MirrorProduct struct {
	ShopID       int64          `gorm:"column:shop_id;primaryKey;autoIncrement:false" json:"shop_id"`
	Name         string         `gorm:"column:name;not null" json:"name"`
	Price        int64          `gorm:"column:price;not null;default:0" json:"price"` // minor units
	Link         string         `gorm:"column:link;not null" json:"link"`
	Categories   datatypes.JSON `gorm:"column:categories" json:"categories"`
	Downloadable int            `gorm:"column:downloadable;not null;default:0" json:"downloadable"` // 0 or 1
}

// TableName overrides the table name.
func (MirrorProduct) TableName() string {
	return "products"
}

// MutableColumns lists the columns an update rewrites.
var MutableColumns = []string{"name", "price", "link", "categories", "downloadable"}

// RequiredColumns lists every column the sync engine reads or writes.
var RequiredColumns = append([]string{"shop_id"}, MutableColumns...)

// ProductView is a mirror row with its categories decoded, as served over HTTP.
type ProductView struct {
	ShopID       int64      `json:"shop_id"`
	Name         string     `json:"name"`
	Price        int64      `json:"price"`
	Link         string     `json:"link"`
	Categories   []Category `json:"categories"`
	Downloadable bool       `json:"downloadable"`
}

// ToView decodes the stored categories. An unreadable column yields no categories.
func (m MirrorProduct) ToView() ProductView {
	cats, err := DecodeCategories(m.Categories)
	if err != nil {
		cats = []Category{}
	}
	return ProductView{
		ShopID:       m.ShopID,
		Name:         m.Name,
		Price:        m.Price,
		Link:         m.Link,
		Categories:   cats,
		Downloadable: m.Downloadable == 1,
	}
}
