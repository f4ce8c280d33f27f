package models

// Category is a product category as exposed by WooCommerce and stored in the mirror.
type Category struct {
	ID   int64  `json:"id" validate:"required,gt=0"`
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug" validate:"required"`
}

// Tag is a product tag. Passed through, never mirrored.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Image is a product image. Passed through, never mirrored.
type Image struct {
	ID          int64  `json:"id"`
	Src         string `json:"src"`
	Name        string `json:"name"`
	Alt         string `json:"alt"`
	DateCreated string `json:"date_created"`
}

// RemoteProduct is one record of the WooCommerce products endpoint.
// Only ID, Name, Permalink, Price, RegularPrice, Categories and Downloadable
// feed the mirror; the rest is carried for callers that want it.
type RemoteProduct struct {
	ID               int64      `json:"id" validate:"required,gt=0"`
	Name             string     `json:"name"`
	Slug             string     `json:"slug"`
	Permalink        string     `json:"permalink"`
	Type             string     `json:"type" validate:"omitempty,oneof=simple grouped external variable"`
	Status           string     `json:"status" validate:"omitempty,oneof=draft pending private publish future trash"`
	Featured         bool       `json:"featured"`
	Description      string     `json:"description"`
	ShortDescription string     `json:"short_description"`
	SKU              string     `json:"sku"`
	Price            string     `json:"price" validate:"omitempty,numeric"`
	RegularPrice     string     `json:"regular_price" validate:"omitempty,numeric"`
	SalePrice        string     `json:"sale_price" validate:"omitempty,numeric"`
	OnSale           bool       `json:"on_sale"`
	Purchasable      bool       `json:"purchasable"`
	TotalSales       int64      `json:"total_sales"`
	Virtual          bool       `json:"virtual"`
	Downloadable     bool       `json:"downloadable"`
	StockQuantity    int64      `json:"stock_quantity"`
	StockStatus      string     `json:"stock_status"`
	DateCreated      string     `json:"date_created"`
	DateModified     string     `json:"date_modified"`
	ParentID         int64      `json:"parent_id"`
	Categories       []Category `json:"categories" validate:"dive"`
	Tags             []Tag      `json:"tags"`
	Images           []Image    `json:"images"`
	RelatedIDs       []int64    `json:"related_ids"`
}
