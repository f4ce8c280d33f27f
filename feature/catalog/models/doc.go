// Package models defines the catalog records on both sides of a sync and the
// pure functions between them.
//
// RemoteProduct mirrors the WooCommerce products endpoint. MirrorProduct is the
// local 'products' row. ToMirrorRecord normalizes one into the other: prices
// become integer minor units through shopspring/decimal, categories become a
// canonical id-sorted JSON array, and the downloadable flag becomes 0/1.
//
// HasChanged and CategoriesChanged decide whether a stored row needs an update.
// Category lists compare as sets keyed by id, so ordering never counts.
package models
