// Package store implements the local mirror on GORM.
//
// The mirror is a single 'products' table keyed by the remote product id
// (shop_id). The sync engine is its only writer: InsertBatch issues one
// multi-row INSERT per batch, DeleteByIDs one keyed DELETE ... IN, and Update
// one UPDATE of every mutable column. All reads the whole table at once.
//
// Prepare auto-migrates the table and then checks the live schema through
// database.MissingColumns, so a hand-made table lacking a column fails fast
// instead of mid-sync.
package store
