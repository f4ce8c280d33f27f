package store

import (
	"context"
	"fmt"
	"strings"

	"catalog-sync/core/database"
	"catalog-sync/feature/catalog/models"

	"gorm.io/gorm"
)

// Store is the local mirror of the remote catalog.
type Store struct {
	db *gorm.DB
}

// New creates a store over an open connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Prepare creates or migrates the products table and verifies its columns.
func (s *Store) Prepare(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	if err := db.AutoMigrate(&models.MirrorProduct{}); err != nil {
		return fmt.Errorf("failed to migrate products table: %w", err)
	}

	table := models.MirrorProduct{}.TableName()
	missing, err := database.MissingColumns(db, table, models.RequiredColumns)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("table %s is missing columns: %s", table, strings.Join(missing, ", "))
	}
	return nil
}

// All reads every mirror row in one query, ordered by id.
func (s *Store) All(ctx context.Context) ([]models.MirrorProduct, error) {
	var rows []models.MirrorProduct
	if err := s.db.WithContext(ctx).Order("shop_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return rows, nil
}

// InsertBatch inserts rows in a single multi-row statement.
func (s *Store) InsertBatch(ctx context.Context, rows []models.MirrorProduct) error {
	if len(rows) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&rows).Error
}

// DeleteByIDs removes every row whose id is in ids with one keyed delete.
func (s *Store) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Where("shop_id IN ?", ids).Delete(&models.MirrorProduct{}).Error
}

// Update rewrites all mutable columns of one row in a single statement.
// Zero values are written too.
func (s *Store) Update(ctx context.Context, row models.MirrorProduct) error {
	return s.db.WithContext(ctx).
		Model(&models.MirrorProduct{ShopID: row.ShopID}).
		Select(models.MutableColumns).
		Updates(&row).Error
}

// Count returns the number of mirror rows.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.MirrorProduct{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}
