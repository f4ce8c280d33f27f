package catalog

import (
	"context"
	"fmt"
	"strconv"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/catalog/store"
)

// RemoteCatalog is the source of truth for products.
type RemoteCatalog interface {
	FetchAll(ctx context.Context) ([]models.RemoteProduct, error)
	Count(ctx context.Context) (int, error)
}

// ProductAdapter implements reconcile.Mutator for WooCommerce products.
type ProductAdapter struct {
	remote RemoteCatalog
	store  *store.Store
}

// NewProductAdapter creates an adapter between the remote catalog and the mirror.
func NewProductAdapter(remote RemoteCatalog, st *store.Store) *ProductAdapter {
	return &ProductAdapter{remote: remote, store: st}
}

// Name returns the adapter name.
func (a *ProductAdapter) Name() string {
	return "products"
}

// LoadRemote pulls every remote product in pull order.
func (a *ProductAdapter) LoadRemote(ctx context.Context) ([]reconcile.RemoteItem, error) {
	products, err := a.remote.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]reconcile.RemoteItem, len(products))
	for i, p := range products {
		items[i] = p
	}
	return items, nil
}

// LoadMirror reads the whole mirror keyed by shop id.
func (a *ProductAdapter) LoadMirror(ctx context.Context) (map[string]reconcile.MirrorItem, error) {
	rows, err := a.store.All(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]reconcile.MirrorItem, len(rows))
	for _, row := range rows {
		index[formatID(row.ShopID)] = row
	}
	return index, nil
}

// ExtractRemoteKey returns the product id as a key.
func (a *ProductAdapter) ExtractRemoteKey(item reconcile.RemoteItem) string {
	return formatID(item.(models.RemoteProduct).ID)
}

// Normalize converts a remote product to its mirror row.
func (a *ProductAdapter) Normalize(item reconcile.RemoteItem) reconcile.MirrorItem {
	return models.ToMirrorRecord(item.(models.RemoteProduct))
}

// HasChanged compares a stored row with the normalized remote product.
func (a *ProductAdapter) HasChanged(existing reconcile.MirrorItem, incoming reconcile.RemoteItem) bool {
	p := incoming.(models.RemoteProduct)
	return models.HasChanged(existing.(models.MirrorProduct), models.ToMirrorRecord(p), p.Categories)
}

// Delete removes one row.
func (a *ProductAdapter) Delete(ctx context.Context, key string) error {
	return a.DeleteBatch(ctx, []string{key})
}

// DeleteBatch removes rows with one keyed delete.
func (a *ProductAdapter) DeleteBatch(ctx context.Context, keys []string) error {
	ids := make([]int64, 0, len(keys))
	for _, key := range keys {
		id, err := parseID(key)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	return a.store.DeleteByIDs(ctx, ids)
}

// Insert creates one row.
func (a *ProductAdapter) Insert(ctx context.Context, item reconcile.MirrorItem) error {
	return a.InsertBatch(ctx, []reconcile.MirrorItem{item})
}

// InsertBatch creates rows in one statement.
func (a *ProductAdapter) InsertBatch(ctx context.Context, items []reconcile.MirrorItem) error {
	rows := make([]models.MirrorProduct, len(items))
	for i, item := range items {
		rows[i] = item.(models.MirrorProduct)
	}
	return a.store.InsertBatch(ctx, rows)
}

// Update rewrites the mutable columns of one row.
func (a *ProductAdapter) Update(ctx context.Context, key string, item reconcile.MirrorItem) error {
	return a.store.Update(ctx, item.(models.MirrorProduct))
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func parseID(key string) (int64, error) {
	id, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid product key %q: %w", key, err)
	}
	return id, nil
}
