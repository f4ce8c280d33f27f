package reconcile

import "context"

// Adapter defines the interface for model-specific reconciliation logic.
// Each adapter implements how to load, key, normalize and compare one model.
type Adapter interface {
	// Name returns the unique name of this adapter (e.g., "products").
	Name() string

	// LoadRemote pulls the full remote set in source order.
	// Any error aborts the run before a single write.
	LoadRemote(ctx context.Context) ([]RemoteItem, error)

	// LoadMirror reads every mirror record in one bulk read, indexed by key.
	LoadMirror(ctx context.Context) (map[string]MirrorItem, error)

	// ExtractRemoteKey returns the entity key of a remote record.
	ExtractRemoteKey(item RemoteItem) string

	// Normalize maps a remote record to its mirror form.
	Normalize(item RemoteItem) MirrorItem

	// HasChanged reports whether the stored record differs from the remote one.
	HasChanged(existing MirrorItem, incoming RemoteItem) bool
}

// Mutator is implemented by adapters that can write to the mirror.
type Mutator interface {
	Adapter

	// Delete removes one mirror record.
	Delete(ctx context.Context, key string) error

	// Insert creates one mirror record.
	Insert(ctx context.Context, item MirrorItem) error

	// Update rewrites every mutable field of one record in a single statement.
	Update(ctx context.Context, key string, item MirrorItem) error
}

// BatchDeleter is an optional Mutator extension for keyed bulk deletes.
type BatchDeleter interface {
	DeleteBatch(ctx context.Context, keys []string) error
}

// BatchInserter is an optional Mutator extension for multi-row inserts.
type BatchInserter interface {
	InsertBatch(ctx context.Context, items []MirrorItem) error
}
