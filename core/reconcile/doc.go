// Package reconcile provides a generic system for converging a local mirror onto
// a remote source of truth.
//
// A run pulls the full remote set, reads the whole mirror once, and derives the
// minimal set of writes that makes the mirror equal the pull.
//
// # Architecture
//
// The reconcile system consists of three main components:
//
// 1. Plan: BuildPlan indexes both sides by key and classifies every record as
//    insert, update, delete or unchanged. Duplicate keys within one pull are
//    skipped; the first occurrence wins.
//
// 2. Adapter: Model-specific implementations that define how to load each side,
//    extract keys, normalize remote records and detect changes. Adapters that can
//    write implement Mutator and may add BatchDeleter / BatchInserter.
//
// 3. Guard: serializes runs. Concurrent callers in one process join the
//    in-flight run through singleflight; a lock.Locker extends exclusion across
//    processes and surfaces ErrRunInProgress.
//
// # Write phases
//
// Apply executes deletes first (one keyed bulk delete when supported), then
// inserts in ascending batches that preserve pull order, then per-record
// updates. The first failing write stops the run with a *StorageWriteError that
// names the phase, batch index and key range; earlier batches stay committed,
// and re-running converges.
//
// # Usage Example
//
//	guard := reconcile.NewGuard(locker)
//	report, shared, err := guard.Do(ctx, "products", func(ctx context.Context) (*reconcile.Report, error) {
//	    report, _, err := reconcile.Synchronize(ctx, adapter, reconcile.Options{BatchSize: 50})
//	    return report, err
//	})
//
// # Creating Adapters
//
// To mirror a new model, implement Adapter (and Mutator) with model-specific
// logic for loading, keying and comparing records. See feature/catalog for the
// product adapter.
package reconcile
