// Package catalog wires the WooCommerce product catalog into the generic
// reconcile engine and exposes it to operators.
//
// # Components
//
//   - ProductAdapter: reconcile.Mutator over woocommerce.Client and store.Store.
//   - Service: guarded Synchronize, dry-run Plan, and read-only queries
//     (Stats, Products, Categories, History).
//   - Handler / Feature: fiber routes under /catalog, registered through the loader.
//   - Scheduler: robfig/cron trigger, daily at 04:00 by default.
//   - Archive: JSON sync reports in object storage with retention.
//   - Metrics: Prometheus counters for runs and written records.
//
// # Run semantics
//
// A run pulls the whole remote catalog before touching the mirror, so a failed
// or invalid page leaves the mirror exactly as it was. Writes then go delete,
// insert (batches of SyncConfig.InsertBatchSize), update. Concurrent triggers in
// one process share the in-flight run; with redis configured, a run on another
// instance makes Synchronize fail with reconcile.ErrRunInProgress.
package catalog
