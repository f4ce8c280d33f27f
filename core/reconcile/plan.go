package reconcile

import (
	"context"
	"fmt"
	"sort"
	"strconv"
)

// BuildPlan pulls the remote set, reads the mirror and computes the actions that
// converge the mirror. It does NOT execute anything; use Apply for that.
func BuildPlan(ctx context.Context, adapter Adapter) (*Plan, error) {
	remote, err := adapter.LoadRemote(ctx)
	if err != nil {
		return nil, err
	}

	mirror, err := adapter.LoadMirror(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load mirror: %w", err)
	}

	plan := &Plan{Adapter: adapter.Name()}

	// Index remote records; the first occurrence of a key wins
	seen := make(map[string]struct{}, len(remote))
	for _, item := range remote {
		key := adapter.ExtractRemoteKey(item)
		if _, dup := seen[key]; dup {
			plan.SkippedKeys = append(plan.SkippedKeys, key)
			continue
		}
		seen[key] = struct{}{}

		existing, ok := mirror[key]
		switch {
		case !ok:
			plan.Inserts = append(plan.Inserts, Action{Type: ActionInsert, Key: key, Item: adapter.Normalize(item)})
		case adapter.HasChanged(existing, item):
			plan.Updates = append(plan.Updates, Action{Type: ActionUpdate, Key: key, Item: adapter.Normalize(item)})
		default:
			plan.Summary.Unchanged++
		}
	}

	// Mirror keys absent from the pull
	for key := range mirror {
		if _, ok := seen[key]; !ok {
			plan.Deletes = append(plan.Deletes, Action{Type: ActionDelete, Key: key})
		}
	}
	sort.Slice(plan.Deletes, func(i, j int) bool {
		return keyLess(plan.Deletes[i].Key, plan.Deletes[j].Key)
	})

	plan.Summary.RemoteCount = len(seen)
	plan.Summary.MirrorCount = len(mirror)
	plan.Summary.Inserts = len(plan.Inserts)
	plan.Summary.Updates = len(plan.Updates)
	plan.Summary.Deletes = len(plan.Deletes)
	plan.Summary.Skipped = len(plan.SkippedKeys)

	return plan, nil
}

// Apply executes a plan in three phases: delete, insert, update.
// It stops at the first failing write and returns the counts committed so far
// together with a *StorageWriteError.
func Apply(ctx context.Context, mutator Mutator, plan *Plan, opts Options) (*Report, error) {
	report := &Report{
		Unchanged:   plan.Summary.Unchanged,
		Skipped:     plan.Summary.Skipped,
		RemoteCount: plan.Summary.RemoteCount,
		MirrorCount: plan.Summary.MirrorCount,
	}

	if opts.DryRun {
		return report, nil
	}

	deleted, err := applyDeletes(ctx, mutator, plan.Deletes)
	report.Deleted = deleted
	if err != nil {
		return report, err
	}

	inserted, err := applyInserts(ctx, mutator, plan.Inserts, opts.batchSize())
	report.Inserted = inserted
	if err != nil {
		return report, err
	}

	for i, action := range plan.Updates {
		if err := mutator.Update(ctx, action.Key, action.Item); err != nil {
			return report, newWriteError(ActionUpdate, i, plan.Updates[i:i+1], err)
		}
		report.Updated++
	}

	return report, nil
}

// applyDeletes uses a single keyed bulk delete when available.
func applyDeletes(ctx context.Context, mutator Mutator, actions []Action) (int, error) {
	if len(actions) == 0 {
		return 0, nil
	}

	if batchDeleter, ok := mutator.(BatchDeleter); ok {
		keys := make([]string, len(actions))
		for i, action := range actions {
			keys[i] = action.Key
		}
		if err := batchDeleter.DeleteBatch(ctx, keys); err != nil {
			return 0, newWriteError(ActionDelete, 0, actions, err)
		}
		return len(actions), nil
	}

	// Fallback to one-at-a-time
	for i, action := range actions {
		if err := mutator.Delete(ctx, action.Key); err != nil {
			return i, newWriteError(ActionDelete, i, actions[i:i+1], err)
		}
	}
	return len(actions), nil
}

// applyInserts writes batches in ascending order, preserving pull order.
func applyInserts(ctx context.Context, mutator Mutator, actions []Action, size int) (int, error) {
	batchInserter, ok := mutator.(BatchInserter)
	if !ok {
		// Fallback to one-at-a-time
		for i, action := range actions {
			if err := mutator.Insert(ctx, action.Item); err != nil {
				return i, newWriteError(ActionInsert, i, actions[i:i+1], err)
			}
		}
		return len(actions), nil
	}

	inserted := 0
	for batch, start := 0, 0; start < len(actions); batch, start = batch+1, start+size {
		end := min(start+size, len(actions))
		chunk := actions[start:end]

		items := make([]MirrorItem, len(chunk))
		for i, action := range chunk {
			items[i] = action.Item
		}
		if err := batchInserter.InsertBatch(ctx, items); err != nil {
			return inserted, newWriteError(ActionInsert, batch, chunk, err)
		}
		inserted += len(chunk)
	}
	return inserted, nil
}

// keyLess orders numeric keys numerically and everything else lexically.
func keyLess(a, b string) bool {
	ai, aErr := strconv.ParseInt(a, 10, 64)
	bi, bErr := strconv.ParseInt(b, 10, 64)
	if aErr == nil && bErr == nil {
		return ai < bi
	}
	return a < b
}
