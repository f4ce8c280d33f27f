package reconcile

import (
	"context"
	"time"
)

// Synchronize plans and applies a full reconciliation for the mutator's model.
// A failed remote pull returns before any mirror write. A failed write returns
// the partial report alongside the error.
func Synchronize(ctx context.Context, mutator Mutator, opts Options) (*Report, *Plan, error) {
	started := time.Now()

	plan, err := BuildPlan(ctx, mutator)
	if err != nil {
		return nil, nil, err
	}

	report, err := Apply(ctx, mutator, plan, opts)
	report.StartedAt = started
	report.FinishedAt = time.Now()
	report.DurationMs = report.FinishedAt.Sub(started).Milliseconds()

	return report, plan, err
}
