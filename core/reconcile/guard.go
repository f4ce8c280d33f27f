package reconcile

import (
	"context"
	"errors"
	"fmt"

	"catalog-sync/core/lock"

	"golang.org/x/sync/singleflight"
)

// Guard serializes runs. Inside one process concurrent callers join the
// in-flight run and share its result. Across processes the locker decides.
type Guard struct {
	sf     singleflight.Group
	locker lock.Locker
}

// NewGuard creates a guard. A nil locker means in-process exclusion only.
func NewGuard(locker lock.Locker) *Guard {
	if locker == nil {
		locker = lock.NopLocker{}
	}
	return &Guard{locker: locker}
}

// Do runs fn under the guard for key. shared is true when the caller joined a
// run started by someone else.
func (g *Guard) Do(ctx context.Context, key string, fn func(context.Context) (*Report, error)) (report *Report, shared bool, err error) {
	result, err, shared := g.sf.Do(key, func() (interface{}, error) {
		lease, err := g.locker.TryLock(ctx, key)
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, ErrRunInProgress
		}
		if err != nil {
			return nil, fmt.Errorf("failed to acquire run lease: %w", err)
		}
		// Release must outlive a cancelled run context.
		defer func() { _ = lease.Release(context.WithoutCancel(ctx)) }()

		return fn(ctx)
	})

	// fn may return a partial report alongside its error
	if r, ok := result.(*Report); ok {
		report = r
	}
	return report, shared, err
}
