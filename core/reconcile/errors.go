package reconcile

import (
	"errors"
	"fmt"
)

// ErrRunInProgress is returned when another instance holds the run lease.
var ErrRunInProgress = errors.New("synchronization already in progress")

// StorageWriteError reports a mirror write that failed mid-run.
// Batches committed before the failure stay committed.
type StorageWriteError struct {
	Phase    ActionType
	Batch    int
	FirstKey string
	LastKey  string
	Count    int
	Err      error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("%s batch %d failed (keys %s..%s, %d records): %v",
		e.Phase, e.Batch, e.FirstKey, e.LastKey, e.Count, e.Err)
}

func (e *StorageWriteError) Unwrap() error {
	return e.Err
}

func newWriteError(phase ActionType, batch int, actions []Action, err error) *StorageWriteError {
	we := &StorageWriteError{Phase: phase, Batch: batch, Count: len(actions), Err: err}
	if len(actions) > 0 {
		we.FirstKey = actions[0].Key
		we.LastKey = actions[len(actions)-1].Key
	}
	return we
}
