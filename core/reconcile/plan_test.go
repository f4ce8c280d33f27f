package reconcile

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildPlan_Classification tests that every remote record lands in exactly one bucket.
func TestBuildPlan_Classification(t *testing.T) {
	adapter := &mockAdapter{
		remote: items("1", "a", "2", "B", "3", "c", "5", "e"),
		mirror: index("1", "a", "2", "b", "3", "old", "4", "d", "10", "x"),
	}

	plan, err := BuildPlan(context.Background(), adapter)
	require.NoError(t, err)

	assert.Equal(t, "mock", plan.Adapter)
	assert.Equal(t, PlanSummary{
		RemoteCount: 4,
		MirrorCount: 5,
		Inserts:     1,
		Updates:     1,
		Deletes:     2,
		Unchanged:   2,
	}, plan.Summary)

	require.Len(t, plan.Inserts, 1)
	assert.Equal(t, Action{Type: ActionInsert, Key: "5", Item: mockItem{key: "5", value: "e"}}, plan.Inserts[0])
	require.Len(t, plan.Updates, 1)
	assert.Equal(t, "3", plan.Updates[0].Key)

	// Numeric keys sort numerically
	assert.Equal(t, []string{"4", "10"}, []string{plan.Deletes[0].Key, plan.Deletes[1].Key})
}

// TestBuildPlan_InsertsKeepPullOrder tests that inserts are not re-sorted.
func TestBuildPlan_InsertsKeepPullOrder(t *testing.T) {
	adapter := &mockAdapter{
		remote: items("9", "a", "3", "b", "7", "c"),
		mirror: index(),
	}

	plan, err := BuildPlan(context.Background(), adapter)
	require.NoError(t, err)

	keys := make([]string, 0, len(plan.Inserts))
	for _, action := range plan.Inserts {
		keys = append(keys, action.Key)
	}
	assert.Equal(t, []string{"9", "3", "7"}, keys)
}

// TestBuildPlan_DuplicateKeysSkipped tests that the first occurrence of a key wins.
func TestBuildPlan_DuplicateKeysSkipped(t *testing.T) {
	adapter := &mockAdapter{
		remote: items("1", "first", "2", "b", "1", "second"),
		mirror: index(),
	}

	plan, err := BuildPlan(context.Background(), adapter)
	require.NoError(t, err)

	assert.Equal(t, []string{"1"}, plan.SkippedKeys)
	assert.Equal(t, 1, plan.Summary.Skipped)
	assert.Equal(t, 2, plan.Summary.RemoteCount)
	require.Len(t, plan.Inserts, 2)
	assert.Equal(t, mockItem{key: "1", value: "first"}, plan.Inserts[0].Item)
}

// TestBuildPlan_LoadErrors tests that load failures abort planning.
func TestBuildPlan_LoadErrors(t *testing.T) {
	tests := []struct {
		name      string
		remoteErr error
		mirrorErr error
		expectErr string
	}{
		{
			name:      "Remote load error",
			remoteErr: errors.New("page 2: timeout"),
			expectErr: "page 2: timeout",
		},
		{
			name:      "Mirror load error",
			mirrorErr: errors.New("no such table"),
			expectErr: "failed to load mirror: no such table",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := &mockAdapter{
				remoteErr: tt.remoteErr,
				mirrorErr: tt.mirrorErr,
				mirror:    index(),
			}

			plan, err := BuildPlan(context.Background(), adapter)
			assert.Nil(t, plan)
			assert.EqualError(t, err, tt.expectErr)
		})
	}
}

// TestApply_PhaseOrder tests that deletes precede inserts and inserts precede updates.
func TestApply_PhaseOrder(t *testing.T) {
	mutator := &mockMutator{mockAdapter: mockAdapter{
		remote: items("1", "changed", "3", "new"),
		mirror: index("1", "a", "2", "gone"),
	}}

	plan, err := BuildPlan(context.Background(), mutator)
	require.NoError(t, err)

	report, err := Apply(context.Background(), mutator, plan, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"delete:2", "insert:3", "update:1"}, mutator.calls)
	assert.Equal(t, 1, report.Deleted)
	assert.Equal(t, 1, report.Inserted)
	assert.Equal(t, 1, report.Updated)
}

// TestApply_DryRun tests that dry runs execute nothing.
func TestApply_DryRun(t *testing.T) {
	mutator := &mockMutator{mockAdapter: mockAdapter{
		remote: items("1", "changed", "3", "new"),
		mirror: index("1", "a", "2", "gone"),
	}}

	plan, err := BuildPlan(context.Background(), mutator)
	require.NoError(t, err)

	report, err := Apply(context.Background(), mutator, plan, Options{DryRun: true})
	require.NoError(t, err)

	assert.Empty(t, mutator.calls)
	assert.Zero(t, report.Inserted+report.Updated+report.Deleted)
	assert.Equal(t, 2, report.RemoteCount)
}

// TestApply_UsesBatchMethods tests that batch methods are used when available.
func TestApply_UsesBatchMethods(t *testing.T) {
	remote := make([]string, 0, 240)
	for i := 1; i <= 120; i++ {
		remote = append(remote, fmt.Sprintf("%d", i), "v")
	}
	mutator := &mockBatchMutator{mockMutator: mockMutator{mockAdapter: mockAdapter{
		remote: items(remote...),
		mirror: index("500", "x", "501", "y", "502", "z"),
	}}}

	plan, err := BuildPlan(context.Background(), mutator)
	require.NoError(t, err)

	report, err := Apply(context.Background(), mutator, plan, Options{BatchSize: 50})
	require.NoError(t, err)

	// Single keyed delete, never per-row
	require.Len(t, mutator.deleteBatches, 1)
	assert.Equal(t, []string{"500", "501", "502"}, mutator.deleteBatches[0])
	assert.Empty(t, mutator.deleted)

	// 120 inserts in ascending batches of 50
	require.Len(t, mutator.insertBatches, 3)
	assert.Len(t, mutator.insertBatches[0], 50)
	assert.Len(t, mutator.insertBatches[1], 50)
	assert.Len(t, mutator.insertBatches[2], 20)
	assert.Equal(t, "1", mutator.insertBatches[0][0])
	assert.Equal(t, "51", mutator.insertBatches[1][0])
	assert.Equal(t, "120", mutator.insertBatches[2][19])
	assert.Empty(t, mutator.inserted)

	assert.Equal(t, 120, report.Inserted)
	assert.Equal(t, 3, report.Deleted)
}

// TestApply_DefaultBatchSize tests the fallback batch size.
func TestApply_DefaultBatchSize(t *testing.T) {
	remote := make([]string, 0, 120)
	for i := 1; i <= 60; i++ {
		remote = append(remote, fmt.Sprintf("%d", i), "v")
	}
	mutator := &mockBatchMutator{mockMutator: mockMutator{mockAdapter: mockAdapter{
		remote: items(remote...),
		mirror: index(),
	}}}

	plan, err := BuildPlan(context.Background(), mutator)
	require.NoError(t, err)

	_, err = Apply(context.Background(), mutator, plan, Options{})
	require.NoError(t, err)

	require.Len(t, mutator.insertBatches, 2)
	assert.Len(t, mutator.insertBatches[0], DefaultBatchSize)
}

// TestApply_InsertBatchFailure tests that committed batches stand and the error carries the range.
func TestApply_InsertBatchFailure(t *testing.T) {
	remote := make([]string, 0, 240)
	for i := 1; i <= 120; i++ {
		remote = append(remote, fmt.Sprintf("%d", i), "v")
	}
	cause := errors.New("disk full")
	mutator := &mockBatchMutator{
		mockMutator: mockMutator{
			mockAdapter: mockAdapter{remote: items(remote...), mirror: index("1", "v")},
			failOn:      "insert_batch",
			failError:   cause,
		},
		failBatch: 1,
	}

	plan, err := BuildPlan(context.Background(), mutator)
	require.NoError(t, err)

	report, err := Apply(context.Background(), mutator, plan, Options{BatchSize: 50})
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)

	var writeErr *StorageWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, ActionInsert, writeErr.Phase)
	assert.Equal(t, 1, writeErr.Batch)
	assert.Equal(t, "52", writeErr.FirstKey)
	assert.Equal(t, "101", writeErr.LastKey)
	assert.Equal(t, 50, writeErr.Count)
	assert.Equal(t, "insert batch 1 failed (keys 52..101, 50 records): disk full", writeErr.Error())

	// First batch committed, updates never attempted
	assert.Equal(t, 50, report.Inserted)
	assert.Len(t, mutator.insertBatches, 1)
	assert.Zero(t, report.Updated)
}

// TestApply_UpdateFailure tests that an update failure stops the update phase.
func TestApply_UpdateFailure(t *testing.T) {
	mutator := &mockMutator{
		mockAdapter: mockAdapter{
			remote: items("1", "x", "2", "y", "3", "z"),
			mirror: index("1", "a", "2", "b", "3", "c"),
		},
		failOn:    "update:2",
		failError: errors.New("deadlock"),
	}

	plan, err := BuildPlan(context.Background(), mutator)
	require.NoError(t, err)

	report, err := Apply(context.Background(), mutator, plan, Options{})
	var writeErr *StorageWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, ActionUpdate, writeErr.Phase)
	assert.Equal(t, "2", writeErr.FirstKey)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, []string{"1"}, mutator.updated)
}

// TestApply_DeleteFallbackFailure tests the one-at-a-time delete path.
func TestApply_DeleteFallbackFailure(t *testing.T) {
	mutator := &mockMutator{
		mockAdapter: mockAdapter{
			remote: items(),
			mirror: index("1", "a", "2", "b"),
		},
		failOn:    "delete:2",
		failError: errors.New("locked"),
	}

	plan, err := BuildPlan(context.Background(), mutator)
	require.NoError(t, err)

	report, err := Apply(context.Background(), mutator, plan, Options{})
	var writeErr *StorageWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, ActionDelete, writeErr.Phase)
	assert.Equal(t, 1, report.Deleted)
	assert.NotContains(t, mutator.calls, "insert:1")
}

func TestKeyLess(t *testing.T) {
	assert.True(t, keyLess("9", "10"))
	assert.False(t, keyLess("10", "9"))
	assert.True(t, keyLess("a", "b"))
	assert.True(t, keyLess("10", "a"))
}
