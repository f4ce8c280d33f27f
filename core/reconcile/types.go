package reconcile

import "time"

// RemoteItem is a record pulled from the source of truth.
// Adapters define the concrete type.
type RemoteItem any

// MirrorItem is a record held by the local mirror.
// Adapters define the concrete type.
type MirrorItem any

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionDelete removes a mirror record absent from the remote pull.
	ActionDelete ActionType = "delete"
	// ActionInsert creates a mirror record for a new remote record.
	ActionInsert ActionType = "insert"
	// ActionUpdate rewrites the mutable fields of a changed mirror record.
	ActionUpdate ActionType = "update"
)

// Action represents a planned mutation operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the entity identifier.
	Key string `json:"key"`

	// Item is the normalized record to write. Empty for deletes.
	Item MirrorItem `json:"-"`
}

// Plan contains the actions that converge the mirror to the remote pull.
// Deletes are sorted by key; inserts and updates keep pull order.
type Plan struct {
	// Adapter is the name of the adapter that produced the plan.
	Adapter string `json:"adapter"`

	// Deletes holds keys present in the mirror but absent remotely.
	Deletes []Action `json:"deletes"`

	// Inserts holds remote records missing from the mirror.
	Inserts []Action `json:"inserts"`

	// Updates holds records present on both sides whose normalized form differs.
	Updates []Action `json:"updates"`

	// SkippedKeys holds keys seen more than once in the same pull.
	SkippedKeys []string `json:"skipped_keys"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// RemoteCount is the number of distinct keys in the remote pull.
	RemoteCount int `json:"remote_count"`

	// MirrorCount is the number of records in the mirror before the run.
	MirrorCount int `json:"mirror_count"`

	// Inserts counts planned inserts.
	Inserts int `json:"inserts"`

	// Updates counts planned updates.
	Updates int `json:"updates"`

	// Deletes counts planned deletes.
	Deletes int `json:"deletes"`

	// Unchanged counts records present on both sides with no difference.
	Unchanged int `json:"unchanged"`

	// Skipped counts duplicate keys dropped from the pull.
	Skipped int `json:"skipped"`
}

// Report is the outcome of a synchronization run.
// On failure it holds the counts committed before the failing write.
type Report struct {
	Inserted    int       `json:"inserted"`
	Updated     int       `json:"updated"`
	Deleted     int       `json:"deleted"`
	Unchanged   int       `json:"unchanged"`
	Skipped     int       `json:"skipped"`
	RemoteCount int       `json:"remote_count"`
	MirrorCount int       `json:"mirror_count"`
	DurationMs  int64     `json:"duration_ms"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

// Options controls how a plan is applied.
type Options struct {
	// BatchSize is the number of records per insert batch.
	// Zero or negative falls back to DefaultBatchSize.
	BatchSize int

	// DryRun computes the plan without executing any mutation.
	DryRun bool
}

// DefaultBatchSize is the insert batch size used when Options leaves it unset.
const DefaultBatchSize = 50

func (o Options) batchSize() int {
	if o.BatchSize <= 0 {
		return DefaultBatchSize
	}
	return o.BatchSize
}
