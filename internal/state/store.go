// Package state records generation runs and their outputs in a SQLite ledger.
//
// The ledger answers two questions: what did the last run write to a path
// (so unchanged outputs are not rewritten), and what happened recently.
package state

import (
	"context"
	"errors"
	"time"
)

// ErrNotOpen is returned by store operations before Open.
var ErrNotOpen = errors.New("database not opened")

// ErrRunNotFound is returned when a run ID is unknown.
var ErrRunNotFound = errors.New("run not found")

// RunStatus is the state of a run.
type RunStatus string

// Run statuses.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one invocation of the generation engine.
type Run struct {
	ID          string
	Command     string
	SchemaPath  string
	SchemaHash  string
	Status      RunStatus
	StartedAt   time.Time
	CompletedAt *time.Time
	Error       string
}

// Duration returns how long the run took, or zero while it is running.
func (r *Run) Duration() time.Duration {
	if r.CompletedAt == nil {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

// Output is one generated unit written (or found current) during a run.
type Output struct {
	RunID     string
	Dialect   string
	Path      string
	Hash      string
	Bytes     int64
	Changed   bool
	CreatedAt time.Time
}

// Store is the ledger interface used by the engine.
type Store interface {
	CreateRun(ctx context.Context, command, schemaPath, schemaHash string) (*Run, error)
	CompleteRun(ctx context.Context, id string, status RunStatus, errMsg string) error
	GetRun(ctx context.Context, id string) (*Run, error)
	RecentRuns(ctx context.Context, limit int) ([]*Run, error)

	RecordOutput(ctx context.Context, o *Output) error
	OutputsForRun(ctx context.Context, runID string) ([]*Output, error)
	// LastOutputHash returns the most recently recorded hash for path.
	LastOutputHash(ctx context.Context, path string) (string, bool, error)

	Close() error
}

var _ Store = (*SQLiteStore)(nil)
