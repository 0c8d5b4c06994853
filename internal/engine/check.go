package engine

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/treegen/internal/loader"
)

// OutputState describes how a target's file relates to a fresh rendering.
type OutputState string

// Output states reported by Check.
const (
	StateCurrent OutputState = "current"
	StateStale   OutputState = "stale"
	StateMissing OutputState = "missing"
	// StateEdited means the file differs from both the fresh rendering and
	// the last output recorded in the ledger.
	StateEdited OutputState = "edited"
)

// TargetStatus is the Check result for one target.
type TargetStatus struct {
	Target  Target
	Dialect string
	State   OutputState
	Hash    string
	// OnDisk is the hash of the current file, empty when missing.
	OnDisk string
}

// CheckReport is the outcome of Check.
type CheckReport struct {
	SchemaPath string
	SchemaHash string
	Targets    []*TargetStatus
}

// Stale returns the targets that are not current.
func (r *CheckReport) Stale() []*TargetStatus {
	var out []*TargetStatus
	for _, t := range r.Targets {
		if t.State != StateCurrent {
			out = append(out, t)
		}
	}
	return out
}

// OK reports whether every target is current.
func (r *CheckReport) OK() bool { return len(r.Stale()) == 0 }

// Check renders every target in memory and compares it with the file on
// disk. Nothing is written.
func (e *Engine) Check(ctx context.Context) (*CheckReport, error) {
	if len(e.cfg.Targets) == 0 {
		return nil, ErrNoTargets
	}
	loaded, err := loader.LoadFile(e.cfg.SchemaPath)
	if err != nil {
		return nil, err
	}
	results, err := e.render(ctx, loaded)
	if err != nil {
		return nil, err
	}

	report := &CheckReport{SchemaPath: loaded.Path, SchemaHash: loaded.Hash}
	for _, res := range results {
		if res.Target.Output == StdoutPath {
			continue
		}
		st, err := e.checkTarget(ctx, res)
		if err != nil {
			return nil, err
		}
		e.logger.Debug("checked target", "output", res.Target.Output, "state", st.State)
		report.Targets = append(report.Targets, st)
	}
	return report, nil
}

func (e *Engine) checkTarget(ctx context.Context, res *TargetResult) (*TargetStatus, error) {
	st := &TargetStatus{Target: res.Target, Dialect: res.Dialect, Hash: res.Hash}

	onDisk, ok, err := fileHash(res.Target.Output)
	if err != nil {
		return nil, err
	}
	st.OnDisk = onDisk
	switch {
	case !ok:
		st.State = StateMissing
	case onDisk == res.Hash:
		st.State = StateCurrent
	default:
		st.State = StateStale
		if e.store != nil {
			last, recorded, err := e.store.LastOutputHash(ctx, res.Target.Output)
			if err != nil {
				return nil, fmt.Errorf("failed to check %s: %w", res.Target.Output, err)
			}
			if recorded && last != onDisk {
				st.State = StateEdited
			}
		}
	}
	return st, nil
}
