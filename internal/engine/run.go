package engine

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/treegen/internal/loader"
	"github.com/leapstack-labs/treegen/internal/state"
	"github.com/leapstack-labs/treegen/pkg/dialect"
	"github.com/leapstack-labs/treegen/pkg/generator"
)

// TargetResult describes one rendered target.
type TargetResult struct {
	Target  Target
	Dialect string
	Hash    string
	Bytes   int
	// Changed is true when the output was (re)written.
	Changed  bool
	Duration time.Duration

	content []byte
}

// Report is the outcome of a Run.
type Report struct {
	RunID      string
	SchemaPath string
	SchemaHash string
	Results    []*TargetResult
	Duration   time.Duration
}

// Written returns the number of targets whose output changed.
func (r *Report) Written() int {
	n := 0
	for _, res := range r.Results {
		if res.Changed {
			n++
		}
	}
	return n
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Run generates every target using a two-phase approach:
// Phase 1: render all targets in memory (fail fast, nothing is written)
// Phase 2: write the outputs whose content changed
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	if len(e.cfg.Targets) == 0 {
		return nil, ErrNoTargets
	}

	loaded, err := loader.LoadFile(e.cfg.SchemaPath)
	if err != nil {
		return nil, err
	}
	e.logger.Info("starting run", "schema", loaded.Path, "targets", len(e.cfg.Targets))

	report := &Report{SchemaPath: loaded.Path, SchemaHash: loaded.Hash}

	var run *state.Run
	if e.store != nil {
		run, err = e.store.CreateRun(ctx, "generate", loaded.Path, loaded.Hash)
		if err != nil {
			return nil, fmt.Errorf("failed to create run: %w", err)
		}
		report.RunID = run.ID
		e.logger.Debug("created run", "run_id", run.ID)
	}

	// Phase 1
	results, err := e.render(ctx, loaded)
	if err == nil {
		// Phase 2
		err = e.writeOutputs(ctx, report.RunID, results)
	}
	report.Results = results
	report.Duration = time.Since(start)

	if run != nil {
		status, msg := state.RunStatusCompleted, ""
		if err != nil {
			status, msg = state.RunStatusFailed, err.Error()
		}
		if cerr := e.store.CompleteRun(ctx, run.ID, status, msg); cerr != nil {
			e.logger.Warn("failed to complete run", "run_id", run.ID, "error", cerr)
		}
	}

	if err != nil {
		e.logger.Info("run failed", "run_id", report.RunID, "error", err.Error())
		return report, err
	}
	e.logger.Info("run completed", "run_id", report.RunID, "written", report.Written(), "duration", report.Duration)
	return report, nil
}

// render generates every target concurrently. Targets share only the
// immutable schema.
func (e *Engine) render(ctx context.Context, loaded *loader.Result) ([]*TargetResult, error) {
	results := make([]*TargetResult, len(e.cfg.Targets))

	g, ctx := errgroup.WithContext(ctx)
	for i, target := range e.cfg.Targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := e.renderTarget(loaded, target)
			if err != nil {
				return fmt.Errorf("target %s (%s): %w", target.Dialect, target.Output, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Engine) renderTarget(loaded *loader.Result, target Target) (*TargetResult, error) {
	start := time.Now()
	d, err := dialect.Lookup(target.Dialect)
	if err != nil {
		return nil, err
	}

	opts := e.cfg.Options
	opts.Namespace = target.Namespace
	opts.Logger = e.logger.With("dialect", d.Name())

	gen, err := generator.New(loaded.Schema, d, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := gen.WriteTo(&buf); err != nil {
		return nil, err
	}

	return &TargetResult{
		Target:   target,
		Dialect:  d.Name(),
		Hash:     contentHash(buf.Bytes()),
		Bytes:    buf.Len(),
		Duration: time.Since(start),
		content:  buf.Bytes(),
	}, nil
}

func (e *Engine) writeOutputs(ctx context.Context, runID string, results []*TargetResult) error {
	for _, res := range results {
		if err := ctx.Err(); err != nil {
			return err
		}
		changed, err := e.writeOutput(res)
		if err != nil {
			return err
		}
		res.Changed = changed
		e.logger.Debug("target done", "dialect", res.Dialect, "output", res.Target.Output, "changed", changed)

		if e.store == nil || res.Target.Output == StdoutPath {
			continue
		}
		if err := e.store.RecordOutput(ctx, &state.Output{
			RunID:   runID,
			Dialect: res.Dialect,
			Path:    res.Target.Output,
			Hash:    res.Hash,
			Bytes:   int64(res.Bytes),
			Changed: changed,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) writeOutput(res *TargetResult) (bool, error) {
	if res.Target.Output == StdoutPath {
		if _, err := e.stdout.Write(res.content); err != nil {
			return false, fmt.Errorf("failed to write output: %w", err)
		}
		return true, nil
	}

	current, ok, err := fileHash(res.Target.Output)
	if err != nil {
		return false, err
	}
	if ok && current == res.Hash {
		return false, nil
	}
	if err := writeFileAtomic(res.Target.Output, res.content); err != nil {
		return false, err
	}
	return true, nil
}
