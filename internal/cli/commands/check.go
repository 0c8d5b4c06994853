package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/treegen/internal/cli/output"
	"github.com/leapstack-labs/treegen/internal/engine"
)

// ErrOutOfDate is returned by check when a target differs from a fresh rendering.
var ErrOutOfDate = errors.New("generated outputs are out of date")

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify generated outputs are up to date",
		Long: `Render every target in memory and compare it with the file on disk.

Nothing is written. The command fails when any output is missing, stale or
was edited by hand since the last recorded generation, which makes it
suitable for CI.`,
		Example: `  # Fail the build when generated code is stale
  treegen check

  # Machine-readable result
  treegen check --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd)
		},
	}
}

type checkJSON struct {
	OK      bool              `json:"ok"`
	Schema  string            `json:"schema"`
	Targets []checkTargetJSON `json:"targets"`
}

type checkTargetJSON struct {
	Dialect string `json:"dialect"`
	Output  string `json:"output"`
	State   string `json:"state"`
}

func runCheck(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	eng, cleanup, err := newEngine(cmd, cmdCtx, true)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := eng.Check(cmd.Context())
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		out := checkJSON{OK: report.OK(), Schema: report.SchemaPath, Targets: []checkTargetJSON{}}
		for _, t := range report.Targets {
			out.Targets = append(out.Targets, checkTargetJSON{Dialect: t.Dialect, Output: t.Target.Output, State: string(t.State)})
		}
		if err := r.JSON(out); err != nil {
			return err
		}
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Check Results"))
		r.Println("")
		for _, t := range report.Targets {
			r.Println(output.FormatKeyValue(t.Target.Output, fmt.Sprintf("%s (%s)", t.State, t.Dialect)))
		}
	default:
		for _, t := range report.Targets {
			status := "success"
			if t.State != engine.StateCurrent {
				status = "failed"
			}
			r.StatusLine(t.Target.Output, status, string(t.State))
		}
	}

	if stale := report.Stale(); len(stale) > 0 {
		return fmt.Errorf("%w: %d of %d target(s)\nHint: run 'treegen generate'", ErrOutOfDate, len(stale), len(report.Targets))
	}
	if r.EffectiveMode() == output.ModeText {
		r.Println("")
		r.Success("All generated outputs are up to date")
	}
	return nil
}
