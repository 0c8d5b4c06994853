package commands

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/treegen/internal/cli/output"
	"github.com/leapstack-labs/treegen/internal/state"
)

type runJSON struct {
	ID         string       `json:"id"`
	Command    string       `json:"command"`
	Status     string       `json:"status"`
	Schema     string       `json:"schema"`
	SchemaHash string       `json:"schema_hash"`
	StartedAt  time.Time    `json:"started_at"`
	DurationMS int64        `json:"duration_ms"`
	Error      string       `json:"error,omitempty"`
	Outputs    []outputJSON `json:"outputs"`
}

type outputJSON struct {
	Dialect string `json:"dialect"`
	Path    string `json:"path"`
	Hash    string `json:"hash"`
	Changed bool   `json:"changed"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent generation runs",
		Long:  `Show recent runs recorded in the state ledger, newest first, with the outputs each run wrote.`,
		Example: `  treegen history
  treegen history --limit 5 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			store, err := openStore(cmd.Context(), cmdCtx.Cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := make([]runJSON, 0, len(runs))
			for _, run := range runs {
				outputs, err := store.OutputsForRun(cmd.Context(), run.ID)
				if err != nil {
					return err
				}
				out = append(out, toRunJSON(run, outputs))
			}
			return renderHistory(cmdCtx.Renderer, out)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show")
	return cmd
}

func toRunJSON(run *state.Run, outputs []*state.Output) runJSON {
	rj := runJSON{
		ID:         run.ID,
		Command:    run.Command,
		Status:     string(run.Status),
		Schema:     run.SchemaPath,
		SchemaHash: run.SchemaHash,
		StartedAt:  run.StartedAt,
		DurationMS: run.Duration().Milliseconds(),
		Error:      run.Error,
		Outputs:    make([]outputJSON, 0, len(outputs)),
	}
	for _, o := range outputs {
		rj.Outputs = append(rj.Outputs, outputJSON{Dialect: o.Dialect, Path: o.Path, Hash: o.Hash, Changed: o.Changed})
	}
	return rj
}

func renderHistory(r *output.Renderer, runs []runJSON) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(runs)
	}
	if len(runs) == 0 {
		r.Muted("No runs recorded yet")
		return nil
	}

	t := newTable(r.Writer())
	t.AppendHeader(table.Row{"Started", "Run", "Status", "Written", "Duration", "Error"})
	for _, run := range runs {
		written := 0
		for _, o := range run.Outputs {
			if o.Changed {
				written++
			}
		}
		t.AppendRow(table.Row{
			run.StartedAt.Local().Format(time.DateTime),
			shortID(run.ID),
			run.Status,
			fmt.Sprintf("%d/%d", written, len(run.Outputs)),
			(time.Duration(run.DurationMS) * time.Millisecond).String(),
			run.Error,
		})
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatHeader(1, "Recent Runs"))
		r.Println("")
		t.RenderMarkdown()
		return nil
	}
	t.Render()
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
