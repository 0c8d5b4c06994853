package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/treegen/internal/cli/config"
	"github.com/leapstack-labs/treegen/internal/cli/output"
	"github.com/leapstack-labs/treegen/internal/engine"
)

// generateOptions holds the one-off target flags.
type generateOptions struct {
	dialect   string
	out       string
	namespace string
	noState   bool
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate node classes and visitors from the schema",
		Long: `Generate the node classes, kind enumeration and visitor family for every
target in treegen.yaml.

Outputs are only rewritten when their content changes. Each run is recorded
in the state ledger (see 'treegen history').

Use --dialect to generate a single unit without a targets list. Without --out
the unit is written to stdout.`,
		Example: `  # Generate every configured target
  treegen generate

  # Print the VB unit for a schema
  treegen generate --schema tree.xml --dialect vb

  # Write one C# unit
  treegen generate --dialect csharp --out Generated/BoundNodes.cs`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dialect, "dialect", "d", "", "Generate a single target in this dialect")
	cmd.Flags().StringVar(&opts.out, "out", "", "Output file for --dialect (default: stdout)")
	cmd.Flags().StringVar(&opts.namespace, "namespace", "", "Namespace for --dialect")
	cmd.Flags().BoolVar(&opts.noState, "no-state", false, "Do not record the run in the state ledger")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	cmdCtx := NewCommandContext(cmd)
	if opts.dialect != "" {
		cmdCtx.Cfg.Targets = []config.TargetConfig{oneOffTarget(opts)}
	}

	eng, cleanup, err := newEngine(cmd, cmdCtx, !opts.noState)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := eng.Run(cmd.Context())
	if err != nil {
		return err
	}
	if opts.dialect != "" && opts.out == "" {
		// The unit itself went to stdout.
		return nil
	}
	return renderReport(cmdCtx.Renderer, report)
}

func oneOffTarget(opts *generateOptions) config.TargetConfig {
	out := engine.StdoutPath
	if opts.out != "" {
		if abs, err := filepath.Abs(opts.out); err == nil {
			out = abs
		} else {
			out = opts.out
		}
	}
	return config.TargetConfig{Dialect: opts.dialect, Output: out, Namespace: opts.namespace}
}

// reportJSON is the JSON shape of a generation report.
type reportJSON struct {
	RunID      string             `json:"run_id,omitempty"`
	Schema     string             `json:"schema"`
	SchemaHash string             `json:"schema_hash"`
	DurationMS int64              `json:"duration_ms"`
	Targets    []targetResultJSON `json:"targets"`
}

type targetResultJSON struct {
	Dialect string `json:"dialect"`
	Output  string `json:"output"`
	Hash    string `json:"hash"`
	Bytes   int    `json:"bytes"`
	Changed bool   `json:"changed"`
}

func renderReport(r *output.Renderer, report *engine.Report) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		out := reportJSON{
			RunID:      report.RunID,
			Schema:     report.SchemaPath,
			SchemaHash: report.SchemaHash,
			DurationMS: report.Duration.Milliseconds(),
			Targets:    make([]targetResultJSON, 0, len(report.Results)),
		}
		for _, res := range report.Results {
			out.Targets = append(out.Targets, targetResultJSON{
				Dialect: res.Dialect,
				Output:  res.Target.Output,
				Hash:    res.Hash,
				Bytes:   res.Bytes,
				Changed: res.Changed,
			})
		}
		return r.JSON(out)

	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Generation Results"))
		r.Println("")
		r.Println(output.FormatKeyValue("Schema", report.SchemaPath))
		if report.RunID != "" {
			r.Println(output.FormatKeyValue("Run", report.RunID))
		}
		r.Println(output.FormatKeyValue("Written", fmt.Sprintf("%d of %d", report.Written(), len(report.Results))))
		r.Println("")
		r.Println("| Dialect | Output | Bytes | Status |")
		r.Println("|---------|--------|-------|--------|")
		for _, res := range report.Results {
			r.Printf("| %s | %s | %d | %s |\n", res.Dialect, res.Target.Output, res.Bytes, changeLabel(res.Changed))
		}
		return nil

	default:
		for _, res := range report.Results {
			status := "skipped"
			if res.Changed {
				status = "success"
			}
			r.StatusLine(res.Target.Output, status, fmt.Sprintf("(%s, %d bytes, %s)", res.Dialect, res.Bytes, changeLabel(res.Changed)))
		}
		r.Println("")
		r.Success(fmt.Sprintf("Generated %d target(s), %d written in %s",
			len(report.Results), report.Written(), report.Duration.Round(time.Millisecond)))
		return nil
	}
}

func changeLabel(changed bool) string {
	if changed {
		return "written"
	}
	return "unchanged"
}
