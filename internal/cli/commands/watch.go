package commands

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/treegen/internal/engine"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever the schema changes",
		Long: `Generate every target, then watch the schema file and regenerate on each
change. Errors are reported and the watch continues. Press Ctrl+C to stop.`,
		Example: `  treegen watch
  treegen watch --debounce 500ms`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			eng, cleanup, err := newEngine(cmd, cmdCtx, true)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			r := cmdCtx.Renderer
			r.Muted("Watching " + eng.SchemaPath())
			return eng.Watch(ctx, debounce, func(report *engine.Report, err error) {
				if err != nil {
					r.Error(err.Error())
					return
				}
				_ = renderReport(r, report)
			})
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", engine.DefaultDebounce, "Wait this long for the schema to settle")
	return cmd
}
