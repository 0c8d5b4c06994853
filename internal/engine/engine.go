// Package engine drives generation for a project: it loads the schema,
// renders every configured target and keeps the written outputs in sync.
package engine

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/leapstack-labs/treegen/internal/state"
	"github.com/leapstack-labs/treegen/pkg/generator"

	// Output dialects available to targets.
	_ "github.com/leapstack-labs/treegen/pkg/dialects/csharp"
	_ "github.com/leapstack-labs/treegen/pkg/dialects/vb"
)

// StdoutPath as a target output writes the unit to the engine's stdout.
const StdoutPath = "-"

// ErrNoTargets is returned when there is nothing to generate.
var ErrNoTargets = errors.New("no targets configured")

// Target is one generated unit.
type Target struct {
	// Dialect is a registered dialect name or alias.
	Dialect string
	// Output is an absolute file path, or StdoutPath.
	Output string
	// Namespace overrides the schema namespace for this target.
	Namespace string
}

// Config holds engine configuration.
type Config struct {
	// SchemaPath is the schema file to load.
	SchemaPath string
	// Targets are rendered in order; each is independent.
	Targets []Target
	// Options apply to every target. Namespace and Logger are set per target.
	Options generator.Options
	// Stdout receives targets whose output is StdoutPath (default os.Stdout).
	Stdout io.Writer
}

// Engine generates the configured targets.
type Engine struct {
	cfg    Config
	logger *slog.Logger
	// store is optional; without it no runs are recorded.
	store  state.Store
	stdout io.Writer
}

// New creates an engine. A nil logger discards and a nil store disables the ledger.
func New(cfg Config, logger *slog.Logger, store state.Store) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Engine{cfg: cfg, logger: logger, store: store, stdout: stdout}
}

// SchemaPath returns the schema file the engine loads.
func (e *Engine) SchemaPath() string { return e.cfg.SchemaPath }

// Targets returns the configured targets.
func (e *Engine) Targets() []Target { return e.cfg.Targets }
