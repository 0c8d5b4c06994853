package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/treegen/internal/cli/config"
	"github.com/leapstack-labs/treegen/internal/cli/output"
	"github.com/leapstack-labs/treegen/internal/engine"
	"github.com/leapstack-labs/treegen/internal/state"
	"github.com/leapstack-labs/treegen/pkg/generator"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds the context for cmd from the config loaded by the
// root command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
	if cfg.NoColor {
		r.DisableColor()
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the loaded configuration, or defaults when the root
// command did not run (commands executed directly in tests).
func getConfig(ctx context.Context) *config.Config {
	if cfg, ok := config.FromContext(ctx); ok {
		return cfg
	}
	return &config.Config{
		Prefix:       config.DefaultPrefix,
		Indent:       config.DefaultIndent,
		StatePath:    config.DefaultStateFile,
		OutputFormat: config.DefaultOutput,
	}
}

// openStore opens the generation ledger, creating its directory.
func openStore(ctx context.Context, cfg *config.Config) (*state.SQLiteStore, error) {
	stateDir := filepath.Dir(cfg.StatePath)
	if stateDir != "." && stateDir != "" {
		if err := os.MkdirAll(stateDir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}
	store, err := state.OpenStore(ctx, cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}
	return store, nil
}

// generatorOptions maps the configured naming options onto the generator.
func generatorOptions(cfg *config.Config) generator.Options {
	o := cfg.GetOptions()
	return generator.Options{
		Prefix:          cfg.Prefix,
		Imports:         cfg.Imports,
		IndentWidth:     cfg.Indent,
		Header:          o.Header,
		KindEnum:        o.KindEnum,
		VisitorName:     o.VisitorName,
		WalkerName:      o.WalkerName,
		RewriterName:    o.RewriterName,
		DumperName:      o.DumperName,
		ProvenanceFlags: o.ProvenanceFlags,
		TypeVisitFields: o.TypeVisitFields,
	}
}

// engineConfig converts the CLI configuration into an engine configuration.
func engineConfig(cfg *config.Config) engine.Config {
	targets := make([]engine.Target, len(cfg.Targets))
	for i, t := range cfg.Targets {
		targets[i] = engine.Target{Dialect: t.Dialect, Output: t.Output, Namespace: t.Namespace}
	}
	return engine.Config{
		SchemaPath: cfg.Schema,
		Targets:    targets,
		Options:    generatorOptions(cfg),
	}
}

// newEngine validates cfg and creates an engine backed by the ledger.
// The returned cleanup closes the ledger.
func newEngine(cmd *cobra.Command, cmdCtx *CommandContext, useState bool) (*engine.Engine, func(), error) {
	if err := cmdCtx.Cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration:\n%w", err)
	}

	ecfg := engineConfig(cmdCtx.Cfg)
	ecfg.Stdout = cmd.OutOrStdout()

	if !useState {
		return engine.New(ecfg, cmdCtx.Logger, nil), func() {}, nil
	}
	store, err := openStore(cmd.Context(), cmdCtx.Cfg)
	if err != nil {
		return nil, nil, err
	}
	return engine.New(ecfg, cmdCtx.Logger, store), func() { _ = store.Close() }, nil
}
