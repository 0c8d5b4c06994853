package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/treegen/internal/cli/config"
	"github.com/leapstack-labs/treegen/internal/cli/output"
)

// ErrAlreadyInitialized is returned by init when a config file exists.
var ErrAlreadyInitialized = errors.New("treegen.yaml already exists")

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new treegen project",
		Long: `Initialize a new treegen project with a configuration file and an example schema.

This creates:
  - treegen.yaml with C# and VB targets
  - tree.yaml, a small expression tree schema
  - .gitignore excluding the state ledger`,
		Example: `  # Initialize in current directory
  treegen init

  # Initialize in a new directory
  treegen init compiler

  # Force overwrite existing files
  treegen init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(NewCommandContext(cmd).Renderer, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}

func runInit(r *output.Renderer, dir string, force bool) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, config.DefaultConfigFile)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%w. Use --force to overwrite", ErrAlreadyInitialized)
	}

	files, err := copyTemplate("starter", dir, force)
	if err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}
	for _, f := range files {
		r.StatusLine(f, "success", "")
	}

	r.Println("")
	r.Success("treegen project initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Describe your node types in tree.yaml")
	r.Println("  2. Run 'treegen describe' to inspect the resolved hierarchy")
	r.Println("  3. Run 'treegen generate' to write the targets")
	r.Println("  4. Run 'treegen check' in CI to catch stale outputs")
	return nil
}
