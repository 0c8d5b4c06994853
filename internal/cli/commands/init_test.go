package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/treegen/internal/cli/config"
	"github.com/leapstack-labs/treegen/internal/loader"
)

func TestNewInitCommand(t *testing.T) {
	tests := []struct {
		name      string
		setupDir  func(t *testing.T, dir string) // setup before running
		args      []string
		wantErr   error
		wantFiles []string
	}{
		{
			name:      "init empty directory",
			args:      []string{},
			wantFiles: []string{"treegen.yaml", "tree.yaml", ".gitignore"},
		},
		{
			name: "init existing config without force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, "treegen.yaml"), []byte("existing"), 0o600)
			},
			args:    []string{},
			wantErr: ErrAlreadyInitialized,
		},
		{
			name: "init existing config with force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, "treegen.yaml"), []byte("existing"), 0o600)
			},
			args:      []string{"--force"},
			wantFiles: []string{"treegen.yaml", "tree.yaml"},
		},
		{
			name:      "init into subdirectory",
			args:      []string{"compiler"},
			wantFiles: []string{"compiler/treegen.yaml", "compiler/tree.yaml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			t.Chdir(tmpDir)

			if tt.setupDir != nil {
				tt.setupDir(t, tmpDir)
			}

			cmd := NewInitCommand()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, buf.String(), "treegen project initialized!")

			for _, f := range tt.wantFiles {
				assert.FileExists(t, filepath.Join(tmpDir, filepath.FromSlash(f)))
			}
		})
	}
}

func TestInitCommandMetadata(t *testing.T) {
	cmd := NewInitCommand()

	assert.Equal(t, "init [directory]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("force"), "--force flag should exist")
}

func TestInitCreatesValidProject(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	cmd := NewInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	require.NoError(t, cmd.Execute())

	cfg, err := config.LoadConfig(filepath.Join(tmpDir, config.DefaultConfigFile), nil)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, filepath.Join(tmpDir, "tree.yaml"), cfg.Schema)
	require.Len(t, cfg.Targets, 2)

	loaded, err := loader.LoadFile(cfg.Schema)
	require.NoError(t, err)
	assert.Equal(t, "BoundNode", loaded.Schema.RootTypeName)

	// The generated project builds end to end.
	_, err = execute(t, NewGenerateCommand(), cfg, "--no-state")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(tmpDir, "Generated", "BoundNodes.cs"))
	assert.FileExists(t, filepath.Join(tmpDir, "Generated", "BoundNodes.vb"))
}

func TestListTemplateFiles(t *testing.T) {
	files, err := listTemplateFiles("starter")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{".gitignore", "tree.yaml", "treegen.yaml"}, files)
}
