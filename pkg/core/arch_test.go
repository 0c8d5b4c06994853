package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// packageImports returns the imports of every non-test Go file in dir, keyed by file name.
func packageImports(t *testing.T, dir string) map[string][]string {
	t.Helper()
	fset := token.NewFileSet()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read directory %s: %v", dir, err)
	}

	result := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
			continue
		}
		if strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", path, err)
			continue
		}
		for _, imp := range f.Imports {
			result[entry.Name()] = append(result[entry.Name()], strings.Trim(imp.Path.Value, `"`))
		}
	}
	return result
}

// TestCoreImportsOnlyStdlib verifies pkg/core has no dependencies outside the standard library.
func TestCoreImportsOnlyStdlib(t *testing.T) {
	for file, imports := range packageImports(t, ".") {
		for _, importPath := range imports {
			// Stdlib paths have no dot in their first element
			if !strings.Contains(strings.SplitN(importPath, "/", 2)[0], ".") {
				continue
			}
			t.Errorf("%s imports non-stdlib package: %s", file, importPath)
		}
	}
}

// TestGeneratorDoesNotImportConcreteDialects verifies the emission engine only
// talks to dialects through the dialect interface.
func TestGeneratorDoesNotImportConcreteDialects(t *testing.T) {
	for file, imports := range packageImports(t, filepath.Join("..", "generator")) {
		for _, importPath := range imports {
			if strings.Contains(importPath, "/pkg/dialects/") {
				t.Errorf("generator/%s imports concrete dialect %s", file, importPath)
			}
		}
	}
}
