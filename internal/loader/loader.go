// Package loader reads node-tree schemas from schema files.
//
// Two formats are accepted: YAML (.yaml, .yml) and the legacy markup form
// (.xml) with Tree/AbstractNode/Node/Field elements. Both produce the same
// core.Schema and pass the same structural validation.
package loader

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/treegen/pkg/core"
)

// Format identifies a schema file format.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatXML  Format = "xml"
)

// ErrUnsupportedFormat is returned for files whose extension names no known format.
var ErrUnsupportedFormat = errors.New("unsupported schema format")

// FormatOf returns the format implied by a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".xml":
		return FormatXML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// Result is a loaded schema together with the content hash of its source.
type Result struct {
	Schema *core.Schema
	Path   string
	Hash   string
}

// LoadFile reads, parses and validates the schema at path.
func LoadFile(path string) (*Result, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	schema, err := Parse(data, format)
	if err != nil {
		return nil, withFile(err, path)
	}
	return &Result{Schema: schema, Path: path, Hash: Hash(data)}, nil
}

// Parse decodes and validates schema content in the given format.
func Parse(data []byte, format Format) (*core.Schema, error) {
	var (
		schema *core.Schema
		err    error
	)
	switch format {
	case FormatYAML:
		schema, err = parseYAML(data)
	case FormatXML:
		schema, err = parseXML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	if err := Validate(schema); err != nil {
		return nil, err
	}
	return schema, nil
}

// Hash returns the hex SHA-256 of schema content.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// parseBool accepts "true" in any case; everything else is false.
func parseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

// withFile attaches the file name to validation errors and wraps anything else.
func withFile(err error, path string) error {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		for _, v := range verrs {
			v.File = path
		}
		return verrs
	}
	return fmt.Errorf("failed to parse schema %s: %w", path, err)
}
