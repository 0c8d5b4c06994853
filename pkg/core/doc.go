// Package core defines the shared language of treegen.
//
// This package contains:
//   - The schema model (Schema, TypeDef, Field)
//   - Nullability policies and their token parsing
//   - The schema error taxonomy
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
