package core

import "fmt"

// ErrorCode identifies a schema error category.
type ErrorCode string

// Error codes. All of them abort the current generation pass.
const (
	CodeSchemaReference    ErrorCode = "TG100"
	CodeFieldResolution    ErrorCode = "TG101"
	CodeNullabilityToken   ErrorCode = "TG102"
	CodeUnsupportedDialect ErrorCode = "TG103"
	CodeSchemaCycle        ErrorCode = "TG104"
)

// SchemaReferenceError is returned when a base type or field type names a type
// absent from the schema.
type SchemaReferenceError struct {
	TypeName  string
	Reference string
}

func (e *SchemaReferenceError) Error() string {
	if e.Reference == "" {
		return fmt.Sprintf("%s: type %q has no base type", e.Code(), e.TypeName)
	}
	return fmt.Sprintf("%s: type %q references unknown type %q", e.Code(), e.TypeName, e.Reference)
}

// Code returns the error code.
func (e *SchemaReferenceError) Code() ErrorCode { return CodeSchemaReference }

// FieldResolutionError is returned when a field lookup fails across the whole
// ancestor chain.
type FieldResolutionError struct {
	TypeName  string
	FieldName string
}

func (e *FieldResolutionError) Error() string {
	return fmt.Sprintf("%s: field %q not found in type %q or its base types", e.Code(), e.FieldName, e.TypeName)
}

// Code returns the error code.
func (e *FieldResolutionError) Code() ErrorCode { return CodeFieldResolution }

// NullabilityTokenError is returned for an explicit nullability annotation
// outside {Allow, Disallow, Always, NotApplicable}.
type NullabilityTokenError struct {
	TypeName  string
	FieldName string
	Token     string
}

func (e *NullabilityTokenError) Error() string {
	return fmt.Sprintf("%s: unexpected nullability %q on field %s.%s", e.Code(), e.Token, e.TypeName, e.FieldName)
}

// Code returns the error code.
func (e *NullabilityTokenError) Code() ErrorCode { return CodeNullabilityToken }

// UnsupportedDialectError is returned when the engine needs a construct the
// active dialect does not provide.
type UnsupportedDialectError struct {
	Dialect   string
	Construct string
}

func (e *UnsupportedDialectError) Error() string {
	return fmt.Sprintf("%s: dialect %q does not support %s", e.Code(), e.Dialect, e.Construct)
}

// Code returns the error code.
func (e *UnsupportedDialectError) Code() ErrorCode { return CodeUnsupportedDialect }

// SchemaCycleError is returned when a base-type chain loops back on itself.
type SchemaCycleError struct {
	TypeName string
}

func (e *SchemaCycleError) Error() string {
	return fmt.Sprintf("%s: base type chain of %q is cyclic", e.Code(), e.TypeName)
}

// Code returns the error code.
func (e *SchemaCycleError) Code() ErrorCode { return CodeSchemaCycle }
