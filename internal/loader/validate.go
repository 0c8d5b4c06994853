package loader

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/treegen/pkg/core"
)

// ValidationError is a structural problem in a schema file.
type ValidationError struct {
	File    string
	Type    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		b.WriteString(": ")
	}
	switch {
	case e.Type != "" && e.Field != "":
		fmt.Fprintf(&b, "%s.%s: ", e.Type, e.Field)
	case e.Type != "":
		fmt.Fprintf(&b, "%s: ", e.Type)
	}
	b.WriteString(e.Message)
	return b.String()
}

// ValidationErrors collects every problem found in one schema.
type ValidationErrors []*ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Validate checks names and uniqueness. Base references, nullability tokens
// and field types are checked later by the resolver.
func Validate(s *core.Schema) error {
	var errs ValidationErrors
	add := func(typ, field, format string, args ...any) {
		errs = append(errs, &ValidationError{Type: typ, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if s.RootTypeName == "" {
		add("", "", "root type name is required")
	}

	types := make(map[string]bool, len(s.Types))
	for i, t := range s.Types {
		if t.Name == "" {
			add("", "", "type #%d has no name", i+1)
			continue
		}
		if types[t.Name] {
			add(t.Name, "", "duplicate type name")
		}
		types[t.Name] = true

		if !t.IsNode() && len(t.Fields) > 0 {
			add(t.Name, "", "%s types cannot declare fields", t.Variant)
		}

		fields := make(map[string]bool, len(t.Fields))
		for j, f := range t.Fields {
			if f.Name == "" {
				add(t.Name, "", "field #%d has no name", j+1)
				continue
			}
			if fields[f.Name] {
				add(t.Name, f.Name, "duplicate field name")
			}
			fields[f.Name] = true
			if f.Type == "" {
				add(t.Name, f.Name, "field type is required")
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
