package generator

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/treegen/pkg/dialect"
)

// StripPrefix removes prefix from the start of name, if present.
func StripPrefix(name, prefix string) string {
	return strings.TrimPrefix(name, prefix)
}

// LowerFirst lower-cases the first letter of name when it is upper case.
func LowerFirst(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 || !unicode.IsUpper(r) {
		return name
	}
	return string(unicode.ToLower(r)) + name[size:]
}

// ToCamelCase turns a property name into a parameter or local name, escaping
// the result when it is a reserved word of the dialect.
func ToCamelCase(d dialect.Dialect, name string) string {
	return d.EscapeIdentifier(LowerFirst(name))
}

func call(fn string, args ...string) string {
	return fn + "(" + strings.Join(args, ", ") + ")"
}

func member(target, name string) string {
	return target + "." + name
}
