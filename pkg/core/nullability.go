package core

import "strings"

// Nullability is the resolved null-handling policy of a field on a type.
type Nullability int

// Nullability policies.
const (
	// NullUnset means no explicit policy was declared.
	NullUnset Nullability = iota
	// NullAllow permits null values; no assertion is emitted.
	NullAllow
	// NullDisallow forbids null values; an assertion is emitted.
	NullDisallow
	// NullAlways means the field is always null and never a constructor parameter.
	NullAlways
	// NullNotApplicable is used for value types, which cannot be null.
	NullNotApplicable
)

// String returns the string representation of the policy.
func (n Nullability) String() string {
	switch n {
	case NullUnset:
		return "unset"
	case NullAllow:
		return "allow"
	case NullDisallow:
		return "disallow"
	case NullAlways:
		return "always"
	case NullNotApplicable:
		return "notapplicable"
	default:
		return "unknown"
	}
}

// ParseNullability converts a raw nullability token.
// Matching is case-insensitive. The empty token yields NullUnset.
// Returns false for tokens outside the closed set.
func ParseNullability(token string) (Nullability, bool) {
	switch strings.ToUpper(token) {
	case "":
		return NullUnset, true
	case "ALLOW":
		return NullAllow, true
	case "DISALLOW":
		return NullDisallow, true
	case "ALWAYS":
		return NullAlways, true
	case "NOTAPPLICABLE":
		return NullNotApplicable, true
	default:
		return NullUnset, false
	}
}
