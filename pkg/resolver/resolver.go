// Package resolver derives inheritance, field and nullability facts from a schema.
//
// Every query is a pure function of the schema and the dialect's type syntax.
// A Resolver is safe for concurrent use once built.
package resolver

import (
	"iter"

	"github.com/leapstack-labs/treegen/pkg/core"
	"github.com/leapstack-labs/treegen/pkg/dialect"
)

// Resolver answers derived questions about one schema.
type Resolver struct {
	schema *core.Schema
	syntax dialect.TypeSyntax

	// bases maps every node-tree type name to its base type name.
	// The root maps to "".
	bases map[string]string
	// derived counts how many types name the key as their base.
	derived map[string]int
	// values is the set of value-like type names (schema value types,
	// enums, dialect primitives and array-value wrappers).
	values map[string]struct{}
	types  map[string]*core.TypeDef
}

// New builds a Resolver. It fails when a base type reference is unknown or
// when a base chain is cyclic.
func New(schema *core.Schema, syntax dialect.TypeSyntax) (*Resolver, error) {
	r := &Resolver{
		schema:  schema,
		syntax:  syntax,
		bases:   make(map[string]string, len(schema.Types)+1),
		derived: make(map[string]int),
		values:  make(map[string]struct{}),
		types:   make(map[string]*core.TypeDef, len(schema.Types)),
	}

	for _, t := range schema.Types {
		r.types[t.Name] = t
		switch t.Variant {
		case core.VariantValueType, core.VariantEnumType:
			r.values[t.Name] = struct{}{}
		default:
			r.bases[t.Name] = t.BaseTypeName
		}
	}
	r.bases[schema.RootTypeName] = ""
	for _, name := range syntax.PrimitiveValueTypes() {
		r.values[name] = struct{}{}
	}

	for _, t := range schema.Types {
		if t.Name == schema.RootTypeName {
			continue
		}
		if !t.IsNode() && t.Variant != core.VariantPredefinedType {
			continue
		}
		if t.BaseTypeName == "" {
			if t.IsNode() {
				return nil, &core.SchemaReferenceError{TypeName: t.Name}
			}
			continue
		}
		if _, ok := r.bases[t.BaseTypeName]; !ok {
			return nil, &core.SchemaReferenceError{TypeName: t.Name, Reference: t.BaseTypeName}
		}
		r.derived[t.BaseTypeName]++
	}

	for _, t := range schema.Types {
		if err := r.checkChain(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Resolver) checkChain(t *core.TypeDef) error {
	seen := make(map[string]bool)
	for name := t.Name; name != ""; name = r.bases[name] {
		if seen[name] {
			return &core.SchemaCycleError{TypeName: t.Name}
		}
		seen[name] = true
	}
	return nil
}

// Schema returns the schema being resolved.
func (r *Resolver) Schema() *core.Schema { return r.schema }

// Syntax returns the type syntax used to classify field types.
func (r *Resolver) Syntax() dialect.TypeSyntax { return r.syntax }

// =============================================================================
// Inheritance
// =============================================================================

// BaseTypeOf returns the immediate ancestor of t. It returns nil for the root
// itself, and for a type deriving from a root the schema does not define.
func (r *Resolver) BaseTypeOf(t *core.TypeDef) (*core.TypeDef, error) {
	name, ok := r.bases[t.Name]
	if !ok || name == "" {
		return nil, nil
	}
	base, ok := r.types[name]
	if !ok {
		if name == r.schema.RootTypeName {
			return nil, nil
		}
		return nil, &core.SchemaReferenceError{TypeName: t.Name, Reference: name}
	}
	return base, nil
}

// IsRoot reports whether t is the schema's root type.
func (r *Resolver) IsRoot(t *core.TypeDef) bool {
	return t.Name == r.schema.RootTypeName
}

// AncestorChain yields t and then each ancestor up to the root, inclusive.
// A root without a type definition is not yielded.
// The sequence is finite and can be ranged over any number of times.
func (r *Resolver) AncestorChain(t *core.TypeDef) iter.Seq[*core.TypeDef] {
	return func(yield func(*core.TypeDef) bool) {
		for n := t; n != nil; {
			if !yield(n) {
				return
			}
			base, err := r.BaseTypeOf(n)
			if err != nil {
				return
			}
			n = base
		}
	}
}

// IsSealable reports whether t may be declared sealed: no type derives from it
// and it is not abstract.
func (r *Resolver) IsSealable(t *core.TypeDef) bool {
	return !t.IsAbstract() && r.derived[t.Name] == 0
}

// DerivedCount returns the number of types that name t as their base.
func (r *Resolver) DerivedCount(t *core.TypeDef) int {
	return r.derived[t.Name]
}

// IsDerivedType reports whether typeName is baseName or derives from it.
func (r *Resolver) IsDerivedType(baseName, typeName string) bool {
	for i := 0; typeName != "" && i <= len(r.bases); i++ {
		if typeName == baseName {
			return true
		}
		next, ok := r.bases[typeName]
		if !ok {
			return false
		}
		typeName = next
	}
	return false
}

// =============================================================================
// Fields
// =============================================================================

// Fields returns the fields declared on t, excluding override re-declarations.
func (r *Resolver) Fields(t *core.TypeDef) []*core.Field {
	if !t.IsNode() {
		return nil
	}
	var fields []*core.Field
	for _, f := range t.Fields {
		if !f.IsOverride {
			fields = append(fields, f)
		}
	}
	return fields
}

// AllFields returns the fields of t and all its ancestors, the root included,
// ancestor declarations first.
func (r *Resolver) AllFields(t *core.TypeDef) ([]*core.Field, error) {
	var chain []*core.TypeDef
	for n := t; n != nil; {
		chain = append(chain, n)
		base, err := r.BaseTypeOf(n)
		if err != nil {
			return nil, err
		}
		n = base
	}
	var fields []*core.Field
	for i := len(chain) - 1; i >= 0; i-- {
		fields = append(fields, r.Fields(chain[i])...)
	}
	return fields, nil
}

// FieldDeclaration returns the nearest declaration of a field, searching t's own
// fields (overrides included) and then each ancestor.
func (r *Resolver) FieldDeclaration(t *core.TypeDef, name string) (*core.Field, *core.TypeDef, error) {
	for n := range r.AncestorChain(t) {
		if f, ok := n.Field(name); ok {
			return f, n, nil
		}
	}
	return nil, nil, &core.FieldResolutionError{TypeName: t.Name, FieldName: name}
}

// ResolveNullability resolves the null policy of a field as seen from t.
//
// An explicit token on the nearest declaration wins. An override without a
// token inherits from the base type. Otherwise value-like types resolve to
// NotApplicable, except array-value wrappers, and everything else to Disallow.
func (r *Resolver) ResolveNullability(t *core.TypeDef, name string) (core.Nullability, error) {
	return r.resolveNullability(t, name, len(r.bases)+1)
}

func (r *Resolver) resolveNullability(t *core.TypeDef, name string, budget int) (core.Nullability, error) {
	if budget <= 0 {
		return core.NullUnset, &core.SchemaCycleError{TypeName: t.Name}
	}
	f, owner, err := r.FieldDeclaration(t, name)
	if err != nil {
		return core.NullUnset, err
	}
	n, ok := core.ParseNullability(f.Null)
	if !ok {
		return core.NullUnset, &core.NullabilityTokenError{TypeName: owner.Name, FieldName: name, Token: f.Null}
	}
	if n != core.NullUnset {
		return n, nil
	}
	if f.IsOverride {
		base, err := r.BaseTypeOf(owner)
		if err != nil {
			return core.NullUnset, err
		}
		if base == nil {
			return core.NullUnset, &core.FieldResolutionError{TypeName: owner.Name, FieldName: name}
		}
		return r.resolveNullability(base, name, budget-1)
	}
	if !r.IsValueType(f.Type) || r.IsArrayValueType(f.Type) {
		return core.NullDisallow, nil
	}
	return core.NullNotApplicable, nil
}

// SpecifiableFields returns AllFields(t) minus the fields that resolve to
// Always on t.
func (r *Resolver) SpecifiableFields(t *core.TypeDef) ([]*core.Field, error) {
	all, err := r.AllFields(t)
	if err != nil {
		return nil, err
	}
	var fields []*core.Field
	for _, f := range all {
		n, err := r.ResolveNullability(t, f.Name)
		if err != nil {
			return nil, err
		}
		if n != core.NullAlways {
			fields = append(fields, f)
		}
	}
	return fields, nil
}

// ChildNodeFields returns the fields of t (inherited included) whose type is a
// node or a list of nodes.
func (r *Resolver) ChildNodeFields(t *core.TypeDef) ([]*core.Field, error) {
	all, err := r.AllFields(t)
	if err != nil {
		return nil, err
	}
	var fields []*core.Field
	for _, f := range all {
		if r.IsNodeOrNodeListType(f.Type) {
			fields = append(fields, f)
		}
	}
	return fields, nil
}

// =============================================================================
// Type classification
// =============================================================================

// IsNodeType reports whether typeExpr names the root or a type derived from it.
func (r *Resolver) IsNodeType(typeExpr string) bool {
	return r.IsDerivedType(r.schema.RootTypeName, typeExpr)
}

// IsListType reports whether typeExpr uses one of the dialect's list idioms.
func (r *Resolver) IsListType(typeExpr string) bool {
	return r.syntax.IsListType(typeExpr)
}

// IsNodeListType reports whether typeExpr is a list whose element is a node type.
func (r *Resolver) IsNodeListType(typeExpr string) bool {
	return r.syntax.IsListType(typeExpr) && r.IsNodeType(r.syntax.ElementType(typeExpr))
}

// IsNodeOrNodeListType reports whether typeExpr is a node or a list of nodes.
func (r *Resolver) IsNodeOrNodeListType(typeExpr string) bool {
	return r.IsNodeType(typeExpr) || r.IsNodeListType(typeExpr)
}

// IsValueType reports whether the generic head of typeExpr is value-like.
func (r *Resolver) IsValueType(typeExpr string) bool {
	_, ok := r.values[r.syntax.GenericName(typeExpr)]
	return ok
}

// IsArrayValueType reports whether typeExpr is an array-value wrapper.
func (r *Resolver) IsArrayValueType(typeExpr string) bool {
	return r.syntax.IsArrayValueType(typeExpr)
}
