package core

// =============================================================================
// Type variants
// =============================================================================

// TypeVariant classifies a schema type definition.
type TypeVariant int

// Type variants. The set is closed.
const (
	// VariantAbstractNode is a node type that is never instantiated directly.
	VariantAbstractNode TypeVariant = iota
	// VariantConcreteNode is an instantiable node type.
	VariantConcreteNode
	// VariantValueType is a schema-declared value type (copied, never null).
	VariantValueType
	// VariantEnumType is a schema-declared enumeration.
	VariantEnumType
	// VariantPredefinedType is a node type whose class is written by hand.
	VariantPredefinedType
)

// String returns the string representation of the variant.
func (v TypeVariant) String() string {
	switch v {
	case VariantAbstractNode:
		return "abstract"
	case VariantConcreteNode:
		return "concrete"
	case VariantValueType:
		return "value"
	case VariantEnumType:
		return "enum"
	case VariantPredefinedType:
		return "predefined"
	default:
		return "unknown"
	}
}

// ParseTypeVariant converts a string to a TypeVariant.
// Returns false when the string names no variant.
func ParseTypeVariant(s string) (TypeVariant, bool) {
	switch s {
	case "abstract", "AbstractNode":
		return VariantAbstractNode, true
	case "concrete", "node", "Node":
		return VariantConcreteNode, true
	case "value", "ValueType":
		return VariantValueType, true
	case "enum", "EnumType":
		return VariantEnumType, true
	case "predefined", "PredefinedNode":
		return VariantPredefinedType, true
	default:
		return 0, false
	}
}

// =============================================================================
// Schema
// =============================================================================

// Schema describes a single-inheritance node hierarchy.
// Type order is significant: it fixes kind enumeration and visitor order.
type Schema struct {
	// RootTypeName is the hand-written base of every node type (e.g. "BoundNode").
	RootTypeName string
	// Namespace is the namespace the generated unit is placed in.
	Namespace string
	// Types are the type definitions in declaration order.
	Types []*TypeDef
}

// Lookup returns the type definition with the given name.
func (s *Schema) Lookup(name string) (*TypeDef, bool) {
	for _, t := range s.Types {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// NodeTypes returns the abstract and concrete node types in schema order.
func (s *Schema) NodeTypes() []*TypeDef {
	var nodes []*TypeDef
	for _, t := range s.Types {
		if t.IsNode() {
			nodes = append(nodes, t)
		}
	}
	return nodes
}

// TypeDef is one type in a Schema.
type TypeDef struct {
	Name            string
	Variant         TypeVariant
	BaseTypeName    string // empty only for types outside the node tree
	Fields          []*Field
	HasValidateHook bool
}

// IsNode reports whether the type takes part in the kind enumeration and visitors.
func (t *TypeDef) IsNode() bool {
	return t.Variant == VariantAbstractNode || t.Variant == VariantConcreteNode
}

// IsAbstract reports whether the type is an abstract node.
func (t *TypeDef) IsAbstract() bool {
	return t.Variant == VariantAbstractNode
}

// IsConcrete reports whether the type is a concrete node.
func (t *TypeDef) IsConcrete() bool {
	return t.Variant == VariantConcreteNode
}

// Field returns the field declared on this type with the given name.
// Override re-declarations are included.
func (t *TypeDef) Field(name string) (*Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Field is a member of a node type.
type Field struct {
	Name string
	// Type is the declared type expression in the target dialect's spelling,
	// e.g. "ImmutableArray<BoundExpression>" or "ImmutableArray(Of BoundExpression)".
	Type string
	// Null is the raw nullability token. Empty means unset.
	Null               string
	IsNew              bool
	IsOverride         bool
	IsPropertyOverride bool
	SkipInVisitor      bool
}
