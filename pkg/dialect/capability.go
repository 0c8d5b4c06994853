// Package dialect defines the syntax capabilities an output dialect provides to the generator.
//
// This package contains the public contract for dialect definitions used by the
// emission engine. Concrete dialects are registered from pkg/dialects/*/ packages.
// The engine never asks which dialect it is talking to; every dialect-specific
// decision is a call through the Dialect interface.
package dialect

import "github.com/leapstack-labs/treegen/pkg/format"

// BlockKind identifies the construct a block belongs to, so keyword-terminated
// dialects can pick the matching close token.
type BlockKind int

// Block kinds.
const (
	BlockNamespace BlockKind = iota
	BlockEnum
	BlockClass
	BlockConstructor
	BlockFunction // method with a return value
	BlockSub      // method without a return value
	BlockProperty
	BlockGetter
	BlockIf
	BlockSwitch
	BlockCase
	BlockArray
)

// BlockTokens are the open and close tokens of a block. Either may be empty.
type BlockTokens struct {
	Open  string
	Close string
}

// Keyword identifies a declaration modifier.
type Keyword int

// Declaration modifiers.
const (
	KeywordAbstract Keyword = iota
	KeywordSealed
	KeywordOverride
	KeywordVirtual
	KeywordNew // hides an inherited member
	KeywordPartial
	KeywordReadOnly
	KeywordStatic
)

// Access is a declared accessibility.
type Access int

// Accessibility levels.
const (
	AccessPublic Access = iota
	AccessProtected
	AccessInternal
	AccessPrivate
)

// OptionalStyle is how a dialect expresses an optional parameter.
type OptionalStyle int

const (
	// OptionalUnsupported means the dialect has no optional parameters.
	OptionalUnsupported OptionalStyle = iota
	// OptionalDefaultValue declares the default in the parameter list.
	OptionalDefaultValue
	// OptionalOverload emits a distinct overload omitting the parameter.
	OptionalOverload
)

func (s OptionalStyle) String() string {
	switch s {
	case OptionalDefaultValue:
		return "default value"
	case OptionalOverload:
		return "overload"
	default:
		return "unsupported"
	}
}

// CallPlacement is where a constructor's chained base call goes.
type CallPlacement int

const (
	// PlacementInitializer puts the call between the header and the body (": base(...)").
	PlacementInitializer CallPlacement = iota
	// PlacementStatement makes the call the first statement of the body ("MyBase.New(...)").
	PlacementStatement
)

// Construct names an optional capability the engine may need.
type Construct string

// Optional constructs.
const (
	ConstructValidateHook     Construct = "partial validation hook"
	ConstructPropertyOverride Construct = "property override"
	ConstructShadowing        Construct = "member shadowing"
	ConstructQueryExpression  Construct = "query expression"
	ConstructGenericTypes     Construct = "generic types"
	ConstructOptionalParams   Construct = "optional parameters"
)

// Constructs lists every optional construct in a stable order.
var Constructs = []Construct{
	ConstructValidateHook,
	ConstructPropertyOverride,
	ConstructShadowing,
	ConstructQueryExpression,
	ConstructGenericTypes,
	ConstructOptionalParams,
}

// ClassDecl describes a class header.
type ClassDecl struct {
	Access     Access
	Modifiers  []Keyword
	Name       string
	TypeParams []string
	Base       string
}

// MethodDecl describes a method header. An empty Returns declares a procedure.
type MethodDecl struct {
	Access    Access
	Modifiers []Keyword
	Name      string
	Params    []string
	Returns   string
}

// PropertyDecl describes a read-only property backed by a constructor-assigned value.
type PropertyDecl struct {
	Name     string
	Type     string
	IsNew    bool
	Override bool // backing field plus an overriding property
}

// TypeSyntax is the part of a dialect that understands declared type expressions.
type TypeSyntax interface {
	// GenericName returns the head of a generic type expression, or the expression itself.
	GenericName(typeExpr string) string
	// ElementType returns the type argument of a generic expression, or "".
	ElementType(typeExpr string) string
	// IsListType reports whether the expression is one of the dialect's list idioms.
	IsListType(typeExpr string) bool
	// IsArrayValueType reports whether the expression is an array wrapper that is
	// itself a value (checked for "has a value" rather than "not null").
	IsArrayValueType(typeExpr string) bool
	// PrimitiveValueTypes returns the dialect's built-in value type names.
	PrimitiveValueTypes() []string
}

// Dialect is the full capability set of one output syntax.
type Dialect interface {
	TypeSyntax

	Name() string
	FileExtension() string
	DefaultNamespace() string
	SyntaxNodeType() string
	Supports(c Construct) bool

	// Lexical vocabulary
	LineComment(text string) string
	Terminator() string
	OrOperator() string
	NullLiteral() string
	BoolLiteral(v bool) string
	BoolType() string
	ByteType() string
	ObjectType() string
	SelfReference() string
	StringLiteral(s string) string
	IsKeyword(name string) bool
	EscapeIdentifier(name string) string

	// Declarations
	BlockOpen(k BlockKind) string
	BlockClose(k BlockKind) string
	Keyword(k Keyword) string
	Access(a Access) string
	Import(namespace string) string
	NamespaceHeader(namespace string) string
	EnumHeader(name, underlying string) string
	EnumMember(name string) string
	ClassHeader(c ClassDecl) string
	InheritsStatement(base string) string
	GenericType(name string, args ...string) string
	Attribute(text string) string
	Parameter(name, typ string) string
	OptionalParameters() OptionalStyle
	OptionalParameter(name, typ, defaultValue string) string
	ConstructorHeader(access Access, className string, params []string) string
	BaseCallPlacement() CallPlacement
	BaseConstructorCall(args []string) string
	SelfConstructorCall(args []string) string
	MethodHeader(m MethodDecl) string
	FieldStorage(name string, propertyOverride bool) string
	WriteProperty(w *format.Writer, p PropertyDecl)
	WritePartialHook(w *format.Writer, name string)
	WriteCopyFlag(w *format.Writer, target, flag string)

	// Statements and expressions
	Statement(expr string) string
	ReturnKeyword() string
	Return(expr string) string
	LocalDecl(name, typ, init string) string
	LocalInferred(name, init string) string
	IfHeader(cond string) string
	SwitchHeader(expr string) string
	CaseLabel(value string) string
	NewHead(typ string) string
	New(typ string, args []string) string
	Cast(expr, typ string) string
	NotEqual(a, b string, byReference bool) string
	NotNull(expr string) string
	HasValue(expr string) string
	HasErrorsCall(expr string) string
	Conditional(cond, a, b string) string
	MapQuery(source, variable, projection string) string
	// ArrayCreationHead opens a multi-line array creation; items follow inside
	// a BlockArray block.
	ArrayCreationHead(elemType string) string
	ArrayCreation(elemType string, items []string) string
	EmptyArray(elemType string) string
}
