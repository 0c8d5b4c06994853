package dialect

import (
	"strings"
)

// Config is the pure-data part of a dialect definition.
// Base reads it and provides every capability that is a matter of vocabulary;
// concrete dialects add the structural ones.
type Config struct {
	Name             string
	Aliases          []string
	FileExtension    string
	DefaultNamespace string
	SyntaxNodeType   string

	CommentPrefix string
	Terminator    string
	OrOperator    string
	NullLiteral   string
	TrueLiteral   string
	FalseLiteral  string
	SelfReference string
	ReturnWord    string
	NewWord       string
	BoolType      string
	ByteType      string
	ObjectType    string

	// Reserved words that must be escaped when used as identifiers
	Keywords        []string
	CaseInsensitive bool   // keywords and generic markers compare case-insensitively
	EscapeOpen      string // e.g. "@" or "["
	EscapeClose     string // e.g. "" or "]"

	Blocks       map[BlockKind]BlockTokens
	DeclKeywords map[Keyword]string
	AccessWords  map[Access]string

	// Generic type spelling, e.g. "<" and ">" or "(Of " and ")"
	GenericOpen  string
	GenericClose string

	ListTypes           []string // generic heads treated as node lists
	ArrayValueTypes     []string // generic heads that are value-typed arrays
	PrimitiveValueTypes []string

	Optional   OptionalStyle
	Placement  CallPlacement
	Constructs []Construct
}

// Base implements the vocabulary capabilities of Dialect from a Config.
type Base struct {
	cfg        *Config
	keywords   map[string]struct{}
	constructs map[Construct]struct{}
}

// NewBase builds a Base from a dialect configuration.
func NewBase(cfg *Config) Base {
	b := Base{
		cfg:        cfg,
		keywords:   make(map[string]struct{}, len(cfg.Keywords)),
		constructs: make(map[Construct]struct{}, len(cfg.Constructs)),
	}
	for _, kw := range cfg.Keywords {
		b.keywords[b.norm(kw)] = struct{}{}
	}
	for _, c := range cfg.Constructs {
		b.constructs[c] = struct{}{}
	}
	return b
}

// Config returns the configuration this Base was built from.
func (b Base) Config() *Config { return b.cfg }

func (b Base) norm(s string) string {
	if b.cfg.CaseInsensitive {
		return strings.ToLower(s)
	}
	return s
}

// Name returns the dialect name.
func (b Base) Name() string { return b.cfg.Name }

// FileExtension returns the extension of generated files.
func (b Base) FileExtension() string { return b.cfg.FileExtension }

// DefaultNamespace is used when the schema declares no namespace.
func (b Base) DefaultNamespace() string { return b.cfg.DefaultNamespace }

// SyntaxNodeType is the type of the syntax parameter every constructor takes.
func (b Base) SyntaxNodeType() string { return b.cfg.SyntaxNodeType }

// Supports reports whether an optional construct is available.
func (b Base) Supports(c Construct) bool {
	if c == ConstructOptionalParams {
		return b.cfg.Optional != OptionalUnsupported
	}
	_, ok := b.constructs[c]
	return ok
}

// LineComment returns text as a single-line comment.
func (b Base) LineComment(text string) string { return b.cfg.CommentPrefix + " " + text }

// Terminator returns the statement terminator (possibly empty).
func (b Base) Terminator() string { return b.cfg.Terminator }

// OrOperator returns the short-circuit boolean or, padded with spaces.
func (b Base) OrOperator() string { return " " + b.cfg.OrOperator + " " }

// NullLiteral returns the null/absent literal.
func (b Base) NullLiteral() string { return b.cfg.NullLiteral }

// BoolLiteral returns the spelling of a boolean constant.
func (b Base) BoolLiteral(v bool) string {
	if v {
		return b.cfg.TrueLiteral
	}
	return b.cfg.FalseLiteral
}

// BoolType returns the boolean type name.
func (b Base) BoolType() string { return b.cfg.BoolType }

// ByteType returns the byte type name.
func (b Base) ByteType() string { return b.cfg.ByteType }

// ObjectType returns the universal reference type name.
func (b Base) ObjectType() string { return b.cfg.ObjectType }

// SelfReference returns the receiver keyword.
func (b Base) SelfReference() string { return b.cfg.SelfReference }

// IsKeyword reports whether name is reserved.
func (b Base) IsKeyword(name string) bool {
	_, ok := b.keywords[b.norm(name)]
	return ok
}

// EscapeIdentifier quotes name when it is reserved.
func (b Base) EscapeIdentifier(name string) string {
	if b.IsKeyword(name) {
		return b.cfg.EscapeOpen + name + b.cfg.EscapeClose
	}
	return name
}

// BlockOpen returns the open token of a block kind.
func (b Base) BlockOpen(k BlockKind) string { return b.cfg.Blocks[k].Open }

// BlockClose returns the close token of a block kind.
func (b Base) BlockClose(k BlockKind) string { return b.cfg.Blocks[k].Close }

// Keyword returns the spelling of a declaration modifier.
func (b Base) Keyword(k Keyword) string { return b.cfg.DeclKeywords[k] }

// Access returns the spelling of an accessibility level.
func (b Base) Access(a Access) string { return b.cfg.AccessWords[a] }

// OptionalParameters returns the optional parameter style.
func (b Base) OptionalParameters() OptionalStyle { return b.cfg.Optional }

// BaseCallPlacement returns where chained constructor calls go.
func (b Base) BaseCallPlacement() CallPlacement { return b.cfg.Placement }

// Statement terminates an expression statement.
func (b Base) Statement(expr string) string { return expr + b.cfg.Terminator }

// ReturnKeyword returns the return statement keyword.
func (b Base) ReturnKeyword() string { return b.cfg.ReturnWord }

// Return spells a return statement.
func (b Base) Return(expr string) string {
	return b.cfg.ReturnWord + " " + expr + b.cfg.Terminator
}

// NewHead spells the object creation prefix without arguments.
func (b Base) NewHead(typ string) string { return b.cfg.NewWord + " " + typ }

// New spells an object creation.
func (b Base) New(typ string, args []string) string {
	return b.NewHead(typ) + "(" + strings.Join(args, ", ") + ")"
}

// EmptyArray spells the shared empty array of elemType.
func (b Base) EmptyArray(elemType string) string {
	return b.GenericType("SpecializedCollections.EmptyArray", elemType) + "()"
}

// GenericType spells a constructed generic type.
func (b Base) GenericType(name string, args ...string) string {
	return name + b.cfg.GenericOpen + strings.Join(args, ", ") + b.cfg.GenericClose
}

// Modifiers spells a list of modifiers, each followed by a space.
func (b Base) Modifiers(mods []Keyword) string {
	var sb strings.Builder
	for _, m := range mods {
		if kw := b.Keyword(m); kw != "" {
			sb.WriteString(kw)
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// =============================================================================
// Type expressions
// =============================================================================

func (b Base) genericMarkers() (string, string) {
	return strings.TrimSpace(b.cfg.GenericOpen), strings.TrimSpace(b.cfg.GenericClose)
}

func (b Base) index(s, sub string) int {
	if b.cfg.CaseInsensitive {
		return strings.Index(strings.ToLower(s), strings.ToLower(sub))
	}
	return strings.Index(s, sub)
}

// GenericName returns the head of a generic type expression.
func (b Base) GenericName(typeExpr string) string {
	open, _ := b.genericMarkers()
	if i := b.index(typeExpr, open); i >= 0 {
		return strings.TrimSpace(typeExpr[:i])
	}
	return typeExpr
}

// ElementType returns the type argument of a generic type expression.
func (b Base) ElementType(typeExpr string) string {
	open, closer := b.genericMarkers()
	start := b.index(typeExpr, open)
	if start < 0 {
		return ""
	}
	start += len(open)
	end := strings.LastIndex(typeExpr, closer)
	if end < start {
		return ""
	}
	return strings.TrimSpace(typeExpr[start:end])
}

func (b Base) headIn(typeExpr string, heads []string) bool {
	if b.ElementType(typeExpr) == "" {
		return false
	}
	name := b.norm(b.GenericName(typeExpr))
	for _, h := range heads {
		if b.norm(h) == name {
			return true
		}
	}
	return false
}

// IsListType reports whether typeExpr is one of the dialect's list idioms.
func (b Base) IsListType(typeExpr string) bool {
	return b.headIn(typeExpr, b.cfg.ListTypes)
}

// IsArrayValueType reports whether typeExpr is an array value wrapper.
func (b Base) IsArrayValueType(typeExpr string) bool {
	return b.headIn(typeExpr, b.cfg.ArrayValueTypes)
}

// PrimitiveValueTypes returns the built-in value types, including array value wrappers.
func (b Base) PrimitiveValueTypes() []string {
	out := make([]string, 0, len(b.cfg.PrimitiveValueTypes)+len(b.cfg.ArrayValueTypes))
	out = append(out, b.cfg.PrimitiveValueTypes...)
	return append(out, b.cfg.ArrayValueTypes...)
}
