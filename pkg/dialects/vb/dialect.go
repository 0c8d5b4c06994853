package vb

import (
	"strings"

	"github.com/leapstack-labs/treegen/pkg/dialect"
	"github.com/leapstack-labs/treegen/pkg/format"
)

func init() {
	dialect.Register(VisualBasic, Config.Aliases...)
}

// vbKeywords are the reserved words escaped with brackets when used as identifiers.
// Matching is case-insensitive.
var vbKeywords = []string{
	"addhandler", "addressof", "alias", "and", "andalso", "as", "boolean",
	"byref", "byte", "byval", "call", "case", "catch", "cbool", "cbyte",
	"cchar", "cdate", "cdbl", "cdec", "char", "cint", "class", "clng", "cobj",
	"const", "continue", "csbyte", "cshort", "csng", "cstr", "ctype", "cuint",
	"culng", "cushort", "date", "decimal", "declare", "default", "delegate",
	"dim", "directcast", "do", "double", "each", "else", "elseif", "end",
	"endif", "enum", "erase", "error", "event", "exit", "false", "finally",
	"for", "friend", "function", "get", "gettype", "getxmlnamespace", "global",
	"gosub", "goto", "handles", "if", "implements", "imports", "in",
	"inherits", "integer", "interface", "is", "isnot", "let", "lib", "like",
	"long", "loop", "me", "mod", "module", "mustinherit", "mustoverride",
	"mybase", "myclass", "namespace", "narrowing", "new", "next", "not",
	"nothing", "notinheritable", "notoverridable", "object", "of", "on",
	"operator", "option", "optional", "or", "orelse", "overloads",
	"overridable", "overrides", "paramarray", "partial", "private", "property",
	"protected", "public", "raiseevent", "readonly", "redim", "rem",
	"removehandler", "resume", "return", "sbyte", "select", "set", "shadows",
	"shared", "short", "single", "static", "step", "stop", "string",
	"structure", "sub", "synclock", "then", "throw", "to", "true", "try",
	"trycast", "typeof", "uinteger", "ulong", "ushort", "using", "variant",
	"wend", "when", "while", "widening", "with", "withevents", "writeonly",
	"xor",
}

// Dialect is the Visual Basic output syntax.
type Dialect struct {
	dialect.Base
}

// VisualBasic is the registered Visual Basic dialect.
var VisualBasic = &Dialect{Base: dialect.NewBase(Config)}

var _ dialect.Dialect = (*Dialect)(nil)

// StringLiteral quotes s, doubling embedded quotes.
func (d *Dialect) StringLiteral(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Import spells an Imports statement.
func (d *Dialect) Import(namespace string) string { return "Imports " + namespace }

// NamespaceHeader spells a namespace declaration.
func (d *Dialect) NamespaceHeader(namespace string) string { return "Namespace " + namespace }

// EnumHeader spells a Friend enum with an explicit underlying type.
func (d *Dialect) EnumHeader(name, underlying string) string {
	return d.Access(dialect.AccessInternal) + " Enum " + name + " As " + underlying
}

// EnumMember spells one enum member.
func (d *Dialect) EnumMember(name string) string { return name }

// ClassHeader spells a class declaration. The base type follows as an
// Inherits statement.
func (d *Dialect) ClassHeader(c dialect.ClassDecl) string {
	header := d.Access(c.Access) + " " + d.Modifiers(c.Modifiers) + "Class " + c.Name
	if len(c.TypeParams) > 0 {
		header += d.GenericType("", c.TypeParams...)
	}
	return header
}

// InheritsStatement spells the inheritance clause of a class body.
func (d *Dialect) InheritsStatement(base string) string {
	if base == "" {
		return ""
	}
	return "Inherits " + base
}

// Attribute spells an attribute.
func (d *Dialect) Attribute(text string) string { return "<" + text + ">" }

// Parameter spells a formal parameter.
func (d *Dialect) Parameter(name, typ string) string { return name + " As " + typ }

// OptionalParameter spells an Optional parameter with its default value.
func (d *Dialect) OptionalParameter(name, typ, defaultValue string) string {
	return "Optional " + name + " As " + typ + " = " + defaultValue
}

// ConstructorHeader spells a Sub New signature.
func (d *Dialect) ConstructorHeader(access dialect.Access, _ string, params []string) string {
	return d.Access(access) + " Sub New(" + strings.Join(params, ", ") + ")"
}

// BaseConstructorCall spells the MyBase.New statement.
func (d *Dialect) BaseConstructorCall(args []string) string {
	return "MyBase.New(" + strings.Join(args, ", ") + ")"
}

// SelfConstructorCall spells the Me.New statement.
func (d *Dialect) SelfConstructorCall(args []string) string {
	return "Me.New(" + strings.Join(args, ", ") + ")"
}

// MethodHeader spells a Function, or a Sub when there is no return type.
func (d *Dialect) MethodHeader(m dialect.MethodDecl) string {
	kind := "Function "
	if m.Returns == "" {
		kind = "Sub "
	}
	header := d.Access(m.Access) + " " + d.Modifiers(m.Modifiers) + kind + m.Name +
		"(" + strings.Join(m.Params, ", ") + ")"
	if m.Returns != "" {
		header += " As " + m.Returns
	}
	return header
}

// FieldStorage returns the backing field assigned by constructors.
func (d *Dialect) FieldStorage(name string, _ bool) string { return "_" + name }

// WriteProperty writes a backing field and a ReadOnly property returning it.
func (d *Dialect) WriteProperty(w *format.Writer, p dialect.PropertyDecl) {
	fieldMod, propMod := "", ""
	switch {
	case p.IsNew:
		fieldMod = d.Keyword(dialect.KeywordNew) + " "
		propMod = fieldMod
	case p.Override:
		propMod = d.Keyword(dialect.KeywordOverride) + " "
	}
	w.WriteLine("Private " + fieldMod + "ReadOnly _" + p.Name + " As " + p.Type)
	w.WriteLine("Public " + propMod + "ReadOnly Property " + p.Name + " As " + p.Type)
	w.OpenBlock(d.BlockOpen(dialect.BlockProperty))
	w.WriteLine("Get")
	w.OpenBlock(d.BlockOpen(dialect.BlockGetter))
	w.WriteLine("Return _" + p.Name)
	w.CloseBlock(d.BlockClose(dialect.BlockGetter))
	w.CloseBlock(d.BlockClose(dialect.BlockProperty))
}

// WritePartialHook declares an empty private partial Sub.
func (d *Dialect) WritePartialHook(w *format.Writer, name string) {
	w.WriteLine("Private Partial Sub " + name + "()")
	w.WriteLine(d.BlockClose(dialect.BlockSub))
}

// WriteCopyFlag sets a flag on target when the receiver has it set.
func (d *Dialect) WriteCopyFlag(w *format.Writer, target, flag string) {
	w.WriteLine(d.IfHeader("Me." + flag))
	w.OpenBlock(d.BlockOpen(dialect.BlockIf))
	w.WriteLine(target + ".Set" + flag + "()")
	w.CloseBlock(d.BlockClose(dialect.BlockIf))
}

// LocalDecl spells a typed Dim statement.
func (d *Dialect) LocalDecl(name, typ, init string) string {
	return "Dim " + name + " As " + typ + " = " + init
}

// LocalInferred spells an inferred Dim statement.
func (d *Dialect) LocalInferred(name, init string) string {
	return "Dim " + name + " = " + init
}

// IfHeader spells the head of an If block.
func (d *Dialect) IfHeader(cond string) string { return "If " + cond + " Then" }

// SwitchHeader spells the head of a Select Case block.
func (d *Dialect) SwitchHeader(expr string) string { return "Select Case " + expr }

// CaseLabel spells a Case clause.
func (d *Dialect) CaseLabel(value string) string { return "Case " + value }

// Cast spells a DirectCast conversion.
func (d *Dialect) Cast(expr, typ string) string { return "DirectCast(" + expr + ", " + typ + ")" }

// NotEqual spells IsNot for reference comparison and <> otherwise.
func (d *Dialect) NotEqual(a, b string, byReference bool) string {
	if byReference {
		return a + " IsNot " + b
	}
	return a + " <> " + b
}

// NotNull spells a Nothing test.
func (d *Dialect) NotNull(expr string) string { return expr + " IsNot Nothing" }

// HasValue spells the "is initialized" test of an array value.
func (d *Dialect) HasValue(expr string) string { return "Not (" + expr + ".IsDefault)" }

// HasErrorsCall spells the null-tolerant error-flag query of a child node or list.
func (d *Dialect) HasErrorsCall(expr string) string { return expr + ".NonNullAndHasErrors()" }

// Conditional spells the ternary If operator.
func (d *Dialect) Conditional(cond, a, b string) string {
	return "If(" + cond + ", " + a + ", " + b + ")"
}

// MapQuery spells a projection over a sequence.
func (d *Dialect) MapQuery(source, variable, projection string) string {
	return "From " + variable + " In " + source + " Select " + projection
}

// ArrayCreationHead opens a multi-line array creation.
func (d *Dialect) ArrayCreationHead(elemType string) string {
	return "New " + elemType + "() {"
}

// ArrayCreation spells a single-line array creation.
func (d *Dialect) ArrayCreation(elemType string, items []string) string {
	return "New " + elemType + "() { " + strings.Join(items, ", ") + " }"
}
