package csharp

import (
	"strings"

	"github.com/leapstack-labs/treegen/pkg/dialect"
	"github.com/leapstack-labs/treegen/pkg/format"
)

func init() {
	dialect.Register(CSharp, Config.Aliases...)
}

// csharpKeywords are the reserved words escaped with '@' when used as identifiers.
var csharpKeywords = []string{
	"bool", "byte", "sbyte", "short", "ushort", "int", "uint", "long", "ulong",
	"double", "float", "decimal", "string", "char", "object", "typeof", "sizeof",
	"null", "true", "false", "if", "else", "while", "for", "foreach", "do",
	"switch", "case", "default", "lock", "try", "throw", "catch", "finally",
	"goto", "break", "continue", "return", "public", "private", "internal",
	"protected", "static", "readonly", "sealed", "const", "new", "override",
	"abstract", "virtual", "partial", "ref", "out", "in", "where", "params",
	"this", "base", "namespace", "using", "class", "struct", "interface",
	"delegate", "checked", "get", "set", "add", "remove", "operator",
	"implicit", "explicit", "fixed", "extern", "event", "enum", "unsafe",
}

// Dialect is the C# output syntax.
type Dialect struct {
	dialect.Base
}

// CSharp is the registered C# dialect.
var CSharp = &Dialect{Base: dialect.NewBase(Config)}

var _ dialect.Dialect = (*Dialect)(nil)

var stringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// StringLiteral quotes s as a regular string literal.
func (d *Dialect) StringLiteral(s string) string {
	return `"` + stringEscaper.Replace(s) + `"`
}

// Import spells a using directive.
func (d *Dialect) Import(namespace string) string { return "using " + namespace + ";" }

// NamespaceHeader spells a namespace declaration.
func (d *Dialect) NamespaceHeader(namespace string) string { return "namespace " + namespace }

// EnumHeader spells an internal enum with an explicit underlying type.
func (d *Dialect) EnumHeader(name, underlying string) string {
	return d.Access(dialect.AccessInternal) + " enum " + name + " : " + underlying
}

// EnumMember spells one enum member.
func (d *Dialect) EnumMember(name string) string { return name + "," }

// ClassHeader spells a class declaration including its base list.
func (d *Dialect) ClassHeader(c dialect.ClassDecl) string {
	var sb strings.Builder
	sb.WriteString(d.Access(c.Access))
	sb.WriteByte(' ')
	sb.WriteString(d.Modifiers(c.Modifiers))
	sb.WriteString("class ")
	sb.WriteString(c.Name)
	if len(c.TypeParams) > 0 {
		sb.WriteString("<" + strings.Join(c.TypeParams, ", ") + ">")
	}
	if c.Base != "" {
		sb.WriteString(" : " + c.Base)
	}
	return sb.String()
}

// InheritsStatement is empty: the base type is part of the class header.
func (d *Dialect) InheritsStatement(string) string { return "" }

// Attribute spells an attribute.
func (d *Dialect) Attribute(text string) string { return "[" + text + "]" }

// Parameter spells a formal parameter.
func (d *Dialect) Parameter(name, typ string) string { return typ + " " + name }

// OptionalParameter spells a parameter with a default value.
func (d *Dialect) OptionalParameter(name, typ, defaultValue string) string {
	return typ + " " + name + " = " + defaultValue
}

// ConstructorHeader spells a constructor signature.
func (d *Dialect) ConstructorHeader(access dialect.Access, className string, params []string) string {
	return d.Access(access) + " " + className + "(" + strings.Join(params, ", ") + ")"
}

// BaseConstructorCall spells a constructor initializer chaining to the base class.
func (d *Dialect) BaseConstructorCall(args []string) string {
	return ": base(" + strings.Join(args, ", ") + ")"
}

// SelfConstructorCall spells a constructor initializer chaining to another overload.
func (d *Dialect) SelfConstructorCall(args []string) string {
	return ": this(" + strings.Join(args, ", ") + ")"
}

// MethodHeader spells a method signature.
func (d *Dialect) MethodHeader(m dialect.MethodDecl) string {
	returns := m.Returns
	if returns == "" {
		returns = "void"
	}
	return d.Access(m.Access) + " " + d.Modifiers(m.Modifiers) + returns + " " + m.Name +
		"(" + strings.Join(m.Params, ", ") + ")"
}

// FieldStorage returns the member assigned by constructors for a field.
func (d *Dialect) FieldStorage(name string, propertyOverride bool) string {
	if propertyOverride {
		return "_" + name
	}
	return name
}

// WriteProperty writes a get-only auto property, or a backing field and an
// overriding property.
func (d *Dialect) WriteProperty(w *format.Writer, p dialect.PropertyDecl) {
	shadow := ""
	if p.IsNew {
		shadow = "new "
	}
	if p.Override {
		w.WriteLine("private readonly " + p.Type + " _" + p.Name + ";")
		w.WriteLine("public override " + shadow + p.Type + " " + p.Name + " { get { return _" + p.Name + "; } }")
		return
	}
	w.WriteLine("public " + shadow + p.Type + " " + p.Name + " { get; }")
}

// WritePartialHook declares a partial method with no implementation.
func (d *Dialect) WritePartialHook(w *format.Writer, name string) {
	w.WriteLine("partial void " + name + "();")
}

// WriteCopyFlag copies a flag property from the receiver to target.
func (d *Dialect) WriteCopyFlag(w *format.Writer, target, flag string) {
	w.WriteLine(target + "." + flag + " = this." + flag + ";")
}

// LocalDecl spells a typed local declaration.
func (d *Dialect) LocalDecl(name, typ, init string) string {
	return typ + " " + name + " = " + init + ";"
}

// LocalInferred spells an implicitly typed local declaration.
func (d *Dialect) LocalInferred(name, init string) string {
	return "var " + name + " = " + init + ";"
}

// IfHeader spells the head of an if statement.
func (d *Dialect) IfHeader(cond string) string { return "if (" + cond + ")" }

// SwitchHeader spells the head of a switch statement.
func (d *Dialect) SwitchHeader(expr string) string { return "switch (" + expr + ")" }

// CaseLabel spells a case label.
func (d *Dialect) CaseLabel(value string) string { return "case " + value + ":" }

// Cast spells an explicit conversion.
func (d *Dialect) Cast(expr, typ string) string { return "(" + typ + ")" + expr }

// NotEqual spells an inequality. C# uses the same operator for both comparisons.
func (d *Dialect) NotEqual(a, b string, _ bool) string { return a + " != " + b }

// NotNull spells a null test.
func (d *Dialect) NotNull(expr string) string { return expr + " != null" }

// HasValue spells the "is initialized" test of an array value.
func (d *Dialect) HasValue(expr string) string { return "!" + expr + ".IsDefault" }

// HasErrorsCall spells the error-flag query of a child node or list.
func (d *Dialect) HasErrorsCall(expr string) string { return expr + ".HasErrors()" }

// Conditional spells a conditional expression.
func (d *Dialect) Conditional(cond, a, b string) string { return cond + " ? " + a + " : " + b }

// MapQuery spells a projection over a sequence.
func (d *Dialect) MapQuery(source, variable, projection string) string {
	return "from " + variable + " in " + source + " select " + projection
}

// ArrayCreationHead opens a multi-line array creation.
func (d *Dialect) ArrayCreationHead(elemType string) string { return "new " + elemType + "[]" }

// ArrayCreation spells a single-line array creation.
func (d *Dialect) ArrayCreation(elemType string, items []string) string {
	return "new " + elemType + "[] { " + strings.Join(items, ", ") + " }"
}
