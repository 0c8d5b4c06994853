package generator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leapstack-labs/treegen/internal/testutil"
	"github.com/leapstack-labs/treegen/pkg/core"
	"github.com/leapstack-labs/treegen/pkg/dialect"
	"github.com/leapstack-labs/treegen/pkg/dialects/csharp"
	"github.com/leapstack-labs/treegen/pkg/dialects/vb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Fixtures
// =============================================================================

func concrete(name, base string, fields ...*core.Field) *core.TypeDef {
	return &core.TypeDef{Name: name, Variant: core.VariantConcreteNode, BaseTypeName: base, Fields: fields}
}

func abstract(name, base string, fields ...*core.Field) *core.TypeDef {
	return &core.TypeDef{Name: name, Variant: core.VariantAbstractNode, BaseTypeName: base, Fields: fields}
}

func fld(name, typ, null string) *core.Field {
	return &core.Field{Name: name, Type: typ, Null: null}
}

func schema(types ...*core.TypeDef) *core.Schema {
	return &core.Schema{RootTypeName: "Node", Namespace: "Test", Types: types}
}

// scenarioA: root Node, abstract Expression, concrete Literal with one
// disallowed text field.
func scenarioA() *core.Schema {
	return schema(
		abstract("Expression", "Node"),
		concrete("Literal", "Expression", fld("Value", "Text", "Disallow")),
	)
}

// scenarioB adds a binary node with two child node fields.
func scenarioB() *core.Schema {
	s := scenarioA()
	s.Types = append(s.Types, concrete("Binary", "Expression",
		fld("Left", "Expression", "Disallow"),
		fld("Right", "Expression", "Disallow"),
	))
	return s
}

func generate(t *testing.T, s *core.Schema, d dialect.Dialect) string {
	t.Helper()
	out, err := Generate(s, d, Options{Logger: testutil.NewTestLogger(t)})
	require.NoError(t, err)
	return string(out)
}

// block returns the text from the line starting with header up to the first
// line at the same indentation that closes it.
func block(t *testing.T, out, header, closer string) string {
	t.Helper()
	start := strings.Index(out, header)
	require.GreaterOrEqual(t, start, 0, "header %q not found", header)
	lineStart := strings.LastIndex(out[:start], "\n") + 1
	indent := out[lineStart:start]
	end := strings.Index(out[start:], "\n"+indent+closer+"\n")
	require.GreaterOrEqual(t, end, 0, "closer %q not found after %q", closer, header)
	return out[lineStart : start+end+len(indent)+len(closer)+2]
}

// =============================================================================
// End-to-end scenarios
// =============================================================================

func TestScenarioA_CSharp(t *testing.T) {
	out := generate(t, scenarioA(), csharp.CSharp)

	assert.True(t, strings.HasPrefix(out, "// <auto-generated />\n\nusing System;\n"))
	assert.Contains(t, out, "using Test.Symbols;\n")
	assert.Contains(t, out, "namespace Test\n{\n")
	assert.True(t, strings.HasSuffix(out, "    }\n}\n"))

	assert.Contains(t, out, "    internal enum BoundKind : byte\n    {\n        Literal,\n    }\n")
	assert.NotContains(t, out, "Expression,")

	expected := `    internal sealed partial class Literal : Expression
    {
        public Literal(CSharpSyntaxNode syntax, Text value, bool hasErrors)
            : base(BoundKind.Literal, syntax, hasErrors)
        {
            Debug.Assert(value != null, "Field 'value' cannot be null (use Null=\"allow\" in the schema to remove this check)");

            this.Value = value;
        }

        public Literal(CSharpSyntaxNode syntax, Text value)
            : base(BoundKind.Literal, syntax)
        {
            Debug.Assert(value != null, "Field 'value' cannot be null (use Null=\"allow\" in the schema to remove this check)");

            this.Value = value;
        }

        public Text Value { get; }

        public override Node Accept(BoundTreeVisitor visitor)
        {
            return visitor.VisitLiteral(this);
        }

        public Literal Update(Text value)
        {
            if (value != this.Value)
            {
                var result = new Literal(this.Syntax, value, this.HasErrors);
                result.WasCompilerGenerated = this.WasCompilerGenerated;
                return result;
            }
            return this;
        }
    }
`
	assert.Equal(t, expected, block(t, out, "internal sealed partial class Literal", "}"))

	rewriter := block(t, out, "internal abstract partial class BoundTreeRewriter", "}")
	assert.Contains(t, rewriter, `        public override Node VisitLiteral(Literal node)
        {
            return node.Update(node.Value);
        }
`)
	assert.NotContains(t, rewriter, "this.Visit(")
}

func TestScenarioA_VisualBasic(t *testing.T) {
	out := generate(t, scenarioA(), vb.VisualBasic)

	assert.True(t, strings.HasPrefix(out, "' <auto-generated />\n\nImports System\n"))
	assert.Contains(t, out, "Namespace Test\n")
	assert.True(t, strings.HasSuffix(out, "    End Class\nEnd Namespace\n"))
	assert.Contains(t, out, "    Friend Enum BoundKind As Byte\n        Literal\n    End Enum\n")

	expected := `    Friend NotInheritable Partial Class Literal
        Inherits Expression

        Public Sub New(syntax As VisualBasicSyntaxNode, value As Text, hasErrors As Boolean)
            MyBase.New(BoundKind.Literal, syntax, hasErrors)

            Debug.Assert(value IsNot Nothing, "Field 'value' cannot be null (use Null=""allow"" in the schema to remove this check)")

            Me._Value = value
        End Sub

        Public Sub New(syntax As VisualBasicSyntaxNode, value As Text)
            MyBase.New(BoundKind.Literal, syntax)

            Debug.Assert(value IsNot Nothing, "Field 'value' cannot be null (use Null=""allow"" in the schema to remove this check)")

            Me._Value = value
        End Sub

        Private ReadOnly _Value As Text
        Public ReadOnly Property Value As Text
            Get
                Return _Value
            End Get
        End Property

        Public Overrides Function Accept(visitor As BoundTreeVisitor) As Node
            Return visitor.VisitLiteral(Me)
        End Function

        Public Function Update(value As Text) As Literal
            If value IsNot Me.Value Then
                Dim result = New Literal(Me.Syntax, value, Me.HasErrors)
                If Me.WasCompilerGenerated Then
                    result.SetWasCompilerGenerated()
                End If
                Return result
            End If
            Return Me
        End Function
    End Class
`
	assert.Equal(t, expected, block(t, out, "Friend NotInheritable Partial Class Literal", "End Class"))

	rewriter := block(t, out, "Friend MustInherit Partial Class BoundTreeRewriter", "End Class")
	assert.Contains(t, rewriter, "        Public Overrides Function VisitLiteral(node As Literal) As Node\n            Return node.Update(node.Value)\n        End Function\n")
}

func TestScenarioA_AbstractBaseConstructors(t *testing.T) {
	out := generate(t, scenarioA(), csharp.CSharp)

	expected := `    internal abstract partial class Expression : Node
    {
        protected Expression(BoundKind kind, CSharpSyntaxNode syntax, bool hasErrors)
            : base(kind, syntax, hasErrors)
        {
        }

        protected Expression(BoundKind kind, CSharpSyntaxNode syntax)
            : base(kind, syntax)
        {
        }
    }
`
	assert.Equal(t, expected, block(t, out, "internal abstract partial class Expression", "}"))
}

// rootWithFields declares a field on the root itself.
func rootWithFields() *core.Schema {
	return schema(
		abstract("Node", "", fld("Tag", "Text", "Disallow")),
		abstract("Expression", "Node"),
		concrete("Literal", "Expression", fld("Value", "Text", "Disallow")),
	)
}

func TestRootFieldsAreInherited(t *testing.T) {
	t.Run("csharp", func(t *testing.T) {
		out := generate(t, rootWithFields(), csharp.CSharp)

		root := block(t, out, "internal abstract partial class Node", "}")
		assert.True(t, strings.HasPrefix(root, "    internal abstract partial class Node\n    {\n"))
		assert.Contains(t, root, "        protected Node(BoundKind kind, CSharpSyntaxNode syntax, Text tag, bool hasErrors)\n        {\n            Debug.Assert(tag != null,")
		assert.Contains(t, root, "        protected Node(BoundKind kind, CSharpSyntaxNode syntax, Text tag)\n        {\n")
		assert.Contains(t, root, "            this.Tag = tag;\n")
		assert.Contains(t, root, "        public Text Tag { get; }\n")
		assert.NotContains(t, root, ": base(")

		expr := block(t, out, "internal abstract partial class Expression", "}")
		assert.Contains(t, expr, "protected Expression(BoundKind kind, CSharpSyntaxNode syntax, Text tag, bool hasErrors)\n            : base(kind, syntax, tag, hasErrors)\n")
		assert.Contains(t, expr, "protected Expression(BoundKind kind, CSharpSyntaxNode syntax, Text tag)\n            : base(kind, syntax, tag)\n")
		assert.NotContains(t, expr, "this.Tag = tag;")

		literal := block(t, out, "internal sealed partial class Literal", "}")
		assert.Contains(t, literal, "public Literal(CSharpSyntaxNode syntax, Text tag, Text value, bool hasErrors)\n            : base(BoundKind.Literal, syntax, tag, hasErrors)\n")
		assert.Contains(t, literal, "public Literal(CSharpSyntaxNode syntax, Text tag, Text value)\n            : base(BoundKind.Literal, syntax, tag)\n")
		assert.Contains(t, literal, "Debug.Assert(tag != null,")
		assert.Contains(t, literal, "public Literal Update(Text tag, Text value)")
		assert.Contains(t, literal, "if (tag != this.Tag || value != this.Value)")
		assert.Contains(t, literal, "new Literal(this.Syntax, tag, value, this.HasErrors)")
		assert.NotContains(t, literal, "this.Tag = tag;")

		rewriter := block(t, out, "internal abstract partial class BoundTreeRewriter", "}")
		assert.Contains(t, rewriter, "return node.Update(node.Tag, node.Value);")
	})

	t.Run("vb", func(t *testing.T) {
		out := generate(t, rootWithFields(), vb.VisualBasic)

		root := block(t, out, "Friend MustInherit Partial Class Node", "End Class")
		assert.Contains(t, root, "        Protected Sub New(kind As BoundKind, syntax As VisualBasicSyntaxNode, tag As Text, hasErrors As Boolean)\n            Debug.Assert(tag IsNot Nothing,")
		assert.Contains(t, root, "        Protected Sub New(kind As BoundKind, syntax As VisualBasicSyntaxNode, tag As Text)\n            Debug.Assert(tag IsNot Nothing,")
		assert.Contains(t, root, "            Me._Tag = tag\n")
		assert.Contains(t, root, "        Public ReadOnly Property Tag As Text\n")
		assert.NotContains(t, root, "MyBase.New")
		assert.NotContains(t, root, "Inherits")

		expr := block(t, out, "Friend MustInherit Partial Class Expression", "End Class")
		assert.Contains(t, expr, "Protected Sub New(kind As BoundKind, syntax As VisualBasicSyntaxNode, tag As Text, hasErrors As Boolean)\n            MyBase.New(kind, syntax, tag, hasErrors)\n")
		assert.Contains(t, expr, "Protected Sub New(kind As BoundKind, syntax As VisualBasicSyntaxNode, tag As Text)\n            MyBase.New(kind, syntax, tag)\n")

		literal := block(t, out, "Friend NotInheritable Partial Class Literal", "End Class")
		assert.Contains(t, literal, "Public Sub New(syntax As VisualBasicSyntaxNode, tag As Text, value As Text, hasErrors As Boolean)\n            MyBase.New(BoundKind.Literal, syntax, tag, hasErrors)\n")
		assert.Contains(t, literal, "Public Function Update(tag As Text, value As Text) As Literal")
		assert.Contains(t, literal, "If tag IsNot Me.Tag OrElse value IsNot Me.Value Then")
		assert.Contains(t, literal, "Dim result = New Literal(Me.Syntax, tag, value, Me.HasErrors)")
	})
}

func TestScenarioB_ChildNodesGetOneOptionalConstructor(t *testing.T) {
	t.Run("csharp", func(t *testing.T) {
		out := generate(t, scenarioB(), csharp.CSharp)
		binary := block(t, out, "internal sealed partial class Binary", "}")

		assert.Equal(t, 1, strings.Count(binary, "public Binary("))
		assert.Contains(t, binary, "public Binary(CSharpSyntaxNode syntax, Expression left, Expression right, bool hasErrors = false)\n")
		assert.Contains(t, binary, ": base(BoundKind.Binary, syntax, hasErrors || left.HasErrors() || right.HasErrors())\n")
		assert.Contains(t, binary, "public Binary Update(Expression left, Expression right)")
		assert.Contains(t, binary, "if (left != this.Left || right != this.Right)")
	})

	t.Run("vb", func(t *testing.T) {
		out := generate(t, scenarioB(), vb.VisualBasic)
		binary := block(t, out, "Friend NotInheritable Partial Class Binary", "End Class")

		assert.Equal(t, 1, strings.Count(binary, "Public Sub New("))
		assert.Contains(t, binary, "Public Sub New(syntax As VisualBasicSyntaxNode, left As Expression, right As Expression, Optional hasErrors As Boolean = False)\n")
		assert.Contains(t, binary, "MyBase.New(BoundKind.Binary, syntax, hasErrors OrElse left.NonNullAndHasErrors() OrElse right.NonNullAndHasErrors())\n")
		assert.Contains(t, binary, "If left IsNot Me.Left OrElse right IsNot Me.Right Then")
	})

	t.Run("literal keeps two constructors", func(t *testing.T) {
		out := generate(t, scenarioB(), csharp.CSharp)
		literal := block(t, out, "internal sealed partial class Literal", "}")
		assert.Equal(t, 2, strings.Count(literal, "public Literal("))
	})
}

func TestScenarioB_Visitors(t *testing.T) {
	out := generate(t, scenarioB(), csharp.CSharp)

	walker := block(t, out, "internal abstract partial class BoundTreeWalker : BoundTreeVisitor", "}")
	assert.Contains(t, walker, `        public override Node VisitBinary(Binary node)
        {
            this.Visit(node.Left);
            this.Visit(node.Right);
            return null;
        }
`)

	rewriter := block(t, out, "internal abstract partial class BoundTreeRewriter : BoundTreeVisitor", "}")
	assert.Contains(t, rewriter, `        public override Node VisitBinary(Binary node)
        {
            Expression left = (Expression)this.Visit(node.Left);
            Expression right = (Expression)this.Visit(node.Right);
            return node.Update(left, right);
        }
`)

	dumper := block(t, out, "internal sealed class BoundTreeDumperNodeProducer : BoundTreeVisitor<object, TreeDumperNode>", "}")
	assert.Contains(t, dumper, `        public override TreeDumperNode VisitBinary(Binary node, object arg)
        {
            return new TreeDumperNode("binary", null, new TreeDumperNode[]
            {
                new TreeDumperNode("left", null, new TreeDumperNode[] { Visit(node.Left, null) }),
                new TreeDumperNode("right", null, new TreeDumperNode[] { Visit(node.Right, null) })
            });
        }
`)
	assert.Contains(t, dumper, "return (new BoundTreeDumperNodeProducer()).Visit(node, null);")
}

func TestScenarioB_VisualBasicDumper(t *testing.T) {
	out := generate(t, scenarioB(), vb.VisualBasic)

	dumper := block(t, out, "Friend NotInheritable Class BoundTreeDumperNodeProducer", "End Class")
	assert.Contains(t, dumper, "        Inherits BoundTreeVisitor(Of Object, TreeDumperNode)\n")
	assert.Contains(t, dumper, `        Public Overrides Function VisitLiteral(node As Literal, arg As Object) As TreeDumperNode
            Return New TreeDumperNode("literal", Nothing, New TreeDumperNode() {
                New TreeDumperNode("value", node.Value, Nothing)
            })
        End Function
`)
	assert.Contains(t, dumper, "        Private Sub New()\n        End Sub\n")
	assert.Contains(t, dumper, "Public Shared Function MakeTree(node As Node) As TreeDumperNode")
}

func TestScenarioC_OverrideInheritsAllow(t *testing.T) {
	s := schema(
		abstract("Expression", "Node", fld("Type", "TypeSymbol", "Allow")),
		concrete("Conversion", "Expression",
			&core.Field{Name: "Type", Type: "TypeSymbol", IsOverride: true},
			fld("Operand", "Expression", ""),
		),
	)
	out := generate(t, s, csharp.CSharp)
	conversion := block(t, out, "internal sealed partial class Conversion", "}")

	assert.NotContains(t, conversion, "Debug.Assert(type")
	assert.Contains(t, conversion, "Debug.Assert(operand != null")
	assert.Contains(t, conversion, "public Conversion(CSharpSyntaxNode syntax, TypeSymbol type, Expression operand, bool hasErrors = false)")
	assert.Contains(t, conversion, ": base(BoundKind.Conversion, syntax, type, hasErrors || operand.HasErrors())")
	assert.NotContains(t, conversion, "public TypeSymbol Type", "overrides are not redeclared")

	rewriter := block(t, out, "internal abstract partial class BoundTreeRewriter", "}")
	assert.Contains(t, rewriter, "TypeSymbol type = this.VisitType(node.Type);")
	assert.Contains(t, rewriter, "return node.Update(type, operand);")
}

// =============================================================================
// Structural properties
// =============================================================================

func TestDispatchCoversEachKindOnceInOrder(t *testing.T) {
	s := schema(
		abstract("BoundExpression", "Node"),
		concrete("BoundInvocation", "BoundExpression"),
		abstract("BoundStatement", "Node"),
		concrete("BoundBlock", "BoundStatement"),
		concrete("BoundLiteral", "BoundExpression"),
	)

	for _, d := range []dialect.Dialect{csharp.CSharp, vb.VisualBasic} {
		t.Run(d.Name(), func(t *testing.T) {
			out := generate(t, s, d)
			labels := []string{
				d.CaseLabel("BoundKind.Invocation"),
				d.CaseLabel("BoundKind.Block"),
				d.CaseLabel("BoundKind.Literal"),
			}
			last := -1
			for _, label := range labels {
				assert.Equal(t, 1, strings.Count(out, label), label)
				pos := strings.Index(out, label)
				assert.Greater(t, pos, last, "%s out of order", label)
				last = pos
			}
			assert.NotContains(t, out, "BoundKind.Expression")
			assert.NotContains(t, out, "BoundKind.Statement")
			assert.Contains(t, out, d.Return("VisitBlock("+d.Cast("node", "BoundBlock")+", arg)"))
		})
	}
}

func TestZeroFieldNodeHasNoUpdate(t *testing.T) {
	s := schema(
		abstract("Expression", "Node"),
		concrete("Empty", "Expression"),
	)
	out := generate(t, s, csharp.CSharp)

	empty := block(t, out, "internal sealed partial class Empty", "}")
	assert.NotContains(t, empty, "Update(")

	rewriter := block(t, out, "internal abstract partial class BoundTreeRewriter", "}")
	assert.Contains(t, rewriter, "        public override Node VisitEmpty(Empty node)\n        {\n            return node;\n        }\n")

	assert.Contains(t, out, `return new TreeDumperNode("empty", null, SpecializedCollections.EmptyArray<TreeDumperNode>());`)
}

func TestUpdateShadowsConcreteBase(t *testing.T) {
	s := schema(
		abstract("Expression", "Node"),
		concrete("Invocation", "Expression", fld("Method", "MethodSymbol", "")),
		concrete("VirtualInvocation", "Invocation"),
	)

	out := generate(t, s, csharp.CSharp)
	assert.Contains(t, out, "internal partial class Invocation : Expression")
	assert.Contains(t, out, "protected Invocation(BoundKind kind, CSharpSyntaxNode syntax, MethodSymbol method, bool hasErrors)")
	assert.Contains(t, out, "public new VirtualInvocation Update(MethodSymbol method)")
	assert.Contains(t, out, "public Invocation Update(MethodSymbol method)")
	assert.Contains(t, out, ": base(BoundKind.VirtualInvocation, syntax, method)")

	out = generate(t, s, vb.VisualBasic)
	assert.Contains(t, out, "Friend Partial Class Invocation\n")
	assert.Contains(t, out, "Public Shadows Function Update(method As MethodSymbol) As VirtualInvocation")
}

func TestAlwaysFieldsAreForwardedAsNull(t *testing.T) {
	s := schema(
		abstract("Expression", "Node", fld("Type", "TypeSymbol", "Disallow")),
		concrete("Typeless", "Expression",
			&core.Field{Name: "Type", Type: "TypeSymbol", Null: "Always", IsOverride: true},
		),
	)
	out := generate(t, s, csharp.CSharp)

	typeless := block(t, out, "internal sealed partial class Typeless", "}")
	assert.Contains(t, typeless, "public Typeless(CSharpSyntaxNode syntax, bool hasErrors)\n            : base(BoundKind.Typeless, syntax, null, hasErrors)")
	assert.NotContains(t, typeless, "Debug.Assert")
	assert.Contains(t, typeless, "public Typeless Update()\n        {\n            return this;\n        }")

	expression := block(t, out, "internal abstract partial class Expression", "}")
	assert.Contains(t, expression, "Debug.Assert(type != null")
	assert.Contains(t, expression, "this.Type = type;")
}

func TestFieldFeatures(t *testing.T) {
	s := schema(
		&core.TypeDef{Name: "BinaryOperatorKind", Variant: core.VariantEnumType},
		abstract("Expression", "Node", fld("Type", "TypeSymbol", "Allow")),
		&core.TypeDef{
			Name:            "BoundDefault",
			Variant:         core.VariantConcreteNode,
			BaseTypeName:    "Expression",
			HasValidateHook: true,
			Fields: []*core.Field{
				fld("Operator", "BinaryOperatorKind", ""),
				{Name: "Symbol", Type: "Symbol", Null: "Allow", IsPropertyOverride: true},
				{Name: "Kind", Type: "String", Null: "Allow", IsNew: true},
				fld("ArgumentsOpt", "ImmutableArray<Expression>", "Allow"),
				fld("Locals", "ImmutableArray<LocalSymbol>", ""),
				{Name: "Parent", Type: "Expression", Null: "Allow", SkipInVisitor: true},
			},
		},
	)

	t.Run("csharp", func(t *testing.T) {
		out := generate(t, s, csharp.CSharp)
		assert.Contains(t, out, "        Default,\n")
		assert.Contains(t, out, "BinaryOperatorKind @operator")
		assert.Contains(t, out, "this.Operator = @operator;")
		assert.Contains(t, out, "private readonly Symbol _Symbol;\n        public override Symbol Symbol { get { return _Symbol; } }")
		assert.Contains(t, out, "this._Symbol = symbol;")
		assert.Contains(t, out, "public new String Kind { get; }")
		assert.Contains(t, out, "Debug.Assert(!locals.IsDefault, ")
		assert.Contains(t, out, "            Validate();\n        }")
		assert.Equal(t, 1, strings.Count(out, "partial void Validate();"))
		assert.Contains(t, out, "@operator != this.Operator")
		assert.Contains(t, out, `new TreeDumperNode("argumentsOpt", null, node.ArgumentsOpt.IsDefault ? SpecializedCollections.EmptyArray<TreeDumperNode>() : from x in node.ArgumentsOpt select Visit(x, null))`)
		assert.Contains(t, out, `new TreeDumperNode("locals", node.Locals, null)`)

		walker := block(t, out, "internal abstract partial class BoundTreeWalker", "}")
		assert.Contains(t, walker, "this.VisitList(node.ArgumentsOpt);")
		assert.NotContains(t, walker, "node.Parent")

		rewriter := block(t, out, "internal abstract partial class BoundTreeRewriter", "}")
		assert.Contains(t, rewriter, "ImmutableArray<Expression> argumentsOpt = this.VisitList(node.ArgumentsOpt);")
		assert.Contains(t, rewriter, "Expression parent = node.Parent;")
		assert.Contains(t, rewriter, "return node.Update(type, node.Operator, node.Symbol, node.Kind, argumentsOpt, node.Locals, parent);")
	})

	t.Run("vb", func(t *testing.T) {
		s := *s
		s.Types = append([]*core.TypeDef(nil), s.Types...)
		def := *s.Types[2]
		def.Fields = append([]*core.Field(nil), def.Fields...)
		def.Fields[3] = fld("ArgumentsOpt", "ImmutableArray(Of Expression)", "Allow")
		def.Fields[4] = fld("Locals", "ImmutableArray(Of LocalSymbol)", "")
		s.Types[2] = &def

		out := generate(t, &s, vb.VisualBasic)
		assert.Contains(t, out, "        [Default]\n")
		assert.Contains(t, out, "Case BoundKind.[Default]")
		assert.Contains(t, out, "[operator] As BinaryOperatorKind")
		assert.Contains(t, out, "Public Overrides ReadOnly Property Symbol As Symbol")
		assert.Contains(t, out, "Private Shadows ReadOnly _Kind As String")
		assert.Contains(t, out, "Debug.Assert(Not (locals.IsDefault), ")
		assert.Contains(t, out, "[operator] <> Me.Operator")
		assert.Contains(t, out, "locals <> Me.Locals")
		assert.Contains(t, out, "            Validate()\n        End Sub")
		assert.Equal(t, 1, strings.Count(out, "Private Partial Sub Validate()"))
		assert.Contains(t, out, `If(node.ArgumentsOpt.IsDefault, SpecializedCollections.EmptyArray(Of TreeDumperNode)(), From x In node.ArgumentsOpt Select Visit(x, Nothing))`)
	})
}

func TestDeterministicOutput(t *testing.T) {
	for _, d := range []dialect.Dialect{csharp.CSharp, vb.VisualBasic} {
		t.Run(d.Name(), func(t *testing.T) {
			first, err := Generate(scenarioB(), d, Options{})
			require.NoError(t, err)
			second, err := Generate(scenarioB(), d, Options{})
			require.NoError(t, err)
			assert.True(t, bytes.Equal(first, second))

			g, err := New(scenarioB(), d, Options{})
			require.NoError(t, err)
			var a, b bytes.Buffer
			_, err = g.WriteTo(&a)
			require.NoError(t, err)
			_, err = g.WriteTo(&b)
			require.NoError(t, err)
			assert.Equal(t, a.String(), b.String())
			assert.Equal(t, string(first), a.String())
		})
	}
}

func TestOptions(t *testing.T) {
	out, err := Generate(scenarioA(), csharp.CSharp, Options{
		Prefix:          "Ir",
		Namespace:       "Acme.Ir",
		Imports:         []string{"System", ".Nodes"},
		IndentWidth:     2,
		ProvenanceFlags: []string{"IsSynthetic", "WasCompilerGenerated"},
	})
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, "using System;\nusing Acme.Ir.Nodes;\n\nnamespace Acme.Ir\n")

	bare, err := Generate(scenarioA(), csharp.CSharp, Options{Imports: []string{}})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(bare), "// <auto-generated />\n\nnamespace Test\n"))
	assert.NotContains(t, string(bare), "using ")
	assert.Contains(t, s, "  internal enum IrKind : byte\n")
	assert.Contains(t, s, "internal abstract partial class IrTreeVisitor<A, R>")
	assert.Contains(t, s, "internal abstract partial class IrTreeWalker : IrTreeVisitor")
	assert.Contains(t, s, "result.IsSynthetic = this.IsSynthetic;\n")
	assert.Contains(t, s, "result.WasCompilerGenerated = this.WasCompilerGenerated;\n")

	g, err := New(&core.Schema{RootTypeName: "Node", Types: scenarioA().Types}, vb.VisualBasic, Options{})
	require.NoError(t, err)
	assert.Equal(t, "Microsoft.CodeAnalysis.VisualBasic", g.Namespace())
}

// =============================================================================
// Failures
// =============================================================================

// limitedDialect hides one optional construct of the C# dialect.
type limitedDialect struct {
	*csharp.Dialect
	missing dialect.Construct
}

func (d limitedDialect) Supports(c dialect.Construct) bool {
	return c != d.missing && d.Dialect.Supports(c)
}

// overloadDialect expresses optional parameters as overloads.
type overloadDialect struct {
	*csharp.Dialect
}

func (overloadDialect) OptionalParameters() dialect.OptionalStyle { return dialect.OptionalOverload }

func TestOverloadStyleOptionalParameters(t *testing.T) {
	out := generate(t, scenarioB(), overloadDialect{csharp.CSharp})
	binary := block(t, out, "internal sealed partial class Binary", "}")

	assert.Contains(t, binary, "public Binary(CSharpSyntaxNode syntax, Expression left, Expression right, bool hasErrors)\n")
	assert.Contains(t, binary, "public Binary(CSharpSyntaxNode syntax, Expression left, Expression right)\n            : this(syntax, left, right, false)\n        {\n        }\n")
	assert.NotContains(t, binary, "= false")
}

func TestUnsupportedConstruct(t *testing.T) {
	tests := []struct {
		name    string
		missing dialect.Construct
		schema  *core.Schema
	}{
		{name: "query expression", missing: dialect.ConstructQueryExpression, schema: schema(
			abstract("Expression", "Node"),
			concrete("Block", "Expression", fld("Items", "ImmutableArray<Expression>", "")),
		)},
		{name: "validate hook", missing: dialect.ConstructValidateHook, schema: schema(
			&core.TypeDef{Name: "Checked", Variant: core.VariantConcreteNode, BaseTypeName: "Node", HasValidateHook: true},
		)},
		{name: "generic types", missing: dialect.ConstructGenericTypes, schema: scenarioA()},
		{name: "shadowing", missing: dialect.ConstructShadowing, schema: schema(
			concrete("Invocation", "Node", fld("Method", "MethodSymbol", "")),
			concrete("VirtualInvocation", "Invocation"),
		)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Generate(tt.schema, limitedDialect{Dialect: csharp.CSharp, missing: tt.missing}, Options{})
			assert.Nil(t, out)
			var unsupported *core.UnsupportedDialectError
			require.ErrorAs(t, err, &unsupported)
			assert.Equal(t, "csharp", unsupported.Dialect)
			assert.Equal(t, string(tt.missing), unsupported.Construct)
		})
	}
}

func TestSchemaErrorsAbortWithoutOutput(t *testing.T) {
	tests := []struct {
		name   string
		schema *core.Schema
		target any
	}{
		{
			name:   "bad nullability token",
			schema: schema(concrete("Literal", "Node", fld("Value", "Text", "sometimes"))),
			target: new(*core.NullabilityTokenError),
		},
		{
			name:   "unknown base",
			schema: schema(concrete("Literal", "Missing")),
			target: new(*core.SchemaReferenceError),
		},
		{
			name: "override with nothing to override",
			schema: schema(concrete("Literal", "Node",
				&core.Field{Name: "Value", Type: "Text", IsOverride: true},
			)),
			target: new(*core.FieldResolutionError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Generate(tt.schema, csharp.CSharp, Options{})
			require.Error(t, err)
			assert.Nil(t, out)
			assert.ErrorAs(t, err, tt.target)
		})
	}

	_, err := Generate(nil, csharp.CSharp, Options{})
	assert.ErrorIs(t, err, ErrSchemaRequired)
	_, err = Generate(scenarioA(), nil, Options{})
	assert.ErrorIs(t, err, dialect.ErrDialectRequired)
}

func TestNaming(t *testing.T) {
	assert.Equal(t, "Literal", StripPrefix("BoundLiteral", "Bound"))
	assert.Equal(t, "Literal", StripPrefix("Literal", "Bound"))
	assert.Equal(t, "argumentsOpt", LowerFirst("ArgumentsOpt"))
	assert.Equal(t, "x", LowerFirst("x"))
	assert.Equal(t, "", LowerFirst(""))
	assert.Equal(t, "@this", ToCamelCase(csharp.CSharp, "This"))
	assert.Equal(t, "[me]", ToCamelCase(vb.VisualBasic, "Me"))
	assert.Equal(t, "value", ToCamelCase(vb.VisualBasic, "Value"))
}
