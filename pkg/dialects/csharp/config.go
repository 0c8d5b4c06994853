// Package csharp provides the C# output dialect.
// This package is pure data plus spelling; it has no dependency on the generator.
package csharp

import "github.com/leapstack-labs/treegen/pkg/dialect"

var braces = dialect.BlockTokens{Open: "{", Close: "}"}

// Config is the C# dialect configuration.
// This is pure data - dialect.Base derives the vocabulary capabilities from it.
var Config = &dialect.Config{
	Name:             "csharp",
	Aliases:          []string{"cs", "c#"},
	FileExtension:    ".cs",
	DefaultNamespace: "Microsoft.CodeAnalysis.CSharp",
	SyntaxNodeType:   "CSharpSyntaxNode",

	CommentPrefix: "//",
	Terminator:    ";",
	OrOperator:    "||",
	NullLiteral:   "null",
	TrueLiteral:   "true",
	FalseLiteral:  "false",
	SelfReference: "this",
	ReturnWord:    "return",
	NewWord:       "new",
	BoolType:      "bool",
	ByteType:      "byte",
	ObjectType:    "object",

	Keywords:   csharpKeywords,
	EscapeOpen: "@",

	Blocks: map[dialect.BlockKind]dialect.BlockTokens{
		dialect.BlockNamespace:   braces,
		dialect.BlockEnum:        braces,
		dialect.BlockClass:       braces,
		dialect.BlockConstructor: braces,
		dialect.BlockFunction:    braces,
		dialect.BlockSub:         braces,
		dialect.BlockProperty:    braces,
		dialect.BlockGetter:      braces,
		dialect.BlockIf:          braces,
		dialect.BlockSwitch:      braces,
		dialect.BlockArray:       braces,
		// case sections are delimited by their labels
		dialect.BlockCase: {},
	},
	DeclKeywords: map[dialect.Keyword]string{
		dialect.KeywordAbstract: "abstract",
		dialect.KeywordSealed:   "sealed",
		dialect.KeywordOverride: "override",
		dialect.KeywordVirtual:  "virtual",
		dialect.KeywordNew:      "new",
		dialect.KeywordPartial:  "partial",
		dialect.KeywordReadOnly: "readonly",
		dialect.KeywordStatic:   "static",
	},
	AccessWords: map[dialect.Access]string{
		dialect.AccessPublic:    "public",
		dialect.AccessProtected: "protected",
		dialect.AccessInternal:  "internal",
		dialect.AccessPrivate:   "private",
	},

	GenericOpen:  "<",
	GenericClose: ">",

	ListTypes:       []string{"IList", "ImmutableArray"},
	ArrayValueTypes: []string{"ImmutableArray"},
	PrimitiveValueTypes: []string{
		"bool", "int", "uint", "short", "ushort", "long", "ulong",
		"byte", "sbyte", "char", "Boolean",
		"Int8", "Int16", "Int32", "Int64",
		"UInt8", "UInt16", "UInt32", "UInt64",
		"PropertyAccessKind",
	},

	Optional:  dialect.OptionalDefaultValue,
	Placement: dialect.PlacementInitializer,
	Constructs: []dialect.Construct{
		dialect.ConstructValidateHook,
		dialect.ConstructPropertyOverride,
		dialect.ConstructShadowing,
		dialect.ConstructQueryExpression,
		dialect.ConstructGenericTypes,
	},
}
