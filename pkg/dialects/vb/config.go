// Package vb provides the Visual Basic output dialect.
// Blocks are closed by End keywords and opened by their header line alone.
package vb

import "github.com/leapstack-labs/treegen/pkg/dialect"

func endBlock(keyword string) dialect.BlockTokens {
	return dialect.BlockTokens{Close: "End " + keyword}
}

// Config is the Visual Basic dialect configuration.
// This is pure data - dialect.Base derives the vocabulary capabilities from it.
var Config = &dialect.Config{
	Name:             "vb",
	Aliases:          []string{"visualbasic", "vbnet"},
	FileExtension:    ".vb",
	DefaultNamespace: "Microsoft.CodeAnalysis.VisualBasic",
	SyntaxNodeType:   "VisualBasicSyntaxNode",

	CommentPrefix: "'",
	Terminator:    "",
	OrOperator:    "OrElse",
	NullLiteral:   "Nothing",
	TrueLiteral:   "True",
	FalseLiteral:  "False",
	SelfReference: "Me",
	ReturnWord:    "Return",
	NewWord:       "New",
	BoolType:      "Boolean",
	ByteType:      "Byte",
	ObjectType:    "Object",

	Keywords:        vbKeywords,
	CaseInsensitive: true,
	EscapeOpen:      "[",
	EscapeClose:     "]",

	Blocks: map[dialect.BlockKind]dialect.BlockTokens{
		dialect.BlockNamespace:   endBlock("Namespace"),
		dialect.BlockEnum:        endBlock("Enum"),
		dialect.BlockClass:       endBlock("Class"),
		dialect.BlockConstructor: endBlock("Sub"),
		dialect.BlockFunction:    endBlock("Function"),
		dialect.BlockSub:         endBlock("Sub"),
		dialect.BlockProperty:    endBlock("Property"),
		dialect.BlockGetter:      endBlock("Get"),
		dialect.BlockIf:          endBlock("If"),
		dialect.BlockSwitch:      endBlock("Select"),
		dialect.BlockCase:        {},
		// the opening brace ends the ArrayCreationHead line
		dialect.BlockArray: {Close: "}"},
	},
	DeclKeywords: map[dialect.Keyword]string{
		dialect.KeywordAbstract: "MustInherit",
		dialect.KeywordSealed:   "NotInheritable",
		dialect.KeywordOverride: "Overrides",
		dialect.KeywordVirtual:  "Overridable",
		dialect.KeywordNew:      "Shadows",
		dialect.KeywordPartial:  "Partial",
		dialect.KeywordReadOnly: "ReadOnly",
		dialect.KeywordStatic:   "Shared",
	},
	AccessWords: map[dialect.Access]string{
		dialect.AccessPublic:    "Public",
		dialect.AccessProtected: "Protected",
		dialect.AccessInternal:  "Friend",
		dialect.AccessPrivate:   "Private",
	},

	GenericOpen:  "(Of ",
	GenericClose: ")",

	ListTypes:       []string{"IList", "ImmutableArray"},
	ArrayValueTypes: []string{"ImmutableArray"},
	PrimitiveValueTypes: []string{
		"Boolean", "Integer", "UInteger", "Short", "UShort", "Long", "ULong",
		"Byte", "SByte", "Char",
		"Int8", "Int16", "Int32", "Int64",
		"UInt8", "UInt16", "UInt32", "UInt64",
		"PropertyAccessKind",
	},

	Optional:  dialect.OptionalDefaultValue,
	Placement: dialect.PlacementStatement,
	Constructs: []dialect.Construct{
		dialect.ConstructValidateHook,
		dialect.ConstructPropertyOverride,
		dialect.ConstructShadowing,
		dialect.ConstructQueryExpression,
		dialect.ConstructGenericTypes,
	},
}
