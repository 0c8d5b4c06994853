package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testConfig(caseInsensitive bool) *Config {
	cfg := &Config{
		Name:          "test",
		CommentPrefix: "#",
		Terminator:    ";",
		OrOperator:    "or",
		NullLiteral:   "nil",
		TrueLiteral:   "yes",
		FalseLiteral:  "no",
		ReturnWord:    "ret",
		NewWord:       "make",
		Keywords:      []string{"class", "end"},
		EscapeOpen:    "`",
		EscapeClose:   "`",
		DeclKeywords: map[Keyword]string{
			KeywordAbstract: "abstract",
			KeywordPartial:  "partial",
		},
		GenericOpen:         "[",
		GenericClose:        "]",
		ListTypes:           []string{"List", "Array"},
		ArrayValueTypes:     []string{"Array"},
		PrimitiveValueTypes: []string{"int"},
		CaseInsensitive:     caseInsensitive,
		Optional:            OptionalUnsupported,
		Constructs:          []Construct{ConstructGenericTypes},
	}
	return cfg
}

func TestBase_Spelling(t *testing.T) {
	b := NewBase(testConfig(false))

	assert.Equal(t, "# hi", b.LineComment("hi"))
	assert.Equal(t, " or ", b.OrOperator())
	assert.Equal(t, "yes", b.BoolLiteral(true))
	assert.Equal(t, "no", b.BoolLiteral(false))
	assert.Equal(t, "x();", b.Statement("x()"))
	assert.Equal(t, "ret x;", b.Return("x"))
	assert.Equal(t, "make T(a, b)", b.New("T", []string{"a", "b"}))
	assert.Equal(t, "make T()", b.New("T", nil))
	assert.Equal(t, "Map[K, V]", b.GenericType("Map", "K", "V"))
	assert.Equal(t, "SpecializedCollections.EmptyArray[Node]()", b.EmptyArray("Node"))
	assert.Equal(t, "abstract partial ", b.Modifiers([]Keyword{KeywordAbstract, KeywordSealed, KeywordPartial}))
	assert.Equal(t, "", b.Modifiers(nil))
}

func TestBase_EscapeIdentifier(t *testing.T) {
	tests := []struct {
		name            string
		caseInsensitive bool
		in, want        string
	}{
		{"reserved", false, "class", "`class`"},
		{"case sensitive miss", false, "Class", "Class"},
		{"case insensitive hit", true, "Class", "`Class`"},
		{"plain", true, "value", "value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBase(testConfig(tt.caseInsensitive))
			assert.Equal(t, tt.want, b.EscapeIdentifier(tt.in))
		})
	}
}

func TestBase_TypeExpressions(t *testing.T) {
	b := NewBase(testConfig(false))

	tests := []struct {
		expr       string
		head, elem string
		list       bool
		arrayValue bool
	}{
		{expr: "List[Node]", head: "List", elem: "Node", list: true},
		{expr: "Array[ List[Node] ]", head: "Array", elem: "List[Node]", list: true, arrayValue: true},
		{expr: "Node", head: "Node"},
		{expr: "Array", head: "Array"},
		{expr: "Set[int]", head: "Set", elem: "int"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.head, b.GenericName(tt.expr))
			assert.Equal(t, tt.elem, b.ElementType(tt.expr))
			assert.Equal(t, tt.list, b.IsListType(tt.expr))
			assert.Equal(t, tt.arrayValue, b.IsArrayValueType(tt.expr))
		})
	}

	assert.Equal(t, []string{"int", "Array"}, b.PrimitiveValueTypes())
}

func TestBase_Supports(t *testing.T) {
	cfg := testConfig(false)
	b := NewBase(cfg)
	assert.True(t, b.Supports(ConstructGenericTypes))
	assert.False(t, b.Supports(ConstructShadowing))
	assert.False(t, b.Supports(ConstructOptionalParams))

	cfg.Optional = OptionalOverload
	assert.True(t, NewBase(cfg).Supports(ConstructOptionalParams))
	assert.Same(t, cfg, NewBase(cfg).Config())
}
