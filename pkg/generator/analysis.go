package generator

import (
	"strings"

	"github.com/leapstack-labs/treegen/pkg/core"
	"github.com/leapstack-labs/treegen/pkg/dialect"
	"github.com/leapstack-labs/treegen/pkg/resolver"
)

// fieldInfo is a field as seen from one node type.
type fieldInfo struct {
	def   *core.Field
	param string // camel-cased, escaped parameter/local name
	null  core.Nullability

	isNode       bool // a single child node
	isNodeList   bool // a list of child nodes
	isArrayValue bool
	byReference  bool   // Update compares by reference
	typeVisit    string // rewriter method for type fields, or ""
}

func (f *fieldInfo) isChild() bool { return f.isNode || f.isNodeList }

// typeInfo holds every resolved fact the emitters need for one node type.
type typeInfo struct {
	def       *core.TypeDef
	base      *core.TypeDef
	kindName  string // stripped and escaped enum member
	visitName string // Visit<StrippedName>
	label     string // dumper label

	sealable bool
	concrete bool
	isRoot   bool // constructors chain to no base

	own         []*fieldInfo // declared on this type, overrides excluded
	all         []*fieldInfo // ancestors first
	specifiable []*fieldInfo // all minus Always
	baseArgs    []*fieldInfo // base type's specifiable fields, nullability as seen here
	disallowed  []*fieldInfo // all fields resolving to Disallow

	hasChildNodes bool
	hasUpdate     bool
	shadowUpdate  bool
}

// errorChildren are the constructor parameters folded into the error flag.
func (t *typeInfo) errorChildren() []*fieldInfo {
	var out []*fieldInfo
	for _, f := range t.specifiable {
		if f.isChild() {
			out = append(out, f)
		}
	}
	return out
}

// analyze runs every resolver query up front so emission cannot fail.
func analyze(schema *core.Schema, d dialect.Dialect, opts Options) ([]*typeInfo, error) {
	res, err := resolver.New(schema, d)
	if err != nil {
		return nil, err
	}
	a := &analyzer{res: res, d: d, opts: opts}

	if err := a.require(dialect.ConstructGenericTypes); err != nil {
		return nil, err
	}

	var types []*typeInfo
	for _, t := range schema.NodeTypes() {
		ti, err := a.analyzeType(t)
		if err != nil {
			return nil, err
		}
		types = append(types, ti)
	}
	return types, nil
}

type analyzer struct {
	res  *resolver.Resolver
	d    dialect.Dialect
	opts Options
}

func (a *analyzer) require(c dialect.Construct) error {
	if a.d.Supports(c) {
		return nil
	}
	return &core.UnsupportedDialectError{Dialect: a.d.Name(), Construct: string(c)}
}

func (a *analyzer) analyzeType(t *core.TypeDef) (*typeInfo, error) {
	base, err := a.res.BaseTypeOf(t)
	if err != nil {
		return nil, err
	}
	stripped := StripPrefix(t.Name, a.opts.Prefix)
	ti := &typeInfo{
		def:       t,
		base:      base,
		kindName:  a.d.EscapeIdentifier(stripped),
		visitName: "Visit" + stripped,
		label:     LowerFirst(stripped),
		sealable:  a.res.IsSealable(t),
		concrete:  t.IsConcrete(),
		isRoot:    a.res.IsRoot(t),
	}

	all, err := a.res.AllFields(t)
	if err != nil {
		return nil, err
	}
	// Overrides are not in AllFields; resolving them still validates the chain.
	for _, f := range t.Fields {
		if f.IsOverride {
			if _, err := a.res.ResolveNullability(t, f.Name); err != nil {
				return nil, err
			}
		}
	}
	own := make(map[*core.Field]bool)
	for _, f := range a.res.Fields(t) {
		own[f] = true
	}
	for _, f := range all {
		fi, err := a.fieldInfo(t, f)
		if err != nil {
			return nil, err
		}
		ti.all = append(ti.all, fi)
		if own[f] {
			ti.own = append(ti.own, fi)
		}
		if fi.null != core.NullAlways {
			ti.specifiable = append(ti.specifiable, fi)
		}
		if fi.null == core.NullDisallow {
			ti.disallowed = append(ti.disallowed, fi)
		}
	}

	if base != nil {
		baseFields, err := a.res.SpecifiableFields(base)
		if err != nil {
			return nil, err
		}
		for _, f := range baseFields {
			fi, err := a.fieldInfo(t, f)
			if err != nil {
				return nil, err
			}
			ti.baseArgs = append(ti.baseArgs, fi)
		}
	}

	children, err := a.res.ChildNodeFields(t)
	if err != nil {
		return nil, err
	}
	ti.hasChildNodes = len(children) > 0
	ti.hasUpdate = ti.concrete && len(ti.all) > 0
	ti.shadowUpdate = ti.hasUpdate && len(ti.own) == 0 && base != nil && base.IsConcrete()

	if err := a.checkConstructs(ti); err != nil {
		return nil, err
	}
	return ti, nil
}

func (a *analyzer) fieldInfo(t *core.TypeDef, f *core.Field) (*fieldInfo, error) {
	null, err := a.res.ResolveNullability(t, f.Name)
	if err != nil {
		return nil, err
	}
	fi := &fieldInfo{
		def:          f,
		param:        ToCamelCase(a.d, f.Name),
		null:         null,
		isNode:       a.res.IsNodeType(f.Type),
		isNodeList:   a.res.IsNodeListType(f.Type),
		isArrayValue: a.res.IsArrayValueType(f.Type),
		typeVisit:    a.opts.TypeVisitFields[f.Type],
	}
	// Array-value wrappers use the value operator, which tests array identity.
	fi.byReference = !a.res.IsValueType(f.Type)
	return fi, nil
}

func (a *analyzer) checkConstructs(ti *typeInfo) error {
	if ti.def.HasValidateHook {
		if err := a.require(dialect.ConstructValidateHook); err != nil {
			return err
		}
	}
	if ti.shadowUpdate {
		if err := a.require(dialect.ConstructShadowing); err != nil {
			return err
		}
	}
	if ti.hasChildNodes && a.d.OptionalParameters() == dialect.OptionalUnsupported {
		return &core.UnsupportedDialectError{Dialect: a.d.Name(), Construct: string(dialect.ConstructOptionalParams)}
	}
	for _, f := range ti.own {
		if f.def.IsNew {
			if err := a.require(dialect.ConstructShadowing); err != nil {
				return err
			}
		}
		if f.def.IsPropertyOverride {
			if err := a.require(dialect.ConstructPropertyOverride); err != nil {
				return err
			}
		}
	}
	if ti.concrete {
		for _, f := range ti.all {
			if f.isNodeList {
				return a.require(dialect.ConstructQueryExpression)
			}
		}
	}
	return nil
}

// isOptionalArray reports whether a list field follows the "Opt" naming
// convention for arrays that may be absent.
func isOptionalArray(f *fieldInfo) bool {
	return f.isArrayValue && strings.HasSuffix(f.def.Name, "Opt")
}
