package generator

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/treegen/pkg/core"
	"github.com/leapstack-labs/treegen/pkg/dialect"
)

// =============================================================================
// Kind enumeration
// =============================================================================

func (e *emitter) writeKinds() {
	d, w := e.d, e.w
	w.WriteLine(d.EnumHeader(e.opts.KindEnum, d.ByteType()))
	w.OpenBlock(d.BlockOpen(dialect.BlockEnum))
	for _, t := range e.concreteTypes() {
		w.WriteLine(d.EnumMember(t.kindName))
	}
	w.CloseBlock(d.BlockClose(dialect.BlockEnum))
}

func (e *emitter) kindLiteral(t *typeInfo) string {
	return member(e.opts.KindEnum, t.kindName)
}

// =============================================================================
// Node classes
// =============================================================================

func (e *emitter) writeType(t *typeInfo) {
	mods := []dialect.Keyword{}
	switch {
	case t.def.IsAbstract():
		mods = append(mods, dialect.KeywordAbstract)
	case t.sealable:
		mods = append(mods, dialect.KeywordSealed)
	}
	mods = append(mods, dialect.KeywordPartial)

	base := t.def.BaseTypeName
	s := e.openClass(dialect.ClassDecl{
		Access:    dialect.AccessInternal,
		Modifiers: mods,
		Name:      t.def.Name,
		Base:      base,
	})

	if !t.sealable {
		e.writeConstructors(s, t, false)
	}
	if t.concrete {
		e.writeConstructors(s, t, true)
	}
	if t.def.HasValidateHook {
		s.next()
		e.d.WritePartialHook(e.w, "Validate")
	}

	for _, f := range t.own {
		s.next()
		e.d.WriteProperty(e.w, dialect.PropertyDecl{
			Name:     f.def.Name,
			Type:     f.def.Type,
			IsNew:    f.def.IsNew,
			Override: f.def.IsPropertyOverride,
		})
	}

	if t.concrete {
		s.next()
		e.writeAccept(t)
		if t.hasUpdate {
			s.next()
			e.writeUpdate(t)
		}
	}
	e.closeClass()
}

// =============================================================================
// Constructors
// =============================================================================

type hasErrorsMode int

const (
	hasErrorsMandatory hasErrorsMode = iota
	hasErrorsOptional
	hasErrorsOmitted
)

// writeConstructors writes the constructor set of one accessibility.
// With child node fields there is one constructor whose error flag is optional
// and merged with the children's flags; otherwise there are two, with and
// without the flag.
func (e *emitter) writeConstructors(s *section, t *typeInfo, public bool) {
	if !t.hasChildNodes {
		s.next()
		e.writeConstructor(t, public, hasErrorsMandatory)
		s.next()
		e.writeConstructor(t, public, hasErrorsOmitted)
		return
	}
	switch e.d.OptionalParameters() {
	case dialect.OptionalOverload:
		s.next()
		e.writeConstructor(t, public, hasErrorsMandatory)
		s.next()
		e.writeForwardingConstructor(t, public)
	default:
		s.next()
		e.writeConstructor(t, public, hasErrorsOptional)
	}
}

func (e *emitter) constructorParams(t *typeInfo, public bool, mode hasErrorsMode) []string {
	d := e.d
	var params []string
	if !public {
		params = append(params, d.Parameter("kind", e.opts.KindEnum))
	}
	params = append(params, d.Parameter("syntax", d.SyntaxNodeType()))
	for _, f := range t.specifiable {
		params = append(params, d.Parameter(f.param, f.def.Type))
	}
	switch mode {
	case hasErrorsMandatory:
		params = append(params, d.Parameter("hasErrors", d.BoolType()))
	case hasErrorsOptional:
		params = append(params, d.OptionalParameter("hasErrors", d.BoolType(), d.BoolLiteral(false)))
	}
	return params
}

// valueOf is the expression assigned or forwarded for f: its parameter, or the
// null literal when f is always null.
func (e *emitter) valueOf(f *fieldInfo) string {
	if f.null == core.NullAlways {
		return e.d.NullLiteral()
	}
	return f.param
}

func (e *emitter) baseCallArgs(t *typeInfo, public bool, mode hasErrorsMode) []string {
	var args []string
	if public {
		args = append(args, e.kindLiteral(t))
	} else {
		args = append(args, "kind")
	}
	args = append(args, "syntax")
	for _, f := range t.baseArgs {
		args = append(args, e.valueOf(f))
	}
	if mode == hasErrorsOmitted {
		return args
	}
	// Protected constructors receive a flag the derived type already merged.
	if !public {
		return append(args, "hasErrors")
	}
	flags := []string{"hasErrors"}
	for _, f := range t.errorChildren() {
		flags = append(flags, e.d.HasErrorsCall(f.param))
	}
	return append(args, strings.Join(flags, e.d.OrOperator()))
}

func (e *emitter) constructorAccess(public bool) dialect.Access {
	if public {
		return dialect.AccessPublic
	}
	return dialect.AccessProtected
}

// openConstructor writes the header and chained call, leaving the body open.
// An empty chained call is omitted.
func (e *emitter) openConstructor(header, chained string) {
	d, w := e.d, e.w
	w.WriteLine(header)
	if chained == "" {
		w.OpenBlock(d.BlockOpen(dialect.BlockConstructor))
		return
	}
	if d.BaseCallPlacement() == dialect.PlacementInitializer {
		w.Indent()
		w.WriteLine(chained)
		w.Outdent()
		w.OpenBlock(d.BlockOpen(dialect.BlockConstructor))
		return
	}
	w.OpenBlock(d.BlockOpen(dialect.BlockConstructor))
	w.WriteLine(d.Statement(chained))
}

func (e *emitter) writeConstructor(t *typeInfo, public bool, mode hasErrorsMode) {
	d, w := e.d, e.w
	header := d.ConstructorHeader(e.constructorAccess(public), t.def.Name, e.constructorParams(t, public, mode))
	var chained string
	if !t.isRoot {
		chained = d.BaseConstructorCall(e.baseCallArgs(t, public, mode))
	}
	e.openConstructor(header, chained)

	// A chained call written as a statement is separated from the body.
	wrote := chained != "" && d.BaseCallPlacement() == dialect.PlacementStatement
	if len(t.disallowed) > 0 {
		if wrote {
			w.Blank()
		}
		for _, f := range t.disallowed {
			w.WriteLine(d.Statement(e.nullCheck(f)))
		}
		wrote = true
	}
	if len(t.own) > 0 {
		if wrote {
			w.Blank()
		}
		for _, f := range t.own {
			target := member(d.SelfReference(), d.FieldStorage(f.def.Name, f.def.IsPropertyOverride))
			w.WriteLine(d.Statement(target + " = " + e.valueOf(f)))
		}
		wrote = true
	}
	if t.def.HasValidateHook {
		if wrote {
			w.Blank()
		}
		w.WriteLine(d.Statement(call("Validate")))
	}
	w.CloseBlock(d.BlockClose(dialect.BlockConstructor))
}

// writeForwardingConstructor writes the overload that omits the error flag and
// chains to the full constructor with false.
func (e *emitter) writeForwardingConstructor(t *typeInfo, public bool) {
	d := e.d
	params := e.constructorParams(t, public, hasErrorsOmitted)
	var args []string
	if !public {
		args = append(args, "kind")
	}
	args = append(args, "syntax")
	for _, f := range t.specifiable {
		args = append(args, f.param)
	}
	args = append(args, d.BoolLiteral(false))

	e.openConstructor(
		d.ConstructorHeader(e.constructorAccess(public), t.def.Name, params),
		d.SelfConstructorCall(args),
	)
	e.w.CloseBlock(d.BlockClose(dialect.BlockConstructor))
}

func (e *emitter) nullCheck(f *fieldInfo) string {
	cond := e.d.NotNull(f.param)
	if f.isArrayValue {
		cond = e.d.HasValue(f.param)
	}
	msg := fmt.Sprintf(`Field '%s' cannot be null (use Null="allow" in the schema to remove this check)`, f.param)
	return call("Debug.Assert", cond, e.d.StringLiteral(msg))
}

// =============================================================================
// Accept and Update
// =============================================================================

func (e *emitter) writeAccept(t *typeInfo) {
	d := e.d
	m := dialect.MethodDecl{
		Access:    dialect.AccessPublic,
		Modifiers: []dialect.Keyword{dialect.KeywordOverride},
		Name:      "Accept",
		Params:    []string{d.Parameter("visitor", e.opts.VisitorName)},
		Returns:   e.schema.RootTypeName,
	}
	e.openMethod(m)
	e.w.WriteLine(d.Return(call(member("visitor", t.visitName), d.SelfReference())))
	e.closeMethod(m)
}

// writeUpdate writes the rebuild method: it returns the receiver when every
// argument equals the current value, otherwise a new node carrying the
// receiver's provenance flags.
func (e *emitter) writeUpdate(t *typeInfo) {
	d, w := e.d, e.w
	m := dialect.MethodDecl{
		Access:  dialect.AccessPublic,
		Name:    "Update",
		Returns: t.def.Name,
	}
	if t.shadowUpdate {
		m.Modifiers = []dialect.Keyword{dialect.KeywordNew}
	}
	for _, f := range t.specifiable {
		m.Params = append(m.Params, d.Parameter(f.param, f.def.Type))
	}
	e.openMethod(m)

	if len(t.specifiable) > 0 {
		conds := make([]string, len(t.specifiable))
		args := []string{e.self("Syntax")}
		for i, f := range t.specifiable {
			conds[i] = d.NotEqual(f.param, e.self(f.def.Name), f.byReference)
			args = append(args, f.param)
		}
		args = append(args, e.self("HasErrors"))

		w.WriteLine(d.IfHeader(strings.Join(conds, d.OrOperator())))
		w.OpenBlock(d.BlockOpen(dialect.BlockIf))
		w.WriteLine(d.LocalInferred("result", d.New(t.def.Name, args)))
		for _, flag := range e.opts.ProvenanceFlags {
			d.WriteCopyFlag(w, "result", flag)
		}
		w.WriteLine(d.Return("result"))
		w.CloseBlock(d.BlockClose(dialect.BlockIf))
	}
	w.WriteLine(d.Return(d.SelfReference()))
	e.closeMethod(m)
}
