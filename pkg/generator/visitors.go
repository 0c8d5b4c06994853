package generator

import (
	"github.com/leapstack-labs/treegen/pkg/dialect"
)

// =============================================================================
// Visitor bases
// =============================================================================

var visitorTypeParams = []string{"A", "R"}

func (e *emitter) visitorBase() dialect.ClassDecl {
	return dialect.ClassDecl{
		Access:    dialect.AccessInternal,
		Modifiers: []dialect.Keyword{dialect.KeywordAbstract, dialect.KeywordPartial},
		Name:      e.opts.VisitorName,
	}
}

func (e *emitter) genericVisitorBase() dialect.ClassDecl {
	c := e.visitorBase()
	c.TypeParams = visitorTypeParams
	return c
}

// writeDispatcher writes VisitInternal, a switch over the node kind with one
// case per concrete node type in schema order.
func (e *emitter) writeDispatcher() {
	d, w := e.d, e.w
	e.openClass(e.genericVisitorBase())

	w.WriteLine(d.Attribute("MethodImpl(MethodImplOptions.NoInlining)"))
	m := dialect.MethodDecl{
		Access: dialect.AccessInternal,
		Name:   "VisitInternal",
		Params: []string{
			d.Parameter("node", e.schema.RootTypeName),
			d.Parameter("arg", "A"),
		},
		Returns: "R",
	}
	e.openMethod(m)
	w.WriteLine(d.SwitchHeader("node.Kind"))
	w.OpenBlock(d.BlockOpen(dialect.BlockSwitch))
	for _, t := range e.concreteTypes() {
		w.WriteLine(d.CaseLabel(e.kindLiteral(t)))
		w.OpenBlock(d.BlockOpen(dialect.BlockCase))
		w.WriteLine(d.Return(call(t.visitName, d.Cast("node", t.def.Name), "arg")))
		w.CloseBlock(d.BlockClose(dialect.BlockCase))
	}
	w.CloseBlock(d.BlockClose(dialect.BlockSwitch))
	w.WriteLine(d.Return(call("DefaultVisit", "node", "arg")))
	e.closeMethod(m)

	e.closeClass()
}

func (e *emitter) writeGenericVisitor() {
	d := e.d
	s := e.openClass(e.genericVisitorBase())
	for _, t := range e.concreteTypes() {
		s.next()
		m := dialect.MethodDecl{
			Access:    dialect.AccessPublic,
			Modifiers: []dialect.Keyword{dialect.KeywordVirtual},
			Name:      t.visitName,
			Params:    []string{d.Parameter("node", t.def.Name), d.Parameter("arg", "A")},
			Returns:   "R",
		}
		e.openMethod(m)
		e.w.WriteLine(d.Return(call(e.self("DefaultVisit"), "node", "arg")))
		e.closeMethod(m)
	}
	e.closeClass()
}

func (e *emitter) writeVisitor() {
	d := e.d
	s := e.openClass(e.visitorBase())
	for _, t := range e.concreteTypes() {
		s.next()
		m := dialect.MethodDecl{
			Access:    dialect.AccessPublic,
			Modifiers: []dialect.Keyword{dialect.KeywordVirtual},
			Name:      t.visitName,
			Params:    []string{d.Parameter("node", t.def.Name)},
			Returns:   e.schema.RootTypeName,
		}
		e.openMethod(m)
		e.w.WriteLine(d.Return(call(e.self("DefaultVisit"), "node")))
		e.closeMethod(m)
	}
	e.closeClass()
}

// visitOverride declares the override of a non-generic Visit method.
func (e *emitter) visitOverride(t *typeInfo) dialect.MethodDecl {
	return dialect.MethodDecl{
		Access:    dialect.AccessPublic,
		Modifiers: []dialect.Keyword{dialect.KeywordOverride},
		Name:      t.visitName,
		Params:    []string{e.d.Parameter("node", t.def.Name)},
		Returns:   e.schema.RootTypeName,
	}
}

func nodeField(f *fieldInfo) string { return member("node", f.def.Name) }

// =============================================================================
// Walker
// =============================================================================

func (e *emitter) writeWalker() {
	d, w := e.d, e.w
	s := e.openClass(dialect.ClassDecl{
		Access:    dialect.AccessInternal,
		Modifiers: []dialect.Keyword{dialect.KeywordAbstract, dialect.KeywordPartial},
		Name:      e.opts.WalkerName,
		Base:      e.opts.VisitorName,
	})
	for _, t := range e.concreteTypes() {
		s.next()
		m := e.visitOverride(t)
		e.openMethod(m)
		for _, f := range t.all {
			if !f.isChild() || f.def.SkipInVisitor {
				continue
			}
			visit := "Visit"
			if f.isNodeList {
				visit = "VisitList"
			}
			w.WriteLine(d.Statement(call(e.self(visit), nodeField(f))))
		}
		w.WriteLine(d.Return(d.NullLiteral()))
		e.closeMethod(m)
	}
	e.closeClass()
}

// =============================================================================
// Rewriter
// =============================================================================

func (e *emitter) writeRewriter() {
	d, w := e.d, e.w
	s := e.openClass(dialect.ClassDecl{
		Access:    dialect.AccessInternal,
		Modifiers: []dialect.Keyword{dialect.KeywordAbstract, dialect.KeywordPartial},
		Name:      e.opts.RewriterName,
		Base:      e.opts.VisitorName,
	})
	for _, t := range e.concreteTypes() {
		s.next()
		m := e.visitOverride(t)
		e.openMethod(m)

		locals := make(map[*fieldInfo]bool)
		for _, f := range t.specifiable {
			var init string
			switch {
			case f.isChild() && f.def.SkipInVisitor:
				init = nodeField(f)
			case f.isNodeList:
				init = call(e.self("VisitList"), nodeField(f))
			case f.isNode:
				init = d.Cast(call(e.self("Visit"), nodeField(f)), f.def.Type)
			case f.typeVisit != "":
				init = call(e.self(f.typeVisit), nodeField(f))
			default:
				continue
			}
			w.WriteLine(d.LocalDecl(f.param, f.def.Type, init))
			locals[f] = true
		}

		if t.hasUpdate {
			args := make([]string, len(t.specifiable))
			for i, f := range t.specifiable {
				if locals[f] {
					args[i] = f.param
				} else {
					args[i] = nodeField(f)
				}
			}
			w.WriteLine(d.Return(call("node.Update", args...)))
		} else {
			w.WriteLine(d.Return("node"))
		}
		e.closeMethod(m)
	}
	e.closeClass()
}

// =============================================================================
// Dumper
// =============================================================================

func (e *emitter) writeDumper() {
	d, w := e.d, e.w
	s := e.openClass(dialect.ClassDecl{
		Access:    dialect.AccessInternal,
		Modifiers: []dialect.Keyword{dialect.KeywordSealed},
		Name:      e.opts.DumperName,
		Base:      d.GenericType(e.opts.VisitorName, d.ObjectType(), DumperNodeType),
	})

	s.next()
	w.WriteLine(d.ConstructorHeader(dialect.AccessPrivate, e.opts.DumperName, nil))
	w.OpenBlock(d.BlockOpen(dialect.BlockConstructor))
	w.CloseBlock(d.BlockClose(dialect.BlockConstructor))

	s.next()
	makeTree := dialect.MethodDecl{
		Access:    dialect.AccessPublic,
		Modifiers: []dialect.Keyword{dialect.KeywordStatic},
		Name:      "MakeTree",
		Params:    []string{d.Parameter("node", e.schema.RootTypeName)},
		Returns:   DumperNodeType,
	}
	e.openMethod(makeTree)
	producer := "(" + d.New(e.opts.DumperName, nil) + ")"
	w.WriteLine(d.Return(call(member(producer, "Visit"), "node", d.NullLiteral())))
	e.closeMethod(makeTree)

	for _, t := range e.concreteTypes() {
		s.next()
		m := dialect.MethodDecl{
			Access:    dialect.AccessPublic,
			Modifiers: []dialect.Keyword{dialect.KeywordOverride},
			Name:      t.visitName,
			Params:    []string{d.Parameter("node", t.def.Name), d.Parameter("arg", d.ObjectType())},
			Returns:   DumperNodeType,
		}
		e.openMethod(m)
		e.writeDumpNode(t)
		e.closeMethod(m)
	}
	e.closeClass()
}

func (e *emitter) writeDumpNode(t *typeInfo) {
	d, w := e.d, e.w
	label := d.StringLiteral(t.label)
	if len(t.all) == 0 {
		w.WriteLine(d.Return(d.New(DumperNodeType, []string{label, d.NullLiteral(), d.EmptyArray(DumperNodeType)})))
		return
	}

	w.WriteLine(d.ReturnKeyword() + " " + d.NewHead(DumperNodeType) + "(" + label + ", " + d.NullLiteral() + ", " + d.ArrayCreationHead(DumperNodeType))
	w.OpenBlock(d.BlockOpen(dialect.BlockArray))
	for i, f := range t.all {
		item := e.dumpField(f)
		if i < len(t.all)-1 {
			item += ","
		}
		w.WriteLine(item)
	}
	w.CloseBlockWith(d.BlockClose(dialect.BlockArray), ")"+d.Terminator())
}

func (e *emitter) dumpField(f *fieldInfo) string {
	d := e.d
	null := d.NullLiteral()
	label := d.StringLiteral(LowerFirst(f.def.Name))
	visit := func(expr string) string { return call("Visit", expr, null) }

	switch {
	case f.isNode:
		return d.New(DumperNodeType, []string{label, null, d.ArrayCreation(DumperNodeType, []string{visit(nodeField(f))})})
	case f.isNodeList:
		children := d.MapQuery(nodeField(f), "x", visit("x"))
		if isOptionalArray(f) {
			children = d.Conditional(member(nodeField(f), "IsDefault"), d.EmptyArray(DumperNodeType), children)
		}
		return d.New(DumperNodeType, []string{label, null, children})
	default:
		return d.New(DumperNodeType, []string{label, nodeField(f), null})
	}
}
