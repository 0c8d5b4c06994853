// Package generator emits the node classes, kind enumeration and visitor family
// of a schema in one output dialect.
//
// Generation is two-phase. An analysis pass runs every schema query and
// dialect capability check; emission then writes the unit in a fixed order:
// header, namespace, kinds, node classes, visitors, walker, rewriter, dumper.
// Any schema or dialect error surfaces from the analysis pass, so a failed
// generation produces no output at all.
package generator

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/leapstack-labs/treegen/pkg/core"
	"github.com/leapstack-labs/treegen/pkg/dialect"
	"github.com/leapstack-labs/treegen/pkg/format"
)

// ErrSchemaRequired is returned when no schema is given.
var ErrSchemaRequired = errors.New("schema is required")

// Generator produces one unit for a schema and dialect.
// It is immutable after New; WriteTo may be called any number of times.
type Generator struct {
	schema    *core.Schema
	d         dialect.Dialect
	opts      Options
	namespace string
	types     []*typeInfo
}

// New analyses schema for dialect d.
func New(schema *core.Schema, d dialect.Dialect, opts Options) (*Generator, error) {
	if schema == nil {
		return nil, ErrSchemaRequired
	}
	if d == nil {
		return nil, dialect.ErrDialectRequired
	}
	opts = opts.withDefaults()

	types, err := analyze(schema, d, opts)
	if err != nil {
		return nil, err
	}

	ns := opts.Namespace
	if ns == "" {
		ns = schema.Namespace
	}
	if ns == "" {
		ns = d.DefaultNamespace()
	}

	opts.Logger.Debug("analysed schema",
		"dialect", d.Name(),
		"namespace", ns,
		"types", len(schema.Types),
		"nodes", len(types),
	)
	return &Generator{schema: schema, d: d, opts: opts, namespace: ns, types: types}, nil
}

// Generate renders the unit for schema in dialect d.
func Generate(schema *core.Schema, d dialect.Dialect, opts Options) ([]byte, error) {
	g, err := New(schema, d, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := g.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Namespace returns the namespace the unit is generated into.
func (g *Generator) Namespace() string { return g.namespace }

// WriteTo renders the unit into dst.
func (g *Generator) WriteTo(dst io.Writer) (int64, error) {
	e := &emitter{
		Generator: g,
		w:         format.NewWriter(g.opts.IndentWidth),
	}
	e.writeUnit()
	n, err := e.w.WriteTo(dst)
	if err == nil {
		g.opts.Logger.Debug("generated unit", "dialect", g.d.Name(), "bytes", n)
	}
	return n, err
}

// emitter holds the per-call writer. Nothing it does can fail.
type emitter struct {
	*Generator
	w *format.Writer
}

func (e *emitter) concreteTypes() []*typeInfo {
	var out []*typeInfo
	for _, t := range e.types {
		if t.concrete {
			out = append(out, t)
		}
	}
	return out
}

func (e *emitter) writeUnit() {
	d, w := e.d, e.w

	w.WriteLine(d.LineComment(e.opts.Header))
	w.Blank()
	for _, imp := range e.opts.Imports {
		if strings.HasPrefix(imp, ".") {
			imp = e.namespace + imp
		}
		w.WriteLine(d.Import(imp))
	}
	if len(e.opts.Imports) > 0 {
		w.Blank()
	}

	w.WriteLine(d.NamespaceHeader(e.namespace))
	w.OpenBlock(d.BlockOpen(dialect.BlockNamespace))

	s := e.section()
	s.next()
	e.writeKinds()
	for _, t := range e.types {
		s.next()
		e.writeType(t)
	}
	s.next()
	e.writeDispatcher()
	s.next()
	e.writeGenericVisitor()
	s.next()
	e.writeVisitor()
	s.next()
	e.writeWalker()
	s.next()
	e.writeRewriter()
	s.next()
	e.writeDumper()

	w.CloseBlock(d.BlockClose(dialect.BlockNamespace))
}

// section separates consecutive members of a block with one blank line.
type section struct {
	w       *format.Writer
	started bool
}

func (e *emitter) section() *section { return &section{w: e.w} }

func (s *section) next() {
	if s.started {
		s.w.Blank()
	}
	s.started = true
}

// openClass writes a class header and opens its body.
func (e *emitter) openClass(c dialect.ClassDecl) *section {
	e.w.WriteLine(e.d.ClassHeader(c))
	e.w.OpenBlock(e.d.BlockOpen(dialect.BlockClass))
	if inherits := e.d.InheritsStatement(c.Base); inherits != "" {
		e.w.WriteLine(inherits)
		e.w.Blank()
	}
	return e.section()
}

func (e *emitter) closeClass() {
	e.w.CloseBlock(e.d.BlockClose(dialect.BlockClass))
}

// openMethod writes a method header and opens its body.
func (e *emitter) openMethod(m dialect.MethodDecl) {
	e.w.WriteLine(e.d.MethodHeader(m))
	e.w.OpenBlock(e.d.BlockOpen(methodBlock(m)))
}

func (e *emitter) closeMethod(m dialect.MethodDecl) {
	e.w.CloseBlock(e.d.BlockClose(methodBlock(m)))
}

func methodBlock(m dialect.MethodDecl) dialect.BlockKind {
	if m.Returns == "" {
		return dialect.BlockSub
	}
	return dialect.BlockFunction
}

func (e *emitter) self(name string) string {
	return member(e.d.SelfReference(), name)
}
