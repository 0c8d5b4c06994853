package generator

import (
	"log/slog"
	"maps"
)

// DefaultPrefix is stripped from node type names to form kind and visit names.
const DefaultPrefix = "Bound"

// DefaultHeader is the marker comment at the top of every generated unit.
const DefaultHeader = "<auto-generated />"

// DumperNodeType is the labelled tree node type built by the dumper.
const DumperNodeType = "TreeDumperNode"

// DefaultImports are the namespaces imported by every unit. Entries starting
// with "." are relative to the unit's namespace.
var DefaultImports = []string{
	"System",
	"System.Collections",
	"System.Collections.Generic",
	"System.Collections.Immutable",
	"System.Diagnostics",
	"System.Linq",
	"System.Runtime.CompilerServices",
	"System.Threading",
	"System.Text",
	"Microsoft.CodeAnalysis.Collections",
	"Roslyn.Utilities",
	"Microsoft.CodeAnalysis.Text",
	".Symbols",
	".Syntax",
}

// DefaultProvenanceFlags are copied from the receiver to the rebuilt node in Update.
var DefaultProvenanceFlags = []string{"WasCompilerGenerated"}

// DefaultTypeVisitFields maps field types to the rewriter method that visits them.
var DefaultTypeVisitFields = map[string]string{"TypeSymbol": "VisitType"}

// Options controls naming and ambient details of a generated unit.
// The zero value selects every default.
type Options struct {
	// Prefix is stripped from node names (default "Bound").
	Prefix string
	// Namespace overrides the schema namespace.
	Namespace string
	// Header is the text of the leading comment.
	Header string
	// Imports replaces DefaultImports when non-nil.
	Imports []string
	// IndentWidth is the number of spaces per level (default 4).
	IndentWidth int

	// KindEnum and the visitor class names default to Prefix plus a fixed suffix.
	KindEnum     string
	VisitorName  string
	WalkerName   string
	RewriterName string
	DumperName   string

	// ProvenanceFlags replaces DefaultProvenanceFlags when non-nil.
	ProvenanceFlags []string
	// TypeVisitFields replaces DefaultTypeVisitFields when non-nil.
	TypeVisitFields map[string]string

	// Logger receives debug summaries. Nil discards.
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Prefix == "" {
		o.Prefix = DefaultPrefix
	}
	if o.Header == "" {
		o.Header = DefaultHeader
	}
	if o.Imports == nil {
		o.Imports = DefaultImports
	}
	if o.KindEnum == "" {
		o.KindEnum = o.Prefix + "Kind"
	}
	if o.VisitorName == "" {
		o.VisitorName = o.Prefix + "TreeVisitor"
	}
	if o.WalkerName == "" {
		o.WalkerName = o.Prefix + "TreeWalker"
	}
	if o.RewriterName == "" {
		o.RewriterName = o.Prefix + "TreeRewriter"
	}
	if o.DumperName == "" {
		o.DumperName = o.Prefix + "TreeDumperNodeProducer"
	}
	if o.ProvenanceFlags == nil {
		o.ProvenanceFlags = DefaultProvenanceFlags
	}
	if o.TypeVisitFields == nil {
		o.TypeVisitFields = maps.Clone(DefaultTypeVisitFields)
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}
