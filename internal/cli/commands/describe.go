package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/treegen/internal/cli/output"
	"github.com/leapstack-labs/treegen/internal/loader"
	"github.com/leapstack-labs/treegen/pkg/core"
	"github.com/leapstack-labs/treegen/pkg/dialect"
	"github.com/leapstack-labs/treegen/pkg/generator"
	"github.com/leapstack-labs/treegen/pkg/resolver"
)

// NewDescribeCommand creates the describe command.
func NewDescribeCommand() *cobra.Command {
	var dialectName string

	cmd := &cobra.Command{
		Use:   "describe [type]",
		Short: "Show the resolved node hierarchy",
		Long: `Show how the schema resolves: each node type with its base, sealability and
kind, or, for a single type, every field it carries with the declaring type,
resolved nullability and classification.

Type expressions are classified with the syntax of --dialect.`,
		Example: `  # Overview of all node types
  treegen describe

  # Fields of one type
  treegen describe BoundBinaryOperator

  # As JSON
  treegen describe BoundCall --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			if cmdCtx.Cfg.Schema == "" {
				return fmt.Errorf("schema is required\nHint: set 'schema' in treegen.yaml or pass --schema")
			}
			d, err := dialect.Lookup(dialectName)
			if err != nil {
				return err
			}
			loaded, err := loader.LoadFile(cmdCtx.Cfg.Schema)
			if err != nil {
				return err
			}
			res, err := resolver.New(loaded.Schema, d)
			if err != nil {
				return err
			}

			desc := &describer{res: res, prefix: cmdCtx.Cfg.Prefix, r: cmdCtx.Renderer}
			if len(args) == 1 {
				return desc.describeType(args[0])
			}
			return desc.describeSchema()
		},
	}

	cmd.Flags().StringVarP(&dialectName, "dialect", "d", "csharp", "Dialect whose type syntax classifies fields")
	return cmd
}

type describer struct {
	res    *resolver.Resolver
	prefix string
	r      *output.Renderer
}

type typeSummary struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Variant  string `json:"variant"`
	Base     string `json:"base"`
	Sealable bool   `json:"sealable"`
	Derived  int    `json:"derived"`
	Fields   int    `json:"fields"`
	Validate bool   `json:"validate,omitempty"`
}

type fieldSummary struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DeclaredIn  string `json:"declared_in"`
	Nullability string `json:"nullability"`
	Class       string `json:"class"`
	Skip        bool   `json:"skip_in_visitor,omitempty"`
	New         bool   `json:"new,omitempty"`
}

type typeDetail struct {
	typeSummary
	Ancestors []string       `json:"ancestors"`
	Fields    []fieldSummary `json:"fields"`
}

func (d *describer) summarize(t *core.TypeDef) (typeSummary, error) {
	all, err := d.res.AllFields(t)
	if err != nil {
		return typeSummary{}, err
	}
	base := t.BaseTypeName
	if b, err := d.res.BaseTypeOf(t); err != nil {
		return typeSummary{}, err
	} else if b != nil {
		base = b.Name
	}
	return typeSummary{
		Name:     t.Name,
		Kind:     generator.StripPrefix(t.Name, d.prefix),
		Variant:  t.Variant.String(),
		Base:     base,
		Sealable: d.res.IsSealable(t),
		Derived:  d.res.DerivedCount(t),
		Fields:   len(all),
		Validate: t.HasValidateHook,
	}, nil
}

func (d *describer) describeSchema() error {
	schema := d.res.Schema()
	var rows []typeSummary
	for _, t := range schema.NodeTypes() {
		s, err := d.summarize(t)
		if err != nil {
			return err
		}
		rows = append(rows, s)
	}

	switch d.r.EffectiveMode() {
	case output.ModeJSON:
		return d.r.JSON(map[string]any{
			"root":      schema.RootTypeName,
			"namespace": schema.Namespace,
			"types":     rows,
		})
	case output.ModeMarkdown:
		d.r.Println(output.FormatHeader(1, "Schema"))
		d.r.Println("")
		d.r.Println(output.FormatKeyValue("Root", schema.RootTypeName))
		d.r.Println(output.FormatKeyValue("Namespace", schema.Namespace))
		d.r.Println(output.FormatKeyValue("Node Types", fmt.Sprintf("%d", len(rows))))
		d.r.Println("")
	default:
		d.r.Header(1, fmt.Sprintf("%s (%d node types)", schema.RootTypeName, len(rows)))
	}

	title := cases.Title(language.English)
	t := newTable(d.r.Writer())
	t.AppendHeader(table.Row{"Kind", "Type", "Variant", "Base", "Sealable", "Fields"})
	for _, s := range rows {
		t.AppendRow(table.Row{s.Kind, s.Name, title.String(s.Variant), s.Base, yesNo(s.Sealable), s.Fields})
	}
	d.render(t)
	return nil
}

func (d *describer) describeType(name string) error {
	typ, ok := d.res.Schema().Lookup(name)
	if !ok {
		return fmt.Errorf("type %q not found in schema", name)
	}
	if !typ.IsNode() {
		return fmt.Errorf("type %q is a %s type, not a node", name, typ.Variant)
	}

	summary, err := d.summarize(typ)
	if err != nil {
		return err
	}
	detail := typeDetail{typeSummary: summary, Ancestors: []string{}, Fields: []fieldSummary{}}
	for a := range d.res.AncestorChain(typ) {
		if a != typ {
			detail.Ancestors = append(detail.Ancestors, a.Name)
		}
	}

	all, err := d.res.AllFields(typ)
	if err != nil {
		return err
	}
	for _, f := range all {
		fs, err := d.field(typ, f)
		if err != nil {
			return err
		}
		detail.Fields = append(detail.Fields, fs)
	}

	title := cases.Title(language.English)
	switch d.r.EffectiveMode() {
	case output.ModeJSON:
		return d.r.JSON(detail)
	case output.ModeMarkdown:
		d.r.Println(output.FormatHeader(1, typ.Name))
		d.r.Println("")
		d.r.Println(output.FormatKeyValue("Variant", title.String(summary.Variant)))
		d.r.Println(output.FormatKeyValue("Kind", summary.Kind))
		d.r.Println(output.FormatKeyValue("Base", summary.Base))
		d.r.Println(output.FormatKeyValue("Sealable", yesNo(summary.Sealable)))
		d.r.Println("")
	default:
		d.r.Header(1, typ.Name)
		d.r.Muted(fmt.Sprintf("%s node, kind %s, base %s, sealable: %s",
			title.String(summary.Variant), summary.Kind, summary.Base, yesNo(summary.Sealable)))
		d.r.Println("")
	}

	t := newTable(d.r.Writer())
	t.AppendHeader(table.Row{"Field", "Type", "Declared In", "Nullability", "Class", "Visited"})
	for _, f := range detail.Fields {
		visited := "-"
		if f.Class == "node" || f.Class == "node list" {
			visited = yesNo(!f.Skip)
		}
		t.AppendRow(table.Row{f.Name, f.Type, f.DeclaredIn, title.String(f.Nullability), f.Class, visited})
	}
	d.render(t)
	return nil
}

// field resolves f as seen from t. The nearest declaration decides the
// declared type, so an override's type is reported.
func (d *describer) field(t *core.TypeDef, f *core.Field) (fieldSummary, error) {
	decl, owner, err := d.res.FieldDeclaration(t, f.Name)
	if err != nil {
		return fieldSummary{}, err
	}
	null, err := d.res.ResolveNullability(t, f.Name)
	if err != nil {
		return fieldSummary{}, err
	}
	return fieldSummary{
		Name:        f.Name,
		Type:        decl.Type,
		DeclaredIn:  owner.Name,
		Nullability: null.String(),
		Class:       d.classify(decl.Type),
		Skip:        decl.SkipInVisitor,
		New:         decl.IsNew,
	}, nil
}

func (d *describer) classify(typeExpr string) string {
	switch {
	case d.res.IsNodeType(typeExpr):
		return "node"
	case d.res.IsNodeListType(typeExpr):
		return "node list"
	case d.res.IsArrayValueType(typeExpr):
		return "array value"
	case d.res.IsValueType(typeExpr):
		return "value"
	case d.res.IsListType(typeExpr):
		return "list"
	default:
		return "reference"
	}
}

func (d *describer) render(t table.Writer) {
	if d.r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
		return
	}
	t.Render()
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
