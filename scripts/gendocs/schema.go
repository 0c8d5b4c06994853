package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// generateSchemaDocs generates the configuration and schema file references.
func generateSchemaDocs(outDir string) error {
	log.Printf("Generating schema docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := generateConfigurationDoc(outDir); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")

	if err := generateSchemaFormatDoc(outDir); err != nil {
		return fmt.Errorf("failed to generate schema.md: %w", err)
	}
	log.Printf("  Generated schema.md")

	return nil
}

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Name        string
	Type        string
	Required    bool
	Default     string
	Description string
	Category    string // "project", "target", "options"
}

// getConfigSchema mirrors internal/cli/config.Config.
func getConfigSchema() []ConfigField {
	return []ConfigField{
		{Name: "schema", Type: "string", Required: true, Description: "Schema file (.yaml, .yml or .xml), relative to the project root", Category: "project"},
		{Name: "prefix", Type: "string", Default: "Bound", Description: "Prefix stripped from type names to form kind names", Category: "project"},
		{Name: "indent", Type: "int", Default: "4", Description: "Spaces per indentation level in generated code", Category: "project"},
		{Name: "state_path", Type: "string", Default: ".treegen/state.db", Description: "Run ledger database", Category: "project"},
		{Name: "output", Type: "string", Default: "auto", Description: "Output format: auto, text, markdown, json", Category: "project"},
		{Name: "verbose", Type: "bool", Default: "false", Description: "Enable debug logging", Category: "project"},
		{Name: "no_color", Type: "bool", Default: "false", Description: "Disable colored output", Category: "project"},
		{Name: "imports", Type: "[]string", Description: "Namespaces imported at the top of every generated file", Category: "project"},

		{Name: "dialect", Type: "string", Required: true, Description: "Output dialect name or alias (csharp, vb)", Category: "target"},
		{Name: "output", Type: "string", Required: true, Description: "Generated file path, or - for stdout", Category: "target"},
		{Name: "namespace", Type: "string", Description: "Overrides the schema namespace for this target", Category: "target"},

		{Name: "header", Type: "string", Description: "Comment written at the top of generated files", Category: "options"},
		{Name: "kind_enum", Type: "string", Default: "<prefix>Kind", Description: "Name of the kind enumeration", Category: "options"},
		{Name: "visitor", Type: "string", Default: "<prefix>TreeVisitor", Description: "Name of the visitor base class", Category: "options"},
		{Name: "walker", Type: "string", Default: "<prefix>TreeWalker", Description: "Name of the walker class", Category: "options"},
		{Name: "rewriter", Type: "string", Default: "<prefix>TreeRewriter", Description: "Name of the rewriter class", Category: "options"},
		{Name: "dumper", Type: "string", Default: "<prefix>TreeDumperNodeProducer", Description: "Name of the dumper class", Category: "options"},
		{Name: "provenance_flags", Type: "[]string", Description: "Flags copied from the original node by Update", Category: "options"},
		{Name: "type_visit_fields", Type: "map[string]string", Description: "Field types rewritten through a visitor hook, keyed by type", Category: "options"},
	}
}

func fieldRows(category string, withRequired bool) [][]string {
	var rows [][]string
	for _, f := range getConfigSchema() {
		if f.Category != category {
			continue
		}
		defVal := "-"
		if f.Default != "" {
			defVal = InlineCode(f.Default)
		}
		row := []string{InlineCode(f.Name), f.Type}
		if withRequired {
			req := "No"
			if f.Required {
				req = "Yes"
			}
			row = append(row, req)
		} else {
			row = append(row, defVal)
		}
		rows = append(rows, append(row, f.Description))
	}
	return rows
}

// generateConfigurationDoc generates the treegen.yaml reference page.
func generateConfigurationDoc(outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "treegen configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("treegen is configured via `treegen.yaml` in your project root. The file is found by searching upward from the working directory.")

	w.Header(2, "Project Settings")
	w.Table([]string{"Field", "Type", "Default", "Description"}, fieldRows("project", false))

	w.Header(2, "Targets")
	w.Paragraph("Each entry under `targets` produces one generated file.")
	w.Table([]string{"Field", "Type", "Required", "Description"}, fieldRows("target", true))

	w.Header(2, "Options")
	w.Paragraph("The `options` block renames generated types. Empty values keep the defaults.")
	w.Table([]string{"Field", "Type", "Default", "Description"}, fieldRows("options", false))

	w.Header(2, "Example")
	w.CodeBlock("yaml", `schema: tree.yaml
prefix: Bound
targets:
  - dialect: csharp
    output: Generated/BoundNodes.cs
  - dialect: vb
    output: Generated/BoundNodes.vb
    namespace: Acme.Compiler.VisualBasic
options:
  provenance_flags: [WasCompilerGenerated]
  type_visit_fields:
    TypeSymbol: VisitType`)

	return os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600)
}

// generateSchemaFormatDoc documents both schema encodings.
func generateSchemaFormatDoc(outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Schema Format", "Node hierarchy schema reference")
	w.GeneratedMarker()

	w.Header(1, "Schema Format")
	w.Paragraph("A schema lists the node types of a tree in declaration order. Every type except predefined and enum types derives from a base type declared in the same schema. Schemas are written in YAML or in the XML element form.")

	w.Header(2, "Type Kinds")
	w.Table([]string{"YAML kind", "XML element", "Meaning"}, [][]string{
		{InlineCode("abstract"), InlineCode("AbstractNode"), "Base class that cannot be created; gets no kind value"},
		{InlineCode("concrete"), InlineCode("Node"), "Sealed node with a kind value, factory and visitor entries"},
		{InlineCode("value"), InlineCode("ValueType"), "Value-typed field type; never null"},
		{InlineCode("enum"), InlineCode("EnumType"), "Enumeration field type; never null"},
		{InlineCode("predefined"), InlineCode("PredefinedNode"), "Hand-written root, referenced but not generated"},
	})

	w.Header(2, "Type Attributes")
	w.Table([]string{"YAML key", "XML attribute", "Description"}, [][]string{
		{InlineCode("name"), InlineCode("Name"), "Type name"},
		{InlineCode("base"), InlineCode("Base"), "Base type name"},
		{InlineCode("validate"), InlineCode("HasValidate"), "Constructor calls a partial Validate hook"},
		{InlineCode("fields"), InlineCode("Field"), "Field list"},
	})

	w.Header(2, "Field Attributes")
	w.Table([]string{"YAML key", "XML attribute", "Description"}, [][]string{
		{InlineCode("name"), InlineCode("Name"), "Field name"},
		{InlineCode("type"), InlineCode("Type"), "Field type. ImmutableArray<T> and T? are recognized"},
		{InlineCode("nullable"), InlineCode("Null"), "allow, disallow, always or notapplicable"},
		{InlineCode("new"), InlineCode("New"), "Field hides a base member"},
		{InlineCode("override"), InlineCode("Override"), "Field overrides a base member"},
		{InlineCode("property_override"), InlineCode("PropertyOverrides"), "Property overrides a base property"},
		{InlineCode("skip_in_visitor"), InlineCode("SkipInVisitor"), "Field is not visited by walker or rewriter"},
	})

	w.Header(2, "YAML Example")
	w.CodeBlock("yaml", `root: BoundNode
namespace: Acme.Compiler
types:
  - name: BoundNode
    kind: predefined
  - name: BoundExpression
    kind: abstract
    base: BoundNode
    fields:
      - name: Type
        type: TypeSymbol
        nullable: allow
  - name: BoundLiteral
    base: BoundExpression
    fields:
      - name: Value
        type: ConstantValue`)

	w.Header(2, "XML Example")
	w.CodeBlock("xml", `<Tree Root="BoundNode">
  <PredefinedNode Name="BoundNode" Base=""/>
  <AbstractNode Name="BoundExpression" Base="BoundNode">
    <Field Name="Type" Type="TypeSymbol" Null="allow"/>
  </AbstractNode>
  <Node Name="BoundLiteral" Base="BoundExpression">
    <Field Name="Value" Type="ConstantValue"/>
  </Node>
</Tree>`)

	return os.WriteFile(filepath.Join(outDir, "schema.md"), w.Bytes(), 0600)
}
