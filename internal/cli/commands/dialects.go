package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/treegen/internal/cli/output"
	"github.com/leapstack-labs/treegen/pkg/dialect"
)

type dialectInfo struct {
	Name       string   `json:"name"`
	Aliases    []string `json:"aliases"`
	Extension  string   `json:"extension"`
	Optional   string   `json:"optional_parameters"`
	Constructs []string `json:"constructs"`
}

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the available output dialects",
		Long:  `List every registered output dialect with its aliases, file extension and the optional constructs it supports.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := NewCommandContext(cmd).Renderer

			var infos []dialectInfo
			for _, name := range dialect.List() {
				d := dialect.MustGet(name)
				info := dialectInfo{
					Name:       name,
					Aliases:    dialect.AliasesOf(name),
					Extension:  d.FileExtension(),
					Optional:   d.OptionalParameters().String(),
					Constructs: []string{},
				}
				if info.Aliases == nil {
					info.Aliases = []string{}
				}
				for _, c := range dialect.Constructs {
					if d.Supports(c) {
						info.Constructs = append(info.Constructs, string(c))
					}
				}
				infos = append(infos, info)
			}

			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(infos)
			}

			t := newTable(r.Writer())
			t.AppendHeader(table.Row{"Dialect", "Aliases", "Extension", "Optional Parameters", "Constructs"})
			for _, info := range infos {
				t.AppendRow(table.Row{info.Name, strings.Join(info.Aliases, ", "), info.Extension, info.Optional, strings.Join(info.Constructs, ", ")})
			}
			if r.EffectiveMode() == output.ModeMarkdown {
				t.RenderMarkdown()
			} else {
				t.Render()
			}
			return nil
		},
	}
}
