package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/blockscript/internal/presentation/tui"
	"github.com/aretw0/blockscript/pkg/catalog"
)

func newCatalogCmd(a *app) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the statements, events and objects scripts may use",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if asYAML {
				data, err := catalog.MarshalYAML(a.catalog)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}
			rendered, err := tui.NewRenderer(out)(catalogMarkdown(catalog.Describe(a.catalog)))
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(out, rendered)
			return err
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the catalog as a loadable YAML document")
	return cmd
}

func catalogMarkdown(def catalog.Definition) string {
	var sb strings.Builder
	sb.WriteString("# Catalog\n\n## Statements\n\n| Name | Type | Reads |\n|---|---|---|\n")
	for _, s := range def.Statements {
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", s.Name, s.Type, s.Natural)
	}
	sb.WriteString("\n## Events\n\n| Name | Reads |\n|---|---|\n")
	for _, e := range def.Events {
		fmt.Fprintf(&sb, "| %s | %s |\n", e.Name, e.Display)
	}
	sb.WriteString("\n## Objects\n\n| Id | Type | Reads |\n|---|---|---|\n")
	for _, o := range def.Objects {
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", o.ID, o.Type, o.Display)
	}
	return sb.String()
}
