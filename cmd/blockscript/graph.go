package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/blockscript/internal/presentation/graph"
)

func newGraphCmd(a *app) *cobra.Command {
	var incomplete bool
	cmd := &cobra.Command{
		Use:   "graph FILE",
		Short: "Export the script tree visualization",
		Long:  `Decodes a script document and outputs a Mermaid diagram (graph TD) of its block tree.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.readScript(args[0])
			if err != nil {
				return err
			}
			var overlay *graph.GraphOverlay
			if incomplete {
				overlay = &graph.GraphOverlay{MarkIncomplete: true}
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(s, overlay))
			return err
		},
	}
	cmd.Flags().BoolVar(&incomplete, "incomplete", false, "Highlight blocks that stop compilation")
	return cmd
}
