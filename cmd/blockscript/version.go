package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/blockscript"
	"github.com/aretw0/blockscript/internal/presentation/tui"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of blockscript",
		// No workspace needed.
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			tui.PrintBanner(cmd.OutOrStdout(), blockscript.Version)
		},
	}
}
