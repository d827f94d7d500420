package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "blockscript",
		Short:         "Blockscript composes event scripts from typed blocks",
		Long:          `Blockscript compiles, describes and stores scripts built from statement, condition and control blocks.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	// Persistent flags (available to all commands)
	root.PersistentFlags().StringVar(&a.configDir, "config", ".", "Directory where the search for blockscript.toml starts")
	root.PersistentFlags().StringVar(&a.catalogPath, "catalog", "", "YAML catalog overriding the configured one")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		newCompileCmd(a),
		newDescribeCmd(a),
		newStatsCmd(a),
		newValidateCmd(a),
		newGraphCmd(a),
		newCatalogCmd(a),
		newStoreCmd(a),
		newVersionCmd(),
	)
	return root
}
