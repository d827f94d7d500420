package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/blockscript"
	"github.com/aretw0/blockscript/internal/presentation/tui"
)

func newValidateCmd(a *app) *cobra.Command {
	var allowIncomplete bool
	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check that script documents decode and compile",
		Long:  `Decodes every document against the catalog and reports one line per file. Incomplete scripts fail unless --allow-incomplete is set.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				s, err := a.readScript(path)
				if err == nil && !allowIncomplete && !s.IsComplete() {
					err = blockscript.ErrIncompleteScript
				}
				if err != nil {
					failed++
					tui.Status(cmd.OutOrStdout(), path, err)
					continue
				}
				tui.Status(cmd.OutOrStdout(), path, nil)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents invalid", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&allowIncomplete, "allow-incomplete", false, "Accept scripts with empty or incomplete slots")
	return cmd
}
