package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/blockscript"
)

func newCompileCmd(a *app) *cobra.Command {
	var (
		output          string
		allowIncomplete bool
	)
	cmd := &cobra.Command{
		Use:   "compile FILE",
		Short: "Print the code of a script document",
		Long:  `Decodes an XML script document and prints its code. Scripts with empty or incomplete slots are refused unless --allow-incomplete is set.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.readScript(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			var opts []blockscript.CompileOption
			if allowIncomplete {
				opts = append(opts, blockscript.AllowIncomplete())
			}
			code, err := a.ws.Compile(cmd.Context(), s, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if output == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), code)
				return err
			}
			return os.WriteFile(output, []byte(code), 0o644)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the code to a file instead of stdout")
	cmd.Flags().BoolVar(&allowIncomplete, "allow-incomplete", false, "Compile scripts with empty or incomplete slots")
	return cmd
}
