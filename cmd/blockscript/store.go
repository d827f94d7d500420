package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newStoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage scripts in the configured store",
	}
	cmd.AddCommand(
		newStoreSaveCmd(a),
		newStoreListCmd(a),
		newStoreGetCmd(a),
		newStoreRmCmd(a),
	)
	return cmd
}

func newStoreSaveCmd(a *app) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "save FILE",
		Short: "Store a script document",
		Long:  `Decodes the document and stores it under --id. Without --id the file name minus its extension is used; an explicitly empty --id generates one.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.readScript(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if !cmd.Flags().Changed("id") {
				base := filepath.Base(args[0])
				id = strings.TrimSuffix(base, filepath.Ext(base))
			}
			saved, err := a.ws.Save(cmd.Context(), id, s)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), saved)
			return err
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Script id; empty generates one")
	return cmd
}

func newStoreListCmd(a *app) *cobra.Command {
	var long bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored scripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := a.ws.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, id := range ids {
				if !long {
					fmt.Fprintln(out, id)
					continue
				}
				rec, err := a.ws.Record(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\t%d blocks\t%s\n", id, rec.Stats.Total(), rec.UpdatedAt.Format(time.RFC3339))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&long, "long", "l", false, "Show block counts and update times")
	return cmd
}

func newStoreGetCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Print a stored script document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.ws.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			doc, err := a.ws.Encode(s)
			if err != nil {
				return err
			}
			if output != "" {
				return os.WriteFile(output, doc, 0o644)
			}
			_, err = cmd.OutOrStdout().Write(doc)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the document to a file instead of stdout")
	return cmd
}

func newStoreRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID...",
		Short: "Delete stored scripts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range args {
				if err := a.ws.Delete(cmd.Context(), id); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
