package main

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/aretw0/blockscript/internal/presentation/tui"
	"github.com/aretw0/blockscript/pkg/block"
	"github.com/aretw0/blockscript/pkg/observability"
)

func newStatsCmd(a *app) *cobra.Command {
	var metrics bool
	cmd := &cobra.Command{
		Use:   "stats [FILE...]",
		Short: "Count the blocks of script documents or of the whole store",
		Long: `With files, merges the statistics of each document. Without files, merges the
saved statistics of every stored script. --metrics prints the store statistics
in the Prometheus text format.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if metrics {
				return writeMetrics(out, observability.NewStatsCollector(a.ws.Store()))
			}

			var (
				total block.Stats
				title string
			)
			if len(args) == 0 {
				st, n, err := a.ws.Stats(cmd.Context())
				if err != nil {
					return err
				}
				total, title = st, fmt.Sprintf("%d stored scripts", n)
			} else {
				for _, path := range args {
					s, err := a.readScript(path)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					total.Add(s.Statistics())
				}
				title = fmt.Sprintf("%d documents", len(args))
			}

			rendered, err := tui.NewRenderer(out)(tui.StatsMarkdown(title, total))
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(out, rendered)
			return err
		},
	}
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Print store statistics as Prometheus metrics")
	return cmd
}

func writeMetrics(w io.Writer, c prometheus.Collector) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(c); err != nil {
		return err
	}
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
