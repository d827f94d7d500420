package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/blockscript/pkg/block"
	"github.com/aretw0/blockscript/pkg/ports"
)

var (
	scriptsDesc = prometheus.NewDesc(
		"blockscript_scripts",
		"Number of stored scripts.",
		nil, nil,
	)
	blocksDesc = prometheus.NewDesc(
		"blockscript_blocks",
		"Blocks across all stored scripts by kind.",
		[]string{"kind"}, nil,
	)
	statementDesc = prometheus.NewDesc(
		"blockscript_statement_uses",
		"Statement uses across all stored scripts.",
		[]string{"type", "name"}, nil,
	)
	eventDesc = prometheus.NewDesc(
		"blockscript_event_uses",
		"Trigger events across all stored scripts.",
		[]string{"name"}, nil,
	)
)

// StatsCollector implements prometheus.Collector over a ScriptStore.
type StatsCollector struct {
	store   ports.ScriptStore
	timeout time.Duration
}

// CollectorOption configures a StatsCollector.
type CollectorOption func(*StatsCollector)

// WithTimeout bounds how long one scrape may spend reading the store.
func WithTimeout(d time.Duration) CollectorOption {
	return func(c *StatsCollector) {
		c.timeout = d
	}
}

// NewStatsCollector creates a collector. The default scrape timeout is 10s.
func NewStatsCollector(store ports.ScriptStore, opts ...CollectorOption) *StatsCollector {
	c := &StatsCollector{store: store, timeout: 10 * time.Second}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- scriptsDesc
	ch <- blocksDesc
	ch <- statementDesc
	ch <- eventDesc
}

func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	total, n, err := Aggregate(ctx, c.store)
	if err != nil {
		ch <- prometheus.NewInvalidMetric(scriptsDesc, err)
		return
	}

	ch <- prometheus.MustNewConstMetric(scriptsDesc, prometheus.GaugeValue, float64(n))
	for kind, v := range total.Counts() {
		ch <- prometheus.MustNewConstMetric(blocksDesc, prometheus.GaugeValue, float64(v), kind)
	}
	for name, v := range total.Actions {
		ch <- prometheus.MustNewConstMetric(statementDesc, prometheus.GaugeValue, float64(v), "action", name)
	}
	for name, v := range total.Conditions {
		ch <- prometheus.MustNewConstMetric(statementDesc, prometheus.GaugeValue, float64(v), "condition", name)
	}
	for name, v := range total.Events {
		ch <- prometheus.MustNewConstMetric(eventDesc, prometheus.GaugeValue, float64(v), name)
	}
}

// Aggregate sums the stats snapshots of every stored script and returns
// the total with the number of scripts read.
func Aggregate(ctx context.Context, store ports.ScriptStore) (block.Stats, int, error) {
	var total block.Stats
	ids, err := store.List(ctx)
	if err != nil {
		return total, 0, fmt.Errorf("list scripts: %w", err)
	}
	for _, id := range ids {
		rec, err := store.Load(ctx, id)
		if err != nil {
			return total, 0, fmt.Errorf("load script %s: %w", id, err)
		}
		total.Add(rec.Stats)
	}
	return total, len(ids), nil
}
