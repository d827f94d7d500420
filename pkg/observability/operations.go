package observability

import "github.com/prometheus/client_golang/prometheus"

// Operations counts workspace calls by operation and result.
type Operations struct {
	calls *prometheus.CounterVec
}

// NewOperations creates the counter and registers it with reg when reg is
// not nil.
func NewOperations(reg prometheus.Registerer) (*Operations, error) {
	o := &Operations{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blockscript_operations_total",
				Help: "Workspace operations by name and result.",
			},
			[]string{"op", "result"},
		),
	}
	if reg != nil {
		if err := reg.Register(o.calls); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Observe records one call of op.
func (o *Operations) Observe(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	o.calls.WithLabelValues(op, result).Inc()
}

// Collector exposes the underlying counter, e.g. for tests.
func (o *Operations) Collector() prometheus.Collector { return o.calls }
