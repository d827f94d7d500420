package observability

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/blockscript/pkg/adapters/memory"
	"github.com/aretw0/blockscript/pkg/block"
	"github.com/aretw0/blockscript/pkg/ports"
)

func seededStore(t *testing.T) ports.ScriptStore {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, ports.ScriptRecord{
		ID:       "guard",
		Document: []byte("<Script/>"),
		Stats: block.Stats{
			Event: 1, Action: 2, Condition: 1, IfThen: 1,
			Actions:    map[string]int{"Howl": 2},
			Conditions: map[string]int{"IsNight": 1},
			Events:     map[string]int{"OnHeartbeat": 1},
		},
	}))
	require.NoError(t, store.Save(ctx, ports.ScriptRecord{
		ID:       "patrol",
		Document: []byte("<Script/>"),
		Stats: block.Stats{
			Event: 1, Action: 1,
			Actions: map[string]int{"Walk": 1},
			Events:  map[string]int{"OnHeartbeat": 1},
		},
	}))
	return store
}

func TestStatsCollector_Metrics(t *testing.T) {
	c := NewStatsCollector(seededStore(t))

	expected := `
# HELP blockscript_scripts Number of stored scripts.
# TYPE blockscript_scripts gauge
blockscript_scripts 2
# HELP blockscript_statement_uses Statement uses across all stored scripts.
# TYPE blockscript_statement_uses gauge
blockscript_statement_uses{name="Howl",type="action"} 2
blockscript_statement_uses{name="IsNight",type="condition"} 1
blockscript_statement_uses{name="Walk",type="action"} 1
# HELP blockscript_event_uses Trigger events across all stored scripts.
# TYPE blockscript_event_uses gauge
blockscript_event_uses{name="OnHeartbeat"} 2
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"blockscript_scripts", "blockscript_statement_uses", "blockscript_event_uses")
	assert.NoError(t, err)
}

func TestStatsCollector_BlocksByKind(t *testing.T) {
	c := NewStatsCollector(seededStore(t))

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(c))

	families, err := reg.Gather()
	require.NoError(t, err)

	var blocks map[string]float64
	for _, mf := range families {
		if mf.GetName() != "blockscript_blocks" {
			continue
		}
		blocks = make(map[string]float64)
		for _, m := range mf.GetMetric() {
			blocks[m.GetLabel()[0].GetValue()] = m.GetGauge().GetValue()
		}
	}
	require.NotNil(t, blocks)
	assert.Equal(t, 3.0, blocks["action"])
	assert.Equal(t, 2.0, blocks["event"])
	assert.Equal(t, 1.0, blocks["ifThen"])
	assert.Equal(t, 0.0, blocks["while"])
}

func TestStatsCollector_StoreError(t *testing.T) {
	c := NewStatsCollector(failingStore{})
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(c))

	_, err := reg.Gather()
	assert.Error(t, err)
}

func TestOperations_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	ops, err := NewOperations(reg)
	require.NoError(t, err)

	ops.Observe("save", nil)
	ops.Observe("save", nil)
	ops.Observe("save", errors.New("boom"))
	ops.Observe("compile", nil)

	assert.Equal(t, 3, testutil.CollectAndCount(ops.Collector()))
	expected := `
# HELP blockscript_operations_total Workspace operations by name and result.
# TYPE blockscript_operations_total counter
blockscript_operations_total{op="compile",result="ok"} 1
blockscript_operations_total{op="save",result="error"} 1
blockscript_operations_total{op="save",result="ok"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected)))

	_, err = NewOperations(reg)
	assert.Error(t, err, "registering twice should fail")
}

type failingStore struct{}

func (failingStore) Save(context.Context, ports.ScriptRecord) error { return errors.New("down") }
func (failingStore) Load(context.Context, string) (ports.ScriptRecord, error) {
	return ports.ScriptRecord{}, errors.New("down")
}
func (failingStore) Delete(context.Context, string) error  { return errors.New("down") }
func (failingStore) List(context.Context) ([]string, error) { return nil, errors.New("down") }
