package ports_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/blockscript/pkg/block"
	"github.com/aretw0/blockscript/pkg/ports"
	"github.com/aretw0/blockscript/pkg/ports/tests"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	rec := ports.ScriptRecord{
		Stats: block.Stats{
			While:      2,
			Action:     3,
			Actions:    map[string]int{"Walk": 1, "Jump": 2},
			Conditions: map[string]int{"IsNight": 2},
		},
		UpdatedAt: time.Date(2025, 1, 2, 3, 4, 5, 6, time.UTC),
	}
	data, err := ports.MarshalSnapshot(rec)
	require.NoError(t, err)

	again, err := ports.MarshalSnapshot(rec)
	require.NoError(t, err)
	assert.Equal(t, data, again, "canonical encoding is deterministic")

	var out ports.ScriptRecord
	require.NoError(t, ports.UnmarshalSnapshot(data, &out))
	assert.Equal(t, rec.Stats, out.Stats)
	assert.True(t, rec.UpdatedAt.Equal(out.UpdatedAt))

	assert.Error(t, ports.UnmarshalSnapshot([]byte("not cbor"), &out))
}

func TestFileCatalog_Contract(t *testing.T) {
	loader := ports.FileCatalog{Path: filepath.Join("..", "catalog", "testdata", "catalog.yaml")}
	tests.CatalogLoaderContractTest(t, loader, []string{"Attack", "IsNight", "Walk"})
}
