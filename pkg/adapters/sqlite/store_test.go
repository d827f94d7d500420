package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/blockscript/pkg/adapters/sqlite"
	"github.com/aretw0/blockscript/pkg/block"
	"github.com/aretw0/blockscript/pkg/ports"
)

var _ ports.ScriptStore = (*sqlite.Store)(nil)

func TestSQLiteStore_Contract(t *testing.T) {
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "scripts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ports.RunScriptStoreContract(t, store)
}

func TestSQLiteStore_InMemory(t *testing.T) {
	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ports.RunScriptStoreContract(t, store)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scripts.db")
	ctx := context.Background()

	store, err := sqlite.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, ports.ScriptRecord{
		ID:       "guard",
		Document: []byte("<Script/>"),
		Stats:    block.Stats{DoWhile: 2},
	}))
	require.NoError(t, store.Close())

	store, err = sqlite.Open(path)
	require.NoError(t, err)
	defer store.Close()

	rec, err := store.Load(ctx, "guard")
	require.NoError(t, err)
	assert.Equal(t, "<Script/>", string(rec.Document))
	assert.Equal(t, 2, rec.Stats.DoWhile)
	assert.True(t, rec.UpdatedAt.IsZero())
}
