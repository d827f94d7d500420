package ports

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/blockscript/pkg/block"
)

// RunScriptStoreContract runs a suite of tests to verify that a ScriptStore
// implementation adheres to the interface contract.
func RunScriptStoreContract(t *testing.T, store ScriptStore) {
	ctx := context.Background()
	id := "contract-" + time.Now().Format("20060102150405")
	doc := []byte(`<?xml version="1.0" encoding="UTF-8"?>` + "\n<Script></Script>")
	stats := block.Stats{IfThen: 1, Action: 2, Actions: map[string]int{"Jump": 2}}
	updated := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, ScriptRecord{ID: id, Document: doc, Stats: stats, UpdatedAt: updated})
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, id, loaded.ID)
		assert.Equal(t, doc, loaded.Document)
		assert.Equal(t, stats, loaded.Stats)
		assert.True(t, updated.Equal(loaded.UpdatedAt), "UpdatedAt %v != %v", loaded.UpdatedAt, updated)
	})

	t.Run("Save replaces", func(t *testing.T) {
		next := []byte("<Script><Trigger/></Script>")
		require.NoError(t, store.Save(ctx, ScriptRecord{ID: id, Document: next, UpdatedAt: updated}))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, next, loaded.Document)
		assert.Zero(t, loaded.Stats.Total())
	})

	t.Run("Save rejects empty ID", func(t *testing.T) {
		err := store.Save(ctx, ScriptRecord{Document: doc})
		assert.ErrorIs(t, err, block.ErrArgument)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, ErrScriptNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, ScriptRecord{ID: id, Document: doc}))

		require.NoError(t, store.Delete(ctx, id), "Delete should not return error")

		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, ErrScriptNotFound, "Load after Delete should return ErrScriptNotFound")

		assert.NoError(t, store.Delete(ctx, id), "Delete is idempotent")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		require.NoError(t, store.Save(ctx, ScriptRecord{ID: id2, Document: doc}))
		require.NoError(t, store.Save(ctx, ScriptRecord{ID: id1, Document: doc}))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
		assert.True(t, sort.StringsAreSorted(ids), "List is sorted: %v", ids)
	})
}
