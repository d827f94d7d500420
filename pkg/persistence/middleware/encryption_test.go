package middleware_test

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aretw0/blockscript/pkg/adapters/memory"
	"github.com/aretw0/blockscript/pkg/block"
	"github.com/aretw0/blockscript/pkg/persistence/middleware"
	"github.com/aretw0/blockscript/pkg/ports"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func record(id string) ports.ScriptRecord {
	return ports.ScriptRecord{
		ID:        id,
		Document:  []byte(`<Script><Trigger Event="OnHeartbeat" /></Script>`),
		Stats:     block.Stats{Event: 1, Events: map[string]int{"OnHeartbeat": 1}},
		UpdatedAt: time.Unix(1700000000, 0).UTC(),
	}
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ports.RunScriptStoreContract(t, mw(memory.NewStore()))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlyingStore := memory.NewStore()
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	secureStore := mw(underlyingStore)

	ctx := context.Background()
	original := record("guard")

	if err := secureStore.Save(ctx, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	stored, err := underlyingStore.Load(ctx, "guard")
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}
	if bytes.Contains(stored.Document, []byte("OnHeartbeat")) {
		t.Fatal("Expected document to be hidden in the underlying store")
	}
	if stored.Stats.Events["OnHeartbeat"] != 1 {
		t.Errorf("Expected stats to stay readable, got %v", stored.Stats.Events)
	}

	loaded, err := secureStore.Load(ctx, "guard")
	if err != nil {
		t.Fatalf("Load via middleware failed: %v", err)
	}
	if !bytes.Equal(loaded.Document, original.Document) {
		t.Errorf("Expected %q, got %q", original.Document, loaded.Document)
	}
	if !loaded.UpdatedAt.Equal(original.UpdatedAt) {
		t.Errorf("Expected UpdatedAt %v, got %v", original.UpdatedAt, loaded.UpdatedAt)
	}
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlyingStore := memory.NewStore()
	ctx := context.Background()
	oldKey := generateKey(t)

	oldStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlyingStore)
	if err := oldStore.Save(ctx, record("guard")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	newKey := generateKey(t)
	rotated := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlyingStore)

	if _, err := rotated.Load(ctx, "guard"); err != nil {
		t.Fatalf("Load with fallback key failed: %v", err)
	}

	withoutFallback := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: newKey})(underlyingStore)
	if _, err := withoutFallback.Load(ctx, "guard"); !errors.Is(err, middleware.ErrNoMatchingKey) {
		t.Fatalf("Expected ErrNoMatchingKey without the old key, got %v", err)
	}
}

func TestEncryptionMiddleware_RejectsPlainDocuments(t *testing.T) {
	underlyingStore := memory.NewStore()
	ctx := context.Background()
	if err := underlyingStore.Save(ctx, record("plain")); err != nil {
		t.Fatal(err)
	}

	secureStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlyingStore)
	_, err := secureStore.Load(ctx, "plain")
	if !errors.Is(err, middleware.ErrNotEncrypted) {
		t.Fatalf("Expected ErrNotEncrypted, got %v", err)
	}

	_, err = secureStore.Load(ctx, "missing")
	if !errors.Is(err, ports.ErrScriptNotFound) {
		t.Fatalf("Expected ErrScriptNotFound, got %v", err)
	}
}

func TestEncryptionMiddleware_PanicsOnShortKey(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Expected panic for a 16 byte key")
		}
	}()
	middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: make([]byte, 16)})
}

func TestChain_OrdersOutermostFirst(t *testing.T) {
	var calls []string
	tag := func(name string) middleware.Middleware {
		return func(next ports.ScriptStore) ports.ScriptStore {
			return recordingStore{ScriptStore: next, name: name, calls: &calls}
		}
	}

	store := middleware.Chain(memory.NewStore(), tag("outer"), tag("inner"))
	if err := store.Save(context.Background(), record("a")); err != nil {
		t.Fatal(err)
	}
	if len(calls) != 2 || calls[0] != "outer" || calls[1] != "inner" {
		t.Fatalf("Expected [outer inner], got %v", calls)
	}
}

type recordingStore struct {
	ports.ScriptStore
	name  string
	calls *[]string
}

func (s recordingStore) Save(ctx context.Context, rec ports.ScriptRecord) error {
	*s.calls = append(*s.calls, s.name)
	return s.ScriptStore.Save(ctx, rec)
}
