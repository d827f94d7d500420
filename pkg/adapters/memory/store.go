package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/blockscript/pkg/block"
	"github.com/aretw0/blockscript/pkg/ports"
)

// Store implements ports.ScriptStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]ports.ScriptRecord
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]ports.ScriptRecord),
	}
}

// Save persists a copy of the record.
func (s *Store) Save(ctx context.Context, rec ports.ScriptRecord) error {
	if rec.ID == "" {
		return &block.ArgumentError{Name: "id", Reason: "must not be empty"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[rec.ID] = clone(rec)
	return nil
}

// Load retrieves a copy of the record so callers cannot mutate the store.
func (s *Store) Load(ctx context.Context, id string) (ports.ScriptRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[id]
	if !ok {
		return ports.ScriptRecord{}, ports.ErrScriptNotFound
	}
	return clone(rec), nil
}

// Delete removes the record.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns stored script IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func clone(rec ports.ScriptRecord) ports.ScriptRecord {
	rec.Document = append([]byte(nil), rec.Document...)
	rec.Stats = rec.Stats.Merge(block.Stats{})
	return rec
}
