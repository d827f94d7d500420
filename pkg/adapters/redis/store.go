package redis

import (
	"context"
	"fmt"
	"sort"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/blockscript/pkg/block"
	"github.com/aretw0/blockscript/pkg/ports"
)

const (
	fieldDocument = "doc"
	fieldStats    = "stats"

	// noExpiry is the index score of records without a TTL (2100-01-01).
	noExpiry = 4102444800
)

// Store implements ports.ScriptStore using Redis. Every script is a hash
// holding the document and its CBOR statistics snapshot; a sorted set indexes
// the IDs by expiry.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for scripts.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "blockscript:",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Client returns the underlying client, e.g. to share it with a Locker.
func (s *Store) Client() *backend.Client { return s.client }

// Prefix returns the key prefix.
func (s *Store) Prefix() string { return s.prefix }

func (s *Store) key(id string) string {
	return s.prefix + "script:" + id
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save writes the record and indexes it in one pipeline.
func (s *Store) Save(ctx context.Context, rec ports.ScriptRecord) error {
	if rec.ID == "" {
		return &block.ArgumentError{Name: "id", Reason: "must not be empty"}
	}
	snap, err := ports.MarshalSnapshot(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	pipe := s.client.TxPipeline()
	key := s.key(rec.ID)
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fieldDocument, rec.Document, fieldStats, snap)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}

	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = noExpiry
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: rec.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves a record.
func (s *Store) Load(ctx context.Context, id string) (ports.ScriptRecord, error) {
	vals, err := s.client.HGetAll(ctx, s.key(id)).Result()
	if err != nil {
		return ports.ScriptRecord{}, fmt.Errorf("failed to get from redis: %w", err)
	}
	doc, ok := vals[fieldDocument]
	if !ok {
		return ports.ScriptRecord{}, ports.ErrScriptNotFound
	}

	rec := ports.ScriptRecord{ID: id, Document: []byte(doc)}
	if snap, ok := vals[fieldStats]; ok {
		if err := ports.UnmarshalSnapshot([]byte(snap), &rec); err != nil {
			return ports.ScriptRecord{}, err
		}
	}
	return rec, nil
}

// Delete removes the script and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, s.indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// List prunes expired index entries and returns the remaining IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired scripts: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list scripts: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
