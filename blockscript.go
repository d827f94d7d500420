package blockscript

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/blockscript/pkg/adapters/memory"
	"github.com/aretw0/blockscript/pkg/block"
	"github.com/aretw0/blockscript/pkg/observability"
	"github.com/aretw0/blockscript/pkg/ports"
	"github.com/aretw0/blockscript/pkg/xmlcodec"
)

// ErrIncompleteScript is returned by Compile when a slot below the script is
// empty or holds an incomplete block.
var ErrIncompleteScript = errors.New("script is incomplete")

// DefaultLockTTL bounds how long a script lock is held when the holder dies.
const DefaultLockTTL = 30 * time.Second

// Workspace is the high-level entry point for the blockscript library.
// It binds an instruction catalog to a script store and provides the
// compile, describe and persistence operations editors need.
type Workspace struct {
	resolver block.BehaviourResolver
	store    ports.ScriptStore
	locker   ports.DistributedLocker
	lockTTL  time.Duration
	registry *xmlcodec.Registry
	hooks    Hooks
	logger   *slog.Logger
	minimum  int
	now      func() time.Time
	Name     string
}

// Option defines a functional option for configuring the Workspace.
type Option func(*Workspace)

// WithStore sets where scripts are persisted (default: in memory).
func WithStore(s ports.ScriptStore) Option {
	return func(w *Workspace) {
		w.store = s
	}
}

// WithLocker serializes saves and deletes of the same script across
// processes. ttl of zero means DefaultLockTTL. Without it an in-process
// memory.Locker is used.
func WithLocker(l ports.DistributedLocker, ttl time.Duration) Option {
	return func(w *Workspace) {
		w.locker = l
		w.lockTTL = ttl
	}
}

// WithRegistry restricts the element names accepted when decoding.
func WithRegistry(r *xmlcodec.Registry) Option {
	return func(w *Workspace) {
		w.registry = r
	}
}

// WithHooks registers observability hooks.
func WithHooks(h Hooks) Option {
	return func(w *Workspace) {
		w.hooks = h
	}
}

// WithLogger sets a custom structured logger for the workspace.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workspace) {
		w.logger = logger
	}
}

// WithMinimumPegs sets the peg count new script spines never shrink below.
func WithMinimumPegs(n int) Option {
	return func(w *Workspace) {
		w.minimum = n
	}
}

// WithName labels the workspace in logs.
func WithName(name string) Option {
	return func(w *Workspace) {
		w.Name = name
	}
}

// New initializes a workspace over the behaviours resolver knows.
func New(resolver block.BehaviourResolver, opts ...Option) (*Workspace, error) {
	if resolver == nil {
		return nil, &block.ArgumentError{Name: "resolver", Reason: "must not be nil"}
	}

	w := &Workspace{
		resolver: resolver,
		minimum:  1,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.minimum < 1 {
		return nil, &block.ArgumentError{Name: "minimum", Reason: fmt.Sprintf("must be at least 1, got %d", w.minimum)}
	}
	if w.store == nil {
		w.store = memory.NewStore()
	}
	if w.locker == nil {
		w.locker = memory.NewLocker()
	}
	if w.lockTTL <= 0 {
		w.lockTTL = DefaultLockTTL
	}
	if w.registry == nil {
		w.registry = xmlcodec.DefaultRegistry()
	}
	if w.logger == nil {
		w.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if w.Name != "" {
		w.logger = w.logger.With("workspace", w.Name)
	}

	return w, nil
}

// Resolver returns the behaviour catalog the workspace decodes against.
func (w *Workspace) Resolver() block.BehaviourResolver { return w.resolver }

// Store returns the underlying script store.
func (w *Workspace) Store() ports.ScriptStore { return w.store }

// NewScript returns an empty script with the workspace's minimum peg count.
func (w *Workspace) NewScript() (*block.Script, error) {
	return block.NewScript(w.minimum)
}

// CompileOption adjusts a single Compile call.
type CompileOption func(*compileConfig)

type compileConfig struct {
	allowIncomplete bool
}

// AllowIncomplete compiles scripts with empty or incomplete slots instead
// of refusing them. Empty slots contribute no code.
func AllowIncomplete() CompileOption {
	return func(c *compileConfig) {
		c.allowIncomplete = true
	}
}

func errNilScript() error {
	return &block.ArgumentError{Name: "script", Reason: "must not be nil"}
}

// Compile returns the script's code. Incomplete scripts are refused with
// ErrIncompleteScript unless AllowIncomplete is given.
func (w *Workspace) Compile(ctx context.Context, s *block.Script, opts ...CompileOption) (string, error) {
	if s == nil {
		return "", errNilScript()
	}
	var cfg compileConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	ev := &CompileEvent{Stats: s.Statistics()}
	defer w.hooks.compile(ctx, ev)

	if !s.IsComplete() {
		if !cfg.allowIncomplete {
			ev.Err = ErrIncompleteScript
			w.logger.DebugContext(ctx, "compile refused", "error", ev.Err)
			return "", ev.Err
		}
		w.logger.WarnContext(ctx, "compiling incomplete script")
	}

	code := s.Code()
	w.logger.DebugContext(ctx, "compiled script", "blocks", ev.Stats.Total(), "bytes", len(code))
	return code, nil
}

// Describe returns the natural language paraphrase of the script, or ""
// for a nil script.
func (w *Workspace) Describe(s *block.Script) string {
	if s == nil {
		return ""
	}
	return s.NaturalLanguage()
}

// Encode serializes the script to its XML document.
func (w *Workspace) Encode(s *block.Script) ([]byte, error) {
	if s == nil {
		return nil, errNilScript()
	}
	return xmlcodec.Marshal(s)
}

// Decode rebuilds a script from an XML document, resolving behaviours by
// name through the workspace catalog.
func (w *Workspace) Decode(data []byte) (*block.Script, error) {
	dec := xmlcodec.NewDecoder(w.resolver,
		xmlcodec.WithRegistry(w.registry),
		xmlcodec.WithLogger(w.logger),
	)
	return dec.Decode(bytes.NewReader(data))
}

// Save encodes and stores the script under id and returns the id used.
// An empty id gets a new random one.
func (w *Workspace) Save(ctx context.Context, id string, s *block.Script) (string, error) {
	if s == nil {
		return "", errNilScript()
	}
	if id == "" {
		id = uuid.NewString()
	}
	ev := &StoreEvent{ID: id, Stats: s.Statistics()}
	defer w.hooks.save(ctx, ev)

	doc, err := w.Encode(s)
	if err != nil {
		ev.Err = fmt.Errorf("encode script %s: %w", id, err)
		return "", ev.Err
	}

	ev.Err = w.withLock(ctx, id, func() error {
		return w.store.Save(ctx, ports.ScriptRecord{
			ID:        id,
			Document:  doc,
			Stats:     ev.Stats,
			UpdatedAt: w.now().UTC(),
		})
	})
	if ev.Err != nil {
		w.logger.ErrorContext(ctx, "save failed", "id", id, "error", ev.Err)
		return "", ev.Err
	}

	w.logger.InfoContext(ctx, "script saved", "id", id, "blocks", ev.Stats.Total())
	return id, nil
}

// Load fetches and decodes a stored script.
func (w *Workspace) Load(ctx context.Context, id string) (*block.Script, error) {
	ev := &StoreEvent{ID: id}
	defer w.hooks.load(ctx, ev)

	rec, err := w.store.Load(ctx, id)
	if err != nil {
		ev.Err = err
		return nil, err
	}

	s, err := w.Decode(rec.Document)
	if err != nil {
		ev.Err = fmt.Errorf("decode script %s: %w", id, err)
		w.logger.ErrorContext(ctx, "load failed", "id", id, "error", err)
		return nil, ev.Err
	}

	ev.Stats = s.Statistics()
	w.logger.DebugContext(ctx, "script loaded", "id", id)
	return s, nil
}

// Record returns the stored record without decoding the document.
func (w *Workspace) Record(ctx context.Context, id string) (ports.ScriptRecord, error) {
	return w.store.Load(ctx, id)
}

// Delete removes a stored script. Deleting a missing script is not an error.
func (w *Workspace) Delete(ctx context.Context, id string) error {
	ev := &StoreEvent{ID: id}
	defer w.hooks.delete(ctx, ev)

	ev.Err = w.withLock(ctx, id, func() error {
		return w.store.Delete(ctx, id)
	})
	if ev.Err == nil {
		w.logger.InfoContext(ctx, "script deleted", "id", id)
	}
	return ev.Err
}

// List returns the stored script IDs in ascending order.
func (w *Workspace) List(ctx context.Context) ([]string, error) {
	return w.store.List(ctx)
}

// Stats merges the saved statistics of every stored script and returns
// them with the number of scripts.
func (w *Workspace) Stats(ctx context.Context) (block.Stats, int, error) {
	return observability.Aggregate(ctx, w.store)
}

func (w *Workspace) withLock(ctx context.Context, id string, fn func() error) error {
	unlock, err := w.locker.Lock(ctx, "script:"+id, w.lockTTL)
	if err != nil {
		return fmt.Errorf("lock script %s: %w", id, err)
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			w.logger.WarnContext(ctx, "unlock failed", "id", id, "error", err)
		}
	}()

	return fn()
}
