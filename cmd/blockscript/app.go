package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/loam"
	"github.com/spf13/cobra"

	"github.com/aretw0/blockscript"
	"github.com/aretw0/blockscript/internal/config"
	"github.com/aretw0/blockscript/internal/logging"
	"github.com/aretw0/blockscript/pkg/adapters/file"
	loamAdapter "github.com/aretw0/blockscript/pkg/adapters/loam"
	"github.com/aretw0/blockscript/pkg/adapters/memory"
	"github.com/aretw0/blockscript/pkg/adapters/redis"
	"github.com/aretw0/blockscript/pkg/adapters/sqlite"
	"github.com/aretw0/blockscript/pkg/block"
	"github.com/aretw0/blockscript/pkg/catalog"
	"github.com/aretw0/blockscript/pkg/persistence/middleware"
	"github.com/aretw0/blockscript/pkg/ports"
)

// app holds what every command needs, built once per invocation.
type app struct {
	configDir   string
	catalogPath string
	debug       bool

	cfg     *config.Config
	logger  *slog.Logger
	catalog *catalog.Catalog
	ws      *blockscript.Workspace
	closers []func() error
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.FindAndLoad(a.configDir)
	if err != nil {
		return err
	}
	if cfg == nil {
		cfg = config.Default()
	}
	a.cfg = cfg

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if a.debug {
		level = slog.LevelDebug
	}
	a.logger = logging.NewTo(cmd.ErrOrStderr(), level)

	a.catalog, err = a.loadCatalog(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	opts := []blockscript.Option{
		blockscript.WithName(cfg.Workspace.Name),
		blockscript.WithLogger(a.logger),
		blockscript.WithMinimumPegs(cfg.Workspace.MinimumPegs),
	}
	storeOpts, err := a.storeOptions()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	opts = append(opts, storeOpts...)
	if a.debug {
		opts = append(opts, blockscript.WithHooks(debugHooks(a.logger)))
	}

	a.ws, err = blockscript.New(a.catalog, opts...)
	return err
}

func (a *app) close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

func (a *app) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var loader ports.CatalogLoader
	switch {
	case a.catalogPath != "":
		loader = ports.FileCatalog{Path: a.catalogPath}
	case a.cfg.Catalog.Loam != "":
		// ReadOnly keeps loam from creating its sandbox; the CLI never writes behaviours.
		repo, err := loam.Init(a.cfg.Resolve(a.cfg.Catalog.Loam),
			loam.WithStrict(true),
			loam.WithReadOnly(true),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize loam: %w", err)
		}
		loader = loamAdapter.New(loam.NewTypedRepository[loamAdapter.BehaviourMetadata](repo))
	case a.cfg.Catalog.Path != "":
		loader = ports.FileCatalog{Path: a.cfg.Resolve(a.cfg.Catalog.Path)}
	default:
		return catalog.Default(), nil
	}
	return loader.LoadCatalog(ctx)
}

func (a *app) storeOptions() ([]blockscript.Option, error) {
	var (
		store ports.ScriptStore
		opts  []blockscript.Option
	)

	switch a.cfg.Store.Driver {
	case config.DriverMemory:
		store = memory.NewStore()
	case config.DriverFile:
		store = file.New(a.cfg.Resolve(a.cfg.Store.Path))
	case config.DriverSQLite:
		path := a.cfg.Resolve(a.cfg.Store.Path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		s, err := sqlite.Open(path)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, s.Close)
		store = s
	case config.DriverRedis:
		ttl, err := a.cfg.TTL()
		if err != nil {
			return nil, err
		}
		redisOpts := []redis.Option{redis.WithTTL(ttl)}
		if a.cfg.Store.Prefix != "" {
			redisOpts = append(redisOpts, redis.WithPrefix(a.cfg.Store.Prefix))
		}
		s := redis.New(a.cfg.Store.Addr, os.Getenv("BLOCKSCRIPT_REDIS_PASSWORD"), 0, redisOpts...)
		a.closers = append(a.closers, s.Close)
		store = s
		opts = append(opts, blockscript.WithLocker(redis.NewLocker(s.Client(), s.Prefix()), 0))
	default:
		return nil, fmt.Errorf("unknown driver %q", a.cfg.Store.Driver)
	}

	key, err := a.cfg.EncryptionKey()
	if err != nil {
		return nil, err
	}
	if key != nil {
		store = middleware.Chain(store, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}))
	}

	return append(opts, blockscript.WithStore(store)), nil
}

// readScript decodes the XML document at path. Read errors name the path;
// decode errors do not.
func (a *app) readScript(path string) (*block.Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return a.ws.Decode(data)
}

// debugHooks logs every workspace operation.
func debugHooks(logger *slog.Logger) blockscript.Hooks {
	store := func(op string) func(context.Context, *blockscript.StoreEvent) {
		return func(ctx context.Context, ev *blockscript.StoreEvent) {
			logger.DebugContext(ctx, op, "id", ev.ID, "blocks", ev.Stats.Total(), "error", ev.Err)
		}
	}
	return blockscript.Hooks{
		OnCompile: func(ctx context.Context, ev *blockscript.CompileEvent) {
			logger.DebugContext(ctx, "compile", "blocks", ev.Stats.Total(), "error", ev.Err)
		},
		OnSave:   store("save"),
		OnLoad:   store("load"),
		OnDelete: store("delete"),
	}
}
