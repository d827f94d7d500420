// Package config handles blockscript.toml project configuration.
package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is the project configuration file looked up by FindAndLoad.
const FileName = "blockscript.toml"

// Store drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Config represents a blockscript.toml project configuration.
type Config struct {
	Workspace Workspace `toml:"workspace"`
	Catalog   Catalog   `toml:"catalog"`
	Store     Store     `toml:"store"`
	Log       Log       `toml:"log"`

	// Dir is the directory containing the blockscript.toml file (set at load time).
	Dir string `toml:"-"`
}

// Workspace holds script construction defaults.
type Workspace struct {
	Name        string `toml:"name"`
	MinimumPegs int    `toml:"minimum-pegs"`
}

// Catalog selects where behaviours come from. Loam wins over Path when both
// are set; neither means the built-in catalog.
type Catalog struct {
	Path string `toml:"path"`
	Loam string `toml:"loam"`
}

// Store configures script persistence.
type Store struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
	Addr   string `toml:"addr"`
	Prefix string `toml:"prefix"`
	TTL    string `toml:"ttl"`
	// KeyEnv names an environment variable holding a hex AES-256 key.
	// When set, documents are encrypted at rest.
	KeyEnv string `toml:"key-env"`
}

// Log configures the logger.
type Log struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no blockscript.toml exists.
func Default() *Config {
	c := &Config{Dir: "."}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Workspace.Name == "" {
		c.Workspace.Name = filepath.Base(c.Dir)
	}
	if c.Workspace.Name == "." || c.Workspace.Name == string(filepath.Separator) {
		c.Workspace.Name = "default"
	}
	if c.Workspace.MinimumPegs == 0 {
		c.Workspace.MinimumPegs = 1
	}
	if c.Store.Driver == "" {
		c.Store.Driver = DriverFile
	}
	if c.Store.Path == "" && c.Store.Driver == DriverFile {
		c.Store.Path = filepath.Join(".blockscript", "scripts")
	}
	if c.Store.Path == "" && c.Store.Driver == DriverSQLite {
		c.Store.Path = filepath.Join(".blockscript", "scripts.db")
	}
	if c.Store.Addr == "" && c.Store.Driver == DriverRedis {
		c.Store.Addr = "localhost:6379"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverFile, DriverSQLite, DriverRedis:
	default:
		return fmt.Errorf("store.driver: unknown driver %q", c.Store.Driver)
	}
	if c.Workspace.MinimumPegs < 1 {
		return fmt.Errorf("workspace.minimum-pegs: must be at least 1, got %d", c.Workspace.MinimumPegs)
	}
	if _, err := c.TTL(); err != nil {
		return err
	}
	return nil
}

// Load parses a blockscript.toml file from the given directory.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &c, nil
}

// FindAndLoad walks up from startDir to find a blockscript.toml file,
// then loads and returns the config. Returns nil if no file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// Resolve returns p relative to the config directory unless it is absolute.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// TTL parses Store.TTL. An empty value means no expiry.
func (c *Config) TTL() (time.Duration, error) {
	if c.Store.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Store.TTL)
	if err != nil {
		return 0, fmt.Errorf("store.ttl: %w", err)
	}
	return d, nil
}

// EncryptionKey reads the key named by Store.KeyEnv.
// Returns nil when encryption is not configured.
func (c *Config) EncryptionKey() ([]byte, error) {
	if c.Store.KeyEnv == "" {
		return nil, nil
	}
	raw := os.Getenv(c.Store.KeyEnv)
	if raw == "" {
		return nil, fmt.Errorf("store.key-env: %s is not set", c.Store.KeyEnv)
	}
	key, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("store.key-env: %s is not hex: %w", c.Store.KeyEnv, err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("store.key-env: %s must decode to 32 bytes, got %d", c.Store.KeyEnv, len(key))
	}
	return key, nil
}
