// Package config handles seed.toml project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up by Load and FindAndLoad.
const FileName = "seed.toml"

// Config represents a seed.toml file.
type Config struct {
	Run   Run   `toml:"run"`
	Log   Log   `toml:"log"`
	Store Store `toml:"store"`

	// Dir is the directory containing the seed.toml file (set at load time).
	Dir string `toml:"-"`
}

// Run configures compilation and execution.
type Run struct {
	Mode         string `toml:"mode"`
	MaxCallDepth int    `toml:"max-call-depth"`
}

// Log configures the commonlog backend.
type Log struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// Store configures the chunk store.
type Store struct {
	Path string `toml:"path"`
}

// Default returns the configuration used when no seed.toml exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Run.Mode == "" {
		c.Run.Mode = "script"
	}
	if c.Run.MaxCallDepth <= 0 {
		c.Run.MaxCallDepth = 256
	}
	if c.Store.Path == "" {
		c.Store.Path = filepath.Join(".seed", "chunks.db")
	}
}

// Load parses a seed.toml file from the given directory.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var c Config
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}

	c.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	c.applyDefaults()
	if c.Run.Mode != "script" && c.Run.Mode != "interactive" {
		return nil, fmt.Errorf("%s: run.mode must be \"script\" or \"interactive\", not %q", path, c.Run.Mode)
	}
	return &c, nil
}

// FindAndLoad walks up from startDir to find a seed.toml file, then loads
// and returns it. When none is found it returns Default with Dir set to
// startDir.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}
	start := dir

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			c := Default()
			c.Dir = start
			return c, nil
		}
		dir = parent
	}
}

// StorePath returns the absolute store path. Relative paths are resolved
// against Dir.
func (c *Config) StorePath() string {
	if filepath.IsAbs(c.Store.Path) || c.Store.Path == ":memory:" {
		return c.Store.Path
	}
	return filepath.Join(c.Dir, c.Store.Path)
}

// LogFile returns the absolute log file path, or "" to log to stderr.
func (c *Config) LogFile() string {
	if c.Log.File == "" || filepath.IsAbs(c.Log.File) {
		return c.Log.File
	}
	return filepath.Join(c.Dir, c.Log.File)
}
