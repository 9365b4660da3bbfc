// Package config loads tool settings from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	FormatTree = "tree"
	FormatYAML = "yaml"
)

type Config struct {
	Color     bool   `toml:"color"`
	Verbosity int    `toml:"verbosity"`
	Format    string `toml:"format"`
	REPL      REPL   `toml:"repl"`
}

type REPL struct {
	Prompt  string `toml:"prompt"`
	History string `toml:"history"` // empty disables history
}

func Default() *Config {
	return &Config{
		Color:  true,
		Format: FormatTree,
		REPL: REPL{
			Prompt: "tiny> ",
		},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	cfg.REPL.History = expandHome(cfg.REPL.History)
	return cfg, nil
}

// LoadOrDefault loads path when it is set and falls back to the defaults
// otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) Validate() error {
	switch c.Format {
	case FormatTree, FormatYAML:
	default:
		return fmt.Errorf("format must be %q or %q, got %q", FormatTree, FormatYAML, c.Format)
	}
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity must not be negative, got %d", c.Verbosity)
	}
	return nil
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
