// Package config loads optional tool preferences from a TOML file. The
// language itself consults no environment variables; the config file only
// affects how the helium tool renders its output.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/helium-lang/helium/lang/token"
)

// Config represents the helium tool configuration.
type Config struct {
	Output struct {
		// Positions selects how source positions are rendered by the
		// tokenize and parse commands: "none", "long" or "offsets".
		Positions string `toml:"positions"`
	} `toml:"output"`

	Repl struct {
		// HistoryFile is where the REPL persists its input history. An
		// empty value disables persistence.
		HistoryFile string `toml:"history_file"`
	} `toml:"repl"`
}

// Default returns a configuration with default values.
func Default() *Config {
	cfg := &Config{}
	cfg.Output.Positions = "long"
	if home, err := os.UserHomeDir(); err == nil {
		cfg.Repl.HistoryFile = filepath.Join(home, ".helium_history")
	}
	return cfg
}

// Load loads the configuration from path, or returns the defaults when
// path is empty or the file does not exist.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config file: %w", err)
	}
	if _, err := cfg.PosMode(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PosMode maps the configured position rendering name to its mode.
func (c *Config) PosMode() (token.PosMode, error) {
	switch c.Output.Positions {
	case "", "none":
		return token.PosNone, nil
	case "long":
		return token.PosLong, nil
	case "offsets":
		return token.PosOffsets, nil
	}
	return token.PosNone, fmt.Errorf("invalid positions mode: %s", c.Output.Positions)
}
