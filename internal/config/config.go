// Package config loads configuration for the rewind demo command.
//
// Configuration files may be TOML or YAML, chosen by file extension.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds the demo command's settings.
type Config struct {
	// Limit bounds the history length. 0 means unbounded.
	Limit int `toml:"limit" yaml:"limit"`

	// Seed items preloaded into the demo list before the UI starts.
	Seed []string `toml:"seed" yaml:"seed"`

	// Scripts are Lua files run against the stack.
	Scripts []string `toml:"scripts" yaml:"scripts"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{Limit: 1000}
}

// Load reads a configuration file. The format is picked by extension:
// .toml, .yaml or .yml.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return cfg, &ParseError{Path: path, Message: err.Error(), Err: err}
	}

	if cfg.Limit < 0 {
		cfg.Limit = 0
	}
	return cfg, nil
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
