// Package store persists the bridge address, pairing credential and light aliases.
//
// The state file is a single JSON object rewritten in full on every save. There is no
// locking: two concurrent invocations can race on a read-modify-write cycle.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"

	"github.com/rs/zerolog/log"
)

// DefaultURL is the bridge address used before discovery has run.
const DefaultURL = "127.0.0.1"

// Config is the persisted per-installation state.
type Config struct {
	URL      string            `json:"url"`
	Username string            `json:"username"`
	Aliases  map[string]string `json:"aliases"`
}

// Default returns the state written on first run.
func Default() Config {
	return Config{
		URL:     DefaultURL,
		Aliases: map[string]string{},
	}
}

// WithAlias returns a copy of c with alias mapped to name. c is not modified.
func (c Config) WithAlias(alias, name string) Config {
	aliases := make(map[string]string, len(c.Aliases)+1)
	maps.Copy(aliases, c.Aliases)
	aliases[alias] = name
	c.Aliases = aliases
	return c
}

// File is the JSON state file on disk.
type File struct {
	path string
}

// NewFile returns a store backed by the file at path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the location of the state file.
func (f *File) Path() string {
	return f.path
}

// Load reads the state file, creating it with defaults first if it does not exist.
// A file that exists but cannot be parsed is reported as an error and left untouched.
func (f *File) Load() (Config, error) {
	if _, err := os.Stat(f.path); errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("path", f.path).Msg("State file missing, writing defaults")
		if err := f.Save(Default()); err != nil {
			return Config{}, err
		}
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read state file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse state file %s: %w", f.path, err)
	}
	if cfg.Aliases == nil {
		cfg.Aliases = map[string]string{}
	}

	return cfg, nil
}

// Save overwrites the state file with cfg.
func (f *File) Save(cfg Config) error {
	if cfg.Aliases == nil {
		cfg.Aliases = map[string]string{}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	log.Debug().
		Str("path", f.path).
		Str("url", cfg.URL).
		Int("aliases", len(cfg.Aliases)).
		Msg("State saved")
	return nil
}
