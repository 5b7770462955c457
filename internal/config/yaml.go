// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load reads chatcall.yaml, or chatcall.toml when no YAML file exists, from
// dir. If neither exists, it returns a zero-value Config and nil error.
func Load(dir string) (*Config, error) {
	for _, name := range []string{FileName, TOMLFileName} {
		cfg, err := LoadFile(filepath.Join(dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return cfg, err
	}
	return &Config{}, nil
}

// Path returns the config file Load would read from dir, or "" if none.
func Path(dir string) string {
	for _, name := range []string{FileName, TOMLFileName} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadFile reads one config file, choosing the decoder by extension. A
// missing file is returned as an error wrapping fs.ErrNotExist.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data as TOML when ext is ".toml" and as YAML otherwise.
func Parse(data []byte, ext string) (*Config, error) {
	var cfg Config
	if ext == ".toml" {
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Write marshals the config to YAML and writes it to w.
func Write(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close() //nolint:errcheck // best-effort close
	enc.SetIndent(2)
	return enc.Encode(cfg)
}

// WriteTOML marshals the config to TOML and writes it to w.
func WriteTOML(w io.Writer, cfg *Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}
