// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// fileConfig holds defaults for the CLI's flags, loadable from a TOML
// file via --config. Flags explicitly set on the command line always
// override a value loaded here.
//
// Grounded on the example pack's TOML-driven manifest configs
// (pkg/deps/python/poetry.go's toml.Unmarshal use against a decode-target
// struct); chcsolver uses the same decode-into-struct shape for its own
// run configuration rather than a project manifest.
type fileConfig struct {
	Engine   string `toml:"engine"`
	Witness  bool   `toml:"witness"`
	Validate bool   `toml:"validate"`
	MaxLevel int    `toml:"max_level"`
}

// loadConfig reads and decodes a TOML config file. A path of "" returns a
// zero-value fileConfig without touching the filesystem.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
