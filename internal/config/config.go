// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

// Package config loads the firewall's TOML configuration: the
// `[firewall]` table plus its `[firewall.registries]` subtable, with
// environment overrides for CI-mode detection.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName is the file FindConfigFile walks parent directories looking for.
const ConfigFileName = ".firewall.toml"

// RegistryConfig is the `[firewall.registries]` subtable.
type RegistryConfig struct {
	PyPIEnabled    bool `toml:"pypi_enabled"`
	NPMEnabled     bool `toml:"npm_enabled"`
	TimeoutSeconds int  `toml:"timeout_seconds"`
}

// Config is the `[firewall]` table.
type Config struct {
	Languages          []string       `toml:"languages"`
	SeverityThreshold  string         `toml:"severity_threshold"`
	CacheTTLSeconds    int            `toml:"cache_ttl_seconds"`
	CacheDir           string         `toml:"cache_dir"`
	OutputFormat       string         `toml:"output_format"`
	FailOnNetworkError bool           `toml:"fail_on_network_error"`
	Registries         RegistryConfig `toml:"registries"`

	// CIMode is never read from TOML; it is set exclusively from the
	// FIREWALL_CI / CI environment variables by ApplyEnvOverrides.
	CIMode bool `toml:"-"`
}

type fileShape struct {
	Firewall Config `toml:"firewall"`
}

// Default returns the built-in configuration defaults.
func Default() Config {
	return Config{
		Languages:          []string{"python", "javascript"},
		SeverityThreshold:  "warning",
		CacheTTLSeconds:    3600,
		CacheDir:           "~/.cache/hallucination-firewall",
		OutputFormat:       "terminal",
		FailOnNetworkError: false,
		Registries: RegistryConfig{
			PyPIEnabled:    true,
			NPMEnabled:     true,
			TimeoutSeconds: 10,
		},
	}
}

// Load reads and parses a TOML config file at path, overlaying it onto
// Default(). A missing or unreadable file is an error, so callers should
// use FindConfigFile first and fall back to Default() themselves when it
// returns "".
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	shape := fileShape{Firewall: cfg}
	if err := toml.Unmarshal(data, &shape); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return shape.Firewall, nil
}

// FindConfigFile walks from dir up through every parent directory looking
// for ConfigFileName, rather than a single fixed-path lookup. Returns ""
// when none is found all the way to the filesystem root.
func FindConfigFile(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Resolve discovers and loads the config starting from the current
// working directory, falling back to Default() when no config file is
// found anywhere up the tree.
func Resolve() (Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return Default(), fmt.Errorf("getting working directory: %w", err)
	}

	path := FindConfigFile(wd)
	if path == "" {
		cfg := Default()
		ApplyEnvOverrides(&cfg)
		return cfg, nil
	}

	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	ApplyEnvOverrides(&cfg)
	return cfg, nil
}

// ApplyEnvOverrides sets CIMode from FIREWALL_CI=1 or CI=true.
func ApplyEnvOverrides(cfg *Config) {
	if os.Getenv("FIREWALL_CI") == "1" || os.Getenv("CI") == "true" {
		cfg.CIMode = true
	}
}

// CacheTTL returns CacheTTLSeconds as a time.Duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// RegistryTimeout returns Registries.TimeoutSeconds as a time.Duration.
func (c Config) RegistryTimeout() time.Duration {
	return time.Duration(c.Registries.TimeoutSeconds) * time.Second
}

// ExpandedCacheDir resolves a leading "~" in CacheDir against the user's
// home directory.
func (c Config) ExpandedCacheDir() (string, error) {
	if len(c.CacheDir) == 0 || c.CacheDir[0] != '~' {
		return c.CacheDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, c.CacheDir[1:]), nil
}
