// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesSpec(t *testing.T) {
	cfg := Default()
	assert.Equal(t, []string{"python", "javascript"}, cfg.Languages)
	assert.Equal(t, "warning", cfg.SeverityThreshold)
	assert.Equal(t, 3600, cfg.CacheTTLSeconds)
	assert.True(t, cfg.Registries.PyPIEnabled)
	assert.True(t, cfg.Registries.NPMEnabled)
	assert.Equal(t, 10, cfg.Registries.TimeoutSeconds)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`
[firewall]
severity_threshold = "error"

[firewall.registries]
npm_enabled = false
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.SeverityThreshold)
	assert.False(t, cfg.Registries.NPMEnabled)
	assert.True(t, cfg.Registries.PyPIEnabled)
	assert.Equal(t, 3600, cfg.CacheTTLSeconds)
}

func TestFindConfigFileWalksUpParents(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte("[firewall]\n"), 0o644))

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found := FindConfigFile(nested)
	assert.Equal(t, filepath.Join(root, ConfigFileName), found)
}

func TestFindConfigFileReturnsEmptyWhenAbsent(t *testing.T) {
	found := FindConfigFile(t.TempDir())
	assert.Empty(t, found)
}

func TestApplyEnvOverridesFirewallCI(t *testing.T) {
	t.Setenv("FIREWALL_CI", "1")
	t.Setenv("CI", "")
	cfg := Default()
	ApplyEnvOverrides(&cfg)
	assert.True(t, cfg.CIMode)
}
