// SPDX-License-Identifier: MIT
package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_EmptyPathReturnsZeroValue(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, fileConfig{}, cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chcsolver.toml")
	const body = `
engine = "tpa-split"
witness = true
max_level = 64
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "tpa-split", cfg.Engine)
	assert.True(t, cfg.Witness)
	assert.Equal(t, 64, cfg.MaxLevel)
}

func TestLoadConfig_RejectsMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestRun_ConfigFileSuppliesEngineDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chcsolver.toml")
	require.NoError(t, os.WriteFile(path, []byte("engine = \"tpa-split\"\n"), 0o644))

	out, err := runCapture(t, []string{"--config", path, "testdata/counter.chc"})
	assert.NoError(t, err)
	assert.Contains(t, out, "SAFE")
}
