package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "localnet", cfg.TargetNetwork)
	assert.Empty(t, cfg.RPCOverride)
	assert.Equal(t, dir, cfg.Dir())
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)
	cfg.TargetNetwork = "sepolia"
	cfg.DefaultWallet = "dev"
	require.NoError(t, cfg.Save())

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "sepolia", loaded.TargetNetwork)
	assert.Equal(t, "dev", loaded.DefaultWallet)
}

func TestLoadFillsEmptyNetwork(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"target_network":""}`), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "localnet", cfg.TargetNetwork)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{broken`), 0o600))

	_, err := Load(dir)
	assert.Error(t, err)
}
