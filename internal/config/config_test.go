package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0600))
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, BackendBadger, cfg.Backend)
	assert.Equal(t, "TodoData", cfg.StorageKey)
	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.DataPath())
	assert.NotNil(t, cfg.Log())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "backend: SQLite\ndata_dir: store\nstorage_key: Work\nlisten: :9000\n")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "Work", cfg.StorageKey)
	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, filepath.Join(dir, "store"), cfg.DataPath())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "backend: memory\n")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, DefaultStorageKey, cfg.StorageKey)
	assert.Equal(t, DefaultListen, cfg.Listen)
}

func TestLoad_AbsoluteDataDir(t *testing.T) {
	dir := t.TempDir()
	data := t.TempDir()
	writeConfig(t, dir, "data_dir: "+data+"\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, data, cfg.DataPath())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown backend", "backend: redis\n", "unknown backend: redis"},
		{"not yaml", "backend: [\n", "invalid config.yaml"},
		{"wrong shape", "- a\n- b\n", "invalid config.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := Load(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_EmptyStorageKey(t *testing.T) {
	cfg, err := New(t.TempDir())
	require.NoError(t, err)
	cfg.StorageKey = "  "

	assert.EqualError(t, cfg.Validate(), "storage_key must not be empty")
}

func TestDefaultConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", AppName), DefaultConfigDir())

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/someone")
	assert.Equal(t, filepath.Join("/home/someone", ".config", AppName), DefaultConfigDir())
}

func TestCredentialFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "todo")
	cfg, err := New(dir)
	require.NoError(t, err)

	assert.False(t, cfg.HasOAuthClient())
	assert.False(t, cfg.HasToken())

	require.NoError(t, cfg.EnsureDir())
	require.NoError(t, os.WriteFile(cfg.TokenPath(), []byte("{}"), 0600))
	assert.True(t, cfg.HasToken())

	require.NoError(t, cfg.RemoveToken())
	assert.False(t, cfg.HasToken())
	assert.Equal(t, filepath.Join(dir, OAuthClientFile), cfg.OAuthClientPath())
}
