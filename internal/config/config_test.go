package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirHonorsTadaHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TADA_HOME", dir)

	assert.Equal(t, dir, Dir())
	assert.Equal(t, filepath.Join(dir, "config.yaml"), Path())
}

func TestDirFallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("TADA_HOME", "")
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".tada"), Dir())
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	t.Setenv("TADA_HOME", t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, []string{"general", "work", "personal"}, cfg.Categories)
}

func TestLoadPartialFillsDefaults(t *testing.T) {
	t.Setenv("TADA_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: sqlite\ncategories: [home, errands]\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, StorageSQLite, cfg.Storage)
	assert.Equal(t, []string{"home", "errands"}, cfg.Categories)
	assert.Equal(t, DefaultNamespace, cfg.Namespace)
	assert.Equal(t, "classic", cfg.Theme)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("invalid: yaml: content:"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults ok", func(*Config) {}, ""},
		{"unknown storage", func(c *Config) { c.Storage = "redis" }, "unknown storage"},
		{"reserved category", func(c *Config) { c.Categories = []string{"work", "all"} }, "reserved"},
		{"duplicate category", func(c *Config) { c.Categories = []string{"work", "work"} }, "duplicate"},
		{"blank category", func(c *Config) { c.Categories = []string{" "} }, "empty category"},
		{"namespace with slash", func(c *Config) { c.Namespace = "a/b" }, "namespace"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	original := Config{
		Storage:    StorageSQLite,
		DataDir:    "/tmp/tada-data",
		Namespace:  "custom",
		Categories: []string{"a", "b"},
		Theme:      "neon",
		LogLevel:   "debug",
	}
	require.NoError(t, original.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, *loaded)
}

func TestPaths(t *testing.T) {
	cfg := Config{DataDir: "/data"}
	assert.Equal(t, filepath.Join("/data", "tada.db"), cfg.DBPath())
	assert.Equal(t, filepath.Join("/data", "tada.log"), cfg.LogPath())
}
