package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gnlineage/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()

	for range 2 {
		require.NoError(t, EnsureDirs(tmpDir))
	}

	dirs := []string{
		filepath.Join(tmpDir, ".config", "gnlineage"),
		filepath.Join(tmpDir, ".cache", "gnlineage"),
		filepath.Join(tmpDir, ".local", "share", "gnlineage", "logs"),
	}
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm(), dir)
	}
}

func TestEnsureDirsError(t *testing.T) {
	tmpDir := t.TempDir()
	// a file where the .config directory should be
	blocker := filepath.Join(tmpDir, ".config")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := EnsureDirs(tmpDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot create directory")
}

func TestEnsureConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))

	require.NoError(t, EnsureConfigFile(tmpDir))
	path := config.ConfigFilePath(tmpDir)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(data))

	custom := []byte("cache:\n  backend: sqlite\n")
	require.NoError(t, os.WriteFile(path, custom, 0644))
	require.NoError(t, EnsureConfigFile(tmpDir))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, data, "existing file is kept")
}

// TestConfigYAMLDefaults keeps the template in sync with config.New().
func TestConfigYAMLDefaults(t *testing.T) {
	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(ConfigYAML), &cfg))

	def := config.New()
	assert.Equal(t, def.Species, cfg.Species)
	assert.Equal(t, def.Lineage, cfg.Lineage)
	assert.Equal(t, def.Services, cfg.Services)
	assert.Equal(t, def.Cache, cfg.Cache)
	assert.Equal(t, def.Database, cfg.Database)
	assert.Equal(t, def.Log, cfg.Log)
}
