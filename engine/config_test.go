package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig, cfg)
}

func TestLoadConfigMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conceptmesh.yaml")
	data := []byte("engine:\n  maxCascadeDepth: 5\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.MaxCascadeDepth)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, DefaultConfig.MaxConcurrentDispatches, cfg.MaxConcurrentDispatches)
	assert.Equal(t, DefaultConfig.WorklistCapacity, cfg.WorklistCapacity)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conceptmesh.yaml")
	data := []byte("engine:\n  maxCascadeDepth: 5\n  maxConcurrentDispatches: 8\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	t.Setenv("CONCEPTMESH_MAX_CASCADE_DEPTH", "9")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.MaxCascadeDepth)
	assert.Equal(t, 8, cfg.MaxConcurrentDispatches)
}

func TestLoadConfigRejectsNonPositiveDepth(t *testing.T) {
	t.Setenv("CONCEPTMESH_MAX_CASCADE_DEPTH", "0")

	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conceptmesh.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine: ["), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
