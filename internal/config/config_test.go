package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "mongodb://127.0.0.1:27017", cfg.Mongo.URI)
	assert.Equal(t, "tasksdb", cfg.Mongo.Database)
}

func TestLoadFileFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "task_manager.yml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":8080\"\nmongo:\n  database: staging\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "staging", cfg.Mongo.Database)
	// Unset keys fall back to defaults.
	assert.Equal(t, "mongodb://127.0.0.1:27017", cfg.Mongo.URI)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "task_manager.yml")
	require.NoError(t, os.WriteFile(path, []byte("addr: [\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("TASKS_ADDR", ":9999")
	t.Setenv("TASKS_MONGO_URI", "mongodb://db.internal:27017")
	t.Setenv("TASKS_MONGO_DB", "tasks_prod")
	t.Setenv("TASKS_LOG_LEVEL", "debug")

	cfg := FromEnv(Default())
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "mongodb://db.internal:27017", cfg.Mongo.URI)
	assert.Equal(t, "tasks_prod", cfg.Mongo.Database)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestFromEnvLeavesUnsetAlone(t *testing.T) {
	t.Setenv("TASKS_ADDR", "")
	t.Setenv("TASKS_MONGO_URI", "")
	t.Setenv("TASKS_MONGO_DB", "")
	t.Setenv("TASKS_LOG_LEVEL", "")

	cfg := FromEnv(Default())
	assert.Equal(t, Default(), cfg)
}
