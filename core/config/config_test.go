package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "charm", cfg.Sync.Sheet)
	assert.Equal(t, "change id", cfg.Sync.Key)
	assert.Equal(t, []string{"change id", "priority", "description"}, cfg.Sync.Required)
	assert.Equal(t, []string{"status"}, cfg.Sync.Optional)
	assert.Equal(t, ",", cfg.Source.Delimiter)
	assert.Equal(t, "latin-1", cfg.Source.FallbackEncoding)
	assert.True(t, cfg.Journal.Enabled)
	assert.Equal(t, "sqlite", cfg.Journal.Driver)
	assert.Equal(t, 3306, cfg.Journal.Port)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SYNC_SHEET", "tickets")
	t.Setenv("SYNC_OPTIONAL", "status,owner")
	t.Setenv("JOURNAL_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "tickets", cfg.Sync.Sheet)
	assert.Equal(t, []string{"status", "owner"}, cfg.Sync.Optional)
	assert.False(t, cfg.Journal.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SOURCE_DELIMITER=;\nJOURNAL_DRIVER=mysql\n"), 0o644))

	// godotenv writes straight into the process environment.
	t.Setenv("SOURCE_DELIMITER", "")
	t.Setenv("JOURNAL_DRIVER", "")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ";", cfg.Source.Delimiter)
	assert.Equal(t, "mysql", cfg.Journal.Driver)
}
