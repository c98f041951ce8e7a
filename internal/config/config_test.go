package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 6, cfg.Columns)
	assert.Equal(t, 3, cfg.Rows)
	assert.Equal(t, 4, cfg.RestStamina)
	assert.False(t, cfg.Telemetry)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battlecore.yaml")
	content := []byte("columns: 8\nrows: 4\nrest_stamina: 6\nlog_level: debug\ntelemetry: true\nseed: 42\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Columns)
	assert.Equal(t, 4, cfg.Rows)
	assert.Equal(t, 6, cfg.RestStamina)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.True(t, cfg.Telemetry)
	assert.Equal(t, 20, cfg.MaxTurns, "unset keys keep their defaults")

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, level)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battlecore.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rest_stamina: 6\n"), 0o600))
	t.Setenv("BATTLECORE_REST_STAMINA", "2")
	t.Setenv("BATTLECORE_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.RestStamina)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	malformed := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(malformed, []byte("columns: [1, 2\n"), 0o600))
	_, err := Load(malformed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")

	odd := filepath.Join(dir, "odd.yaml")
	require.NoError(t, os.WriteFile(odd, []byte("columns: 5\n"), 0o600))
	_, err = Load(odd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "columns")

	t.Setenv("BATTLECORE_ROWS", "many")
	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"rows", func(c *Config) { c.Rows = 0 }, "rows"},
		{"rest", func(c *Config) { c.RestStamina = -1 }, "rest_stamina"},
		{"turns", func(c *Config) { c.MaxTurns = 0 }, "max_turns"},
		{"level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
