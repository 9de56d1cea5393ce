package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
	assert.Equal(t, 100*time.Millisecond, cfg.Calibration.Sample)
	assert.Equal(t, "auto", cfg.Report.Color)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
  pretty: false
calibration:
  sample: 250ms
report:
  color: never
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
	assert.Equal(t, 250*time.Millisecond, cfg.Calibration.Sample)
	assert.Equal(t, "never", cfg.Report.Color)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))

	t.Setenv("CYCLEPROF_LOG_LEVEL", "error")
	t.Setenv("CYCLEPROF_CALIBRATION_SAMPLE", "50ms")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, 50*time.Millisecond, cfg.Calibration.Sample)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		errorMsg string
	}{
		{
			name:     "bad log level",
			mutate:   func(c *Config) { c.Log.Level = "verbose" },
			errorMsg: "invalid log level",
		},
		{
			name:     "non-positive sample",
			mutate:   func(c *Config) { c.Calibration.Sample = 0 },
			errorMsg: "must be positive",
		},
		{
			name:     "bad color mode",
			mutate:   func(c *Config) { c.Report.Color = "sometimes" },
			errorMsg: "invalid report color mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	t.Setenv("CYCLEPROF_LOG_PRETTY", "kinda")

	cfg := Default()
	err := LoadFromEnv(&cfg)
	assert.Error(t, err)
}
