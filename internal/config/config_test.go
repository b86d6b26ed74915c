package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.validate())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Engine.CacheExtraction)
	// Raw-text identity by default.
	assert.False(t, cfg.Engine.FoldCase)
	assert.False(t, cfg.Engine.FoldAccents)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9999
paths:
  workbooks_dir: /srv/registers
engine:
  fold_case: true
`), 0644))
	t.Setenv("SHEETLOG_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "/srv/registers", cfg.Paths.WorkbooksDir)
	assert.True(t, cfg.Engine.FoldCase)
	// Untouched fields keep their defaults.
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9999\n"), 0644))
	t.Setenv("SHEETLOG_CONFIG", path)
	t.Setenv("SHEETLOG_SERVER_PORT", "7070")
	t.Setenv("SHEETLOG_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	t.Setenv("SHEETLOG_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad rate limit", func(c *Config) { c.Server.RateLimit.RPS = 0 }},
		{"empty workbooks dir", func(c *Config) { c.Paths.WorkbooksDir = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.validate())
		})
	}
}

func TestReportPath(t *testing.T) {
	cfg := Default()
	cfg.Paths.ReportsDir = "/tmp/reports"
	assert.Equal(t, filepath.Join("/tmp/reports", "out.csv"), cfg.ReportPath("out.csv"))
}
