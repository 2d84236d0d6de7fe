package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(home), cfg)
}

func TestLoadFileOverrides(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	path := writeConfig(t, `
outputs_dir = "~/exports"
ledger_backend = "sqlite"
unknown_policy = "both"
mode = "both"
pattern = "*.txt"
drop_blank = true

[log]
level = "debug"
file = "~/logs/meshlog.log"
max_size_mb = 50
compress = true
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "exports"), cfg.OutputsDir)
	assert.Equal(t, "sqlite", cfg.LedgerBackend)
	assert.Equal(t, UnknownBoth, cfg.UnknownPolicy)
	assert.Equal(t, ModeBoth, cfg.Mode)
	assert.Equal(t, "*.txt", cfg.Pattern)
	assert.True(t, cfg.DropBlank)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, filepath.Join(home, "logs", "meshlog.log"), cfg.Log.File)
	assert.Equal(t, 50, cfg.Log.MaxSizeMB)
	assert.Equal(t, 3, cfg.Log.MaxBackups, "unset keys keep defaults")
	assert.True(t, cfg.Log.Compress)
}

func TestLoadFileBadTOML(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "mode = [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty outputs", func(c *Config) { c.OutputsDir = "" }},
		{"backend", func(c *Config) { c.LedgerBackend = "csv" }},
		{"unknown policy", func(c *Config) { c.UnknownPolicy = "guess" }},
		{"mode", func(c *Config) { c.Mode = "all" }},
		{"bad pattern", func(c *Config) { c.Pattern = "[" }},
		{"empty pattern", func(c *Config) { c.Pattern = "" }},
		{"log level", func(c *Config) { c.Log.Level = "trace" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default("/home/u")
			require.NoError(t, c.Validate())
			tt.mutate(c)
			assert.ErrorIs(t, c.Validate(), ErrInvalid)
		})
	}
}

func TestLoadFileInvalid(t *testing.T) {
	_, err := LoadFile(writeConfig(t, `unknown_policy = "guess"`))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestPathEnvOverride(t *testing.T) {
	t.Setenv(EnvPath, "/etc/meshlog.toml")
	p, err := Path()
	require.NoError(t, err)
	assert.Equal(t, "/etc/meshlog.toml", p)
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/h/x", expandHome("~/x", "/h"))
	assert.Equal(t, "~", expandHome("~", "/h"))
	assert.Equal(t, "/abs", expandHome("/abs", "/h"))
}
