package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/meshlog/internal/config"
)

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(config.Log{Level: "warn"}, &buf)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown")
	require.NoError(t, log.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "meshlog.log")
	var buf bytes.Buffer
	log, err := newLogger(config.Log{Level: "info", File: path, MaxSizeMB: 1}, &buf)
	require.NoError(t, err)

	log.Named("pipeline").Info("ingested")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"logger":"pipeline"`)
	assert.Contains(t, string(data), `"msg":"ingested"`)
}

func TestNewLoggerBadLevel(t *testing.T) {
	_, err := newLogger(config.Log{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(config.Log{Level: "info"}, &buf)
	require.NoError(t, err)

	ctx := WithContext(context.Background(), log)
	assert.Same(t, log, FromContext(ctx))

	FromContext(context.Background()).Info("dropped")
	assert.Empty(t, buf.String())
}
