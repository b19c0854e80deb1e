package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "novabuf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
app_name: bench
storage:
  workdir: /var/lib/novabuf
bufferpool:
  frames: 64
log:
  level: debug
  format: json
  output_file: stdout
metrics:
  enabled: false
  addr: ":2112"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "bench", cfg.AppName)
	assert.Equal(t, "/var/lib/novabuf", cfg.Storage.Workdir)
	assert.Equal(t, 64, cfg.BufferPool.Frames)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "stdout", cfg.Log.OutputFile)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":2112", cfg.Metrics.Addr)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, "storage:\n  workdir: /tmp/x\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "novabuf", cfg.AppName)
	assert.Equal(t, 128, cfg.BufferPool.Frames)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9464", cfg.Metrics.Addr)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "bufferpool:\n  frames: 0\n"))
	require.ErrorContains(t, err, "bufferpool.frames")
}
