package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir (Go 1.24+), which is unavailable on the
// toolchain used to build this module.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(prev)
	})
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "qa_databank.yaml", cfg.Databank.Path)
	assert.Equal(t, "answer_history.db", cfg.History.Path)
	assert.Equal(t, 1000, cfg.History.Keep)
	assert.InDelta(t, 0.3, cfg.Engine.Threshold, 1e-9)
	assert.Empty(t, cfg.Backend.URL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := `
server:
  addr: ":8080"
engine:
  threshold: 0.5
backend:
  url: "http://localhost:5000"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jobradar.yaml"), []byte(file), 0644))
	chdir(t, dir)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.InDelta(t, 0.5, cfg.Engine.Threshold, 1e-9)
	assert.Equal(t, "http://localhost:5000", cfg.Backend.URL)
	// Untouched keys keep their defaults.
	assert.Equal(t, "qa_databank.yaml", cfg.Databank.Path)
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JOBRADAR_SERVER_ADDR", ":9000")
	t.Setenv("JOBRADAR_LOG_LEVEL", "debug")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jobradar.yaml"), []byte("server: [\n"), 0644))
	chdir(t, dir)

	_, err := Load()

	assert.Error(t, err)
}

func TestInitLogger(t *testing.T) {
	assert.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "json"}))
}

func TestInitLogger_InvalidLevel(t *testing.T) {
	assert.Error(t, InitLogger(LogConfig{Level: "chatty", Format: "console"}))
}
