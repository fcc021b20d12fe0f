package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "sqlite", cfg.Client.LocalBackend)
	assert.Equal(t, 5*time.Second, cfg.Client.SessionTimeout)
	assert.Equal(t, "http://localhost:8080/api", cfg.Client.APIBaseURL)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("app:\n  port: \"9090\"\nclient:\n  local_backend: memory\n  session_timeout: 2s\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	t.Setenv("DB_DSN", "postgres://u:p@localhost:5432/growth")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "memory", cfg.Client.LocalBackend)
	assert.Equal(t, 2*time.Second, cfg.Client.SessionTimeout)
	assert.Equal(t, "postgres://u:p@localhost:5432/growth", cfg.DB.DSN)
}
