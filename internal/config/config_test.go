package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsAndFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
listen_addr: ":9090"
prover:
  bin_dir: /opt/ladr/bin
  timeout: 30s
  max_concurrent: 2
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "/opt/ladr/bin", cfg.Prover.BinDir)
	assert.Equal(t, 30*time.Second, cfg.Prover.Timeout)
	assert.Equal(t, 2, cfg.Prover.MaxConcurrent)
	// Unset fields keep their defaults.
	assert.Equal(t, 5*time.Second, cfg.Prover.GracePeriod)
	assert.Equal(t, 256, cfg.Prover.CacheCapacity)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
prover:
  bin_dir: /from/file
database_url: postgres://file
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	t.Setenv("LADR_PATH", "/from/env")
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("LISTEN_ADDR", ":7070")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/from/env", cfg.Prover.BinDir)
	assert.Equal(t, "postgres://env", cfg.DatabaseURL)
	assert.Equal(t, ":7070", cfg.ListenAddr)
}

func TestLoadRequiresBinDir(t *testing.T) {
	t.Setenv("LADR_PATH", "")
	_, err := Load("")
	require.Error(t, err, "no bin_dir anywhere should fail validation")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	require.Error(t, err)
}
