package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/blueprints-go/internal/infrastructure/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "blueprints.db", cfg.Database.Path)
	assert.Equal(t, 24, cfg.Search.QualityMinutes)
	assert.Equal(t, 32, cfg.Search.ProductMinutes)
	assert.Equal(t, 3, cfg.Search.ProductLimit)
	assert.Equal(t, runtime.NumCPU(), cfg.Search.Workers)
	assert.True(t, cfg.Search.DiscardSurplus)
	assert.True(t, cfg.Search.OptimisticBound)
	assert.False(t, cfg.Search.CommitIntermediate)
	assert.NoError(t, config.ValidateConfig(cfg))
}

func TestLoadConfig_FileAndEnvironment(t *testing.T) {
	// Arrange
	path := writeConfig(t, `
search:
  quality_minutes: 20
  product_limit: 2
  commit_intermediate: true
  discard_surplus: false
input:
  cache_dir: /tmp/inputs
logging:
  level: debug
`)
	t.Setenv("BP_SEARCH_PRODUCT_MINUTES", "30")
	t.Setenv("BP_INPUT_SESSION", "abc123")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Search.QualityMinutes)
	assert.Equal(t, 30, cfg.Search.ProductMinutes)
	assert.Equal(t, 2, cfg.Search.ProductLimit)
	assert.True(t, cfg.Search.CommitIntermediate)
	assert.False(t, cfg.Search.DiscardSurplus)
	assert.True(t, cfg.Search.OptimisticBound)
	assert.Equal(t, "/tmp/inputs", cfg.Input.CacheDir)
	assert.Equal(t, "abc123", cfg.Input.Session)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 30*time.Second, cfg.Input.Timeout)
}

func TestLoadConfig_SessionFallback(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: info\n")
	t.Setenv("AOC_SESSION", "from-aoc")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "from-aoc", cfg.Input.Session)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad log level", "logging:\n  level: loud\n"},
		{"bad database type", "database:\n  type: mysql\n"},
		{"negative workers", "search:\n  workers: -1\n"},
		{"quality minutes beyond state range", "search:\n  quality_minutes: 4294967320\n"},
		{"file output without path", "logging:\n  output: file\n"},
		{"bad pushgateway url", "metrics:\n  pushgateway_url: not a url\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestValidateConfig_ReportsConfigKeys(t *testing.T) {
	// Arrange
	cfg := config.Default()
	cfg.Search.ProductLimit = 0

	// Act
	err := config.ValidateConfig(cfg)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search.product_limit failed min=1")
}

func TestUserConfigHandler(t *testing.T) {
	// Arrange
	handler, err := config.NewUserConfigHandlerAt(t.TempDir())
	require.NoError(t, err)

	// Act
	empty, err := handler.Load()
	require.NoError(t, err)
	require.NoError(t, handler.SetDefaultMode("product"))
	require.NoError(t, handler.SetDefaultInput("input.txt"))
	loaded, err := handler.Load()
	require.NoError(t, err)

	// Assert
	assert.Equal(t, &config.UserConfig{}, empty)
	assert.Equal(t, "product", loaded.DefaultMode)
	assert.Equal(t, "input.txt", loaded.DefaultInput)

	require.NoError(t, handler.Clear())
	cleared, err := handler.Load()
	require.NoError(t, err)
	assert.Empty(t, cleared.DefaultMode)
}
