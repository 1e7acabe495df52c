package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequiredEnv provides the minimum environment a valid config needs.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service-role-key")
}

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.ServerAddress)
		assert.Equal(t, Development, cfg.Environment)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "memories", cfg.Supabase.StorageBucket)
		assert.Equal(t, "memories", cfg.Supabase.MemoriesTable)
		assert.Equal(t, 1080, cfg.Normalizer.MaxSize)
		assert.Equal(t, 80, cfg.Normalizer.Quality)
		assert.Equal(t, 30*time.Minute, cfg.Capture.SessionTTL)
		assert.Equal(t, 30*time.Second, cfg.Capture.SaveTimeout)
		assert.Equal(t, int64(20<<20), cfg.Capture.MaxUploadBytes)
		assert.True(t, cfg.EnableCORS)
		assert.True(t, cfg.EnableMetrics)
		assert.False(t, cfg.EnableTracing)
	})

	t.Run("EnvironmentOverrides", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SERVER_ADDRESS", ":9090")
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("LOG_LEVEL", "warn")
		t.Setenv("IMAGE_MAX_SIZE", "720")
		t.Setenv("IMAGE_JPEG_QUALITY", "65")
		t.Setenv("CAPTURE_SESSION_TTL", "10m")
		t.Setenv("CAPTURE_SAVE_TIMEOUT", "5s")
		t.Setenv("ENABLE_CORS", "false")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.ServerAddress)
		assert.Equal(t, Production, cfg.Environment)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, 720, cfg.Normalizer.MaxSize)
		assert.Equal(t, 65, cfg.Normalizer.Quality)
		assert.Equal(t, 10*time.Minute, cfg.Capture.SessionTTL)
		assert.Equal(t, 5*time.Second, cfg.Capture.SaveTimeout)
		assert.False(t, cfg.EnableCORS)
		assert.False(t, cfg.IsDevelopment())
	})

	t.Run("FileOverlay", func(t *testing.T) {
		setRequiredEnv(t)

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
server_address: ":7070"
log_level: debug
normalizer:
  max_size: 512
  quality: 70
`), 0o600))
		t.Setenv("CONFIG_FILE", path)

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, ":7070", cfg.ServerAddress)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 512, cfg.Normalizer.MaxSize)
		assert.Equal(t, 70, cfg.Normalizer.Quality)
	})

	t.Run("EnvironmentWinsOverFile", func(t *testing.T) {
		setRequiredEnv(t)

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0o600))
		t.Setenv("CONFIG_FILE", path)
		t.Setenv("LOG_LEVEL", "error")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "error", cfg.LogLevel)
	})

	t.Run("MissingPlatformSettingsFail", func(t *testing.T) {
		t.Setenv("SUPABASE_URL", "")
		t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "")

		_, err := LoadConfig()
		require.Error(t, err)
	})

	t.Run("InvalidEnvironmentFails", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("ENVIRONMENT", "sandbox")

		_, err := LoadConfig()
		require.Error(t, err)
	})

	t.Run("UnreadableFileFails", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

		_, err := LoadConfig()
		require.Error(t, err)
	})

	t.Run("MalformedValuesFallBackToDefaults", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("IMAGE_MAX_SIZE", "not-a-number")
		t.Setenv("CAPTURE_SESSION_TTL", "soon")
		t.Setenv("ENABLE_METRICS", "maybe")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 1080, cfg.Normalizer.MaxSize)
		assert.Equal(t, 30*time.Minute, cfg.Capture.SessionTTL)
		assert.True(t, cfg.EnableMetrics)
	})
}
