// Package config provides configuration management for the MemoraTeller backend.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// SupabaseConfig holds connection settings for the managed backend platform.
type SupabaseConfig struct {
	URL            string `yaml:"url" validate:"required,url"`
	ServiceRoleKey string `yaml:"service_role_key" validate:"required"`
	StorageBucket  string `yaml:"storage_bucket" validate:"required"`
	MemoriesTable  string `yaml:"memories_table" validate:"required"`
}

// NormalizerConfig holds image normalization parameters.
type NormalizerConfig struct {
	MaxSize int `yaml:"max_size" validate:"gt=0"`
	Quality int `yaml:"quality" validate:"gt=0,lte=100"`
}

// CaptureConfig holds capture workflow settings.
type CaptureConfig struct {
	SessionTTL  time.Duration `yaml:"session_ttl" validate:"gt=0"`
	SaveTimeout time.Duration `yaml:"save_timeout" validate:"gt=0"`
	// MaxUploadBytes bounds the raw multipart image body.
	MaxUploadBytes int64 `yaml:"max_upload_bytes" validate:"gt=0"`
}

// Config holds all application configuration
type Config struct {
	ServerAddress string      `yaml:"server_address" validate:"required"`
	Environment   Environment `yaml:"environment" validate:"oneof=development staging production"`
	LogLevel      string      `yaml:"log_level"`

	Supabase   SupabaseConfig   `yaml:"supabase"`
	Normalizer NormalizerConfig `yaml:"normalizer"`
	Capture    CaptureConfig    `yaml:"capture"`

	// Feature flags
	EnableMetrics bool `yaml:"enable_metrics"`
	EnableTracing bool `yaml:"enable_tracing"`
	EnableCORS    bool `yaml:"enable_cors"`

	TracingEndpoint string `yaml:"tracing_endpoint"`
}

// LoadConfig loads configuration from environment variables, applying an
// optional YAML overlay file first (CONFIG_FILE) so environment variables
// always win.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: ":8080",
		Environment:   Development,
		LogLevel:      "info",
		Supabase: SupabaseConfig{
			StorageBucket: "memories",
			MemoriesTable: "memories",
		},
		Normalizer: NormalizerConfig{
			MaxSize: 1080,
			Quality: 80,
		},
		Capture: CaptureConfig{
			SessionTTL:     30 * time.Minute,
			SaveTimeout:    30 * time.Second,
			MaxUploadBytes: 20 << 20,
		},
		EnableCORS:    true,
		EnableMetrics: true,
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFile overlays values from a YAML config file.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnv overlays values from environment variables.
func applyEnv(cfg *Config) {
	cfg.ServerAddress = getEnv("SERVER_ADDRESS", cfg.ServerAddress)
	cfg.Environment = Environment(getEnv("ENVIRONMENT", string(cfg.Environment)))
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	cfg.Supabase.URL = getEnv("SUPABASE_URL", cfg.Supabase.URL)
	cfg.Supabase.ServiceRoleKey = getEnv("SUPABASE_SERVICE_ROLE_KEY", cfg.Supabase.ServiceRoleKey)
	cfg.Supabase.StorageBucket = getEnv("SUPABASE_STORAGE_BUCKET", cfg.Supabase.StorageBucket)
	cfg.Supabase.MemoriesTable = getEnv("SUPABASE_MEMORIES_TABLE", cfg.Supabase.MemoriesTable)

	cfg.Normalizer.MaxSize = getEnvInt("IMAGE_MAX_SIZE", cfg.Normalizer.MaxSize)
	cfg.Normalizer.Quality = getEnvInt("IMAGE_JPEG_QUALITY", cfg.Normalizer.Quality)

	cfg.Capture.SessionTTL = getEnvDuration("CAPTURE_SESSION_TTL", cfg.Capture.SessionTTL)
	cfg.Capture.SaveTimeout = getEnvDuration("CAPTURE_SAVE_TIMEOUT", cfg.Capture.SaveTimeout)
	cfg.Capture.MaxUploadBytes = int64(getEnvInt("CAPTURE_MAX_UPLOAD_BYTES", int(cfg.Capture.MaxUploadBytes)))

	cfg.EnableMetrics = getEnvBool("ENABLE_METRICS", cfg.EnableMetrics)
	cfg.EnableTracing = getEnvBool("ENABLE_TRACING", cfg.EnableTracing)
	cfg.EnableCORS = getEnvBool("ENABLE_CORS", cfg.EnableCORS)
	cfg.TracingEndpoint = getEnv("TRACING_ENDPOINT", cfg.TracingEndpoint)
}

// Validate checks the configuration for required values and bounds.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
