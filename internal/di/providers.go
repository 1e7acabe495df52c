// Package di provides dependency injection using Google Wire.
package di

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/wire"
	supa "github.com/supabase-community/supabase-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"memorateller-backend/internal/capture"
	"memorateller-backend/internal/config"
	"memorateller-backend/internal/handlers"
	"memorateller-backend/internal/image"
	"memorateller-backend/internal/infrastructure/supabase"
	"memorateller-backend/internal/observability"
	"memorateller-backend/internal/repository"
	"memorateller-backend/internal/service/memory"
	"memorateller-backend/internal/session"
)

// SuperSet combines all provider sets for the complete application.
var SuperSet = wire.NewSet(
	ConfigProviders,
	InfrastructureProviders,
	ApplicationProviders,
	InterfaceProviders,
	wire.Bind(new(http.Handler), new(*chi.Mux)),
	wire.Struct(new(Container), "*"),
)

// ConfigProviders provides configuration and logging, the foundation
// the other layers depend on.
var ConfigProviders = wire.NewSet(
	provideConfig,
	provideLogger,
)

// InfrastructureProviders provides the platform client and the adapters
// built on top of it.
var InfrastructureProviders = wire.NewSet(
	provideSupabaseClient,
	provideVerifier,
	provideProcessSession,
	provideBlobStore,
	provideMemoryRepository,
	provideMetrics,
)

// ApplicationProviders provides the services that carry the capture and
// persistence workflow.
var ApplicationProviders = wire.NewSet(
	provideNormalizer,
	provideCaptureStore,
	provideMemoryService,
)

// InterfaceProviders provides handlers and the router.
var InterfaceProviders = wire.NewSet(
	provideCaptureHandler,
	provideMemoryHandler,
	provideRouter,
)

// provideConfig loads and validates the application configuration.
func provideConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// provideLogger creates a structured logger appropriate for the environment.
// Production uses JSON format, development uses console format.
func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsDevelopment() {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// provideSupabaseClient creates the shared platform client.
func provideSupabaseClient(cfg *config.Config) (*supa.Client, error) {
	return supabase.NewClient(cfg.Supabase)
}

// provideVerifier creates the bearer token verifier.
func provideVerifier(client *supa.Client, logger *zap.Logger) session.Verifier {
	return supabase.NewAuth(client, logger)
}

// provideProcessSession creates the process identity session fed by the
// platform notifier. The session starts in the loading state and settles
// once the first probe completes.
func provideProcessSession(client *supa.Client, logger *zap.Logger) *session.Session {
	return session.New(supabase.NewServiceNotifier(client, logger))
}

func provideBlobStore(client *supa.Client, cfg *config.Config, logger *zap.Logger) repository.BlobStore {
	return supabase.NewBlobStore(client, cfg.Supabase.StorageBucket, logger)
}

func provideMemoryRepository(client *supa.Client, cfg *config.Config, logger *zap.Logger) repository.MemoryRepository {
	return supabase.NewMemoryRepository(client, cfg.Supabase.MemoriesTable, logger)
}

func provideMetrics() *observability.Collector {
	return observability.NewCollector("memorateller")
}

func provideNormalizer(cfg *config.Config) *image.Normalizer {
	return image.NewNormalizer(cfg.Normalizer.MaxSize, cfg.Normalizer.Quality)
}

func provideCaptureStore(cfg *config.Config) *capture.Store {
	return capture.NewStore(cfg.Capture.SessionTTL, cfg.Capture.SaveTimeout)
}

func provideMemoryService(
	blobs repository.BlobStore,
	repo repository.MemoryRepository,
	logger *zap.Logger,
) memory.Service {
	return memory.NewService(blobs, repo, logger)
}

func provideCaptureHandler(
	store *capture.Store,
	normalizer *image.Normalizer,
	service memory.Service,
	metrics *observability.Collector,
	logger *zap.Logger,
	cfg *config.Config,
) *handlers.CaptureHandler {
	return handlers.NewCaptureHandler(store, normalizer, service, metrics, logger, cfg.Capture.MaxUploadBytes)
}

func provideMemoryHandler(service memory.Service, logger *zap.Logger) *handlers.MemoryHandler {
	return handlers.NewMemoryHandler(service, logger)
}

func provideRouter(
	cfg *config.Config,
	sess *session.Session,
	verifier session.Verifier,
	captures *handlers.CaptureHandler,
	memories *handlers.MemoryHandler,
	metrics *observability.Collector,
	logger *zap.Logger,
) *chi.Mux {
	return handlers.NewRouter(cfg, sess, verifier, captures, memories, metrics, logger)
}
