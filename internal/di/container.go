package di

import (
	"net/http"

	supa "github.com/supabase-community/supabase-go"
	"go.uber.org/zap"

	"memorateller-backend/internal/capture"
	"memorateller-backend/internal/config"
	"memorateller-backend/internal/handlers"
	"memorateller-backend/internal/image"
	"memorateller-backend/internal/observability"
	"memorateller-backend/internal/service/memory"
	"memorateller-backend/internal/session"
)

// Container holds the fully wired application. Both entrypoints build one
// through InitializeContainer and drive the Router.
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Client   *supa.Client
	Session  *session.Session
	Verifier session.Verifier

	Normalizer    *image.Normalizer
	CaptureStore  *capture.Store
	MemoryService memory.Service
	Metrics       *observability.Collector

	CaptureHandler *handlers.CaptureHandler
	MemoryHandler  *handlers.MemoryHandler
	Router         http.Handler
}

// Shutdown releases the container's long-lived resources. Safe to call once
// after the server stops serving.
func (c *Container) Shutdown() {
	if c.Session != nil {
		c.Session.Close()
	}
	if c.CaptureStore != nil {
		c.CaptureStore.Close()
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}
