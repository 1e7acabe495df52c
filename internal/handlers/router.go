package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"memorateller-backend/internal/config"
	"memorateller-backend/internal/middleware"
	"memorateller-backend/internal/observability"
	"memorateller-backend/internal/session"
)

// NewRouter assembles the HTTP surface: operational endpoints plus the
// authenticated /api routes driving the capture workflow and gallery.
func NewRouter(
	cfg *config.Config,
	sess *session.Session,
	verifier session.Verifier,
	captures *CaptureHandler,
	memories *MemoryHandler,
	metrics *observability.Collector,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	if cfg.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	// Outer bound; the save path enforces its own tighter deadline.
	r.Use(middleware.Timeout(60*time.Second, logger))

	r.Get("/health", HealthHandler)
	if cfg.EnableMetrics {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		if cfg.EnableMetrics {
			r.Use(httpMetrics(metrics))
		}
		r.Use(middleware.RequireSession(sess))
		r.Use(middleware.Authenticate(verifier, logger))

		r.Post("/captures", captures.Create)
		r.Post("/captures/{captureId}/image", captures.AttachImage)
		r.Put("/captures/{captureId}", captures.UpdateDraft)
		r.Post("/captures/{captureId}/save", captures.Save)
		r.Get("/memories", memories.List)
	})

	return r
}

// httpMetrics records per-route request counts and latencies using the
// matched chi route pattern.
func httpMetrics(c *observability.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapper := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(wrapper, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}
			c.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(wrapper.status)).Inc()
			c.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
