package middleware

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"memorateller-backend/pkg/api"
)

// Timeout wraps requests with a deadline so a stalled upstream cannot
// hold a connection open indefinitely.
func Timeout(timeout time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			r = r.WithContext(ctx)
			done := make(chan struct{})

			go func() {
				defer close(done)
				defer func() {
					if err := recover(); err != nil {
						logger.Error("panic in timed handler",
							zap.String("request_id", GetRequestID(r.Context())),
							zap.Any("panic", err),
						)
						if w.Header().Get("Content-Type") == "" {
							api.Error(w, http.StatusInternalServerError, "Internal server error")
						}
					}
				}()
				next.ServeHTTP(w, r)
			}()

			select {
			case <-done:
			case <-ctx.Done():
				logger.Warn("request timed out",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.String("path", r.URL.Path),
				)
				if w.Header().Get("Content-Type") == "" {
					api.Error(w, http.StatusRequestTimeout, "Request timeout")
				}
			}
		})
	}
}
