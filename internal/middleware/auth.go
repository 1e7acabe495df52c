package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"memorateller-backend/internal/session"
	"memorateller-backend/pkg/api"
	appErrors "memorateller-backend/pkg/errors"
)

const identityKey contextKey = "identity"

// Authenticate resolves the bearer token to the session identity and
// injects it into the request context. Verification failures propagate to
// the client as 401s rather than being swallowed.
func Authenticate(verifier session.Verifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				api.Error(w, http.StatusUnauthorized, "Missing or malformed authorization header")
				return
			}

			identity, err := verifier.Verify(r.Context(), token)
			if err != nil {
				logger.Debug("token verification failed",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.Error(err),
				)
				api.Error(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity extracts the authenticated identity from context.
func GetIdentity(ctx context.Context) (session.Identity, bool) {
	id, ok := ctx.Value(identityKey).(session.Identity)
	return id, ok
}

// RequireSession gates identity-scoped routes on the process session:
// while the platform session is still loading the API answers 503 instead
// of attempting operations that cannot succeed yet.
func RequireSession(sess *session.Session) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := sess.Require(); err != nil {
				if appErrors.IsUnavailable(err) {
					api.Error(w, http.StatusServiceUnavailable, "Service is starting up, try again shortly")
					return
				}
				api.Error(w, http.StatusServiceUnavailable, "Authentication provider unavailable")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
