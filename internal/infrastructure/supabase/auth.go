package supabase

import (
	"context"
	"sync/atomic"

	supa "github.com/supabase-community/supabase-go"
	"go.uber.org/zap"

	"memorateller-backend/internal/session"
	appErrors "memorateller-backend/pkg/errors"
)

// Auth verifies user bearer tokens against the platform's auth service.
type Auth struct {
	client *supa.Client
	logger *zap.Logger
}

// NewAuth creates a token verifier over the shared client.
func NewAuth(client *supa.Client, logger *zap.Logger) *Auth {
	return &Auth{client: client, logger: logger}
}

var _ session.Verifier = (*Auth)(nil)

// Verify resolves a bearer token to the identity it was issued for.
func (a *Auth) Verify(ctx context.Context, token string) (session.Identity, error) {
	if token == "" {
		return session.Identity{}, appErrors.NewUnauthorized("missing bearer token")
	}

	// The token-scoped client carries the context in its underlying
	// HTTP request.
	user, err := a.client.Auth.WithToken(token).GetUser()
	if err != nil {
		return session.Identity{}, appErrors.NewAuth("token verification failed", err)
	}

	return session.Identity{
		ID:    user.ID.String(),
		Email: user.Email,
	}, nil
}

// ServiceNotifier reports the availability of the platform's auth service
// as a session.Notifier. The process session it feeds starts in Loading
// and settles to Authenticated (service credential usable) or Anonymous
// (auth service unreachable) after the first probe.
type ServiceNotifier struct {
	client *supa.Client
	logger *zap.Logger
}

// NewServiceNotifier creates a notifier over the shared client.
func NewServiceNotifier(client *supa.Client, logger *zap.Logger) *ServiceNotifier {
	return &ServiceNotifier{client: client, logger: logger}
}

var _ session.Notifier = (*ServiceNotifier)(nil)

// Subscribe probes the auth service and delivers the first state to fn.
// The returned function cancels delivery if it has not happened yet.
func (n *ServiceNotifier) Subscribe(fn func(identity *session.Identity)) func() {
	var cancelled atomic.Bool

	go func() {
		_, err := n.client.Auth.HealthCheck()
		if cancelled.Load() {
			return
		}
		if err != nil {
			n.logger.Error("auth service unreachable", zap.Error(err))
			fn(nil)
			return
		}
		fn(&session.Identity{ID: "service-role"})
	}()

	return func() { cancelled.Store(true) }
}
