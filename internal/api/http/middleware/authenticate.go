package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/parishkeeper/parish-server/internal/api/http/handler"
	"github.com/parishkeeper/parish-server/internal/logger"
	"github.com/parishkeeper/parish-server/internal/model"
)

// IdentityResolver resolves the caller behind a bearer token.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (model.Identity, error)
}

// Authenticate validates bearer tokens and injects the caller's identity into
// the request context.
type Authenticate struct {
	resolver       IdentityResolver
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(resolver IdentityResolver, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{resolver: resolver, contextManager: contextManager, logger: logger}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Handle rejects requests without a valid token with 401.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			handler.WriteError(w, model.ErrUnauthorized, m.logger)
			return
		}

		identity, err := m.resolver.Resolve(r.Context(), token)
		if err != nil {
			if !errors.Is(err, model.ErrInvalidToken) && !errors.Is(err, model.ErrUnauthorized) {
				m.logger.Error("Authenticate middleware: failed to resolve identity", "error", err.Error())
			}
			handler.WriteError(w, err, m.logger)
			return
		}

		ctx := m.contextManager.SetIdentityToContext(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole admits only callers holding one of roles. It must run after
// Authenticate: a missing identity is answered with 401, a wrong role with 403.
func RequireRole(contextManager model.ContextManager, logger *logger.Logger, roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := contextManager.GetIdentityFromContext(r.Context())
			if !ok {
				handler.WriteError(w, model.ErrUnauthorized, logger)
				return
			}
			if !identity.HasRole(roles...) {
				logger.Debug("RequireRole middleware: access denied",
					"user_id", identity.UserID,
					"role", identity.Role,
					"path", r.URL.Path)
				handler.WriteError(w, model.ErrForbidden, logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
