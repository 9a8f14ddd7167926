package context

import (
	"context"

	"github.com/parishkeeper/parish-server/internal/model"
)

type identityKey struct{}

// Manager keeps the authenticated identity on a request context.
type Manager struct{}

var _ model.ContextManager = (*Manager)(nil)

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetIdentityToContext returns a copy of ctx carrying identity.
func (m *Manager) SetIdentityToContext(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentityFromContext returns the identity stored by SetIdentityToContext.
func (m *Manager) GetIdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(model.Identity)
	return identity, ok
}
