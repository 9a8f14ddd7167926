package model

import (
	"context"

	"github.com/google/uuid"
)

// ContextManager stores the authenticated identity on a request context.
type ContextManager interface {
	SetIdentityToContext(ctx context.Context, identity Identity) context.Context
	GetIdentityFromContext(ctx context.Context) (Identity, bool)
}

// Identity is the caller as resolved from the persisted user row.
type Identity struct {
	UserID uuid.UUID
	Name   string
	Email  string
	Role   Role
}

// HasRole reports whether the identity holds one of roles.
func (i Identity) HasRole(roles ...Role) bool {
	return i.Role.In(roles...)
}
