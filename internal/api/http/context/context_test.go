package context

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/parishkeeper/parish-server/internal/model"
)

func TestManager_SetAndGetIdentity(t *testing.T) {
	m := NewManager()
	identity := model.Identity{UserID: uuid.New(), Role: model.RoleStaff, Email: "s@parish.org"}

	ctx := m.SetIdentityToContext(context.Background(), identity)
	got, ok := m.GetIdentityFromContext(ctx)

	assert.True(t, ok)
	assert.Equal(t, identity, got)
}

func TestManager_GetIdentity_Missing(t *testing.T) {
	m := NewManager()

	_, ok := m.GetIdentityFromContext(context.Background())
	assert.False(t, ok)

	ctx := context.WithValue(context.Background(), identityKey{}, "not an identity")
	_, ok = m.GetIdentityFromContext(ctx)
	assert.False(t, ok)
}
