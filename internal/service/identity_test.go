package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parishkeeper/parish-server/internal/mocks"
	"github.com/parishkeeper/parish-server/internal/model"
	"github.com/parishkeeper/parish-server/internal/testutil"
)

func TestIdentity_Resolve_UsesStoredRole(t *testing.T) {
	tokens := mocks.NewTokenManager(t)
	users := mocks.NewUserStore(t)
	s := NewIdentity(tokens, users, testutil.MakeNoopLogger())
	ctx := context.Background()
	userID := uuid.New()

	tokens.On("ParseAccessToken", "tok").Return(model.TokenClaims{UserID: userID, Role: model.RoleAdmin}, nil)
	users.On("GetByID", ctx, userID).Return(model.User{ID: userID, Name: "M", Email: "m@x", Role: model.RoleMember}, nil)

	id, err := s.Resolve(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, model.RoleMember, id.Role)
	assert.Equal(t, userID, id.UserID)
}

func TestIdentity_Resolve_Failures(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("invalid token", func(t *testing.T) {
		tokens := mocks.NewTokenManager(t)
		s := NewIdentity(tokens, mocks.NewUserStore(t), testutil.MakeNoopLogger())
		tokens.On("ParseAccessToken", "bad").Return(model.TokenClaims{}, model.ErrInvalidToken)

		_, err := s.Resolve(ctx, "bad")
		assert.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("deleted user", func(t *testing.T) {
		tokens := mocks.NewTokenManager(t)
		users := mocks.NewUserStore(t)
		s := NewIdentity(tokens, users, testutil.MakeNoopLogger())
		tokens.On("ParseAccessToken", "tok").Return(model.TokenClaims{UserID: userID}, nil)
		users.On("GetByID", ctx, userID).Return(model.User{}, model.NewNotFoundError("user"))

		_, err := s.Resolve(ctx, "tok")
		assert.ErrorIs(t, err, model.ErrUnauthorized)
	})

	t.Run("store failure", func(t *testing.T) {
		tokens := mocks.NewTokenManager(t)
		users := mocks.NewUserStore(t)
		s := NewIdentity(tokens, users, testutil.MakeNoopLogger())
		tokens.On("ParseAccessToken", "tok").Return(model.TokenClaims{UserID: userID}, nil)
		users.On("GetByID", ctx, userID).Return(model.User{}, errors.New("db down"))

		_, err := s.Resolve(ctx, "tok")
		require.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrUnauthorized)
	})
}
