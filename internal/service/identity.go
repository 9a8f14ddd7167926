package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/parishkeeper/parish-server/internal/logger"
	"github.com/parishkeeper/parish-server/internal/model"
)

// Identity turns bearer tokens into the caller's identity. The role is always
// read from the stored user; the token's role claim is ignored.
type Identity struct {
	tokenManager model.TokenManager
	userStore    model.UserStore
	logger       *logger.Logger
}

func NewIdentity(tokenManager model.TokenManager, userStore model.UserStore, logger *logger.Logger) *Identity {
	return &Identity{
		tokenManager: tokenManager,
		userStore:    userStore,
		logger:       logger,
	}
}

func (s *Identity) Resolve(ctx context.Context, token string) (model.Identity, error) {
	claims, err := s.tokenManager.ParseAccessToken(token)
	if err != nil {
		return model.Identity{}, model.ErrInvalidToken
	}

	user, err := s.userStore.GetByID(ctx, claims.UserID)
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Info("Identity service: token subject no longer exists", "user_id", claims.UserID)
		return model.Identity{}, model.ErrUnauthorized
	}
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	if claims.Role != user.Role {
		s.logger.Debug("Identity service: token role is stale",
			"user_id", user.ID,
			"token_role", claims.Role,
			"role", user.Role)
	}

	return model.Identity{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}
