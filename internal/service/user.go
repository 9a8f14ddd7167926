package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/parishkeeper/parish-server/internal/logger"
	"github.com/parishkeeper/parish-server/internal/model"
)

// User covers account administration.
type User struct {
	userStore model.UserStore
	logger    *logger.Logger
}

func NewUser(userStore model.UserStore, logger *logger.Logger) *User {
	return &User{
		userStore: userStore,
		logger:    logger,
	}
}

func (s *User) List(ctx context.Context) ([]model.User, error) {
	return s.userStore.List(ctx)
}

func (s *User) Get(ctx context.Context, id uuid.UUID) (model.User, error) {
	return s.userStore.GetByID(ctx, id)
}

// UpdateRole validates role against the closed set before persisting it.
func (s *User) UpdateRole(ctx context.Context, id uuid.UUID, role string) (model.User, error) {
	parsed, err := model.ParseRole(role)
	if err != nil {
		return model.User{}, err
	}

	user, err := s.userStore.UpdateRole(ctx, id, parsed)
	if err != nil {
		return model.User{}, err
	}

	s.logger.Info("User service: role changed", "user_id", id, "role", parsed)
	return user, nil
}

func (s *User) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.userStore.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("User service: user deleted", "user_id", id)
	return nil
}
