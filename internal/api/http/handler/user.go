package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/parishkeeper/parish-server/internal/logger"
	"github.com/parishkeeper/parish-server/internal/model"
)

type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id uuid.UUID) (model.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string) (model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// User serves account administration routes.
type User struct {
	userService UserService
	logger      *logger.Logger
}

func NewUser(userService UserService, logger *logger.Logger) *User {
	return &User{userService: userService, logger: logger}
}

func (h *User) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(users, newUserResponse))
}

func (h *User) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, newUserResponse(user))
}

type roleRequest struct {
	Role string `json:"role"`
}

func (h *User) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	var req roleRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err, h.logger)
		return
	}

	user, err := h.userService.UpdateRole(r.Context(), id, req.Role)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, newUserResponse(user))
}

func (h *User) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "User deleted"})
}
