package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/parishkeeper/parish-server/internal/logger"
	"github.com/parishkeeper/parish-server/internal/model"
)

// AuthService is the account workflow used by Auth.
type AuthService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.Registration, error)
	Login(ctx context.Context, email, password string) (model.LoginResult, error)
	Me(ctx context.Context, userID uuid.UUID) (model.Profile, error)
	LinkProfile(ctx context.Context, userID uuid.UUID, code string) (model.Member, error)
}

// Auth serves registration, login and profile routes.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates new Auth handler.
func NewAuth(authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type registerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	ClaimCode string `json:"claim_code"`
	Contact   string `json:"contact"`
}

type registerResponse struct {
	Message  string    `json:"message"`
	UserID   uuid.UUID `json:"user_id"`
	MemberID uuid.UUID `json:"member_id"`
}

// Register creates an account. With a claim code the account is bound to the
// existing member record; without one a new member profile is created.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err, h.logger)
		return
	}

	reg, err := h.authService.Register(r.Context(), model.RegisterParams{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		ClaimCode: req.ClaimCode,
		Contact:   req.Contact,
	})
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		Message:  "Registration successful",
		UserID:   reg.User.ID,
		MemberID: reg.Member.ID,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	User        profileResponse `json:"user"`
}

func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err, h.logger)
		return
	}

	res, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: res.AccessToken,
		TokenType:   "Bearer",
		User:        newProfileResponse(res.Profile),
	})
}

func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	identity, err := requestIdentity(h.contextManager, r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	profile, err := h.authService.Me(r.Context(), identity.UserID)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, newProfileResponse(profile))
}

type linkRequest struct {
	ClaimCode string `json:"claim_code"`
}

type linkResponse struct {
	Message  string    `json:"message"`
	MemberID uuid.UUID `json:"member_id"`
}

// Link redeems a claim code for an account that has no member profile yet.
func (h *Auth) Link(w http.ResponseWriter, r *http.Request) {
	identity, err := requestIdentity(h.contextManager, r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	var req linkRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err, h.logger)
		return
	}

	member, err := h.authService.LinkProfile(r.Context(), identity.UserID, req.ClaimCode)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, linkResponse{Message: "Profile linked", MemberID: member.ID})
}
