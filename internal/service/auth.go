package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/parishkeeper/parish-server/internal/claimcode"
	"github.com/parishkeeper/parish-server/internal/logger"
	"github.com/parishkeeper/parish-server/internal/metrics"
	"github.com/parishkeeper/parish-server/internal/model"
)

type Auth struct {
	userStore         model.UserStore
	memberStore       model.MemberStore
	registrationStore model.RegistrationStore
	hasher            model.PasswordHasher
	tokenManager      model.TokenManager
	metrics           *metrics.Metrics
	logger            *logger.Logger
	now               func() time.Time
}

func NewAuth(
	userStore model.UserStore,
	memberStore model.MemberStore,
	registrationStore model.RegistrationStore,
	hasher model.PasswordHasher,
	tokenManager model.TokenManager,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:         userStore,
		memberStore:       memberStore,
		registrationStore: registrationStore,
		hasher:            hasher,
		tokenManager:      tokenManager,
		metrics:           metrics,
		logger:            logger,
		now:               time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register dispatches to the claim code flow when a code is supplied and to
// self-service registration otherwise.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.Registration, error) {
	if strings.TrimSpace(params.ClaimCode) != "" {
		return a.RegisterWithClaimCode(ctx, params)
	}
	return a.RegisterSelfService(ctx, params)
}

func (a *Auth) validateRegistration(params *model.RegisterParams, requireCode bool) error {
	params.Name = strings.TrimSpace(params.Name)
	params.Email = normalizeEmail(params.Email)
	params.ClaimCode = strings.TrimSpace(params.ClaimCode)
	params.Contact = strings.TrimSpace(params.Contact)

	if params.Name == "" || params.Email == "" || params.Password == "" || (requireCode && params.ClaimCode == "") {
		if requireCode {
			return model.NewValidationError("name, email, password and claim code are required")
		}
		return model.NewValidationError("name, email and password are required")
	}
	if !strings.Contains(params.Email, "@") {
		return model.NewValidationError("invalid email address")
	}
	return nil
}

// ensureEmailFree fails with ErrDuplicateEmail before any claim code is looked
// at. The unique constraint still guards the insert itself.
func (a *Auth) ensureEmailFree(ctx context.Context, email string) error {
	_, err := a.userStore.GetByEmail(ctx, email)
	if err == nil {
		return model.ErrDuplicateEmail
	}
	if !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to get user by email: %w", err)
	}
	return nil
}

func (a *Auth) newUser(params model.RegisterParams, role model.Role, now time.Time) (model.User, error) {
	digest, err := a.hasher.Hash(params.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	return model.User{
		ID:           uuid.New(),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: digest,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func claimOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.ClaimOutcomeSuccess
	case errors.Is(err, model.ErrInvalidClaimCode):
		return metrics.ClaimOutcomeInvalid
	case errors.Is(err, model.ErrClaimCodeExpired):
		return metrics.ClaimOutcomeExpired
	case errors.Is(err, model.ErrAlreadyLinked), errors.Is(err, model.ErrProfileAlreadyLinked):
		return metrics.ClaimOutcomeAlreadyLinked
	case errors.Is(err, model.ErrDuplicateEmail):
		return metrics.ClaimOutcomeDuplicateEmail
	}
	return metrics.ClaimOutcomeError
}

// RegisterWithClaimCode creates a member-role account and binds it to the
// member record holding the code, atomically.
func (a *Auth) RegisterWithClaimCode(ctx context.Context, params model.RegisterParams) (model.Registration, error) {
	if err := a.validateRegistration(&params, true); err != nil {
		return model.Registration{}, err
	}

	a.logger.Debug("Auth service: registering with claim code", "email", params.Email)

	if err := a.ensureEmailFree(ctx, params.Email); err != nil {
		a.metrics.ObserveClaim(claimOutcome(err))
		return model.Registration{}, err
	}

	now := a.now()
	user, err := a.newUser(params, model.RoleMember, now)
	if err != nil {
		return model.Registration{}, err
	}

	savedUser, member, err := a.registrationStore.RegisterWithClaim(ctx, user, claimcode.Hash(params.ClaimCode), now)
	a.metrics.ObserveClaim(claimOutcome(err))
	if err != nil {
		a.logger.Info("Auth service: claim code registration rejected",
			"email", params.Email,
			"error", err.Error())
		return model.Registration{}, err
	}

	a.logger.Info("Auth service: member claimed",
		"user_id", savedUser.ID,
		"member_id", member.ID)

	return model.Registration{User: savedUser, Member: member}, nil
}

// RegisterSelfService creates an account together with a fresh member profile.
func (a *Auth) RegisterSelfService(ctx context.Context, params model.RegisterParams) (model.Registration, error) {
	if err := a.validateRegistration(&params, false); err != nil {
		return model.Registration{}, err
	}

	if err := a.ensureEmailFree(ctx, params.Email); err != nil {
		return model.Registration{}, err
	}

	now := a.now()
	user, err := a.newUser(params, model.RoleMember, now)
	if err != nil {
		return model.Registration{}, err
	}

	member := model.Member{
		ID:        uuid.New(),
		Name:      params.Name,
		Contact:   params.Contact,
		Status:    model.MemberStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	savedUser, savedMember, err := a.registrationStore.RegisterSelfService(ctx, user, member)
	if err != nil {
		return model.Registration{}, err
	}

	a.logger.Info("Auth service: self-service registration completed",
		"user_id", savedUser.ID,
		"member_id", savedMember.ID)

	return model.Registration{User: savedUser, Member: savedMember}, nil
}

func (a *Auth) Login(ctx context.Context, email, password string) (model.LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return model.LoginResult{}, model.NewValidationError("email and password are required")
	}

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.LoginResult{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.LoginResult{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		a.logger.Info("Auth service: password mismatch", "user_id", user.ID)
		return model.LoginResult{}, model.ErrInvalidCredentials
	}

	token, err := a.tokenManager.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return model.LoginResult{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	profile, err := a.profile(ctx, user)
	if err != nil {
		return model.LoginResult{}, err
	}

	return model.LoginResult{AccessToken: token, Profile: profile}, nil
}

// Me returns the caller's profile.
func (a *Auth) Me(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	user, err := a.userStore.GetByID(ctx, userID)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return a.profile(ctx, user)
}

func (a *Auth) profile(ctx context.Context, user model.User) (model.Profile, error) {
	member, err := a.memberStore.GetByUserID(ctx, user.ID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Profile{User: user}, nil
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to get member by user id: %w", err)
	}
	return model.Profile{User: user, MemberID: &member.ID}, nil
}

// LinkProfile lets an existing account without a member profile redeem a
// claim code.
func (a *Auth) LinkProfile(ctx context.Context, userID uuid.UUID, code string) (model.Member, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return model.Member{}, model.NewValidationError("claim code is required")
	}

	member, err := a.registrationStore.LinkUser(ctx, userID, claimcode.Hash(code), a.now())
	a.metrics.ObserveClaim(claimOutcome(err))
	if err != nil {
		return model.Member{}, err
	}

	a.logger.Info("Auth service: profile linked",
		"user_id", userID,
		"member_id", member.ID)

	return member, nil
}

// EnsureAdmin creates the bootstrap administrator when no account uses email.
// An existing account is left as is. It reports whether a user was created.
func (a *Auth) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	params := model.RegisterParams{Name: name, Email: email, Password: password}
	if err := a.validateRegistration(&params, false); err != nil {
		return false, err
	}

	_, err := a.userStore.GetByEmail(ctx, params.Email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return false, fmt.Errorf("failed to get user by email: %w", err)
	}

	user, err := a.newUser(params, model.RoleAdmin, a.now())
	if err != nil {
		return false, err
	}

	if _, err := a.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrDuplicateEmail) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create admin user: %w", err)
	}

	a.logger.Info("Auth service: admin user created", "email", params.Email)
	return true, nil
}
