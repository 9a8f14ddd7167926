package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/parishkeeper/parish-server/internal/mocks"
	"github.com/parishkeeper/parish-server/internal/model"
	"github.com/parishkeeper/parish-server/internal/testutil"
)

func TestAuth_Register(t *testing.T) {
	userID, memberID := uuid.New(), uuid.New()

	t.Run("created", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		h := NewAuth(svc, ctxManager, testutil.MakeNoopLogger())
		svc.On("Register", mock.Anything, model.RegisterParams{
			Name: "Maria", Email: "maria@example.com", Password: "secret", ClaimCode: "abc",
		}).Return(model.Registration{User: model.User{ID: userID}, Member: model.Member{ID: memberID}}, nil)

		rec := serve(h.Register, newRequest(http.MethodPost, "/auth/register",
			`{"name":"Maria","email":"maria@example.com","password":"secret","claim_code":"abc"}`))

		require.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody[registerResponse](t, rec)
		assert.Equal(t, "Registration successful", body.Message)
		assert.Equal(t, userID, body.UserID)
		assert.Equal(t, memberID, body.MemberID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		h := NewAuth(svc, ctxManager, testutil.MakeNoopLogger())
		svc.On("Register", mock.Anything, mock.Anything).Return(model.Registration{}, model.ErrDuplicateEmail)

		rec := serve(h.Register, newRequest(http.MethodPost, "/auth/register", `{"name":"x","email":"a@b.c","password":"p"}`))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("expired code", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		h := NewAuth(svc, ctxManager, testutil.MakeNoopLogger())
		svc.On("Register", mock.Anything, mock.Anything).Return(model.Registration{}, model.ErrClaimCodeExpired)

		rec := serve(h.Register, newRequest(http.MethodPost, "/auth/register", `{"name":"x","email":"a@b.c","password":"p","claim_code":"c"}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "claim code expired", errorMessage(t, rec))
	})

	t.Run("malformed body", func(t *testing.T) {
		h := NewAuth(mocks.NewAuthService(t), ctxManager, testutil.MakeNoopLogger())

		rec := serve(h.Register, newRequest(http.MethodPost, "/auth/register", `{"name":`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid request body", errorMessage(t, rec))
	})
}

func TestAuth_Login(t *testing.T) {
	t.Run("success without profile", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		h := NewAuth(svc, ctxManager, testutil.MakeNoopLogger())
		user := model.User{ID: uuid.New(), Name: "Admin", Email: "admin@parish.org", Role: model.RoleAdmin}
		svc.On("Login", mock.Anything, "admin@parish.org", "pw").
			Return(model.LoginResult{AccessToken: "tok", Profile: model.Profile{User: user}}, nil)

		rec := serve(h.Login, newRequest(http.MethodPost, "/auth/login", `{"email":"admin@parish.org","password":"pw"}`))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{
			"access_token": "tok",
			"token_type": "Bearer",
			"user": {"id": "`+user.ID.String()+`", "name": "Admin", "email": "admin@parish.org", "role": "admin", "member_id": null}
		}`, rec.Body.String())
	})

	t.Run("bad credentials", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		h := NewAuth(svc, ctxManager, testutil.MakeNoopLogger())
		svc.On("Login", mock.Anything, "a@b.c", "bad").Return(model.LoginResult{}, model.ErrInvalidCredentials)

		rec := serve(h.Login, newRequest(http.MethodPost, "/auth/login", `{"email":"a@b.c","password":"bad"}`))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid email or password", errorMessage(t, rec))
	})
}

func TestAuth_Me(t *testing.T) {
	identity := model.Identity{UserID: uuid.New(), Role: model.RoleMember}
	memberID := uuid.New()

	t.Run("profile with member", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		h := NewAuth(svc, ctxManager, testutil.MakeNoopLogger())
		svc.On("Me", mock.Anything, identity.UserID).
			Return(model.Profile{User: model.User{ID: identity.UserID, Role: model.RoleMember}, MemberID: &memberID}, nil)

		rec := serve(h.Me, withIdentity(newRequest(http.MethodGet, "/auth/me", ""), identity))

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody[profileResponse](t, rec)
		require.NotNil(t, body.MemberID)
		assert.Equal(t, memberID, *body.MemberID)
	})

	t.Run("anonymous", func(t *testing.T) {
		h := NewAuth(mocks.NewAuthService(t), ctxManager, testutil.MakeNoopLogger())

		rec := serve(h.Me, newRequest(http.MethodGet, "/auth/me", ""))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuth_Link(t *testing.T) {
	identity := model.Identity{UserID: uuid.New(), Role: model.RoleMember}
	svc := mocks.NewAuthService(t)
	h := NewAuth(svc, ctxManager, testutil.MakeNoopLogger())
	svc.On("LinkProfile", mock.Anything, identity.UserID, "code").Return(model.Member{}, model.ErrProfileAlreadyLinked)

	rec := serve(h.Link, withIdentity(newRequest(http.MethodPost, "/auth/link", `{"claim_code":"code"}`), identity))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
