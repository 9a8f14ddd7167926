package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpctx "github.com/parishkeeper/parish-server/internal/api/http/context"
	"github.com/parishkeeper/parish-server/internal/mocks"
	"github.com/parishkeeper/parish-server/internal/model"
	"github.com/parishkeeper/parish-server/internal/testutil"
)

func TestAuthenticate_Handle(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name        string
		header      string
		resolveErr  error
		expectCall  bool
		wantStatus  int
		wantReached bool
	}{
		{name: "missing authorization header", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic dXNlcjpwdw==", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer bad", resolveErr: model.ErrInvalidToken, expectCall: true, wantStatus: http.StatusUnauthorized},
		{name: "deleted user", header: "Bearer tok", resolveErr: model.ErrUnauthorized, expectCall: true, wantStatus: http.StatusUnauthorized},
		{name: "store failure", header: "Bearer tok", resolveErr: errors.New("db down"), expectCall: true, wantStatus: http.StatusInternalServerError},
		{name: "valid token", header: "Bearer tok", expectCall: true, wantStatus: http.StatusNoContent, wantReached: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resolver := mocks.NewIdentityResolver(t)
			cm := httpctx.NewManager()
			if tt.expectCall {
				token := tt.header[len("Bearer "):]
				resolver.On("Resolve", mock.Anything, token).
					Return(model.Identity{UserID: userID, Role: model.RoleMember}, tt.resolveErr)
			}

			reached := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				identity, ok := cm.GetIdentityFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, userID, identity.UserID)
				reached = true
				w.WriteHeader(http.StatusNoContent)
			})

			r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			NewAuthenticate(resolver, cm, testutil.MakeNoopLogger()).Handle(next).ServeHTTP(rec, r)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantReached, reached)
		})
	}
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	cm := httpctx.NewManager()
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	gate := RequireRole(cm, testutil.MakeNoopLogger(), model.RoleAdmin, model.RoleStaff)(ok)

	tests := []struct {
		name       string
		identity   *model.Identity
		wantStatus int
	}{
		{name: "anonymous", wantStatus: http.StatusUnauthorized},
		{name: "member", identity: &model.Identity{Role: model.RoleMember}, wantStatus: http.StatusForbidden},
		{name: "staff", identity: &model.Identity{Role: model.RoleStaff}, wantStatus: http.StatusOK},
		{name: "admin", identity: &model.Identity{Role: model.RoleAdmin}, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, "/attendance/", nil)
			if tt.identity != nil {
				r = r.WithContext(cm.SetIdentityToContext(r.Context(), *tt.identity))
			}
			rec := httptest.NewRecorder()
			gate.ServeHTTP(rec, r)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
