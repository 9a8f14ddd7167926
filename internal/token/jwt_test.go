package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/parishkeeper/parish-server/internal/model"
)

func TestJWT_AccessToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	u := uuid.New()

	access, err := j.GenerateAccessToken(u, model.RoleAdmin)
	require.NoError(t, err)

	got, err := j.ParseAccessToken(access)
	require.NoError(t, err)
	require.Equal(t, u, got.UserID)
	require.Equal(t, model.RoleAdmin, got.Role)
}

func TestJWT_SubjectIsString(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	u := uuid.New()

	access, err := j.GenerateAccessToken(u, model.RoleMember)
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(access, claims)
	require.NoError(t, err)
	require.Equal(t, u.String(), claims.Subject)
	require.Equal(t, "member", claims.Role)
}

func TestJWT_DefaultTTL(t *testing.T) {
	j := NewJWT("secret", 0)
	require.Equal(t, DefaultAccessTTL, j.accessTTL)
}

func TestJWT_Expired(t *testing.T) {
	j := NewJWT("secret", time.Minute)
	issued := time.Now().Add(-2 * time.Minute)
	j.now = func() time.Time { return issued }

	access, err := j.GenerateAccessToken(uuid.New(), model.RoleMember)
	require.NoError(t, err)

	j.now = time.Now
	_, err = j.ParseAccessToken(access)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_WrongSecret(t *testing.T) {
	access, err := NewJWT("secret", time.Hour).GenerateAccessToken(uuid.New(), model.RoleMember)
	require.NoError(t, err)

	_, err = NewJWT("other", time.Hour).ParseAccessToken(access)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_Malformed(t *testing.T) {
	_, err := NewJWT("secret", time.Hour).ParseAccessToken("not-a-token")
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_TokenTypeMismatch(t *testing.T) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		TokenType: "refresh",
	})
	s, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWT("secret", time.Hour).ParseAccessToken(s)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_NonUUIDSubject(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		TokenType: typeAccess,
	})
	s, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWT("secret", time.Hour).ParseAccessToken(s)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_MissingExpiry(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString()},
		TokenType:        typeAccess,
	})
	s, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWT("secret", time.Hour).ParseAccessToken(s)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}
