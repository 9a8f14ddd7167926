package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/parishkeeper/parish-server/internal/model"
)

// DefaultAccessTTL is used when NewJWT receives a non-positive TTL.
const DefaultAccessTTL = 24 * time.Hour

const typeAccess = "access"

// Claims represents JWT claims. The subject carries the user ID as a string.
type Claims struct {
	jwt.RegisteredClaims
	Role      string `json:"role"`
	TokenType string `json:"typ"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	accessTTL time.Duration
	now       func() time.Time
}

var _ model.TokenManager = (*JWT)(nil)

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string, accessTTL time.Duration) *JWT {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	return &JWT{secretKey: secretKey, accessTTL: accessTTL, now: time.Now}
}

// GenerateAccessToken creates a signed access token for userID with role as a hint.
func (j *JWT) GenerateAccessToken(userID uuid.UUID, role model.Role) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTTL)),
		},
		Role:      string(role),
		TokenType: typeAccess,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// ParseAccessToken validates the token and extracts its claims. Every failure
// wraps model.ErrInvalidToken.
func (j *JWT) ParseAccessToken(tokenString string) (model.TokenClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, jwt.WithTimeFunc(j.now), jwt.WithExpirationRequired())
	if err != nil {
		return model.TokenClaims{}, errors.Join(model.ErrInvalidToken, fmt.Errorf("failed to parse access token: %w", err))
	}
	if !token.Valid {
		return model.TokenClaims{}, model.ErrInvalidToken
	}
	if claims.TokenType != typeAccess {
		return model.TokenClaims{}, fmt.Errorf("%w: token type mismatch: %s", model.ErrInvalidToken, claims.TokenType)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return model.TokenClaims{}, fmt.Errorf("%w: malformed subject", model.ErrInvalidToken)
	}

	return model.TokenClaims{UserID: userID, Role: model.Role(claims.Role)}, nil
}
