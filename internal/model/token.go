package model

import "github.com/google/uuid"

// TokenManager issues and validates signed access tokens.
type TokenManager interface {
	GenerateAccessToken(userID uuid.UUID, role Role) (string, error)
	ParseAccessToken(token string) (TokenClaims, error)
}

// TokenClaims is what an access token asserts. Role reflects the user's role
// at issuance and is advisory only.
type TokenClaims struct {
	UserID uuid.UUID
	Role   Role
}

// PasswordHasher turns plaintext passwords into salted digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}
