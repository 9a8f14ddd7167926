package password

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/parishkeeper/parish-server/internal/model"
)

// Hasher hashes and verifies passwords using bcrypt. Callers must not log or
// persist plaintext passwords.
type Hasher struct {
	cost int
}

var _ model.PasswordHasher = (*Hasher)(nil)

// NewHasher returns a Hasher with the given bcrypt cost, clamped to the range
// bcrypt accepts. A non-positive cost selects bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Hasher{cost: cost}
}

// Hash produces a salted bcrypt digest of password.
func (h *Hasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether password matches digest. A malformed digest never matches.
func (h *Hasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
