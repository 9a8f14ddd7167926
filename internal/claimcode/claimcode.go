// Package claimcode generates the single-use codes that let a parishioner
// bind a new account to a member record created by an administrator.
package claimcode

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// entropyBytes is the amount of randomness in each code.
const entropyBytes = 24

// Generator produces claim codes from a random source.
type Generator struct {
	random io.Reader
}

// NewGenerator returns a Generator reading from crypto/rand.
func NewGenerator() *Generator {
	return &Generator{random: rand.Reader}
}

// Generate returns a URL-safe code and the digest under which it is stored.
func (g *Generator) Generate() (code string, hash string, err error) {
	buf := make([]byte, entropyBytes)
	if _, err := io.ReadFull(g.random, buf); err != nil {
		return "", "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	code = base64.RawURLEncoding.EncodeToString(buf)
	return code, Hash(code), nil
}

// Hash returns the hex SHA-256 digest of a code as presented by a client.
// Surrounding whitespace is ignored.
func Hash(code string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(code)))
	return hex.EncodeToString(sum[:])
}
