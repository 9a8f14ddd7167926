package mocks

import (
	"context"
	"io"
	"net"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/parishkeeper/parish-server/internal/model"
)

type TokenManager struct{ mock.Mock }

func NewTokenManager(t testingT) *TokenManager {
	m := &TokenManager{}
	register(&m.Mock, t)
	return m
}

func (m *TokenManager) GenerateAccessToken(userID uuid.UUID, role model.Role) (string, error) {
	ret := m.Called(userID, role)
	return ret.String(0), ret.Error(1)
}

func (m *TokenManager) ParseAccessToken(token string) (model.TokenClaims, error) {
	ret := m.Called(token)
	return value[model.TokenClaims](ret, 0), ret.Error(1)
}

type PasswordHasher struct{ mock.Mock }

func NewPasswordHasher(t testingT) *PasswordHasher {
	m := &PasswordHasher{}
	register(&m.Mock, t)
	return m
}

func (m *PasswordHasher) Hash(password string) (string, error) {
	ret := m.Called(password)
	return ret.String(0), ret.Error(1)
}

func (m *PasswordHasher) Verify(password, digest string) bool {
	return m.Called(password, digest).Bool(0)
}

type CodeGenerator struct{ mock.Mock }

func NewCodeGenerator(t testingT) *CodeGenerator {
	m := &CodeGenerator{}
	register(&m.Mock, t)
	return m
}

func (m *CodeGenerator) Generate() (string, string, error) {
	ret := m.Called()
	return ret.String(0), ret.String(1), ret.Error(2)
}

type Storage struct{ mock.Mock }

func NewStorage(t testingT) *Storage {
	m := &Storage{}
	register(&m.Mock, t)
	return m
}

func (m *Storage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	return m.Called(ctx, key, reader, size, contentType).Error(0)
}

func (m *Storage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	ret := m.Called(ctx, key)
	return value[io.ReadCloser](ret, 0), ret.Error(1)
}

func (m *Storage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *Storage) Exists(ctx context.Context, key string) (bool, error) {
	ret := m.Called(ctx, key)
	return ret.Bool(0), ret.Error(1)
}

type SecurityLayer struct{ mock.Mock }

func NewSecurityLayer(t testingT) *SecurityLayer {
	m := &SecurityLayer{}
	register(&m.Mock, t)
	return m
}

func (m *SecurityLayer) Listen(protocol, addr string) (net.Listener, error) {
	ret := m.Called(protocol, addr)
	return value[net.Listener](ret, 0), ret.Error(1)
}

var (
	_ model.TokenManager   = (*TokenManager)(nil)
	_ model.PasswordHasher = (*PasswordHasher)(nil)
	_ model.Storage        = (*Storage)(nil)
	_ model.SecurityLayer  = (*SecurityLayer)(nil)
)
