package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/parishkeeper/parish-server/internal/model"
)

type AuthService struct{ mock.Mock }

func NewAuthService(t testingT) *AuthService {
	m := &AuthService{}
	register(&m.Mock, t)
	return m
}

func (m *AuthService) Register(ctx context.Context, params model.RegisterParams) (model.Registration, error) {
	ret := m.Called(ctx, params)
	return value[model.Registration](ret, 0), ret.Error(1)
}

func (m *AuthService) Login(ctx context.Context, email, password string) (model.LoginResult, error) {
	ret := m.Called(ctx, email, password)
	return value[model.LoginResult](ret, 0), ret.Error(1)
}

func (m *AuthService) Me(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	ret := m.Called(ctx, userID)
	return value[model.Profile](ret, 0), ret.Error(1)
}

func (m *AuthService) LinkProfile(ctx context.Context, userID uuid.UUID, code string) (model.Member, error) {
	ret := m.Called(ctx, userID, code)
	return value[model.Member](ret, 0), ret.Error(1)
}

type IdentityResolver struct{ mock.Mock }

func NewIdentityResolver(t testingT) *IdentityResolver {
	m := &IdentityResolver{}
	register(&m.Mock, t)
	return m
}

func (m *IdentityResolver) Resolve(ctx context.Context, token string) (model.Identity, error) {
	ret := m.Called(ctx, token)
	return value[model.Identity](ret, 0), ret.Error(1)
}

type UserService struct{ mock.Mock }

func NewUserService(t testingT) *UserService {
	m := &UserService{}
	register(&m.Mock, t)
	return m
}

func (m *UserService) List(ctx context.Context) ([]model.User, error) {
	ret := m.Called(ctx)
	return value[[]model.User](ret, 0), ret.Error(1)
}

func (m *UserService) Get(ctx context.Context, id uuid.UUID) (model.User, error) {
	ret := m.Called(ctx, id)
	return value[model.User](ret, 0), ret.Error(1)
}

func (m *UserService) UpdateRole(ctx context.Context, id uuid.UUID, role string) (model.User, error) {
	ret := m.Called(ctx, id, role)
	return value[model.User](ret, 0), ret.Error(1)
}

func (m *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MemberService struct{ mock.Mock }

func NewMemberService(t testingT) *MemberService {
	m := &MemberService{}
	register(&m.Mock, t)
	return m
}

func (m *MemberService) Create(ctx context.Context, params model.MemberParams) (model.Member, model.IssuedClaimCode, error) {
	ret := m.Called(ctx, params)
	return value[model.Member](ret, 0), value[model.IssuedClaimCode](ret, 1), ret.Error(2)
}

func (m *MemberService) IssueClaimCode(ctx context.Context, id uuid.UUID) (model.IssuedClaimCode, error) {
	ret := m.Called(ctx, id)
	return value[model.IssuedClaimCode](ret, 0), ret.Error(1)
}

func (m *MemberService) Get(ctx context.Context, id uuid.UUID) (model.Member, error) {
	ret := m.Called(ctx, id)
	return value[model.Member](ret, 0), ret.Error(1)
}

func (m *MemberService) List(ctx context.Context, filter model.MemberFilter) ([]model.Member, error) {
	ret := m.Called(ctx, filter)
	return value[[]model.Member](ret, 0), ret.Error(1)
}

func (m *MemberService) Update(ctx context.Context, id uuid.UUID, params model.MemberParams) (model.Member, error) {
	ret := m.Called(ctx, id, params)
	return value[model.Member](ret, 0), ret.Error(1)
}

func (m *MemberService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MemberService) ClaimEvents(ctx context.Context, id uuid.UUID) ([]model.ClaimEvent, error) {
	ret := m.Called(ctx, id)
	return value[[]model.ClaimEvent](ret, 0), ret.Error(1)
}

type SacramentService struct{ mock.Mock }

func NewSacramentService(t testingT) *SacramentService {
	m := &SacramentService{}
	register(&m.Mock, t)
	return m
}

func (m *SacramentService) List(ctx context.Context, identity model.Identity) ([]model.Sacrament, error) {
	ret := m.Called(ctx, identity)
	return value[[]model.Sacrament](ret, 0), ret.Error(1)
}

func (m *SacramentService) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Sacrament, error) {
	ret := m.Called(ctx, userID)
	return value[[]model.Sacrament](ret, 0), ret.Error(1)
}

func (m *SacramentService) Get(ctx context.Context, identity model.Identity, id uuid.UUID) (model.Sacrament, error) {
	ret := m.Called(ctx, identity, id)
	return value[model.Sacrament](ret, 0), ret.Error(1)
}

func (m *SacramentService) CreateOwn(ctx context.Context, userID uuid.UUID, params model.CreateSacramentParams) (model.Sacrament, error) {
	ret := m.Called(ctx, userID, params)
	return value[model.Sacrament](ret, 0), ret.Error(1)
}

func (m *SacramentService) CreateForMember(ctx context.Context, params model.AdminSacramentParams) (model.Sacrament, error) {
	ret := m.Called(ctx, params)
	return value[model.Sacrament](ret, 0), ret.Error(1)
}

func (m *SacramentService) Update(ctx context.Context, identity model.Identity, id uuid.UUID, params model.UpdateSacramentParams) (model.Sacrament, error) {
	ret := m.Called(ctx, identity, id, params)
	return value[model.Sacrament](ret, 0), ret.Error(1)
}

func (m *SacramentService) Delete(ctx context.Context, identity model.Identity, id uuid.UUID) error {
	return m.Called(ctx, identity, id).Error(0)
}

func (m *SacramentService) AdminDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *SacramentService) UploadCertificate(ctx context.Context, identity model.Identity, id uuid.UUID, reader io.Reader, size int64, contentType string) (model.Sacrament, error) {
	ret := m.Called(ctx, identity, id, reader, size, contentType)
	return value[model.Sacrament](ret, 0), ret.Error(1)
}

func (m *SacramentService) OpenCertificate(ctx context.Context, identity model.Identity, id uuid.UUID) (io.ReadCloser, error) {
	ret := m.Called(ctx, identity, id)
	return value[io.ReadCloser](ret, 0), ret.Error(1)
}

type DonationService struct{ mock.Mock }

func NewDonationService(t testingT) *DonationService {
	m := &DonationService{}
	register(&m.Mock, t)
	return m
}

func (m *DonationService) List(ctx context.Context) ([]model.Donation, error) {
	ret := m.Called(ctx)
	return value[[]model.Donation](ret, 0), ret.Error(1)
}

func (m *DonationService) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Donation, error) {
	ret := m.Called(ctx, userID)
	return value[[]model.Donation](ret, 0), ret.Error(1)
}

func (m *DonationService) CreateOwn(ctx context.Context, userID uuid.UUID, params model.DonationParams) (model.Donation, error) {
	ret := m.Called(ctx, userID, params)
	return value[model.Donation](ret, 0), ret.Error(1)
}

func (m *DonationService) CreateForMember(ctx context.Context, params model.DonationParams) (model.Donation, error) {
	ret := m.Called(ctx, params)
	return value[model.Donation](ret, 0), ret.Error(1)
}

func (m *DonationService) Update(ctx context.Context, id uuid.UUID, params model.DonationParams) (model.Donation, error) {
	ret := m.Called(ctx, id, params)
	return value[model.Donation](ret, 0), ret.Error(1)
}

func (m *DonationService) DeleteOwn(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *DonationService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type Pinger struct{ mock.Mock }

func NewPinger(t testingT) *Pinger {
	m := &Pinger{}
	register(&m.Mock, t)
	return m
}

func (m *Pinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
