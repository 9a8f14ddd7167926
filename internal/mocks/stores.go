package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/parishkeeper/parish-server/internal/model"
)

type UserStore struct{ mock.Mock }

func NewUserStore(t testingT) *UserStore {
	m := &UserStore{}
	register(&m.Mock, t)
	return m
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	ret := m.Called(ctx, email)
	return value[model.User](ret, 0), ret.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	ret := m.Called(ctx, id)
	return value[model.User](ret, 0), ret.Error(1)
}

func (m *UserStore) List(ctx context.Context) ([]model.User, error) {
	ret := m.Called(ctx)
	return value[[]model.User](ret, 0), ret.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	ret := m.Called(ctx, user)
	return value[model.User](ret, 0), ret.Error(1)
}

func (m *UserStore) UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) (model.User, error) {
	ret := m.Called(ctx, id, role)
	return value[model.User](ret, 0), ret.Error(1)
}

func (m *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MemberStore struct{ mock.Mock }

func NewMemberStore(t testingT) *MemberStore {
	m := &MemberStore{}
	register(&m.Mock, t)
	return m
}

func (m *MemberStore) Create(ctx context.Context, member model.Member) (model.Member, error) {
	ret := m.Called(ctx, member)
	return value[model.Member](ret, 0), ret.Error(1)
}

func (m *MemberStore) GetByID(ctx context.Context, id uuid.UUID) (model.Member, error) {
	ret := m.Called(ctx, id)
	return value[model.Member](ret, 0), ret.Error(1)
}

func (m *MemberStore) GetByUserID(ctx context.Context, userID uuid.UUID) (model.Member, error) {
	ret := m.Called(ctx, userID)
	return value[model.Member](ret, 0), ret.Error(1)
}

func (m *MemberStore) List(ctx context.Context, filter model.MemberFilter) ([]model.Member, error) {
	ret := m.Called(ctx, filter)
	return value[[]model.Member](ret, 0), ret.Error(1)
}

func (m *MemberStore) Update(ctx context.Context, member model.Member) (model.Member, error) {
	ret := m.Called(ctx, member)
	return value[model.Member](ret, 0), ret.Error(1)
}

func (m *MemberStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MemberStore) SetClaimCode(ctx context.Context, id uuid.UUID, codeHash string, expiresAt time.Time) (model.Member, error) {
	ret := m.Called(ctx, id, codeHash, expiresAt)
	return value[model.Member](ret, 0), ret.Error(1)
}

func (m *MemberStore) ListClaimEvents(ctx context.Context, memberID uuid.UUID) ([]model.ClaimEvent, error) {
	ret := m.Called(ctx, memberID)
	return value[[]model.ClaimEvent](ret, 0), ret.Error(1)
}

type RegistrationStore struct{ mock.Mock }

func NewRegistrationStore(t testingT) *RegistrationStore {
	m := &RegistrationStore{}
	register(&m.Mock, t)
	return m
}

func (m *RegistrationStore) RegisterWithClaim(ctx context.Context, user model.User, codeHash string, now time.Time) (model.User, model.Member, error) {
	ret := m.Called(ctx, user, codeHash, now)
	return value[model.User](ret, 0), value[model.Member](ret, 1), ret.Error(2)
}

func (m *RegistrationStore) RegisterSelfService(ctx context.Context, user model.User, member model.Member) (model.User, model.Member, error) {
	ret := m.Called(ctx, user, member)
	return value[model.User](ret, 0), value[model.Member](ret, 1), ret.Error(2)
}

func (m *RegistrationStore) LinkUser(ctx context.Context, userID uuid.UUID, codeHash string, now time.Time) (model.Member, error) {
	ret := m.Called(ctx, userID, codeHash, now)
	return value[model.Member](ret, 0), ret.Error(1)
}

type SacramentStore struct{ mock.Mock }

func NewSacramentStore(t testingT) *SacramentStore {
	m := &SacramentStore{}
	register(&m.Mock, t)
	return m
}

func (m *SacramentStore) Create(ctx context.Context, sacrament model.Sacrament) (model.Sacrament, error) {
	ret := m.Called(ctx, sacrament)
	return value[model.Sacrament](ret, 0), ret.Error(1)
}

func (m *SacramentStore) GetByID(ctx context.Context, id uuid.UUID) (model.Sacrament, error) {
	ret := m.Called(ctx, id)
	return value[model.Sacrament](ret, 0), ret.Error(1)
}

func (m *SacramentStore) List(ctx context.Context) ([]model.Sacrament, error) {
	ret := m.Called(ctx)
	return value[[]model.Sacrament](ret, 0), ret.Error(1)
}

func (m *SacramentStore) ListByMember(ctx context.Context, memberID uuid.UUID) ([]model.Sacrament, error) {
	ret := m.Called(ctx, memberID)
	return value[[]model.Sacrament](ret, 0), ret.Error(1)
}

func (m *SacramentStore) Update(ctx context.Context, sacrament model.Sacrament) (model.Sacrament, error) {
	ret := m.Called(ctx, sacrament)
	return value[model.Sacrament](ret, 0), ret.Error(1)
}

func (m *SacramentStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type DonationStore struct{ mock.Mock }

func NewDonationStore(t testingT) *DonationStore {
	m := &DonationStore{}
	register(&m.Mock, t)
	return m
}

func (m *DonationStore) Create(ctx context.Context, donation model.Donation) (model.Donation, error) {
	ret := m.Called(ctx, donation)
	return value[model.Donation](ret, 0), ret.Error(1)
}

func (m *DonationStore) GetByID(ctx context.Context, id uuid.UUID) (model.Donation, error) {
	ret := m.Called(ctx, id)
	return value[model.Donation](ret, 0), ret.Error(1)
}

func (m *DonationStore) List(ctx context.Context) ([]model.Donation, error) {
	ret := m.Called(ctx)
	return value[[]model.Donation](ret, 0), ret.Error(1)
}

func (m *DonationStore) ListByMember(ctx context.Context, memberID uuid.UUID) ([]model.Donation, error) {
	ret := m.Called(ctx, memberID)
	return value[[]model.Donation](ret, 0), ret.Error(1)
}

func (m *DonationStore) Update(ctx context.Context, donation model.Donation) (model.Donation, error) {
	ret := m.Called(ctx, donation)
	return value[model.Donation](ret, 0), ret.Error(1)
}

func (m *DonationStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type EventStore struct{ mock.Mock }

func NewEventStore(t testingT) *EventStore {
	m := &EventStore{}
	register(&m.Mock, t)
	return m
}

func (m *EventStore) Create(ctx context.Context, event model.Event) (model.Event, error) {
	ret := m.Called(ctx, event)
	return value[model.Event](ret, 0), ret.Error(1)
}

func (m *EventStore) GetByID(ctx context.Context, id uuid.UUID) (model.Event, error) {
	ret := m.Called(ctx, id)
	return value[model.Event](ret, 0), ret.Error(1)
}

func (m *EventStore) List(ctx context.Context) ([]model.Event, error) {
	ret := m.Called(ctx)
	return value[[]model.Event](ret, 0), ret.Error(1)
}

func (m *EventStore) Update(ctx context.Context, event model.Event) (model.Event, error) {
	ret := m.Called(ctx, event)
	return value[model.Event](ret, 0), ret.Error(1)
}

func (m *EventStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type AttendanceStore struct{ mock.Mock }

func NewAttendanceStore(t testingT) *AttendanceStore {
	m := &AttendanceStore{}
	register(&m.Mock, t)
	return m
}

func (m *AttendanceStore) Create(ctx context.Context, attendance model.Attendance) (model.Attendance, error) {
	ret := m.Called(ctx, attendance)
	return value[model.Attendance](ret, 0), ret.Error(1)
}

func (m *AttendanceStore) GetByID(ctx context.Context, id uuid.UUID) (model.Attendance, error) {
	ret := m.Called(ctx, id)
	return value[model.Attendance](ret, 0), ret.Error(1)
}

func (m *AttendanceStore) List(ctx context.Context) ([]model.Attendance, error) {
	ret := m.Called(ctx)
	return value[[]model.Attendance](ret, 0), ret.Error(1)
}

func (m *AttendanceStore) Update(ctx context.Context, attendance model.Attendance) (model.Attendance, error) {
	ret := m.Called(ctx, attendance)
	return value[model.Attendance](ret, 0), ret.Error(1)
}

func (m *AttendanceStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type DistrictStore struct{ mock.Mock }

func NewDistrictStore(t testingT) *DistrictStore {
	m := &DistrictStore{}
	register(&m.Mock, t)
	return m
}

func (m *DistrictStore) Create(ctx context.Context, district model.District) (model.District, error) {
	ret := m.Called(ctx, district)
	return value[model.District](ret, 0), ret.Error(1)
}

func (m *DistrictStore) GetByID(ctx context.Context, id uuid.UUID) (model.District, error) {
	ret := m.Called(ctx, id)
	return value[model.District](ret, 0), ret.Error(1)
}

func (m *DistrictStore) List(ctx context.Context) ([]model.District, error) {
	ret := m.Called(ctx)
	return value[[]model.District](ret, 0), ret.Error(1)
}

func (m *DistrictStore) Update(ctx context.Context, district model.District) (model.District, error) {
	ret := m.Called(ctx, district)
	return value[model.District](ret, 0), ret.Error(1)
}

func (m *DistrictStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type AnnouncementStore struct{ mock.Mock }

func NewAnnouncementStore(t testingT) *AnnouncementStore {
	m := &AnnouncementStore{}
	register(&m.Mock, t)
	return m
}

func (m *AnnouncementStore) Create(ctx context.Context, announcement model.Announcement) (model.Announcement, error) {
	ret := m.Called(ctx, announcement)
	return value[model.Announcement](ret, 0), ret.Error(1)
}

func (m *AnnouncementStore) GetByID(ctx context.Context, id uuid.UUID) (model.Announcement, error) {
	ret := m.Called(ctx, id)
	return value[model.Announcement](ret, 0), ret.Error(1)
}

func (m *AnnouncementStore) List(ctx context.Context, activeAt *time.Time) ([]model.Announcement, error) {
	ret := m.Called(ctx, activeAt)
	return value[[]model.Announcement](ret, 0), ret.Error(1)
}

func (m *AnnouncementStore) Update(ctx context.Context, announcement model.Announcement) (model.Announcement, error) {
	ret := m.Called(ctx, announcement)
	return value[model.Announcement](ret, 0), ret.Error(1)
}

func (m *AnnouncementStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

var (
	_ model.UserStore         = (*UserStore)(nil)
	_ model.MemberStore       = (*MemberStore)(nil)
	_ model.RegistrationStore = (*RegistrationStore)(nil)
	_ model.SacramentStore    = (*SacramentStore)(nil)
	_ model.DonationStore     = (*DonationStore)(nil)
	_ model.EventStore        = (*EventStore)(nil)
	_ model.AttendanceStore   = (*AttendanceStore)(nil)
	_ model.DistrictStore     = (*DistrictStore)(nil)
	_ model.AnnouncementStore = (*AnnouncementStore)(nil)
)
