package model

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ClaimCodeTTL is the default validity window of a freshly issued claim code.
const ClaimCodeTTL = 30 * 24 * time.Hour

// MemberStore defines persistence operations for parish members.
type MemberStore interface {
	Create(ctx context.Context, member Member) (Member, error)
	GetByID(ctx context.Context, id uuid.UUID) (Member, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (Member, error)
	List(ctx context.Context, filter MemberFilter) ([]Member, error)
	Update(ctx context.Context, member Member) (Member, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetClaimCode(ctx context.Context, id uuid.UUID, codeHash string, expiresAt time.Time) (Member, error)
	ListClaimEvents(ctx context.Context, memberID uuid.UUID) ([]ClaimEvent, error)
}

// MemberStatus is the roll status of a member.
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "active"
	MemberStatusInactive MemberStatus = "inactive"
)

// ParseMemberStatus validates s, defaulting to active when empty.
func ParseMemberStatus(s string) (MemberStatus, error) {
	switch st := MemberStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return MemberStatusActive, nil
	case MemberStatusActive, MemberStatusInactive:
		return st, nil
	}
	return "", NewValidationError("invalid status %q: must be active or inactive", s)
}

// MemberFilter narrows List results. Zero values mean no filtering.
type MemberFilter struct {
	DistrictID *uuid.UUID
	Status     MemberStatus
}

// Member is a parish-roll record, independent of any login account.
type Member struct {
	ID                 uuid.UUID
	Name               string
	Contact            string
	Address            string
	Family             string
	Status             MemberStatus
	DistrictID         *uuid.UUID
	UserID             *uuid.UUID
	ClaimCodeHash      *string
	ClaimCodeExpiresAt *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ClaimState is the claim sub-state of a member.
type ClaimState string

const (
	ClaimStateUnclaimed ClaimState = "unclaimed"
	ClaimStateExpired   ClaimState = "expired"
	ClaimStateClaimed   ClaimState = "claimed"
	ClaimStateNoCode    ClaimState = "no_code"
)

// ClaimState derives the claim sub-state at now.
func (m Member) ClaimState(now time.Time) ClaimState {
	switch {
	case m.UserID != nil:
		return ClaimStateClaimed
	case m.ClaimCodeHash == nil:
		return ClaimStateNoCode
	case m.ClaimCodeExpiresAt != nil && m.ClaimCodeExpiresAt.Before(now):
		return ClaimStateExpired
	default:
		return ClaimStateUnclaimed
	}
}

// CheckClaimable returns nil when the member can be linked to a user at now.
// The linked check runs before the expiry check.
func (m Member) CheckClaimable(now time.Time) error {
	switch m.ClaimState(now) {
	case ClaimStateClaimed:
		return ErrAlreadyLinked
	case ClaimStateExpired:
		return ErrClaimCodeExpired
	case ClaimStateNoCode:
		return ErrInvalidClaimCode
	}
	return nil
}

// Claimed reports whether a user owns the member record.
func (m Member) Claimed() bool {
	return m.UserID != nil
}

// OwnedBy reports whether the member is linked to userID.
func (m Member) OwnedBy(userID uuid.UUID) bool {
	return m.UserID != nil && *m.UserID == userID
}

// MemberParams holds create and partial update input; nil fields are
// defaulted on create and unchanged on update. ClearDistrict removes the
// district assignment on update and wins over DistrictID.
type MemberParams struct {
	Name          *string
	Contact       *string
	Address       *string
	Family        *string
	Status        *string
	DistrictID    *uuid.UUID
	ClearDistrict bool
}
