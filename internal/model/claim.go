package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RegistrationStore runs the multi-row account workflows atomically.
type RegistrationStore interface {
	// RegisterWithClaim creates user and links it to the member holding
	// codeHash. Nothing is persisted unless every step succeeds.
	RegisterWithClaim(ctx context.Context, user User, codeHash string, now time.Time) (User, Member, error)
	// RegisterSelfService creates user and an already linked member.
	RegisterSelfService(ctx context.Context, user User, member Member) (User, Member, error)
	// LinkUser links an existing user without a profile to the member holding codeHash.
	LinkUser(ctx context.Context, userID uuid.UUID, codeHash string, now time.Time) (Member, error)
}

// ClaimEventKind names an entry of the claim audit log.
type ClaimEventKind string

const (
	ClaimEventIssued  ClaimEventKind = "issued"
	ClaimEventClaimed ClaimEventKind = "claimed"
)

// ClaimEvent is an append-only audit entry for a member's claim code.
type ClaimEvent struct {
	ID         uuid.UUID
	MemberID   uuid.UUID
	UserID     *uuid.UUID
	Kind       ClaimEventKind
	OccurredAt time.Time
}

// IssuedClaimCode is returned once when a code is generated. Code is never
// persisted in plaintext.
type IssuedClaimCode struct {
	Code      string
	ExpiresAt time.Time
}

// RegisterParams is the self-registration input. With ClaimCode empty the
// account gets a fresh member profile.
type RegisterParams struct {
	Name      string
	Email     string
	Password  string
	ClaimCode string
	Contact   string
}

// Registration is the outcome of a successful registration.
type Registration struct {
	User   User
	Member Member
}
