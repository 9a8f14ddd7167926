package model

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DonationStore defines persistence operations for donations.
type DonationStore interface {
	Create(ctx context.Context, donation Donation) (Donation, error)
	GetByID(ctx context.Context, id uuid.UUID) (Donation, error)
	List(ctx context.Context) ([]Donation, error)
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]Donation, error)
	Update(ctx context.Context, donation Donation) (Donation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DonationType classifies a gift.
type DonationType string

const (
	DonationTithe    DonationType = "tithe"
	DonationOffering DonationType = "offering"
	DonationPledge   DonationType = "pledge"
)

// ParseDonationType validates s, defaulting to tithe when empty.
func ParseDonationType(s string) (DonationType, error) {
	switch dt := DonationType(strings.ToLower(strings.TrimSpace(s))); dt {
	case "":
		return DonationTithe, nil
	case DonationTithe, DonationOffering, DonationPledge:
		return dt, nil
	}
	return "", NewValidationError("invalid donation type %q: must be tithe, offering or pledge", s)
}

// Donation is a gift recorded against a member.
type Donation struct {
	ID         uuid.UUID
	MemberID   uuid.UUID
	MemberName string
	Amount     float64
	Type       DonationType
	Date       *time.Time
	CreatedAt  time.Time
}

// DonationParams holds create and partial update input; nil fields are
// defaulted on create and unchanged on update.
type DonationParams struct {
	MemberID *uuid.UUID
	Amount   *float64
	Type     *string
	Date     *time.Time
}
