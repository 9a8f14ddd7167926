package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/parishkeeper/parish-server/internal/logger"
	"github.com/parishkeeper/parish-server/internal/model"
)

type Donation struct {
	donationStore model.DonationStore
	memberStore   model.MemberStore
	logger        *logger.Logger
	now           func() time.Time
}

func NewDonation(donationStore model.DonationStore, memberStore model.MemberStore, logger *logger.Logger) *Donation {
	return &Donation{
		donationStore: donationStore,
		memberStore:   memberStore,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *Donation) List(ctx context.Context) ([]model.Donation, error) {
	return s.donationStore.List(ctx)
}

func (s *Donation) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Donation, error) {
	member, err := s.memberStore.GetByUserID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return []model.Donation{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member by user id: %w", err)
	}
	return s.donationStore.ListByMember(ctx, member.ID)
}

// maxAmount is the first value that no longer fits NUMERIC(12,2).
const maxAmount = 1e10

func validAmount(amount *float64) error {
	if amount == nil {
		return model.NewValidationError("amount is required")
	}
	a := *amount
	if math.IsNaN(a) || math.Round(a*100) <= 0 {
		return model.NewValidationError("amount must be at least 0.01")
	}
	if a >= maxAmount {
		return model.NewValidationError("amount must be less than 10000000000")
	}
	return nil
}

func (s *Donation) build(memberID uuid.UUID, params model.DonationParams) (model.Donation, error) {
	if err := validAmount(params.Amount); err != nil {
		return model.Donation{}, err
	}
	donationType, err := model.ParseDonationType(trimmed(params.Type))
	if err != nil {
		return model.Donation{}, err
	}

	now := s.now()
	date := params.Date
	if date == nil {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		date = &today
	}

	return model.Donation{
		ID:        uuid.New(),
		MemberID:  memberID,
		Amount:    *params.Amount,
		Type:      donationType,
		Date:      date,
		CreatedAt: now,
	}, nil
}

// CreateOwn records a gift from the caller's own member profile.
func (s *Donation) CreateOwn(ctx context.Context, userID uuid.UUID, params model.DonationParams) (model.Donation, error) {
	member, err := s.memberStore.GetByUserID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Donation{}, model.ErrNoMemberProfile
	}
	if err != nil {
		return model.Donation{}, fmt.Errorf("failed to get member by user id: %w", err)
	}

	donation, err := s.build(member.ID, params)
	if err != nil {
		return model.Donation{}, err
	}
	return s.donationStore.Create(ctx, donation)
}

// CreateForMember records a gift for the member named in params.
func (s *Donation) CreateForMember(ctx context.Context, params model.DonationParams) (model.Donation, error) {
	if params.MemberID == nil {
		return model.Donation{}, model.NewValidationError("member_id is required")
	}

	donation, err := s.build(*params.MemberID, params)
	if err != nil {
		return model.Donation{}, err
	}

	saved, err := s.donationStore.Create(ctx, donation)
	if err != nil {
		return model.Donation{}, err
	}

	s.logger.Info("Donation service: donation recorded",
		"donation_id", saved.ID,
		"member_id", saved.MemberID)
	return saved, nil
}

func (s *Donation) Update(ctx context.Context, id uuid.UUID, params model.DonationParams) (model.Donation, error) {
	donation, err := s.donationStore.GetByID(ctx, id)
	if err != nil {
		return model.Donation{}, err
	}

	if params.MemberID != nil {
		donation.MemberID = *params.MemberID
	}
	if params.Amount != nil {
		if err := validAmount(params.Amount); err != nil {
			return model.Donation{}, err
		}
		donation.Amount = *params.Amount
	}
	if params.Type != nil {
		donationType, err := model.ParseDonationType(*params.Type)
		if err != nil {
			return model.Donation{}, err
		}
		donation.Type = donationType
	}
	if params.Date != nil {
		donation.Date = params.Date
	}

	return s.donationStore.Update(ctx, donation)
}

// DeleteOwn removes a gift made by the caller. Gifts of other members are
// reported as not found.
func (s *Donation) DeleteOwn(ctx context.Context, userID, id uuid.UUID) error {
	donation, err := s.donationStore.GetByID(ctx, id)
	if err != nil {
		return err
	}

	member, err := s.memberStore.GetByUserID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) || (err == nil && member.ID != donation.MemberID) {
		return model.NewNotFoundError("donation")
	}
	if err != nil {
		return fmt.Errorf("failed to get member by user id: %w", err)
	}

	return s.donationStore.Delete(ctx, id)
}

func (s *Donation) Delete(ctx context.Context, id uuid.UUID) error {
	return s.donationStore.Delete(ctx, id)
}
