package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/parishkeeper/parish-server/internal/logger"
	"github.com/parishkeeper/parish-server/internal/metrics"
	"github.com/parishkeeper/parish-server/internal/model"
)

// maxClaimCodeAttempts bounds retries on a claim code hash collision.
const maxClaimCodeAttempts = 3

// CodeGenerator produces a claim code and the digest it is stored under.
type CodeGenerator interface {
	Generate() (code string, hash string, err error)
}

type Member struct {
	memberStore model.MemberStore
	codes       CodeGenerator
	codeTTL     time.Duration
	metrics     *metrics.Metrics
	logger      *logger.Logger
	now         func() time.Time
}

func NewMember(
	memberStore model.MemberStore,
	codes CodeGenerator,
	codeTTL time.Duration,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Member {
	if codeTTL <= 0 {
		codeTTL = model.ClaimCodeTTL
	}
	return &Member{
		memberStore: memberStore,
		codes:       codes,
		codeTTL:     codeTTL,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// Create adds a roster entry with a fresh claim code. The plaintext code is
// only available in the returned IssuedClaimCode.
func (s *Member) Create(ctx context.Context, params model.MemberParams) (model.Member, model.IssuedClaimCode, error) {
	name := trimmed(params.Name)
	if name == "" {
		return model.Member{}, model.IssuedClaimCode{}, model.NewValidationError("name is required")
	}
	status, err := model.ParseMemberStatus(trimmed(params.Status))
	if err != nil {
		return model.Member{}, model.IssuedClaimCode{}, err
	}

	for attempt := 1; ; attempt++ {
		code, hash, err := s.codes.Generate()
		if err != nil {
			return model.Member{}, model.IssuedClaimCode{}, fmt.Errorf("failed to generate claim code: %w", err)
		}

		now := s.now()
		expiresAt := now.Add(s.codeTTL)
		member := model.Member{
			ID:                 uuid.New(),
			Name:               name,
			Contact:            trimmed(params.Contact),
			Address:            trimmed(params.Address),
			Family:             trimmed(params.Family),
			Status:             status,
			DistrictID:         params.DistrictID,
			ClaimCodeHash:      &hash,
			ClaimCodeExpiresAt: &expiresAt,
			CreatedAt:          now,
			UpdatedAt:          now,
		}

		saved, err := s.memberStore.Create(ctx, member)
		if errors.Is(err, model.ErrClaimCodeCollision) && attempt < maxClaimCodeAttempts {
			s.logger.Warn("Member service: claim code collision, retrying", "attempt", attempt)
			continue
		}
		if err != nil {
			return model.Member{}, model.IssuedClaimCode{}, err
		}

		s.metrics.ObserveClaimCodeIssued()
		s.logger.Info("Member service: member created", "member_id", saved.ID)
		return saved, model.IssuedClaimCode{Code: code, ExpiresAt: expiresAt}, nil
	}
}

// IssueClaimCode replaces the claim code of an unlinked member.
func (s *Member) IssueClaimCode(ctx context.Context, id uuid.UUID) (model.IssuedClaimCode, error) {
	for attempt := 1; ; attempt++ {
		code, hash, err := s.codes.Generate()
		if err != nil {
			return model.IssuedClaimCode{}, fmt.Errorf("failed to generate claim code: %w", err)
		}

		expiresAt := s.now().Add(s.codeTTL)
		_, err = s.memberStore.SetClaimCode(ctx, id, hash, expiresAt)
		if errors.Is(err, model.ErrClaimCodeCollision) && attempt < maxClaimCodeAttempts {
			s.logger.Warn("Member service: claim code collision, retrying", "attempt", attempt)
			continue
		}
		if err != nil {
			return model.IssuedClaimCode{}, err
		}

		s.metrics.ObserveClaimCodeIssued()
		s.logger.Info("Member service: claim code issued", "member_id", id)
		return model.IssuedClaimCode{Code: code, ExpiresAt: expiresAt}, nil
	}
}

func (s *Member) Get(ctx context.Context, id uuid.UUID) (model.Member, error) {
	return s.memberStore.GetByID(ctx, id)
}

func (s *Member) List(ctx context.Context, filter model.MemberFilter) ([]model.Member, error) {
	return s.memberStore.List(ctx, filter)
}

func (s *Member) Update(ctx context.Context, id uuid.UUID, params model.MemberParams) (model.Member, error) {
	member, err := s.memberStore.GetByID(ctx, id)
	if err != nil {
		return model.Member{}, err
	}

	if params.Name != nil {
		name := trimmed(params.Name)
		if name == "" {
			return model.Member{}, model.NewValidationError("name must not be empty")
		}
		member.Name = name
	}
	if params.Contact != nil {
		member.Contact = trimmed(params.Contact)
	}
	if params.Address != nil {
		member.Address = trimmed(params.Address)
	}
	if params.Family != nil {
		member.Family = trimmed(params.Family)
	}
	if params.Status != nil {
		status, err := model.ParseMemberStatus(*params.Status)
		if err != nil {
			return model.Member{}, err
		}
		member.Status = status
	}
	switch {
	case params.ClearDistrict:
		member.DistrictID = nil
	case params.DistrictID != nil:
		member.DistrictID = params.DistrictID
	}

	return s.memberStore.Update(ctx, member)
}

func (s *Member) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.memberStore.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Member service: member deleted", "member_id", id)
	return nil
}

// ClaimEvents returns the claim audit log of a member.
func (s *Member) ClaimEvents(ctx context.Context, id uuid.UUID) ([]model.ClaimEvent, error) {
	if _, err := s.memberStore.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.memberStore.ListClaimEvents(ctx, id)
}
