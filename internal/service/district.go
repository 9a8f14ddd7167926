package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/parishkeeper/parish-server/internal/model"
)

type District struct {
	districtStore model.DistrictStore
	memberStore   model.MemberStore
	now           func() time.Time
}

func NewDistrict(districtStore model.DistrictStore, memberStore model.MemberStore) *District {
	return &District{districtStore: districtStore, memberStore: memberStore, now: time.Now}
}

func (s *District) List(ctx context.Context) ([]model.District, error) {
	return s.districtStore.List(ctx)
}

// Get returns the district together with its members.
func (s *District) Get(ctx context.Context, id uuid.UUID) (model.DistrictDetail, error) {
	district, err := s.districtStore.GetByID(ctx, id)
	if err != nil {
		return model.DistrictDetail{}, err
	}

	members, err := s.memberStore.List(ctx, model.MemberFilter{DistrictID: &id})
	if err != nil {
		return model.DistrictDetail{}, err
	}

	return model.DistrictDetail{District: district, Members: members}, nil
}

func (s *District) Create(ctx context.Context, params model.DistrictParams) (model.District, error) {
	name := trimmed(params.Name)
	if name == "" {
		return model.District{}, model.NewValidationError("name is required")
	}

	return s.districtStore.Create(ctx, model.District{
		ID:          uuid.New(),
		Name:        name,
		LeaderName:  trimmed(params.LeaderName),
		Description: trimmed(params.Description),
		CreatedAt:   s.now(),
	})
}

func (s *District) Update(ctx context.Context, id uuid.UUID, params model.DistrictParams) (model.District, error) {
	district, err := s.districtStore.GetByID(ctx, id)
	if err != nil {
		return model.District{}, err
	}

	if params.Name != nil {
		name := trimmed(params.Name)
		if name == "" {
			return model.District{}, model.NewValidationError("name must not be empty")
		}
		district.Name = name
	}
	if params.LeaderName != nil {
		district.LeaderName = trimmed(params.LeaderName)
	}
	if params.Description != nil {
		district.Description = trimmed(params.Description)
	}

	return s.districtStore.Update(ctx, district)
}

func (s *District) Delete(ctx context.Context, id uuid.UUID) error {
	return s.districtStore.Delete(ctx, id)
}
