package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DistrictStore defines persistence operations for districts.
type DistrictStore interface {
	Create(ctx context.Context, district District) (District, error)
	GetByID(ctx context.Context, id uuid.UUID) (District, error)
	List(ctx context.Context) ([]District, error)
	Update(ctx context.Context, district District) (District, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// District is a geographic grouping of members (small Christian community).
type District struct {
	ID          uuid.UUID
	Name        string
	LeaderName  string
	Description string
	MemberCount int
	CreatedAt   time.Time
}

// DistrictDetail is a district with its members.
type DistrictDetail struct {
	District District
	Members  []Member
}

// DistrictParams holds create and partial update input.
type DistrictParams struct {
	Name        *string
	LeaderName  *string
	Description *string
}
