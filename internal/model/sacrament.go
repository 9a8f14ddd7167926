package model

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SacramentStore defines persistence operations for sacrament records.
type SacramentStore interface {
	Create(ctx context.Context, sacrament Sacrament) (Sacrament, error)
	GetByID(ctx context.Context, id uuid.UUID) (Sacrament, error)
	List(ctx context.Context) ([]Sacrament, error)
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]Sacrament, error)
	Update(ctx context.Context, sacrament Sacrament) (Sacrament, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Sacrament is a dated record of a rite administered to a member.
type Sacrament struct {
	ID              uuid.UUID
	MemberID        uuid.UUID
	MemberName      string
	MemberUserID    *uuid.UUID
	Type            string
	Date            *time.Time
	CertificatePath string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

var canonicalSacraments = []string{
	"Baptism",
	"Confirmation",
	"Eucharist",
	"Reconciliation",
	"Anointing of the Sick",
	"Holy Orders",
	"Marriage",
}

// NormalizeSacramentType trims t and maps known rites to canonical casing.
// Unknown non-empty values are kept as given.
func NormalizeSacramentType(t string) (string, error) {
	t = strings.TrimSpace(t)
	if t == "" {
		return "", NewValidationError("sacrament type is required")
	}
	for _, c := range canonicalSacraments {
		if strings.EqualFold(c, t) {
			return c, nil
		}
	}
	return t, nil
}

// UpdateSacramentParams holds a partial update; nil fields are unchanged.
type UpdateSacramentParams struct {
	Type            *string
	Date            *time.Time
	CertificatePath *string
}

// CreateSacramentParams holds the fields accepted on creation.
type CreateSacramentParams struct {
	Type            string
	Date            *time.Time
	CertificatePath string
}

// AdminSacramentParams records a sacrament on behalf of a member, addressed
// either by the member's own id or by the id of the linked user.
type AdminSacramentParams struct {
	UserID   *uuid.UUID
	MemberID *uuid.UUID
	CreateSacramentParams
}
