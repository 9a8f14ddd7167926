package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/parishkeeper/parish-server/internal/model"
)

var (
	memberCols = []string{"id", "name", "contact", "address", "family", "status", "district_id", "user_id",
		"claim_code_hash", "claim_code_expires_at", "created_at", "updated_at"}
	userCols = []string{"id", "name", "email", "password_hash", "role", "created_at", "updated_at"}
)

// newMockConnection returns a Connection backed by pgxmock. Values added to
// mock rows must have the exact Go type of the field they are scanned into.
func newMockConnection(t *testing.T) (*Connection, pgxmock.PgxPoolIface) {
	t.Helper()
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return &Connection{DB: pool}, pool
}

// anyArgs matches n arguments of any value; pgxmock always compares the
// argument count.
func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func memberRow(m model.Member) *pgxmock.Rows {
	return pgxmock.NewRows(memberCols).AddRow(
		m.ID, m.Name, m.Contact, m.Address, m.Family, m.Status,
		m.DistrictID, m.UserID, m.ClaimCodeHash, m.ClaimCodeExpiresAt, m.CreatedAt, m.UpdatedAt,
	)
}

func userRow(u model.User) *pgxmock.Rows {
	return pgxmock.NewRows(userCols).AddRow(
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.CreatedAt, u.UpdatedAt,
	)
}

func sampleUser() model.User {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return model.User{
		ID:           uuid.New(),
		Name:         "Maria",
		Email:        "maria@example.com",
		PasswordHash: "$2a$04$digest",
		Role:         model.RoleMember,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func unclaimedMember(hash string, expires time.Time) model.Member {
	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	return model.Member{
		ID:                 uuid.New(),
		Name:               "Maria Santos",
		Contact:            "555-0100",
		Status:             model.MemberStatusActive,
		ClaimCodeHash:      &hash,
		ClaimCodeExpiresAt: &expires,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
