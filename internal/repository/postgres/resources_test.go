package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parishkeeper/parish-server/internal/model"
)

func TestSacramentRepository_ListByMember(t *testing.T) {
	conn, mock := newMockConnection(t)
	memberID := uuid.New()
	userID := uuid.New()
	date := time.Date(2020, 5, 17, 0, 0, 0, 0, time.UTC)
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE s.member_id = $1")).
		WithArgs(memberID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "member_id", "name", "user_id", "type", "date", "certificate_path", "created_at", "updated_at"}).
			AddRow(uuid.New(), memberID, "Maria", &userID, "Baptism", &date, "", at, at).
			AddRow(uuid.New(), memberID, "Maria", &userID, "Confirmation", nil, "", at, at))

	got, err := NewSacramentRepository(conn).ListByMember(context.Background(), memberID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Maria", got[0].MemberName)
	require.NotNil(t, got[0].Date)
	assert.True(t, date.Equal(*got[0].Date))
	assert.Nil(t, got[1].Date)
	require.NotNil(t, got[1].MemberUserID)
	assert.Equal(t, userID, *got[1].MemberUserID)
}

func TestSacramentRepository_Create_UnknownMember(t *testing.T) {
	conn, mock := newMockConnection(t)

	mock.ExpectExec("INSERT INTO sacraments").
		WithArgs(anyArgs(7)...).
		WillReturnError(&pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: "sacraments_member_id_fkey"})

	_, err := NewSacramentRepository(conn).Create(context.Background(), model.Sacrament{ID: uuid.New(), MemberID: uuid.New(), Type: "Baptism"})
	assert.ErrorIs(t, err, model.ErrReferenceNotFound)
}

func TestSacramentRepository_Update_NotFound(t *testing.T) {
	conn, mock := newMockConnection(t)

	mock.ExpectExec("UPDATE sacraments").WithArgs(anyArgs(4)...).WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	_, err := NewSacramentRepository(conn).Update(context.Background(), model.Sacrament{ID: uuid.New(), Type: "Baptism"})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDonationRepository_GetByID(t *testing.T) {
	conn, mock := newMockConnection(t)
	id := uuid.New()
	memberID := uuid.New()
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE d.id = $1")).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "member_id", "name", "amount", "type", "date", "created_at"}).
			AddRow(id, memberID, "Maria", 25.50, model.DonationOffering, &at, at))

	got, err := NewDonationRepository(conn).GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.InDelta(t, 25.50, got.Amount, 0.001)
	assert.Equal(t, model.DonationOffering, got.Type)
	assert.Equal(t, memberID, got.MemberID)
}

func TestDonationRepository_Create_AmountOutOfRange(t *testing.T) {
	for _, code := range []string{codeCheckViolation, codeNumericOutOfRange} {
		t.Run(code, func(t *testing.T) {
			conn, mock := newMockConnection(t)
			mock.ExpectExec("INSERT INTO donations").
				WithArgs(anyArgs(6)...).
				WillReturnError(&pgconn.PgError{Code: code})

			_, err := NewDonationRepository(conn).Create(context.Background(), model.Donation{ID: uuid.New(), Amount: 1e15})
			require.ErrorIs(t, err, model.ErrValidation)
			assert.Equal(t, "amount is out of range", err.Error())
		})
	}
}

func TestDonationRepository_Delete_NotFound(t *testing.T) {
	conn, mock := newMockConnection(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM donations WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := NewDonationRepository(conn).Delete(context.Background(), id)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Equal(t, "donation not found", err.Error())
}

func TestAttendanceRepository_Create_ReferenceErrors(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		want       string
	}{
		{name: "event", constraint: "attendance_event_id_fkey", want: "event not found"},
		{name: "member", constraint: "attendance_member_id_fkey", want: "member not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMockConnection(t)
			mock.ExpectExec("INSERT INTO attendance").
				WithArgs(anyArgs(5)...).
				WillReturnError(&pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: tt.constraint})

			_, err := NewAttendanceRepository(conn).Create(context.Background(), model.Attendance{ID: uuid.New()})
			require.ErrorIs(t, err, model.ErrReferenceNotFound)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestDistrictRepository_List_MemberCount(t *testing.T) {
	conn, mock := newMockConnection(t)
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM districts d ORDER BY d.name").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "leader_name", "description", "count", "created_at"}).
			AddRow(uuid.New(), "St. Jude", "Ana", "", 3, at))

	got, err := NewDistrictRepository(conn).List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].MemberCount)
}

func TestAnnouncementRepository_List(t *testing.T) {
	cols := []string{"id", "title", "message", "category", "publish_date", "expiry_date", "created_at"}
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("all", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM announcements ORDER BY publish_date DESC")).
			WillReturnRows(pgxmock.NewRows(cols).AddRow(uuid.New(), "Mass", "Sunday", "general", at, nil, at))

		got, err := NewAnnouncementRepository(conn).List(context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Nil(t, got[0].ExpiryDate)
	})

	t.Run("active only", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE expiry_date IS NULL OR expiry_date >= $1::date")).
			WithArgs(at).
			WillReturnRows(pgxmock.NewRows(cols))

		got, err := NewAnnouncementRepository(conn).List(context.Background(), &at)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_Update_NotFound(t *testing.T) {
	conn, mock := newMockConnection(t)
	mock.ExpectQuery("UPDATE events").WithArgs(anyArgs(4)...).WillReturnError(pgx.ErrNoRows)

	_, err := NewEventRepository(conn).Update(context.Background(), model.Event{ID: uuid.New(), Name: "Mass", Date: time.Now()})
	assert.ErrorIs(t, err, model.ErrNotFound)
}
