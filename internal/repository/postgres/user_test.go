package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parishkeeper/parish-server/internal/model"
)

func TestNewUserRepository(t *testing.T) {
	db := &Connection{}
	repo := NewUserRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewUserRepository(conn)
	u := sampleUser()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE lower(email) = lower($1)")).
		WithArgs(u.Email).
		WillReturnRows(userRow(u))

	got, err := repo.GetByEmail(context.Background(), u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, model.RoleMember, got.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewUserRepository(conn)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Equal(t, "user not found", err.Error())
}

func TestUserRepository_Create(t *testing.T) {
	u := sampleUser()

	t.Run("success", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(u.ID, u.Name, u.Email, u.PasswordHash, "member", u.CreatedAt, u.UpdatedAt).
			WillReturnRows(userRow(u))

		got, err := NewUserRepository(conn).Create(context.Background(), u)
		require.NoError(t, err)
		assert.Equal(t, u.Email, got.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(anyArgs(7)...).
			WillReturnError(&pgconn.PgError{Code: codeUniqueViolation, ConstraintName: constraintUsersEmail})

		_, err := NewUserRepository(conn).Create(context.Background(), u)
		assert.ErrorIs(t, err, model.ErrDuplicateEmail)
	})

	t.Run("other error", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		mock.ExpectQuery("INSERT INTO users").WithArgs(anyArgs(7)...).WillReturnError(errors.New("boom"))

		_, err := NewUserRepository(conn).Create(context.Background(), u)
		require.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrDuplicateEmail)
	})
}

func TestUserRepository_List_Empty(t *testing.T) {
	conn, mock := newMockConnection(t)
	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY").WillReturnRows(pgxmock.NewRows(userCols))

	users, err := NewUserRepository(conn).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserRepository_UpdateRole(t *testing.T) {
	conn, mock := newMockConnection(t)
	u := sampleUser()
	u.Role = model.RoleStaff

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET role = $2")).
		WithArgs(u.ID, "staff").
		WillReturnRows(userRow(u))

	got, err := NewUserRepository(conn).UpdateRole(context.Background(), u.ID, model.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, model.RoleStaff, got.Role)
}

func TestUserRepository_Delete(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewUserRepository(conn)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, repo.Delete(context.Background(), id))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), id), model.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnection_Ping(t *testing.T) {
	conn, mock := newMockConnection(t)
	mock.ExpectPing()
	assert.NoError(t, conn.Ping(context.Background()))

	assert.Error(t, (&Connection{}).Ping(context.Background()))
}
