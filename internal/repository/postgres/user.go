package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/parishkeeper/parish-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, name, email, password_hash, role, created_at, updated_at`

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func scanUser(row scanner) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.NewNotFoundError("user")
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.NewNotFoundError("user")
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at, email`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	return insertUser(ctx, r.db, user)
}

func insertUser(ctx context.Context, q querier, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + userColumns

	saved, err := scanUser(q.QueryRow(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, string(user.Role),
		user.CreatedAt, user.UpdatedAt,
	))
	if err != nil {
		if isUniqueViolation(err, constraintUsersEmail) {
			return model.User{}, model.ErrDuplicateEmail
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return saved, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) (model.User, error) {
	query := `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1 RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query, id, string(role)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.NewNotFoundError("user")
		}
		return model.User{}, fmt.Errorf("failed to update user role: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "users", "user", id)
}
