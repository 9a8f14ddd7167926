package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/parishkeeper/parish-server/internal/model"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNumericOutOfRange   = "22003"

	constraintUsersEmail      = "users_email_key"
	constraintMembersUserID   = "members_user_id_key"
	constraintMembersClaimKey = "members_claim_code_hash_key"
)

// querier is satisfied by the pool and by pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// DB is the part of *pgxpool.Pool the repositories depend on.
type DB interface {
	querier
	txBeginner
	Ping(ctx context.Context) error
	Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// isUniqueViolation reports whether err is a unique violation, optionally on
// a specific constraint.
func isUniqueViolation(err error, constraint string) bool {
	pgErr, ok := pgError(err)
	if !ok || pgErr.Code != codeUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

func isForeignKeyViolation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == codeForeignKeyViolation
}

// isRangeViolation reports whether err is a CHECK failure or a numeric value
// that does not fit its column.
func isRangeViolation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && (pgErr.Code == codeCheckViolation || pgErr.Code == codeNumericOutOfRange)
}

// withTx runs fn in a transaction at the server default isolation (read
// committed), committing on success and rolling back on any error.
func withTx(ctx context.Context, db txBeginner, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// deleteByID removes one row from table and reports entity as not found when
// nothing matched.
func deleteByID(ctx context.Context, q querier, table, entity string, id any) error {
	res, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", entity, err)
	}
	if res.RowsAffected() == 0 {
		return model.NewNotFoundError(entity)
	}
	return nil
}
