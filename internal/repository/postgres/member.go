package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/parishkeeper/parish-server/internal/model"
)

var _ model.MemberStore = (*MemberRepository)(nil)

const memberColumns = `id, name, contact, address, family, status, district_id, user_id,
	claim_code_hash, claim_code_expires_at, created_at, updated_at`

type MemberRepository struct {
	db *Connection
}

func NewMemberRepository(db *Connection) *MemberRepository {
	return &MemberRepository{
		db: db,
	}
}

func scanMember(row scanner) (model.Member, error) {
	var m model.Member
	err := row.Scan(
		&m.ID, &m.Name, &m.Contact, &m.Address, &m.Family, &m.Status,
		&m.DistrictID, &m.UserID, &m.ClaimCodeHash, &m.ClaimCodeExpiresAt,
		&m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

func collectMembers(rows pgx.Rows) ([]model.Member, error) {
	defer rows.Close()

	members := make([]model.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

// Create inserts the member and, when it carries a claim code, an issued
// event in the same transaction.
func (r *MemberRepository) Create(ctx context.Context, member model.Member) (model.Member, error) {
	var saved model.Member
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `INSERT INTO members (id, name, contact, address, family, status, district_id, user_id,
				  claim_code_hash, claim_code_expires_at, created_at, updated_at)
				  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
				  RETURNING ` + memberColumns

		var err error
		saved, err = scanMember(tx.QueryRow(ctx, query,
			member.ID, member.Name, member.Contact, member.Address, member.Family, string(member.Status),
			member.DistrictID, member.UserID, member.ClaimCodeHash, member.ClaimCodeExpiresAt,
			member.CreatedAt, member.UpdatedAt,
		))
		if err != nil {
			return memberWriteError(err, "create")
		}

		if saved.ClaimCodeHash != nil {
			return insertClaimEvent(ctx, tx, saved.ID, nil, model.ClaimEventIssued, saved.CreatedAt)
		}
		return nil
	})
	if err != nil {
		return model.Member{}, err
	}

	return saved, nil
}

func memberWriteError(err error, op string) error {
	switch {
	case isUniqueViolation(err, constraintMembersClaimKey):
		return model.ErrClaimCodeCollision
	case isUniqueViolation(err, constraintMembersUserID):
		return model.ErrAlreadyLinked
	case isForeignKeyViolation(err):
		return model.NewReferenceError("district")
	}
	return fmt.Errorf("failed to %s member: %w", op, err)
}

func (r *MemberRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`

	m, err := scanMember(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Member{}, model.NewNotFoundError("member")
		}
		return model.Member{}, fmt.Errorf("failed to get member by id: %w", err)
	}

	return m, nil
}

func (r *MemberRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (model.Member, error) {
	return getMemberByUserID(ctx, r.db, userID)
}

func getMemberByUserID(ctx context.Context, q querier, userID uuid.UUID) (model.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE user_id = $1`

	m, err := scanMember(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Member{}, model.NewNotFoundError("member")
		}
		return model.Member{}, fmt.Errorf("failed to get member by user id: %w", err)
	}

	return m, nil
}

func (r *MemberRepository) List(ctx context.Context, filter model.MemberFilter) ([]model.Member, error) {
	var (
		conds []string
		args  []any
	)
	if filter.DistrictID != nil {
		args = append(args, *filter.DistrictID)
		conds = append(conds, fmt.Sprintf("district_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + memberColumns + ` FROM members`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY name, created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	return collectMembers(rows)
}

// Update rewrites the roster fields. Link and claim columns are owned by the
// claim workflow and are left untouched.
func (r *MemberRepository) Update(ctx context.Context, member model.Member) (model.Member, error) {
	query := `UPDATE members
			  SET name = $2, contact = $3, address = $4, family = $5, status = $6, district_id = $7, updated_at = NOW()
			  WHERE id = $1
			  RETURNING ` + memberColumns

	m, err := scanMember(r.db.QueryRow(ctx, query,
		member.ID, member.Name, member.Contact, member.Address, member.Family,
		string(member.Status), member.DistrictID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Member{}, model.NewNotFoundError("member")
		}
		return model.Member{}, memberWriteError(err, "update")
	}

	return m, nil
}

func (r *MemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "members", "member", id)
}

// SetClaimCode replaces the claim code of an unlinked member and records an
// issued event.
func (r *MemberRepository) SetClaimCode(ctx context.Context, id uuid.UUID, codeHash string, expiresAt time.Time) (model.Member, error) {
	var saved model.Member
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		current, err := scanMember(tx.QueryRow(ctx,
			`SELECT `+memberColumns+` FROM members WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.NewNotFoundError("member")
			}
			return fmt.Errorf("failed to lock member: %w", err)
		}
		if current.Claimed() {
			return model.ErrAlreadyLinked
		}

		query := `UPDATE members
				  SET claim_code_hash = $2, claim_code_expires_at = $3, updated_at = NOW()
				  WHERE id = $1 AND user_id IS NULL
				  RETURNING ` + memberColumns
		saved, err = scanMember(tx.QueryRow(ctx, query, id, codeHash, expiresAt))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrAlreadyLinked
			}
			return memberWriteError(err, "update claim code of")
		}

		return insertClaimEvent(ctx, tx, id, nil, model.ClaimEventIssued, saved.UpdatedAt)
	})
	if err != nil {
		return model.Member{}, err
	}

	return saved, nil
}

func (r *MemberRepository) ListClaimEvents(ctx context.Context, memberID uuid.UUID) ([]model.ClaimEvent, error) {
	query := `SELECT id, member_id, user_id, kind, occurred_at
			  FROM claim_events WHERE member_id = $1 ORDER BY occurred_at, id`

	rows, err := r.db.Query(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list claim events: %w", err)
	}
	defer rows.Close()

	events := make([]model.ClaimEvent, 0)
	for rows.Next() {
		var e model.ClaimEvent
		if err := rows.Scan(&e.ID, &e.MemberID, &e.UserID, &e.Kind, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan claim event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate claim events: %w", err)
	}

	return events, nil
}

func insertClaimEvent(ctx context.Context, q querier, memberID uuid.UUID, userID *uuid.UUID, kind model.ClaimEventKind, at time.Time) error {
	query := `INSERT INTO claim_events (id, member_id, user_id, kind, occurred_at) VALUES ($1, $2, $3, $4, $5)`

	if _, err := q.Exec(ctx, query, uuid.New(), memberID, userID, string(kind), at); err != nil {
		return fmt.Errorf("failed to append claim event: %w", err)
	}
	return nil
}
