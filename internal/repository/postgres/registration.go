package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/parishkeeper/parish-server/internal/model"
)

var _ model.RegistrationStore = (*RegistrationRepository)(nil)

// RegistrationRepository runs the account workflows that touch users and
// members together.
type RegistrationRepository struct {
	db *Connection
}

func NewRegistrationRepository(db *Connection) *RegistrationRepository {
	return &RegistrationRepository{
		db: db,
	}
}

func lockMemberByCode(ctx context.Context, tx pgx.Tx, codeHash string) (model.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE claim_code_hash = $1 FOR UPDATE`

	m, err := scanMember(tx.QueryRow(ctx, query, codeHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Member{}, model.ErrInvalidClaimCode
		}
		return model.Member{}, fmt.Errorf("failed to lock member by claim code: %w", err)
	}
	return m, nil
}

// linkMember sets user_id and clears the claim fields, but only while the
// member is still unlinked.
func linkMember(ctx context.Context, tx pgx.Tx, memberID, userID uuid.UUID, now time.Time) error {
	query := `UPDATE members
			  SET user_id = $1, claim_code_hash = NULL, claim_code_expires_at = NULL, updated_at = $3
			  WHERE id = $2 AND user_id IS NULL`

	res, err := tx.Exec(ctx, query, userID, memberID, now)
	if err != nil {
		if isUniqueViolation(err, constraintMembersUserID) {
			return model.ErrProfileAlreadyLinked
		}
		return fmt.Errorf("failed to link member: %w", err)
	}
	if res.RowsAffected() == 0 {
		return model.ErrAlreadyLinked
	}
	return nil
}

func claimedMember(m model.Member, userID uuid.UUID, now time.Time) model.Member {
	m.UserID = &userID
	m.ClaimCodeHash = nil
	m.ClaimCodeExpiresAt = nil
	m.UpdatedAt = now
	return m
}

func (r *RegistrationRepository) RegisterWithClaim(ctx context.Context, user model.User, codeHash string, now time.Time) (model.User, model.Member, error) {
	var (
		savedUser   model.User
		savedMember model.Member
	)
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		member, err := lockMemberByCode(ctx, tx, codeHash)
		if err != nil {
			return err
		}
		if err := member.CheckClaimable(now); err != nil {
			return err
		}

		savedUser, err = insertUser(ctx, tx, user)
		if err != nil {
			return err
		}

		if err := linkMember(ctx, tx, member.ID, savedUser.ID, now); err != nil {
			return err
		}

		if err := insertClaimEvent(ctx, tx, member.ID, &savedUser.ID, model.ClaimEventClaimed, now); err != nil {
			return err
		}

		savedMember = claimedMember(member, savedUser.ID, now)
		return nil
	})
	if err != nil {
		return model.User{}, model.Member{}, err
	}

	return savedUser, savedMember, nil
}

func (r *RegistrationRepository) RegisterSelfService(ctx context.Context, user model.User, member model.Member) (model.User, model.Member, error) {
	var (
		savedUser   model.User
		savedMember model.Member
	)
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		savedUser, err = insertUser(ctx, tx, user)
		if err != nil {
			return err
		}

		query := `INSERT INTO members (id, name, contact, address, family, status, user_id, created_at, updated_at)
				  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				  RETURNING ` + memberColumns
		savedMember, err = scanMember(tx.QueryRow(ctx, query,
			member.ID, member.Name, member.Contact, member.Address, member.Family, string(member.Status),
			savedUser.ID, member.CreatedAt, member.UpdatedAt,
		))
		if err != nil {
			return memberWriteError(err, "create")
		}
		return nil
	})
	if err != nil {
		return model.User{}, model.Member{}, err
	}

	return savedUser, savedMember, nil
}

func (r *RegistrationRepository) LinkUser(ctx context.Context, userID uuid.UUID, codeHash string, now time.Time) (model.Member, error) {
	var saved model.Member
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := getMemberByUserID(ctx, tx, userID)
		switch {
		case err == nil:
			return model.ErrProfileAlreadyLinked
		case !errors.Is(err, model.ErrNotFound):
			return err
		}

		member, err := lockMemberByCode(ctx, tx, codeHash)
		if err != nil {
			return err
		}
		if err := member.CheckClaimable(now); err != nil {
			return err
		}

		if err := linkMember(ctx, tx, member.ID, userID, now); err != nil {
			return err
		}

		if err := insertClaimEvent(ctx, tx, member.ID, &userID, model.ClaimEventClaimed, now); err != nil {
			return err
		}

		saved = claimedMember(member, userID, now)
		return nil
	})
	if err != nil {
		return model.Member{}, err
	}

	return saved, nil
}
