package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/parishkeeper/parish-server/internal/model"
)

var _ model.SacramentStore = (*SacramentRepository)(nil)

const sacramentSelect = `SELECT s.id, s.member_id, m.name, m.user_id, s.type, s.date, s.certificate_path,
	s.created_at, s.updated_at
	FROM sacraments s JOIN members m ON m.id = s.member_id`

type SacramentRepository struct {
	db *Connection
}

func NewSacramentRepository(db *Connection) *SacramentRepository {
	return &SacramentRepository{
		db: db,
	}
}

func scanSacrament(row scanner) (model.Sacrament, error) {
	var s model.Sacrament
	err := row.Scan(
		&s.ID, &s.MemberID, &s.MemberName, &s.MemberUserID, &s.Type, &s.Date, &s.CertificatePath,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func (r *SacramentRepository) list(ctx context.Context, query string, args ...any) ([]model.Sacrament, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sacraments: %w", err)
	}
	defer rows.Close()

	sacraments := make([]model.Sacrament, 0)
	for rows.Next() {
		s, err := scanSacrament(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sacrament: %w", err)
		}
		sacraments = append(sacraments, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sacraments: %w", err)
	}
	return sacraments, nil
}

func (r *SacramentRepository) Create(ctx context.Context, sacrament model.Sacrament) (model.Sacrament, error) {
	query := `INSERT INTO sacraments (id, member_id, type, date, certificate_path, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		sacrament.ID, sacrament.MemberID, sacrament.Type, sacrament.Date, sacrament.CertificatePath,
		sacrament.CreatedAt, sacrament.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.Sacrament{}, model.NewReferenceError("member")
		}
		return model.Sacrament{}, fmt.Errorf("failed to create sacrament: %w", err)
	}

	return r.GetByID(ctx, sacrament.ID)
}

func (r *SacramentRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Sacrament, error) {
	s, err := scanSacrament(r.db.QueryRow(ctx, sacramentSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Sacrament{}, model.NewNotFoundError("sacrament")
		}
		return model.Sacrament{}, fmt.Errorf("failed to get sacrament by id: %w", err)
	}
	return s, nil
}

func (r *SacramentRepository) List(ctx context.Context) ([]model.Sacrament, error) {
	return r.list(ctx, sacramentSelect+` ORDER BY s.date DESC NULLS LAST, s.created_at DESC`)
}

func (r *SacramentRepository) ListByMember(ctx context.Context, memberID uuid.UUID) ([]model.Sacrament, error) {
	return r.list(ctx, sacramentSelect+` WHERE s.member_id = $1 ORDER BY s.date DESC NULLS LAST, s.created_at DESC`, memberID)
}

func (r *SacramentRepository) Update(ctx context.Context, sacrament model.Sacrament) (model.Sacrament, error) {
	query := `UPDATE sacraments SET type = $2, date = $3, certificate_path = $4, updated_at = NOW() WHERE id = $1`

	res, err := r.db.Exec(ctx, query, sacrament.ID, sacrament.Type, sacrament.Date, sacrament.CertificatePath)
	if err != nil {
		return model.Sacrament{}, fmt.Errorf("failed to update sacrament: %w", err)
	}
	if res.RowsAffected() == 0 {
		return model.Sacrament{}, model.NewNotFoundError("sacrament")
	}

	return r.GetByID(ctx, sacrament.ID)
}

func (r *SacramentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "sacraments", "sacrament", id)
}
