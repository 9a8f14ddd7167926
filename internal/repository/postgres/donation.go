package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/parishkeeper/parish-server/internal/model"
)

var _ model.DonationStore = (*DonationRepository)(nil)

const donationSelect = `SELECT d.id, d.member_id, m.name, d.amount, d.type, d.date, d.created_at
	FROM donations d JOIN members m ON m.id = d.member_id`

type DonationRepository struct {
	db *Connection
}

func NewDonationRepository(db *Connection) *DonationRepository {
	return &DonationRepository{
		db: db,
	}
}

func scanDonation(row scanner) (model.Donation, error) {
	var d model.Donation
	err := row.Scan(&d.ID, &d.MemberID, &d.MemberName, &d.Amount, &d.Type, &d.Date, &d.CreatedAt)
	return d, err
}

func (r *DonationRepository) list(ctx context.Context, query string, args ...any) ([]model.Donation, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	defer rows.Close()

	donations := make([]model.Donation, 0)
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan donation: %w", err)
		}
		donations = append(donations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate donations: %w", err)
	}
	return donations, nil
}

func (r *DonationRepository) Create(ctx context.Context, donation model.Donation) (model.Donation, error) {
	query := `INSERT INTO donations (id, member_id, amount, type, date, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		donation.ID, donation.MemberID, donation.Amount, string(donation.Type), donation.Date, donation.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.Donation{}, model.NewReferenceError("member")
		}
		if isRangeViolation(err) {
			return model.Donation{}, model.NewValidationError("amount is out of range")
		}
		return model.Donation{}, fmt.Errorf("failed to create donation: %w", err)
	}

	return r.GetByID(ctx, donation.ID)
}

func (r *DonationRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Donation, error) {
	d, err := scanDonation(r.db.QueryRow(ctx, donationSelect+` WHERE d.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Donation{}, model.NewNotFoundError("donation")
		}
		return model.Donation{}, fmt.Errorf("failed to get donation by id: %w", err)
	}
	return d, nil
}

func (r *DonationRepository) List(ctx context.Context) ([]model.Donation, error) {
	return r.list(ctx, donationSelect+` ORDER BY d.date DESC NULLS LAST, d.created_at DESC`)
}

func (r *DonationRepository) ListByMember(ctx context.Context, memberID uuid.UUID) ([]model.Donation, error) {
	return r.list(ctx, donationSelect+` WHERE d.member_id = $1 ORDER BY d.date DESC NULLS LAST, d.created_at DESC`, memberID)
}

func (r *DonationRepository) Update(ctx context.Context, donation model.Donation) (model.Donation, error) {
	query := `UPDATE donations SET member_id = $2, amount = $3, type = $4, date = $5 WHERE id = $1`

	res, err := r.db.Exec(ctx, query,
		donation.ID, donation.MemberID, donation.Amount, string(donation.Type), donation.Date,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.Donation{}, model.NewReferenceError("member")
		}
		if isRangeViolation(err) {
			return model.Donation{}, model.NewValidationError("amount is out of range")
		}
		return model.Donation{}, fmt.Errorf("failed to update donation: %w", err)
	}
	if res.RowsAffected() == 0 {
		return model.Donation{}, model.NewNotFoundError("donation")
	}

	return r.GetByID(ctx, donation.ID)
}

func (r *DonationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "donations", "donation", id)
}
