package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/parishkeeper/parish-server/internal/model"
)

var _ model.DistrictStore = (*DistrictRepository)(nil)

const districtSelect = `SELECT d.id, d.name, d.leader_name, d.description,
	(SELECT COUNT(*) FROM members m WHERE m.district_id = d.id), d.created_at
	FROM districts d`

type DistrictRepository struct {
	db *Connection
}

func NewDistrictRepository(db *Connection) *DistrictRepository {
	return &DistrictRepository{
		db: db,
	}
}

func scanDistrict(row scanner) (model.District, error) {
	var d model.District
	err := row.Scan(&d.ID, &d.Name, &d.LeaderName, &d.Description, &d.MemberCount, &d.CreatedAt)
	return d, err
}

func (r *DistrictRepository) Create(ctx context.Context, district model.District) (model.District, error) {
	query := `INSERT INTO districts (id, name, leader_name, description, created_at) VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.db.Exec(ctx, query,
		district.ID, district.Name, district.LeaderName, district.Description, district.CreatedAt); err != nil {
		return model.District{}, fmt.Errorf("failed to create district: %w", err)
	}

	return r.GetByID(ctx, district.ID)
}

func (r *DistrictRepository) GetByID(ctx context.Context, id uuid.UUID) (model.District, error) {
	d, err := scanDistrict(r.db.QueryRow(ctx, districtSelect+` WHERE d.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.District{}, model.NewNotFoundError("district")
		}
		return model.District{}, fmt.Errorf("failed to get district by id: %w", err)
	}
	return d, nil
}

func (r *DistrictRepository) List(ctx context.Context) ([]model.District, error) {
	rows, err := r.db.Query(ctx, districtSelect+` ORDER BY d.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list districts: %w", err)
	}
	defer rows.Close()

	districts := make([]model.District, 0)
	for rows.Next() {
		d, err := scanDistrict(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan district: %w", err)
		}
		districts = append(districts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate districts: %w", err)
	}
	return districts, nil
}

func (r *DistrictRepository) Update(ctx context.Context, district model.District) (model.District, error) {
	query := `UPDATE districts SET name = $2, leader_name = $3, description = $4 WHERE id = $1`

	res, err := r.db.Exec(ctx, query, district.ID, district.Name, district.LeaderName, district.Description)
	if err != nil {
		return model.District{}, fmt.Errorf("failed to update district: %w", err)
	}
	if res.RowsAffected() == 0 {
		return model.District{}, model.NewNotFoundError("district")
	}

	return r.GetByID(ctx, district.ID)
}

func (r *DistrictRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "districts", "district", id)
}
