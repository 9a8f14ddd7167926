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

var _ model.AnnouncementStore = (*AnnouncementRepository)(nil)

const announcementColumns = `id, title, message, category, publish_date, expiry_date, created_at`

type AnnouncementRepository struct {
	db *Connection
}

func NewAnnouncementRepository(db *Connection) *AnnouncementRepository {
	return &AnnouncementRepository{
		db: db,
	}
}

func scanAnnouncement(row scanner) (model.Announcement, error) {
	var a model.Announcement
	err := row.Scan(&a.ID, &a.Title, &a.Message, &a.Category, &a.PublishDate, &a.ExpiryDate, &a.CreatedAt)
	return a, err
}

func (r *AnnouncementRepository) Create(ctx context.Context, announcement model.Announcement) (model.Announcement, error) {
	query := `INSERT INTO announcements (id, title, message, category, publish_date, expiry_date, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + announcementColumns

	a, err := scanAnnouncement(r.db.QueryRow(ctx, query,
		announcement.ID, announcement.Title, announcement.Message, announcement.Category,
		announcement.PublishDate, announcement.ExpiryDate, announcement.CreatedAt,
	))
	if err != nil {
		return model.Announcement{}, fmt.Errorf("failed to create announcement: %w", err)
	}
	return a, nil
}

func (r *AnnouncementRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Announcement, error) {
	a, err := scanAnnouncement(r.db.QueryRow(ctx,
		`SELECT `+announcementColumns+` FROM announcements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Announcement{}, model.NewNotFoundError("announcement")
		}
		return model.Announcement{}, fmt.Errorf("failed to get announcement by id: %w", err)
	}
	return a, nil
}

// List returns announcements newest first. With activeAt set, announcements
// whose expiry date lies before that day are left out.
func (r *AnnouncementRepository) List(ctx context.Context, activeAt *time.Time) ([]model.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements`
	var args []any
	if activeAt != nil {
		query += ` WHERE expiry_date IS NULL OR expiry_date >= $1::date`
		args = append(args, *activeAt)
	}
	query += ` ORDER BY publish_date DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	defer rows.Close()

	announcements := make([]model.Announcement, 0)
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan announcement: %w", err)
		}
		announcements = append(announcements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate announcements: %w", err)
	}
	return announcements, nil
}

func (r *AnnouncementRepository) Update(ctx context.Context, announcement model.Announcement) (model.Announcement, error) {
	query := `UPDATE announcements SET title = $2, message = $3, category = $4, expiry_date = $5
			  WHERE id = $1 RETURNING ` + announcementColumns

	a, err := scanAnnouncement(r.db.QueryRow(ctx, query,
		announcement.ID, announcement.Title, announcement.Message, announcement.Category, announcement.ExpiryDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Announcement{}, model.NewNotFoundError("announcement")
		}
		return model.Announcement{}, fmt.Errorf("failed to update announcement: %w", err)
	}
	return a, nil
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "announcements", "announcement", id)
}
