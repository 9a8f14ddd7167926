package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AnnouncementStore defines persistence operations for announcements.
type AnnouncementStore interface {
	Create(ctx context.Context, announcement Announcement) (Announcement, error)
	GetByID(ctx context.Context, id uuid.UUID) (Announcement, error)
	List(ctx context.Context, activeAt *time.Time) ([]Announcement, error)
	Update(ctx context.Context, announcement Announcement) (Announcement, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DefaultAnnouncementCategory is used when no category is supplied.
const DefaultAnnouncementCategory = "general"

// Announcement is a notice published to the parish.
type Announcement struct {
	ID          uuid.UUID
	Title       string
	Message     string
	Category    string
	PublishDate time.Time
	ExpiryDate  *time.Time
	CreatedAt   time.Time
}

// AnnouncementParams holds create and partial update input.
type AnnouncementParams struct {
	Title      *string
	Message    *string
	Category   *string
	ExpiryDate *time.Time
}
