package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/parishkeeper/parish-server/internal/model"
)

type Announcement struct {
	announcementStore model.AnnouncementStore
	now               func() time.Time
}

func NewAnnouncement(announcementStore model.AnnouncementStore) *Announcement {
	return &Announcement{announcementStore: announcementStore, now: time.Now}
}

// List returns announcements newest first, hiding expired ones when
// activeOnly is set.
func (s *Announcement) List(ctx context.Context, activeOnly bool) ([]model.Announcement, error) {
	if !activeOnly {
		return s.announcementStore.List(ctx, nil)
	}
	now := s.now()
	return s.announcementStore.List(ctx, &now)
}

func (s *Announcement) Get(ctx context.Context, id uuid.UUID) (model.Announcement, error) {
	return s.announcementStore.GetByID(ctx, id)
}

func (s *Announcement) Create(ctx context.Context, params model.AnnouncementParams) (model.Announcement, error) {
	title := trimmed(params.Title)
	message := trimmed(params.Message)
	if title == "" || message == "" {
		return model.Announcement{}, model.NewValidationError("title and message are required")
	}
	category := trimmed(params.Category)
	if category == "" {
		category = model.DefaultAnnouncementCategory
	}

	now := s.now()
	return s.announcementStore.Create(ctx, model.Announcement{
		ID:          uuid.New(),
		Title:       title,
		Message:     message,
		Category:    category,
		PublishDate: now,
		ExpiryDate:  params.ExpiryDate,
		CreatedAt:   now,
	})
}

func (s *Announcement) Update(ctx context.Context, id uuid.UUID, params model.AnnouncementParams) (model.Announcement, error) {
	announcement, err := s.announcementStore.GetByID(ctx, id)
	if err != nil {
		return model.Announcement{}, err
	}

	if params.Title != nil {
		title := trimmed(params.Title)
		if title == "" {
			return model.Announcement{}, model.NewValidationError("title must not be empty")
		}
		announcement.Title = title
	}
	if params.Message != nil {
		message := trimmed(params.Message)
		if message == "" {
			return model.Announcement{}, model.NewValidationError("message must not be empty")
		}
		announcement.Message = message
	}
	if params.Category != nil {
		announcement.Category = trimmed(params.Category)
		if announcement.Category == "" {
			announcement.Category = model.DefaultAnnouncementCategory
		}
	}
	if params.ExpiryDate != nil {
		announcement.ExpiryDate = params.ExpiryDate
	}

	return s.announcementStore.Update(ctx, announcement)
}

func (s *Announcement) Delete(ctx context.Context, id uuid.UUID) error {
	return s.announcementStore.Delete(ctx, id)
}
