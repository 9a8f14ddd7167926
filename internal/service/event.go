package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/parishkeeper/parish-server/internal/model"
)

type Event struct {
	eventStore model.EventStore
	now        func() time.Time
}

func NewEvent(eventStore model.EventStore) *Event {
	return &Event{eventStore: eventStore, now: time.Now}
}

func (s *Event) List(ctx context.Context) ([]model.Event, error) {
	return s.eventStore.List(ctx)
}

func (s *Event) Get(ctx context.Context, id uuid.UUID) (model.Event, error) {
	return s.eventStore.GetByID(ctx, id)
}

func (s *Event) Create(ctx context.Context, params model.EventParams) (model.Event, error) {
	name := trimmed(params.Name)
	if name == "" {
		return model.Event{}, model.NewValidationError("name is required")
	}
	if params.Date == nil {
		return model.Event{}, model.NewValidationError("date is required")
	}

	return s.eventStore.Create(ctx, model.Event{
		ID:          uuid.New(),
		Name:        name,
		Description: trimmed(params.Description),
		Date:        *params.Date,
		CreatedAt:   s.now(),
	})
}

func (s *Event) Update(ctx context.Context, id uuid.UUID, params model.EventParams) (model.Event, error) {
	event, err := s.eventStore.GetByID(ctx, id)
	if err != nil {
		return model.Event{}, err
	}

	if params.Name != nil {
		name := trimmed(params.Name)
		if name == "" {
			return model.Event{}, model.NewValidationError("name must not be empty")
		}
		event.Name = name
	}
	if params.Description != nil {
		event.Description = trimmed(params.Description)
	}
	if params.Date != nil {
		event.Date = *params.Date
	}

	return s.eventStore.Update(ctx, event)
}

func (s *Event) Delete(ctx context.Context, id uuid.UUID) error {
	return s.eventStore.Delete(ctx, id)
}
