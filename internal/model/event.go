package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventStore defines persistence operations for parish events.
type EventStore interface {
	Create(ctx context.Context, event Event) (Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (Event, error)
	List(ctx context.Context) ([]Event, error)
	Update(ctx context.Context, event Event) (Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Event is a mass or other parish gathering.
type Event struct {
	ID          uuid.UUID
	Name        string
	Description string
	Date        time.Time
	CreatedAt   time.Time
}

// EventParams holds create and partial update input.
type EventParams struct {
	Name        *string
	Description *string
	Date        *time.Time
}
