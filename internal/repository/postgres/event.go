package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/parishkeeper/parish-server/internal/model"
)

var _ model.EventStore = (*EventRepository)(nil)

const eventColumns = `id, name, description, date, created_at`

type EventRepository struct {
	db *Connection
}

func NewEventRepository(db *Connection) *EventRepository {
	return &EventRepository{
		db: db,
	}
}

func scanEvent(row scanner) (model.Event, error) {
	var e model.Event
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.Date, &e.CreatedAt)
	return e, err
}

func (r *EventRepository) Create(ctx context.Context, event model.Event) (model.Event, error) {
	query := `INSERT INTO events (id, name, description, date, created_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING ` + eventColumns

	e, err := scanEvent(r.db.QueryRow(ctx, query,
		event.ID, event.Name, event.Description, event.Date, event.CreatedAt))
	if err != nil {
		return model.Event{}, fmt.Errorf("failed to create event: %w", err)
	}
	return e, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Event, error) {
	e, err := scanEvent(r.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Event{}, model.NewNotFoundError("event")
		}
		return model.Event{}, fmt.Errorf("failed to get event by id: %w", err)
	}
	return e, nil
}

func (r *EventRepository) List(ctx context.Context) ([]model.Event, error) {
	rows, err := r.db.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, event model.Event) (model.Event, error) {
	query := `UPDATE events SET name = $2, description = $3, date = $4 WHERE id = $1 RETURNING ` + eventColumns

	e, err := scanEvent(r.db.QueryRow(ctx, query, event.ID, event.Name, event.Description, event.Date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Event{}, model.NewNotFoundError("event")
		}
		return model.Event{}, fmt.Errorf("failed to update event: %w", err)
	}
	return e, nil
}

func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "events", "event", id)
}
