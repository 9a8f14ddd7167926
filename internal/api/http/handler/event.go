package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/parishkeeper/parish-server/internal/logger"
	"github.com/parishkeeper/parish-server/internal/model"
)

type EventService interface {
	List(ctx context.Context) ([]model.Event, error)
	Get(ctx context.Context, id uuid.UUID) (model.Event, error)
	Create(ctx context.Context, params model.EventParams) (model.Event, error)
	Update(ctx context.Context, id uuid.UUID, params model.EventParams) (model.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Event struct {
	eventService EventService
	logger       *logger.Logger
}

func NewEvent(eventService EventService, logger *logger.Logger) *Event {
	return &Event{eventService: eventService, logger: logger}
}

type eventRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Date        *Date   `json:"date"`
}

func (req eventRequest) params() model.EventParams {
	return model.EventParams{Name: req.Name, Description: req.Description, Date: req.Date.value()}
}

func (h *Event) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.List(r.Context())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(events, newEventResponse))
}

func (h *Event) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "event")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	event, err := h.eventService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, newEventResponse(event))
}

func (h *Event) Create(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err, h.logger)
		return
	}

	event, err := h.eventService.Create(r.Context(), req.params())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, newEventResponse(event))
}

func (h *Event) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "event")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err, h.logger)
		return
	}

	event, err := h.eventService.Update(r.Context(), id, req.params())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, newEventResponse(event))
}

func (h *Event) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "event")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	if err := h.eventService.Delete(r.Context(), id); err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Event deleted"})
}
