package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/parishkeeper/parish-server/internal/logger"
	"github.com/parishkeeper/parish-server/internal/model"
)

type AnnouncementService interface {
	List(ctx context.Context, activeOnly bool) ([]model.Announcement, error)
	Get(ctx context.Context, id uuid.UUID) (model.Announcement, error)
	Create(ctx context.Context, params model.AnnouncementParams) (model.Announcement, error)
	Update(ctx context.Context, id uuid.UUID, params model.AnnouncementParams) (model.Announcement, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Announcement struct {
	announcementService AnnouncementService
	logger              *logger.Logger
}

func NewAnnouncement(announcementService AnnouncementService, logger *logger.Logger) *Announcement {
	return &Announcement{announcementService: announcementService, logger: logger}
}

type announcementRequest struct {
	Title      *string `json:"title"`
	Message    *string `json:"message"`
	Category   *string `json:"category"`
	ExpiryDate *Date   `json:"expiry_date"`
}

func (req announcementRequest) params() model.AnnouncementParams {
	return model.AnnouncementParams{
		Title:      req.Title,
		Message:    req.Message,
		Category:   req.Category,
		ExpiryDate: req.ExpiryDate.value(),
	}
}

// List returns announcements newest first. ?active=true hides expired ones.
func (h *Announcement) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := false
	if v := r.URL.Query().Get("active"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			WriteError(w, model.NewValidationError("invalid active flag %q", v), h.logger)
			return
		}
		activeOnly = parsed
	}

	announcements, err := h.announcementService.List(r.Context(), activeOnly)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(announcements, newAnnouncementResponse))
}

func (h *Announcement) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "announcement")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	announcement, err := h.announcementService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, newAnnouncementResponse(announcement))
}

func (h *Announcement) Create(w http.ResponseWriter, r *http.Request) {
	var req announcementRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err, h.logger)
		return
	}

	announcement, err := h.announcementService.Create(r.Context(), req.params())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, newAnnouncementResponse(announcement))
}

func (h *Announcement) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "announcement")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	var req announcementRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err, h.logger)
		return
	}

	announcement, err := h.announcementService.Update(r.Context(), id, req.params())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, newAnnouncementResponse(announcement))
}

func (h *Announcement) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "announcement")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	if err := h.announcementService.Delete(r.Context(), id); err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Announcement deleted"})
}
