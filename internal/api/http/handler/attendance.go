package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/parishkeeper/parish-server/internal/logger"
	"github.com/parishkeeper/parish-server/internal/model"
)

type AttendanceService interface {
	List(ctx context.Context) ([]model.Attendance, error)
	Get(ctx context.Context, id uuid.UUID) (model.Attendance, error)
	Create(ctx context.Context, params model.AttendanceParams) (model.Attendance, error)
	Update(ctx context.Context, id uuid.UUID, params model.AttendanceParams) (model.Attendance, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Attendance struct {
	attendanceService AttendanceService
	logger            *logger.Logger
}

func NewAttendance(attendanceService AttendanceService, logger *logger.Logger) *Attendance {
	return &Attendance{attendanceService: attendanceService, logger: logger}
}

type attendanceRequest struct {
	EventID  *uuid.UUID `json:"event_id"`
	MemberID *uuid.UUID `json:"member_id"`
	Status   *string    `json:"status"`
}

func (req attendanceRequest) params() model.AttendanceParams {
	return model.AttendanceParams{EventID: req.EventID, MemberID: req.MemberID, Status: req.Status}
}

func (h *Attendance) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendanceService.List(r.Context())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(records, newAttendanceResponse))
}

func (h *Attendance) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "attendance")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	record, err := h.attendanceService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, newAttendanceResponse(record))
}

func (h *Attendance) Create(w http.ResponseWriter, r *http.Request) {
	var req attendanceRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err, h.logger)
		return
	}

	record, err := h.attendanceService.Create(r.Context(), req.params())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, newAttendanceResponse(record))
}

func (h *Attendance) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "attendance")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	var req attendanceRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err, h.logger)
		return
	}

	record, err := h.attendanceService.Update(r.Context(), id, req.params())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, newAttendanceResponse(record))
}

func (h *Attendance) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "attendance")
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	if err := h.attendanceService.Delete(r.Context(), id); err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Attendance deleted"})
}
