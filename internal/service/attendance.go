package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/parishkeeper/parish-server/internal/model"
)

type Attendance struct {
	attendanceStore model.AttendanceStore
	now             func() time.Time
}

func NewAttendance(attendanceStore model.AttendanceStore) *Attendance {
	return &Attendance{attendanceStore: attendanceStore, now: time.Now}
}

func (s *Attendance) List(ctx context.Context) ([]model.Attendance, error) {
	return s.attendanceStore.List(ctx)
}

func (s *Attendance) Get(ctx context.Context, id uuid.UUID) (model.Attendance, error) {
	return s.attendanceStore.GetByID(ctx, id)
}

// Create records presence. Unknown events or members surface as reference
// errors from the store.
func (s *Attendance) Create(ctx context.Context, params model.AttendanceParams) (model.Attendance, error) {
	if params.EventID == nil || params.MemberID == nil {
		return model.Attendance{}, model.NewValidationError("event_id and member_id are required")
	}
	status, err := model.ParseAttendanceStatus(trimmed(params.Status))
	if err != nil {
		return model.Attendance{}, err
	}

	return s.attendanceStore.Create(ctx, model.Attendance{
		ID:        uuid.New(),
		EventID:   *params.EventID,
		MemberID:  *params.MemberID,
		Status:    status,
		CreatedAt: s.now(),
	})
}

func (s *Attendance) Update(ctx context.Context, id uuid.UUID, params model.AttendanceParams) (model.Attendance, error) {
	attendance, err := s.attendanceStore.GetByID(ctx, id)
	if err != nil {
		return model.Attendance{}, err
	}

	if params.EventID != nil {
		attendance.EventID = *params.EventID
	}
	if params.MemberID != nil {
		attendance.MemberID = *params.MemberID
	}
	if params.Status != nil {
		status, err := model.ParseAttendanceStatus(*params.Status)
		if err != nil {
			return model.Attendance{}, err
		}
		attendance.Status = status
	}

	return s.attendanceStore.Update(ctx, attendance)
}

func (s *Attendance) Delete(ctx context.Context, id uuid.UUID) error {
	return s.attendanceStore.Delete(ctx, id)
}
