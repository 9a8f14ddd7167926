package model

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AttendanceStore defines persistence operations for attendance records.
type AttendanceStore interface {
	Create(ctx context.Context, attendance Attendance) (Attendance, error)
	GetByID(ctx context.Context, id uuid.UUID) (Attendance, error)
	List(ctx context.Context) ([]Attendance, error)
	Update(ctx context.Context, attendance Attendance) (Attendance, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AttendanceStatus records presence at an event.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// ParseAttendanceStatus validates s, defaulting to present when empty.
func ParseAttendanceStatus(s string) (AttendanceStatus, error) {
	switch st := AttendanceStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return AttendancePresent, nil
	case AttendancePresent, AttendanceAbsent:
		return st, nil
	}
	return "", NewValidationError("invalid attendance status %q: must be present or absent", s)
}

// Attendance links a member to an event.
type Attendance struct {
	ID         uuid.UUID
	EventID    uuid.UUID
	EventName  string
	MemberID   uuid.UUID
	MemberName string
	Status     AttendanceStatus
	CreatedAt  time.Time
}

// AttendanceParams holds create and partial update input.
type AttendanceParams struct {
	EventID  *uuid.UUID
	MemberID *uuid.UUID
	Status   *string
}
