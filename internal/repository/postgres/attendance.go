package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/parishkeeper/parish-server/internal/model"
)

var _ model.AttendanceStore = (*AttendanceRepository)(nil)

const attendanceSelect = `SELECT a.id, a.event_id, e.name, a.member_id, m.name, a.status, a.created_at
	FROM attendance a
	JOIN events e ON e.id = a.event_id
	JOIN members m ON m.id = a.member_id`

type AttendanceRepository struct {
	db *Connection
}

func NewAttendanceRepository(db *Connection) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
	}
}

func scanAttendance(row scanner) (model.Attendance, error) {
	var a model.Attendance
	err := row.Scan(&a.ID, &a.EventID, &a.EventName, &a.MemberID, &a.MemberName, &a.Status, &a.CreatedAt)
	return a, err
}

// attendanceReferenceError names the side of a foreign key violation.
func attendanceReferenceError(err error) error {
	pgErr, ok := pgError(err)
	if ok && pgErr.ConstraintName == "attendance_event_id_fkey" {
		return model.NewReferenceError("event")
	}
	return model.NewReferenceError("member")
}

func (r *AttendanceRepository) Create(ctx context.Context, attendance model.Attendance) (model.Attendance, error) {
	query := `INSERT INTO attendance (id, event_id, member_id, status, created_at) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query,
		attendance.ID, attendance.EventID, attendance.MemberID, string(attendance.Status), attendance.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.Attendance{}, attendanceReferenceError(err)
		}
		return model.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return r.GetByID(ctx, attendance.ID)
}

func (r *AttendanceRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Attendance, error) {
	a, err := scanAttendance(r.db.QueryRow(ctx, attendanceSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Attendance{}, model.NewNotFoundError("attendance")
		}
		return model.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}
	return a, nil
}

func (r *AttendanceRepository) List(ctx context.Context) ([]model.Attendance, error) {
	rows, err := r.db.Query(ctx, attendanceSelect+` ORDER BY e.date DESC, m.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	records := make([]model.Attendance, 0)
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}
	return records, nil
}

func (r *AttendanceRepository) Update(ctx context.Context, attendance model.Attendance) (model.Attendance, error) {
	query := `UPDATE attendance SET event_id = $2, member_id = $3, status = $4 WHERE id = $1`

	res, err := r.db.Exec(ctx, query,
		attendance.ID, attendance.EventID, attendance.MemberID, string(attendance.Status))
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.Attendance{}, attendanceReferenceError(err)
		}
		return model.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	if res.RowsAffected() == 0 {
		return model.Attendance{}, model.NewNotFoundError("attendance")
	}

	return r.GetByID(ctx, attendance.ID)
}

func (r *AttendanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "attendance", "attendance", id)
}
