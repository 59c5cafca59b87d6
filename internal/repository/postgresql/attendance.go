package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/shift"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.user_id, a.shift_id, a.date, a.clock_in, a.clock_out,
	a.clock_in_latitude, a.clock_in_longitude, a.clock_out_latitude, a.clock_out_longitude,
	a.photo_url, a.photo_out_url, a.clock_in_status, a.clock_out_status,
	a.late_minutes, a.early_minutes, a.work_minutes,
	a.is_manual_entry, a.manual_entry_by, a.manual_entry_note, a.notes,
	a.created_at, a.updated_at,
	u.name AS user_name, s.name AS shift_name`

const attendanceFrom = `
	FROM attendances a
	LEFT JOIN users u ON u.id = a.user_id
	LEFT JOIN shifts s ON s.id = a.shift_id`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.UserID, &att.ShiftID, &att.Date, &att.ClockIn, &att.ClockOut,
		&att.ClockInLatitude, &att.ClockInLongitude, &att.ClockOutLatitude, &att.ClockOutLongitude,
		&att.PhotoURL, &att.PhotoOutURL, &att.ClockInStatus, &att.ClockOutStatus,
		&att.LateMinutes, &att.EarlyMinutes, &att.WorkMinutes,
		&att.IsManualEntry, &att.ManualEntryBy, &att.ManualEntryNote, &att.Notes,
		&att.CreatedAt, &att.UpdatedAt,
		&att.UserName, &att.ShiftName,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	att.Date = att.Date.UTC()
	att.ClockIn = att.ClockIn.UTC()
	if att.ClockOut != nil {
		out := att.ClockOut.UTC()
		att.ClockOut = &out
	}
	return att, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			user_id, shift_id, date, clock_in, clock_out,
			clock_in_latitude, clock_in_longitude, clock_out_latitude, clock_out_longitude,
			photo_url, photo_out_url, clock_in_status, clock_out_status,
			late_minutes, early_minutes, work_minutes,
			is_manual_entry, manual_entry_by, manual_entry_note, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		newAttendance.UserID, newAttendance.ShiftID, newAttendance.Date, newAttendance.ClockIn, newAttendance.ClockOut,
		newAttendance.ClockInLatitude, newAttendance.ClockInLongitude, newAttendance.ClockOutLatitude, newAttendance.ClockOutLongitude,
		newAttendance.PhotoURL, newAttendance.PhotoOutURL, newAttendance.ClockInStatus, newAttendance.ClockOutStatus,
		newAttendance.LateMinutes, newAttendance.EarlyMinutes, newAttendance.WorkMinutes,
		newAttendance.IsManualEntry, newAttendance.ManualEntryBy, newAttendance.ManualEntryNote, newAttendance.Notes,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
		if isForeignKeyViolation(err) {
			if violatedConstraint(err) == "attendances_shift_id_fkey" {
				return attendance.Attendance{}, shift.ErrShiftNotFound
			}
			return attendance.Attendance{}, user.ErrUserNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return a.GetByID(ctx, id)
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + attendanceFrom + ` WHERE a.id = $1`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return att, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + attendanceFrom + ` WHERE a.user_id = $1 AND a.date = $2`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by date: %w", err)
	}

	return &att, nil
}

// CloseOpen implements attendance.AttendanceRepository. The clock_out IS NULL
// guard makes concurrent clock-outs race on the row; only one wins.
func (a *attendanceRepository) CloseOpen(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET clock_out = $2,
			clock_out_latitude = $3,
			clock_out_longitude = $4,
			photo_out_url = $5,
			clock_out_status = $6,
			early_minutes = $7,
			work_minutes = $8,
			notes = COALESCE($9, notes),
			updated_at = NOW()
		WHERE id = $1 AND clock_out IS NULL
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		record.ID, record.ClockOut, record.ClockOutLatitude, record.ClockOutLongitude,
		record.PhotoOutURL, record.ClockOutStatus, record.EarlyMinutes, record.WorkMinutes, record.Notes,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrNoOpenClockIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to close attendance: %w", err)
	}

	return a.GetByID(ctx, id)
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET shift_id = $2,
			clock_in = $3,
			clock_out = $4,
			clock_in_status = $5,
			clock_out_status = $6,
			late_minutes = $7,
			early_minutes = $8,
			work_minutes = $9,
			is_manual_entry = $10,
			manual_entry_by = $11,
			manual_entry_note = $12,
			notes = $13,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		record.ID, record.ShiftID, record.ClockIn, record.ClockOut,
		record.ClockInStatus, record.ClockOutStatus,
		record.LateMinutes, record.EarlyMinutes, record.WorkMinutes,
		record.IsManualEntry, record.ManualEntryBy, record.ManualEntryNote, record.Notes,
	)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}

	return a.GetByID(ctx, record.ID)
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// ListByUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendances WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	query := `SELECT ` + attendanceColumns + attendanceFrom + `
		WHERE a.user_id = $1
		ORDER BY a.date DESC, a.clock_in DESC
		LIMIT $2 OFFSET $3`

	rows, err := q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	attendances := make([]attendance.Attendance, 0, limit)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return attendances, total, nil
}

// ListOpenBefore implements attendance.AttendanceRepository. Records are
// ordered by date, then clock-in.
func (a *attendanceRepository) ListOpenBefore(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + attendanceFrom + `
		WHERE a.clock_out IS NULL AND a.date < $1
		ORDER BY a.date, a.clock_in`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query open attendances: %w", err)
	}
	defer rows.Close()

	var open []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		open = append(open, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate open attendances: %w", err)
	}

	return open, nil
}

// SummarizeByUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) SummarizeByUser(ctx context.Context, userID string) (attendance.Summary, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE clock_in_status = 'late'),
			COUNT(*) FILTER (WHERE clock_out_status = 'early'),
			COALESCE(SUM(work_minutes), 0)
		FROM attendances
		WHERE user_id = $1
	`

	var s attendance.Summary
	if err := q.QueryRow(ctx, query, userID).Scan(&s.Total, &s.LateCount, &s.EarlyCount, &s.TotalWorkMinutes); err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to summarize attendances: %w", err)
	}

	return s, nil
}
