package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/shift"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftAssignmentRepository struct {
	db *database.DB
}

func NewShiftAssignmentRepository(db *database.DB) shift.AssignmentRepository {
	return &shiftAssignmentRepository{db: db}
}

const assignmentColumns = `ss.id, ss.user_id, ss.day_of_week, ss.shift_id, ss.is_active, ss.created_at, ss.updated_at`

// Upsert implements shift.AssignmentRepository.
func (r *shiftAssignmentRepository) Upsert(ctx context.Context, a shift.Assignment) (shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_schedules AS ss (user_id, day_of_week, shift_id, is_active)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, day_of_week) DO UPDATE
		SET shift_id = EXCLUDED.shift_id,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
		RETURNING ` + assignmentColumns

	var saved shift.Assignment
	err := q.QueryRow(ctx, query, a.UserID, a.DayOfWeek, a.ShiftID, a.IsActive).Scan(
		&saved.ID, &saved.UserID, &saved.DayOfWeek, &saved.ShiftID, &saved.IsActive, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return shift.Assignment{}, shift.ErrShiftNotFound
		}
		return shift.Assignment{}, fmt.Errorf("failed to upsert shift schedule: %w", err)
	}

	return saved, nil
}

// GetActiveByUserAndDay implements shift.AssignmentRepository. The shift is
// joined so the resolver needs no second query.
func (r *shiftAssignmentRepository) GetActiveByUserAndDay(ctx context.Context, userID string, dayOfWeek int) (*shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + assignmentColumns + `, ` + shiftColumns + `
		FROM shift_schedules ss
		JOIN shifts s ON s.id = ss.shift_id
		WHERE ss.user_id = $1 AND ss.day_of_week = $2 AND ss.is_active`

	a, err := scanAssignmentWithShift(q.QueryRow(ctx, query, userID, dayOfWeek))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shift schedule: %w", err)
	}

	return &a, nil
}

// ListByUser implements shift.AssignmentRepository.
func (r *shiftAssignmentRepository) ListByUser(ctx context.Context, userID string) ([]shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + assignmentColumns + `, ` + shiftColumns + `
		FROM shift_schedules ss
		JOIN shifts s ON s.id = ss.shift_id
		WHERE ss.user_id = $1
		ORDER BY ss.day_of_week`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift schedules: %w", err)
	}
	defer rows.Close()

	var assignments []shift.Assignment
	for rows.Next() {
		a, err := scanAssignmentWithShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift schedule: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift schedules: %w", err)
	}

	return assignments, nil
}

// DeleteByUserAndDay implements shift.AssignmentRepository.
func (r *shiftAssignmentRepository) DeleteByUserAndDay(ctx context.Context, userID string, dayOfWeek int) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM shift_schedules WHERE user_id = $1 AND day_of_week = $2`, userID, dayOfWeek); err != nil {
		return fmt.Errorf("failed to delete shift schedule: %w", err)
	}
	return nil
}

// Delete implements shift.AssignmentRepository.
func (r *shiftAssignmentRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shift_schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrAssignmentNotFound
	}
	return nil
}

// assignmentShiftRow adapts a row of assignmentColumns followed by
// shiftColumns so scanShift can read the trailing shift part.
type assignmentShiftRow struct {
	row pgx.Row
	a   *shift.Assignment
}

func (r assignmentShiftRow) Scan(dest ...any) error {
	head := []any{&r.a.ID, &r.a.UserID, &r.a.DayOfWeek, &r.a.ShiftID, &r.a.IsActive, &r.a.CreatedAt, &r.a.UpdatedAt}
	return r.row.Scan(append(head, dest...)...)
}

func scanAssignmentWithShift(row pgx.Row) (shift.Assignment, error) {
	var a shift.Assignment
	s, err := scanShift(assignmentShiftRow{row: row, a: &a})
	if err != nil {
		return shift.Assignment{}, err
	}
	a.Shift = &s
	return a, nil
}
