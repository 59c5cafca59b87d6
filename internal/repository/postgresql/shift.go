package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/shift"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/worktime"
	"github.com/jackc/pgx/v5"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

const shiftColumns = `
	s.id, s.name, s.category_id,
	to_char(s.start_time, 'HH24:MI'), to_char(s.end_time, 'HH24:MI'),
	s.tolerance_minutes, s.description, s.is_active, s.created_at, s.updated_at`

// scanShift reads shiftColumns; start and end come back as HH:MM text.
func scanShift(row pgx.Row) (shift.Shift, error) {
	var (
		s          shift.Shift
		start, end string
	)
	err := row.Scan(
		&s.ID, &s.Name, &s.CategoryID, &start, &end,
		&s.ToleranceMinutes, &s.Description, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return shift.Shift{}, err
	}
	if s.StartTime, err = worktime.ParseTimeOfDay(start); err != nil {
		return shift.Shift{}, fmt.Errorf("shift %s start_time: %w", s.ID, err)
	}
	if s.EndTime, err = worktime.ParseTimeOfDay(end); err != nil {
		return shift.Shift{}, fmt.Errorf("shift %s end_time: %w", s.ID, err)
	}
	return s, nil
}

// Create implements shift.ShiftRepository.
func (r *shiftRepository) Create(ctx context.Context, newShift shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (name, category_id, start_time, end_time, tolerance_minutes, description, is_active)
		VALUES ($1, $2, $3::time, $4::time, $5, $6, $7)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		newShift.Name, newShift.CategoryID, newShift.StartTime.String(), newShift.EndTime.String(),
		newShift.ToleranceMinutes, newShift.Description, newShift.IsActive,
	).Scan(&id)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanShift(q.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shifts s WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return s, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepository) Update(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET name = $2,
			category_id = $3,
			start_time = $4::time,
			end_time = $5::time,
			tolerance_minutes = $6,
			description = $7,
			is_active = $8,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		s.ID, s.Name, s.CategoryID, s.StartTime.String(), s.EndTime.String(),
		s.ToleranceMinutes, s.Description, s.IsActive,
	)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to update shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.Shift{}, shift.ErrShiftNotFound
	}

	return r.GetByID(ctx, s.ID)
}

// Delete implements shift.ShiftRepository. Attendance rows keep their shift
// through a RESTRICT foreign key, so a referenced shift cannot be removed.
func (r *shiftRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return shift.ErrShiftInUse
		}
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}
	return nil
}

// ListActiveByCategory implements shift.ShiftRepository.
func (r *shiftRepository) ListActiveByCategory(ctx context.Context, categoryID string) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftColumns + `
		FROM shifts s
		WHERE s.category_id = $1 AND s.is_active
		ORDER BY s.start_time, s.name`

	rows, err := q.Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}

	return shifts, nil
}
