package shift

import "context"

type ShiftRepository interface {
	Create(ctx context.Context, s Shift) (Shift, error)

	// GetByID returns ErrShiftNotFound when missing
	GetByID(ctx context.Context, id string) (Shift, error)

	Update(ctx context.Context, s Shift) (Shift, error)

	// Delete returns ErrShiftInUse when attendance rows still reference it
	Delete(ctx context.Context, id string) error

	// ListActiveByCategory is ordered by start time, then name
	ListActiveByCategory(ctx context.Context, categoryID string) ([]Shift, error)
}

type AssignmentRepository interface {
	// Upsert writes the (user, day) assignment, replacing any existing one
	Upsert(ctx context.Context, a Assignment) (Assignment, error)

	// GetActiveByUserAndDay returns nil, nil when the user has no active assignment
	GetActiveByUserAndDay(ctx context.Context, userID string, dayOfWeek int) (*Assignment, error)

	// ListByUser returns all of the user's assignments with their shifts joined
	ListByUser(ctx context.Context, userID string) ([]Assignment, error)

	DeleteByUserAndDay(ctx context.Context, userID string, dayOfWeek int) error
	Delete(ctx context.Context, id string) error
}
