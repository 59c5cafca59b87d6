package shift

import (
	"errors"
	"fmt"
)

var (
	ErrShiftNotFound      = errors.New("shift not found")
	ErrShiftInactive      = errors.New("shift is inactive")
	ErrShiftInUse         = errors.New("shift is referenced by attendance records")
	ErrAssignmentNotFound = errors.New("shift schedule not found")
	ErrCategoryMismatch   = errors.New("shift category does not match the user's category")
	ErrNotScheduled       = errors.New("no shift scheduled for this day")
)

// NotScheduledError is returned when the user has no active assignment for
// the day. Day is the organisation-local day name.
type NotScheduledError struct {
	Day string
}

func (e *NotScheduledError) Error() string {
	return fmt.Sprintf("no shift scheduled for %s", e.Day)
}

func (e *NotScheduledError) Unwrap() error {
	return ErrNotScheduled
}
