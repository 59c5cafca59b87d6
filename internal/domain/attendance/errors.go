package attendance

import (
	"errors"
	"fmt"
	"time"
)

// Attendance domain errors
var (
	// Clock event errors
	ErrOutsideAllowedRadius    = errors.New("you are outside the allowed radius")
	ErrAlreadyClockedIn        = errors.New("you have already clocked in today")
	ErrNoOpenClockIn           = errors.New("no open clock-in found for today")
	ErrClockOutNotAfterClockIn = errors.New("clock-out must be after clock-in")

	// Store errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAttendanceExists   = errors.New("attendance record already exists for this date")
)

// OutOfRangeError carries the measured distance for the caller.
type OutOfRangeError struct {
	DistanceMeters int
	RadiusMeters   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("you are %dm from the office, allowed radius is %dm", e.DistanceMeters, e.RadiusMeters)
}

func (e *OutOfRangeError) Unwrap() error {
	return ErrOutsideAllowedRadius
}

// AlreadyClockedInError carries the clock-in time of the existing record.
type AlreadyClockedInError struct {
	ClockIn time.Time
}

func (e *AlreadyClockedInError) Error() string {
	return fmt.Sprintf("already clocked in at %s", e.ClockIn.UTC().Format(time.RFC3339))
}

func (e *AlreadyClockedInError) Unwrap() error {
	return ErrAlreadyClockedIn
}
