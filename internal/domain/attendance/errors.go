package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrDuplicateCheckIn  = errors.New("attendance already recorded for this employee on this date")
	ErrAlreadyCheckedOut = errors.New("attendance has already been checked out")
	ErrNotCheckedOut     = errors.New("attendance has not been checked out yet")
	ErrInvalidInterval   = errors.New("check-out time must be after check-in time")
	ErrNotOwner          = errors.New("attendance belongs to another employee")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrStoreUnavailable   = errors.New("attendance store unavailable")
)
