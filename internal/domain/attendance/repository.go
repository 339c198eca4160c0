package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// Store failures (timeouts, lost connections) surface as ErrStoreUnavailable.
type AttendanceRepository interface {
	// FindByEmployeeAndDate returns nil, nil when no record exists for the pair.
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// Create inserts an in-progress record; ErrDuplicateCheckIn if (employee, date) is taken.
	Create(ctx context.Context, in NewAttendance) (Attendance, error)

	// Checkout sets the check-out side exactly once and persists the classification.
	Checkout(ctx context.Context, id string, at time.Time, location Coordinate) (Attendance, error)

	// Update applies administrative edits. Derived fields are never touched.
	Update(ctx context.Context, id string, changes AttendanceChanges) (Attendance, error)

	Delete(ctx context.Context, id string) (Attendance, error)
	DeleteAllByDate(ctx context.Context, date time.Time) ([]Attendance, error)

	// List returns one page ordered by date then check-in time, newest first, plus the total count.
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
}
