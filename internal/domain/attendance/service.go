package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn records the start of an employee's day. The proof photo must already be uploaded.
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes the day and classifies the worked interval.
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// ListAttendance returns one page with region names resolved for every coordinate.
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// UpdateAttendance fixes raw data (manager/admin).
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// DeleteAttendance hard deletes one record and returns it.
	DeleteAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// DeleteAttendanceByDate hard deletes every record of a day (YYYY-MM-DD).
	DeleteAttendanceByDate(ctx context.Context, date string) (DeleteAttendanceResponse, error)
}
