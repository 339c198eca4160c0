package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusLeftEarly  Status = "left_early"
	StatusOnTime     Status = "on_time"
	StatusOvertime   Status = "overtime"
)

// ValidStatuses lists every persisted status value.
var ValidStatuses = []string{
	string(StatusInProgress),
	string(StatusLeftEarly),
	string(StatusOnTime),
	string(StatusOvertime),
}

// PhotoRef points at a proof photo stored by the upload collaborator.
type PhotoRef struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Attendance is one employee's record for one calendar day.
// WorkingHours, Status and OvertimeHours are written only by checkout.
type Attendance struct {
	ID                string
	EmployeeID        string
	Date              time.Time
	CheckIn           time.Time
	CheckInLatitude   float64
	CheckInLongitude  float64
	CheckInPhotoURL   string
	CheckInPhotoID    string
	CheckOut          *time.Time
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	WorkingHours      *decimal.Decimal
	Status            Status
	OvertimeHours     decimal.Decimal
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO
	EmployeeName *string
}

func (a Attendance) IsCheckedOut() bool {
	return a.CheckOut != nil
}

// CheckOutCoordinate returns nil until the record has a check-out location.
func (a Attendance) CheckOutCoordinate() *Coordinate {
	if a.CheckOutLatitude == nil || a.CheckOutLongitude == nil {
		return nil
	}
	return &Coordinate{Latitude: *a.CheckOutLatitude, Longitude: *a.CheckOutLongitude}
}

// NewAttendance is the input of a check-in.
type NewAttendance struct {
	EmployeeID string
	Date       time.Time
	CheckIn    time.Time
	Location   Coordinate
	Photo      PhotoRef
	Notes      *string
}

// AttendanceChanges holds the administratively editable fields; nil means unchanged.
type AttendanceChanges struct {
	Date              *time.Time
	CheckIn           *time.Time
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckOut          *time.Time
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	Notes             *string
}

func (c AttendanceChanges) IsEmpty() bool {
	return c.Date == nil && c.CheckIn == nil && c.CheckInLatitude == nil && c.CheckInLongitude == nil &&
		c.CheckOut == nil && c.CheckOutLatitude == nil && c.CheckOutLongitude == nil && c.Notes == nil
}

// TouchesCheckOut reports whether any check-out field is being edited.
func (c AttendanceChanges) TouchesCheckOut() bool {
	return c.CheckOut != nil || c.CheckOutLatitude != nil || c.CheckOutLongitude != nil
}
