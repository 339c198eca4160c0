package attendance

import (
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID string    `json:"employee_id"`
	Date       string    `json:"date"`     // YYYY-MM-DD
	CheckIn    string    `json:"check_in"` // RFC3339
	Latitude   *float64  `json:"latitude"`
	Longitude  *float64  `json:"longitude"`
	PhotoRef   *PhotoRef `json:"photo_ref,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
}

// ValidateFields checks everything except the photo reference, which the HTTP layer
// may only obtain after uploading.
func (r *CheckInRequest) ValidateFields() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.CheckIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "check_in is required",
		})
	} else if _, valid := validator.IsValidDateTime(r.CheckIn); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "check_in must be an ISO8601 timestamp",
		})
	}

	errs = append(errs, validator.Coordinate("latitude", "longitude", r.Latitude, r.Longitude, true)...)

	return errs
}

func (r *CheckInRequest) Validate() error {
	errs := r.ValidateFields()

	if r.PhotoRef == nil || validator.IsEmpty(r.PhotoRef.URL) {
		errs = append(errs, validator.ValidationError{
			Field:   "photo_ref",
			Message: "attendance proof photo is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	ID        string   `json:"-"`
	OwnerID   *string  `json:"-"`         // when set, must match the record's employee_id
	CheckOut  string   `json:"check_out"` // RFC3339
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if validator.IsEmpty(r.CheckOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out",
			Message: "check_out is required",
		})
	} else if _, valid := validator.IsValidDateTime(r.CheckOut); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out",
			Message: "check_out must be an ISO8601 timestamp",
		})
	}

	errs = append(errs, validator.Coordinate("latitude", "longitude", r.Latitude, r.Longitude, true)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateAttendanceRequest lets an administrator fix raw attendance data.
// Working hours, status and overtime are not editable; they only change at checkout.
type UpdateAttendanceRequest struct {
	ID                string   `json:"-"`
	Date              *string  `json:"date,omitempty"`      // YYYY-MM-DD
	CheckIn           *string  `json:"check_in,omitempty"`  // RFC3339
	CheckOut          *string  `json:"check_out,omitempty"` // RFC3339
	CheckInLatitude   *float64 `json:"check_in_latitude,omitempty"`
	CheckInLongitude  *float64 `json:"check_in_longitude,omitempty"`
	CheckOutLatitude  *float64 `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64 `json:"check_out_longitude,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date == nil && r.CheckIn == nil && r.CheckOut == nil &&
		r.CheckInLatitude == nil && r.CheckInLongitude == nil &&
		r.CheckOutLatitude == nil && r.CheckOutLongitude == nil && r.Notes == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one field must be provided",
		})
	}

	if r.Date != nil {
		if _, valid := validator.IsValidDate(*r.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.CheckIn != nil {
		if _, valid := validator.IsValidDateTime(*r.CheckIn); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be an ISO8601 timestamp",
			})
		}
	}

	if r.CheckOut != nil {
		if _, valid := validator.IsValidDateTime(*r.CheckOut); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be an ISO8601 timestamp",
			})
		}
	}

	errs = append(errs, validator.Coordinate("check_in_latitude", "check_in_longitude", r.CheckInLatitude, r.CheckInLongitude, false)...)
	errs = append(errs, validator.Coordinate("check_out_latitude", "check_out_longitude", r.CheckOutLatitude, r.CheckOutLongitude, false)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RegionResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	DistanceKm float64 `json:"distance_km"`
}

type AttendanceResponse struct {
	ID                string          `json:"id"`
	EmployeeID        string          `json:"employee_id"`
	EmployeeName      *string         `json:"employee_name,omitempty"`
	Date              string          `json:"date"`
	CheckInTime       string          `json:"check_in_time"`
	CheckInLatitude   float64         `json:"check_in_latitude"`
	CheckInLongitude  float64         `json:"check_in_longitude"`
	CheckInPhoto      PhotoRef        `json:"check_in_photo"`
	CheckInRegion     *RegionResponse `json:"check_in_region,omitempty"`
	CheckOutTime      *string         `json:"check_out_time,omitempty"`
	CheckOutLatitude  *float64        `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64        `json:"check_out_longitude,omitempty"`
	CheckOutRegion    *RegionResponse `json:"check_out_region,omitempty"`
	WorkingHours      *float64        `json:"working_hours,omitempty"`
	WorkingHoursText  *string         `json:"working_hours_text,omitempty"`
	Status            Status          `json:"status"`
	OvertimeHours     float64         `json:"overtime_hours"`
	OvertimeHoursText *string         `json:"overtime_hours_text,omitempty"`
	Notes             *string         `json:"notes,omitempty"`
	CreatedAt         string          `json:"created_at"`
	UpdatedAt         string          `json:"updated_at"`
}

type AttendanceFilter struct {
	// Search & Filter
	EmployeeID *string `json:"employee_id,omitempty"`
	Search     *string `json:"search,omitempty"`     // employee name or code
	Date       *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	// Page validation
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	// Limit validation
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	// Status validation
	if f.Status != nil {
		if !validator.IsInSlice(*f.Status, ValidStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: in_progress, left_early, on_time, overtime",
			})
		}
	}

	// Date validation
	if f.Date != nil && *f.Date != "" {
		if _, valid := validator.IsValidDate(*f.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	start, startValid := validDatePtr(f.StartDate)
	if f.StartDate != nil && *f.StartDate != "" && !startValid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endValid := validDatePtr(f.EndDate)
	if f.EndDate != nil && *f.EndDate != "" && !endValid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startValid && endValid && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validDatePtr(s *string) (validator.Date, bool) {
	if s == nil || *s == "" {
		return validator.Date{}, false
	}
	d, err := validator.ParseDate(*s)
	return d, err == nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

type DeleteAttendanceResponse struct {
	Deleted []AttendanceResponse `json:"deleted"`
	Count   int                  `json:"count"`
}
