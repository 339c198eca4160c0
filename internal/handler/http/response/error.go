package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrInsufficientRole):
		Forbidden(w, "Insufficient role for this operation")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidInterval):
		ValidationErrorWithMessage(w, err.Error(), map[string]string{"check_out": err.Error()})
	case errors.Is(err, attendance.ErrDuplicateCheckIn):
		Conflict(w, "Attendance already recorded for this employee on this date")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Attendance has already been checked out")
	case errors.Is(err, attendance.ErrNotCheckedOut):
		Conflict(w, "Attendance has not been checked out yet")
	case errors.Is(err, attendance.ErrNotOwner):
		Forbidden(w, "Attendance belongs to another employee")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance not found")
	case errors.Is(err, attendance.ErrStoreUnavailable):
		ServiceUnavailable(w, "Attendance store is temporarily unavailable, please retry")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
