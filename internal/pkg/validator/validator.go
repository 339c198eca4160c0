package validator

import (
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

type Date time.Time

// ParseDate parses a date string in "YYYY-MM-DD" format and returns a Date type.
func ParseDate(dateStr string) (Date, error) {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return Date{}, err
	}
	return Date(t), nil
}

// Before reports whether the date d is before u.
func (d Date) Before(u Date) bool {
	return time.Time(d).Before(time.Time(u))
}

// IsValidDateTime checks if a string is a valid ISO8601 timestamp.
// Accepts formats like: "2024-01-15T10:30:00Z" or "2024-01-15T10:30:00+07:00"
func IsValidDateTime(dateTimeStr string) (time.Time, bool) {
	// Try RFC3339 format (ISO8601 with timezone)
	t, err := time.Parse(time.RFC3339, dateTimeStr)
	if err == nil {
		return t, true
	}

	// Try RFC3339Nano format (with nanoseconds)
	t, err = time.Parse(time.RFC3339Nano, dateTimeStr)
	if err == nil {
		return t, true
	}

	return time.Time{}, false
}

// IsValidLatitude reports whether lat lies in [-90, 90].
func IsValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

// IsValidLongitude reports whether lon lies in [-180, 180].
func IsValidLongitude(lon float64) bool {
	return lon >= -180 && lon <= 180
}

// Coordinate validates a latitude/longitude pair. Both values must be given together;
// when required is false an absent pair is accepted.
func Coordinate(latField, lonField string, lat, lon *float64, required bool) ValidationErrors {
	var errs ValidationErrors

	if lat == nil && lon == nil {
		if required {
			errs = append(errs,
				ValidationError{Field: latField, Message: latField + " is required"},
				ValidationError{Field: lonField, Message: lonField + " is required"},
			)
		}
		return errs
	}

	if lat == nil {
		errs = append(errs, ValidationError{Field: latField, Message: latField + " is required when " + lonField + " is set"})
	} else if !IsValidLatitude(*lat) {
		errs = append(errs, ValidationError{Field: latField, Message: latField + " must be between -90 and 90"})
	}

	if lon == nil {
		errs = append(errs, ValidationError{Field: lonField, Message: lonField + " is required when " + latField + " is set"})
	} else if !IsValidLongitude(*lon) {
		errs = append(errs, ValidationError{Field: lonField, Message: lonField + " must be between -180 and 180"})
	}

	return errs
}
