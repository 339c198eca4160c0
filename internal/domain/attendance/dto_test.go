package attendance

import (
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func TestCheckInRequest_Validate(t *testing.T) {
	valid := CheckInRequest{
		EmployeeID: "0001-0001",
		Date:       "2026-02-10",
		CheckIn:    "2026-02-10T08:00:00+07:00",
		Latitude:   floatPtr(-6.2),
		Longitude:  floatPtr(106.8),
		PhotoRef:   &PhotoRef{URL: "/uploads/attendance/a.jpg", ID: "a.jpg"},
	}
	assert.NoError(t, valid.Validate())

	missing := CheckInRequest{Date: "10/02/2026", CheckIn: "08:00"}
	err := missing.Validate()
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	for _, f := range []string{"employee_id", "date", "check_in", "latitude", "longitude", "photo_ref"} {
		assert.Contains(t, fields, f)
	}
}

func TestCheckInRequest_ValidateFieldsIgnoresPhoto(t *testing.T) {
	req := CheckInRequest{
		EmployeeID: "0001-0001",
		Date:       "2026-02-10",
		CheckIn:    "2026-02-10T08:00:00Z",
		Latitude:   floatPtr(-6.2),
		Longitude:  floatPtr(106.8),
	}
	assert.Empty(t, req.ValidateFields())
	assert.Error(t, req.Validate())
}

func TestCheckOutRequest_Validate(t *testing.T) {
	req := CheckOutRequest{ID: "x", CheckOut: "2026-02-10T17:00:00Z", Latitude: floatPtr(-6.2), Longitude: floatPtr(106.8)}
	assert.NoError(t, req.Validate())

	req.Longitude = nil
	assert.Error(t, req.Validate())
}

func TestUpdateAttendanceRequest_Validate(t *testing.T) {
	empty := UpdateAttendanceRequest{ID: "x"}
	assert.Error(t, empty.Validate())

	notes := UpdateAttendanceRequest{ID: "x", Notes: strPtr("forgot to check out")}
	assert.NoError(t, notes.Validate())

	badTime := UpdateAttendanceRequest{ID: "x", CheckOut: strPtr("17:00")}
	assert.Error(t, badTime.Validate())
}

func TestAttendanceFilter_Validate(t *testing.T) {
	f := AttendanceFilter{}
	require.NoError(t, f.Validate())
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.Limit)

	tooMany := AttendanceFilter{Limit: 101}
	assert.Error(t, tooMany.Validate())

	badStatus := AttendanceFilter{Status: strPtr("approved")}
	assert.Error(t, badStatus.Validate())

	reversed := AttendanceFilter{StartDate: strPtr("2026-02-10"), EndDate: strPtr("2026-02-01")}
	assert.Error(t, reversed.Validate())

	ranged := AttendanceFilter{StartDate: strPtr("2026-02-01"), EndDate: strPtr("2026-02-10"), Status: strPtr("on_time")}
	assert.NoError(t, ranged.Validate())
}
