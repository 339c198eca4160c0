package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/region"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	resolver region.Resolver
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, resolver region.Resolver) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		resolver:             resolver,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	checkIn, _ := validator.IsValidDateTime(req.CheckIn)

	created, err := s.AttendanceRepository.Create(ctx, attendance.NewAttendance{
		EmployeeID: req.EmployeeID,
		Date:       date,
		CheckIn:    checkIn.UTC(),
		Location:   attendance.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude},
		Photo:      *req.PhotoRef,
		Notes:      req.Notes,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check in: %w", err)
	}

	return s.enrichOne(ctx, created), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	checkOut, _ := validator.IsValidDateTime(req.CheckOut)

	if req.OwnerID != nil {
		current, err := s.AttendanceRepository.GetByID(ctx, req.ID)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to check out: %w", err)
		}
		if current.EmployeeID != *req.OwnerID {
			return attendance.AttendanceResponse{}, attendance.ErrNotOwner
		}
	}

	updated, err := s.AttendanceRepository.Checkout(ctx, req.ID, checkOut.UTC(), attendance.Coordinate{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check out: %w", err)
	}

	return s.enrichOne(ctx, updated), nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	attendances, total, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 || len(attendances) == 0 {
		showing = fmt.Sprintf("0 of %d", total)
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: s.enrich(ctx, attendances),
	}, nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	if validator.IsEmpty(id) {
		return attendance.AttendanceResponse{}, validator.ValidationErrors{{Field: "id", Message: "id is required"}}
	}

	att, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return s.enrichOne(ctx, att), nil
}

// UpdateAttendance implements attendance.AttendanceService.
// This allows managers/admins to fix raw data like wrong check-in times or locations.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	changes := attendance.AttendanceChanges{
		CheckInLatitude:   req.CheckInLatitude,
		CheckInLongitude:  req.CheckInLongitude,
		CheckOutLatitude:  req.CheckOutLatitude,
		CheckOutLongitude: req.CheckOutLongitude,
		Notes:             req.Notes,
	}
	if req.Date != nil {
		date, _ := validator.IsValidDate(*req.Date)
		changes.Date = &date
	}
	if req.CheckIn != nil {
		checkIn, _ := validator.IsValidDateTime(*req.CheckIn)
		checkIn = checkIn.UTC()
		changes.CheckIn = &checkIn
	}
	if req.CheckOut != nil {
		checkOut, _ := validator.IsValidDateTime(*req.CheckOut)
		checkOut = checkOut.UTC()
		changes.CheckOut = &checkOut
	}

	updated, err := s.AttendanceRepository.Update(ctx, req.ID, changes)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return s.enrichOne(ctx, updated), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	deleted, err := s.AttendanceRepository.Delete(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to delete attendance: %w", err)
	}

	return mapAttendanceToResponse(deleted), nil
}

// DeleteAttendanceByDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteAttendanceByDate(ctx context.Context, dateStr string) (attendance.DeleteAttendanceResponse, error) {
	date, ok := validator.IsValidDate(dateStr)
	if !ok {
		return attendance.DeleteAttendanceResponse{}, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}

	deleted, err := s.AttendanceRepository.DeleteAllByDate(ctx, date)
	if err != nil {
		return attendance.DeleteAttendanceResponse{}, fmt.Errorf("failed to delete attendances: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(deleted))
	for _, att := range deleted {
		responses = append(responses, mapAttendanceToResponse(att))
	}

	return attendance.DeleteAttendanceResponse{Deleted: responses, Count: len(responses)}, nil
}

func (s *AttendanceServiceImpl) enrichOne(ctx context.Context, att attendance.Attendance) attendance.AttendanceResponse {
	return s.enrich(ctx, []attendance.Attendance{att})[0]
}

// enrich maps records to responses and names the nearest region of every coordinate
// using a single batch resolution. Without reference data the region fields stay empty.
func (s *AttendanceServiceImpl) enrich(ctx context.Context, atts []attendance.Attendance) []attendance.AttendanceResponse {
	responses := make([]attendance.AttendanceResponse, len(atts))
	if len(atts) == 0 {
		return responses
	}

	points := make([]region.Point, 0, len(atts)*2)
	checkInIdx := make([]int, len(atts))
	checkOutIdx := make([]int, len(atts))
	for i, att := range atts {
		responses[i] = mapAttendanceToResponse(att)

		checkInIdx[i] = len(points)
		points = append(points, region.Point{Latitude: att.CheckInLatitude, Longitude: att.CheckInLongitude})
		checkOutIdx[i] = -1
		if loc := att.CheckOutCoordinate(); loc != nil {
			checkOutIdx[i] = len(points)
			points = append(points, region.Point{Latitude: loc.Latitude, Longitude: loc.Longitude})
		}
	}

	matches, err := s.resolver.ResolveBatch(ctx, points)
	if err != nil {
		return responses
	}

	for i := range atts {
		responses[i].CheckInRegion = toRegionResponse(matches[checkInIdx[i]])
		if checkOutIdx[i] >= 0 {
			responses[i].CheckOutRegion = toRegionResponse(matches[checkOutIdx[i]])
		}
	}

	return responses
}

func toRegionResponse(m *region.Match) *attendance.RegionResponse {
	if m == nil {
		return nil
	}
	return &attendance.RegionResponse{
		ID:         m.Region.ID,
		Name:       m.Region.Name,
		DistanceKm: math.Round(m.DistanceKm*100) / 100,
	}
}

// mapAttendanceToResponse converts an Attendance entity to AttendanceResponse
func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:                att.ID,
		EmployeeID:        att.EmployeeID,
		EmployeeName:      att.EmployeeName,
		Date:              att.Date.Format(dateLayout),
		CheckInTime:       att.CheckIn.Format(time.RFC3339),
		CheckInLatitude:   att.CheckInLatitude,
		CheckInLongitude:  att.CheckInLongitude,
		CheckInPhoto:      attendance.PhotoRef{URL: att.CheckInPhotoURL, ID: att.CheckInPhotoID},
		CheckOutTime:      timePtrToString(att.CheckOut),
		CheckOutLatitude:  att.CheckOutLatitude,
		CheckOutLongitude: att.CheckOutLongitude,
		Status:            att.Status,
		OvertimeHours:     att.OvertimeHours.InexactFloat64(),
		Notes:             att.Notes,
		CreatedAt:         att.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         att.UpdatedAt.Format(time.RFC3339),
	}

	if att.WorkingHours != nil {
		hours := att.WorkingHours.InexactFloat64()
		text := attendance.FormatHours(*att.WorkingHours)
		resp.WorkingHours = &hours
		resp.WorkingHoursText = &text
	}

	if att.OvertimeHours.IsPositive() {
		text := attendance.FormatHours(att.OvertimeHours)
		resp.OvertimeHoursText = &text
	}

	return resp
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}
