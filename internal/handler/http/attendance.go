package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/file"
	"github.com/go-chi/chi/v5"
)

// maxUploadSize bounds the multipart check-in form.
const maxUploadSize = 10 << 20

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	DeleteByDate(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	fileService       file.FileService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, fileService file.FileService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		fileService:       fileService,
	}
}

// CheckIn implements AttendanceHandler.
// Multipart requests carry the JSON payload in 'data' and the proof in 'photo';
// plain JSON requests must reference an already uploaded photo.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		h.checkInJSON(w, r)
		return
	}

	var req attendance.CheckInRequest

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	// Get JSON data from 'data' field
	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return
	}

	if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := bindEmployee(r, &req); err != nil {
		response.HandleError(w, err)
		return
	}

	// Validate before the upload so a bad payload leaves no orphaned photo
	if errs := req.ValidateFields(); len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	photo, fileHeader, err := r.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			response.ValidationError(w, map[string]string{"photo": "attendance proof photo is required"})
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer photo.Close()

	date, _ := validator.IsValidDate(req.Date)
	ref, err := h.fileService.UploadAttendanceProof(r.Context(), req.EmployeeID, date, photo, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, file.ErrUnsupportedImage) {
			response.ValidationError(w, map[string]string{"photo": err.Error()})
			return
		}
		slog.Error("Failed to upload attendance proof", "error", err)
		response.HandleError(w, err)
		return
	}
	req.PhotoRef = &ref

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		if delErr := h.fileService.DeleteAttendanceProof(r.Context(), ref); delErr != nil {
			slog.Error("Failed to remove attendance proof after rejected check-in", "error", delErr, "photo_id", ref.ID)
		}
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check in successful", result)
}

func (h *attendanceHandlerImpl) checkInJSON(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode check-in request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := bindEmployee(r, &req); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check in successful", result)
}

// bindEmployee ties a check-in to the caller's own employee_id unless the caller
// may record attendance for others. An omitted employee_id defaults to the caller's.
func bindEmployee(r *http.Request, req *attendance.CheckInRequest) error {
	caller, err := middleware.CallerFromContext(r.Context())
	if err != nil {
		return err
	}
	if !caller.SelfOnly() {
		return nil
	}

	if req.EmployeeID == "" {
		req.EmployeeID = caller.EmployeeID
	}
	if caller.EmployeeID == "" || req.EmployeeID != caller.EmployeeID {
		return attendance.ErrNotOwner
	}
	return nil
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode check-out request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	caller, err := middleware.CallerFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if caller.SelfOnly() {
		req.OwnerID = &caller.EmployeeID
	}

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check out successful", result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := attendance.AttendanceFilter{}

	if employeeID := query.Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}

	// Employee name or code
	if search := query.Get("search"); search != "" {
		filter.Search = &search
	}

	if date := query.Get("date"); date != "" {
		filter.Date = &date
	}

	if startDate := query.Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}

	if endDate := query.Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		filter.Status = &status
	}

	// Pagination
	if p := query.Get("page"); p != "" {
		page, err := strconv.Atoi(p)
		if err != nil {
			response.ValidationError(w, map[string]string{"page": "page must be a number"})
			return
		}
		filter.Page = page
	}

	if l := query.Get("limit"); l != "" {
		limit, err := strconv.Atoi(l)
		if err != nil {
			response.ValidationError(w, map[string]string{"limit": "limit must be a number"})
			return
		}
		filter.Limit = limit
	}

	results, err := h.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.attendanceService.GetAttendance(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements AttendanceHandler.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode update request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.attendanceService.UpdateAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated successfully", result)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.attendanceService.DeleteAttendance(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance deleted successfully", attendance.DeleteAttendanceResponse{
		Deleted: []attendance.AttendanceResponse{deleted},
		Count:   1,
	})
}

// DeleteByDate implements AttendanceHandler.
func (h *attendanceHandlerImpl) DeleteByDate(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	result, err := h.attendanceService.DeleteAttendanceByDate(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendances deleted successfully", result)
}
