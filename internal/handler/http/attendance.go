package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timebank-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	GetMonth(w http.ResponseWriter, r *http.Request)
	SaveDays(w http.ResponseWriter, r *http.Request)
	FillEmptyDays(w http.ResponseWriter, r *http.Request)
	DeleteDay(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// parsePeriod reads ?year=&month=, each defaulting to the current one.
func parsePeriod(r *http.Request) (year, month int, ok bool) {
	now := time.Now()
	year, month = now.Year(), int(now.Month())

	if y := r.URL.Query().Get("year"); y != "" {
		v, err := strconv.Atoi(y)
		if err != nil {
			return 0, 0, false
		}
		year = v
	}
	if m := r.URL.Query().Get("month"); m != "" {
		v, err := strconv.Atoi(m)
		if err != nil {
			return 0, 0, false
		}
		month = v
	}
	return year, month, true
}

// GetMonth implements AttendanceHandler
func (h *attendanceHandlerImpl) GetMonth(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parsePeriod(r)
	if !ok {
		response.BadRequest(w, "year and month must be numbers", nil)
		return
	}

	result, err := h.attendanceService.GetMonth(r.Context(), attendance.MonthRequest{
		EmployeeID: chi.URLParam(r, "id"),
		Year:       year,
		Month:      month,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SaveDays implements AttendanceHandler
func (h *attendanceHandlerImpl) SaveDays(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpsertAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "id")

	result, err := h.attendanceService.SaveDays(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance saved successfully", result)
}

// FillEmptyDays implements AttendanceHandler
func (h *attendanceHandlerImpl) FillEmptyDays(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parsePeriod(r)
	if !ok {
		response.BadRequest(w, "year and month must be numbers", nil)
		return
	}

	result, err := h.attendanceService.FillEmptyDays(r.Context(), attendance.MonthRequest{
		EmployeeID: chi.URLParam(r, "id"),
		Year:       year,
		Month:      month,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Empty days filled from schedule", result)
}

// DeleteDay implements AttendanceHandler
func (h *attendanceHandlerImpl) DeleteDay(w http.ResponseWriter, r *http.Request) {
	err := h.attendanceService.DeleteDay(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance deleted successfully", nil)
}
