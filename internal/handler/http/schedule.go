package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timebank-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ScheduleHandler interface {
	GetTemplate(w http.ResponseWriter, r *http.Request)
	ResolveDay(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// GetTemplate implements ScheduleHandler.
func (h *scheduleHandlerImpl) GetTemplate(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.GetTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ResolveDay implements ScheduleHandler. The date defaults to today.
func (h *scheduleHandlerImpl) ResolveDay(w http.ResponseWriter, r *http.Request) {
	req := schedule.ResolveScheduleRequest{
		EmployeeID: chi.URLParam(r, "id"),
		Date:       r.URL.Query().Get("date"),
	}
	if req.Date == "" {
		req.Date = time.Now().Format("2006-01-02")
	}

	result, err := h.scheduleService.ResolveDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
