package http

import (
	"net/http"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timebank-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	GetMonthlyStatistics(w http.ResponseWriter, r *http.Request)
	GetCompanySummary(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) GetMonthlyStatistics(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parsePeriod(r)
	if !ok {
		response.BadRequest(w, "year and month must be numbers", nil)
		return
	}

	result, err := h.payrollService.ComputeMonthlyStatistics(r.Context(), payroll.StatisticsRequest{
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

func (h *payrollHandlerImpl) GetCompanySummary(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parsePeriod(r)
	if !ok {
		response.BadRequest(w, "year and month must be numbers", nil)
		return
	}

	result, err := h.payrollService.ComputeCompanySummary(r.Context(), payroll.SummaryRequest{
		Year:  year,
		Month: month,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
