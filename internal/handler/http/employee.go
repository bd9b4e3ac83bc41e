package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timebank-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	ArchiveEmployee(w http.ResponseWriter, r *http.Request)
	RestoreEmployee(w http.ResponseWriter, r *http.Request)
	DeleteEmployee(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
	}
}

// ListEmployees implements EmployeeHandler
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	filter := employee.EmployeeFilter{}
	if v := r.URL.Query().Get("include_archived"); v != "" {
		includeArchived, err := strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(w, "include_archived must be a boolean", nil)
			return
		}
		filter.IncludeArchived = includeArchived
	}

	results, err := h.employeeService.ListEmployees(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// GetEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.employeeService.GetEmployee(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", result)
}

// UpdateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.employeeService.UpdateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", result)
}

// ArchiveEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) ArchiveEmployee(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.ArchiveEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee archived successfully", result)
}

// RestoreEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) RestoreEmployee(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.RestoreEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee restored successfully", result)
}

// DeleteEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	if err := h.employeeService.DeleteEmployee(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.NoContent(w)
}
