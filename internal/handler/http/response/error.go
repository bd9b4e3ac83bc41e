package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/bank"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var inconsistent *bank.ConsistencyError
	if errors.As(err, &inconsistent) {
		LedgerInconsistent(w, inconsistent.Error(), map[string]string{
			"employee_id": inconsistent.EmployeeID,
			"balance":     inconsistent.Balance.String(),
			"ledger_sum":  inconsistent.Sum.String(),
		})
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeNameExists):
		Conflict(w, "Employee name already exists")
	case errors.Is(err, employee.ErrEmployeeArchived):
		Conflict(w, "Employee is archived")
	case errors.Is(err, employee.ErrEmployeeAlreadyActive):
		Conflict(w, "Employee is not archived")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Bank domain errors
	case errors.Is(err, bank.ErrTransferExceedsPayable):
		UnprocessableEntity(w, "TRANSFER_EXCEEDS_PAYABLE", err.Error())
	case errors.Is(err, bank.ErrNothingToTransfer):
		UnprocessableEntity(w, "NOTHING_TO_TRANSFER", err.Error())
	case errors.Is(err, bank.ErrLedgerInconsistent):
		LedgerInconsistent(w, err.Error(), nil)
	case errors.Is(err, bank.ErrInvalidAmount),
		errors.Is(err, bank.ErrReasonRequired),
		errors.Is(err, bank.ErrInvalidKind):
		BadRequest(w, err.Error(), nil)

	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
