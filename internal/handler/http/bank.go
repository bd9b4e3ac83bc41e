package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/bank"
	"github.com/cmlabs-hris/timebank-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type BankHandler interface {
	ListMovements(w http.ResponseWriter, r *http.Request)
	AppendMovement(w http.ResponseWriter, r *http.Request)
	TransferOvertime(w http.ResponseWriter, r *http.Request)
	VerifyConsistency(w http.ResponseWriter, r *http.Request)
	Reconcile(w http.ResponseWriter, r *http.Request)
}

type bankHandlerImpl struct {
	bankService bank.BankService
}

func NewBankHandler(bankService bank.BankService) BankHandler {
	return &bankHandlerImpl{bankService: bankService}
}

// ListMovements implements BankHandler
func (h *bankHandlerImpl) ListMovements(w http.ResponseWriter, r *http.Request) {
	result, err := h.bankService.ListMovements(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AppendMovement implements BankHandler
func (h *bankHandlerImpl) AppendMovement(w http.ResponseWriter, r *http.Request) {
	var req bank.AppendMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "id")

	result, err := h.bankService.AppendMovement(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Bank movement recorded", result)
}

// TransferOvertime implements BankHandler
func (h *bankHandlerImpl) TransferOvertime(w http.ResponseWriter, r *http.Request) {
	var req bank.TransferOvertimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "id")

	result, err := h.bankService.TransferOvertime(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime transferred to bank", result)
}

// VerifyConsistency implements BankHandler. A diverging ledger answers 409
// with the report as data.
func (h *bankHandlerImpl) VerifyConsistency(w http.ResponseWriter, r *http.Request) {
	result, err := h.bankService.VerifyConsistency(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		var inconsistent *bank.ConsistencyError
		if errors.As(err, &inconsistent) {
			response.LedgerInconsistent(w, inconsistent.Error(), result)
			return
		}
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Reconcile implements BankHandler
func (h *bankHandlerImpl) Reconcile(w http.ResponseWriter, r *http.Request) {
	result, err := h.bankService.Reconcile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bank balance reconciled", result)
}
