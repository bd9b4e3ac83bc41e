package bank

import (
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// AppendMovementRequest is a manual correction of the bank.
type AppendMovementRequest struct {
	EmployeeID string          `json:"-"`
	Date       string          `json:"date,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Reason     string          `json:"reason"`
}

func (r *AppendMovementRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if RoundAmount(r.Amount).IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: ErrInvalidAmount.Error(),
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: ErrReasonRequired.Error(),
		})
	}
	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TransferOvertimeRequest moves payable overtime of a month into the bank.
type TransferOvertimeRequest struct {
	EmployeeID string          `json:"-"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Hours      decimal.Decimal `json:"hours"`
}

func (r *TransferOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	errs = append(errs, validator.ValidatePeriod(r.Year, r.Month)...)
	if !RoundAmount(r.Hours).IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "hours must be greater than 0",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MovementResponse struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	Date       string          `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Reason     string          `json:"reason"`
	Kind       Kind            `json:"kind"`
	Actor      string          `json:"actor"`
	CreatedAt  time.Time       `json:"created_at"`
}

func NewMovementResponse(m Movement) MovementResponse {
	return MovementResponse{
		ID:         m.ID,
		EmployeeID: m.EmployeeID,
		Date:       m.Date.Format("2006-01-02"),
		Amount:     m.Amount,
		Reason:     m.Reason,
		Kind:       m.Kind,
		Actor:      m.Actor,
		CreatedAt:  m.CreatedAt,
	}
}

type AppendMovementResponse struct {
	Movement MovementResponse `json:"movement"`
	Balance  decimal.Decimal  `json:"balance"`
}

type TransferOvertimeResponse struct {
	Movement         MovementResponse `json:"movement"`
	Balance          decimal.Decimal  `json:"balance"`
	RemainingPayable decimal.Decimal  `json:"remaining_payable"`
}

type ConsistencyResponse struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name,omitempty"`
	Balance      decimal.Decimal `json:"balance"`
	LedgerSum    decimal.Decimal `json:"ledger_sum"`
	Movements    int             `json:"movements"`
	Consistent   bool            `json:"consistent"`
}

func NewConsistencyResponse(t Totals) ConsistencyResponse {
	return ConsistencyResponse{
		EmployeeID:   t.EmployeeID,
		EmployeeName: t.EmployeeName,
		Balance:      t.Balance,
		LedgerSum:    t.Sum,
		Movements:    t.Movements,
		Consistent:   t.Consistent(),
	}
}

type ReconcileResponse struct {
	EmployeeID      string          `json:"employee_id"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	Balance         decimal.Decimal `json:"balance"`
	Correction      decimal.Decimal `json:"correction"`
}
