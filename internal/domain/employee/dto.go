package employee

import (
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const maxNameLength = 100

func validateName(name string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if validator.IsEmpty(name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: ErrEmployeeNameRequired.Error(),
		})
	} else if !validator.MaxLength(name, maxNameLength) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: ErrEmployeeNameTooLong.Error(),
		})
	}
	return errs
}

type CreateEmployeeRequest struct {
	Name        string             `json:"name"`
	Alternating bool               `json:"alternating"`
	Schedule    *schedule.Template `json:"schedule,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	errs := validateName(r.Name)
	if r.Schedule != nil {
		errs = append(errs, r.Schedule.Validate("schedule")...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID          string             `json:"-"`
	Name        *string            `json:"name,omitempty"`
	Alternating *bool              `json:"alternating,omitempty"`
	Schedule    *schedule.Template `json:"schedule,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Name != nil {
		errs = append(errs, validateName(*r.Name)...)
	}
	if r.Schedule != nil {
		errs = append(errs, r.Schedule.Validate("schedule")...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeFilter struct {
	IncludeArchived bool
}

type EmployeeResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Alternating bool              `json:"alternating"`
	Schedule    schedule.Template `json:"schedule"`
	BankBalance decimal.Decimal   `json:"bank_balance"`
	Archived    bool              `json:"archived"`
	ArchivedAt  *time.Time        `json:"archived_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		Name:        e.Name,
		Alternating: e.Alternating,
		Schedule:    e.Schedule,
		BankBalance: e.BankBalance,
		Archived:    e.IsArchived(),
		ArchivedAt:  e.ArchivedAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
