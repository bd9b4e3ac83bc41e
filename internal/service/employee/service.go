package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/bank"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	movementRepo bank.MovementRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, movementRepo bank.MovementRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		movementRepo: movementRepo,
	}
}

// checkLedger refuses edits while the bank balance diverges from the
// ledger. Hard delete stays allowed.
func (s *EmployeeServiceImpl) checkLedger(ctx context.Context, id string) error {
	totals, err := s.movementRepo.GetTotals(ctx, id)
	if err != nil {
		return err
	}
	return totals.Check()
}

func (s *EmployeeServiceImpl) load(ctx context.Context, id string) (employee.Employee, error) {
	if !validator.IsValidUUID(id) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return s.employeeRepo.GetByID(ctx, id)
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.load(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(emp), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	name := strings.TrimSpace(req.Name)
	exists, err := s.employeeRepo.ExistsByName(ctx, name, nil)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee name: %w", err)
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNameExists
	}

	tpl := schedule.DefaultTemplate()
	if req.Schedule != nil {
		tpl = *req.Schedule
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		Name:        name,
		Alternating: req.Alternating,
		Schedule:    tpl.Normalized(req.Alternating),
		BankBalance: decimal.Zero,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee registered", "employee_id", created.ID, "name", created.Name)
	return employee.NewEmployeeResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	current, err := s.load(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if current.IsArchived() {
		return employee.EmployeeResponse{}, employee.ErrEmployeeArchived
	}
	if err := s.checkLedger(ctx, current.ID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name != current.Name {
			exists, err := s.employeeRepo.ExistsByName(ctx, name, &current.ID)
			if err != nil {
				return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee name: %w", err)
			}
			if exists {
				return employee.EmployeeResponse{}, employee.ErrEmployeeNameExists
			}
		}
		current.Name = name
	}
	if req.Alternating != nil {
		current.Alternating = *req.Alternating
	}
	if req.Schedule != nil {
		current.Schedule = *req.Schedule
	}
	current.Schedule = current.Schedule.Normalized(current.Alternating)

	updated, err := s.employeeRepo.Update(ctx, current)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee updated", "employee_id", updated.ID)
	return employee.NewEmployeeResponse(updated), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, filter.IncludeArchived)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.NewEmployeeResponse(emp))
	}
	return responses, nil
}

// ArchiveEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ArchiveEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	current, err := s.load(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if current.IsArchived() {
		return employee.EmployeeResponse{}, employee.ErrEmployeeArchived
	}
	if err := s.checkLedger(ctx, id); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.SetArchived(ctx, id, true); err != nil {
		return employee.EmployeeResponse{}, err
	}
	slog.Info("Employee archived", "employee_id", id)
	return s.GetEmployee(ctx, id)
}

// RestoreEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) RestoreEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	current, err := s.load(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !current.IsArchived() {
		return employee.EmployeeResponse{}, employee.ErrEmployeeAlreadyActive
	}
	if err := s.checkLedger(ctx, id); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.SetArchived(ctx, id, false); err != nil {
		return employee.EmployeeResponse{}, err
	}
	slog.Info("Employee restored", "employee_id", id)
	return s.GetEmployee(ctx, id)
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Warn("Employee deleted with its attendance and ledger", "employee_id", id)
	return nil
}
