package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// GetEmployee retrieves a single employee by ID
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// CreateEmployee registers an employee, the name must be unique
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee changes name, alternation or schedule template
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// ListEmployees lists employees, archived ones on request
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, error)

	// ArchiveEmployee hides an employee while keeping its history
	ArchiveEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// RestoreEmployee reverts an archive
	RestoreEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// DeleteEmployee removes the employee with its attendance and ledger
	DeleteEmployee(ctx context.Context, id string) error
}
