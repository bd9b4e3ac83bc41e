package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

const employeeColumns = `id, name, alternating, schedule, bank_balance, created_at, updated_at, archived_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	var rawSchedule []byte
	err := row.Scan(
		&emp.ID, &emp.Name, &emp.Alternating, &rawSchedule, &emp.BankBalance,
		&emp.CreatedAt, &emp.UpdatedAt, &emp.ArchivedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	if len(rawSchedule) > 0 {
		if err := json.Unmarshal(rawSchedule, &emp.Schedule); err != nil {
			return employee.Employee{}, fmt.Errorf("decode schedule of employee %s: %w", emp.ID, err)
		}
	}
	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	found, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", id, err)
	}
	return found, nil
}

// ExistsByName implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ExistsByName(ctx context.Context, name string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, e.db)

	var exists bool
	var err error
	if excludeID != nil {
		err = q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE name = $1 AND id <> $2)`, name, *excludeID).Scan(&exists)
	} else {
		err = q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE name = $1)`, name).Scan(&exists)
	}
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	if newEmployee.ID == "" {
		newEmployee.ID = uuid.Must(uuid.NewV7()).String()
	}
	rawSchedule, err := json.Marshal(newEmployee.Schedule)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("encode schedule: %w", err)
	}

	query := `
		INSERT INTO employees (id, name, alternating, schedule, bank_balance)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.ID, newEmployee.Name, newEmployee.Alternating, rawSchedule, newEmployee.BankBalance,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmployeeNameExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// Update implements employee.EmployeeRepository. The bank balance is owned by
// the ledger and never written here.
func (e *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	rawSchedule, err := json.Marshal(emp.Schedule)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("encode schedule: %w", err)
	}

	query := `
		UPDATE employees
		SET name = $1, alternating = $2, schedule = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + employeeColumns

	updated, err := scanEmployee(q.QueryRow(ctx, query, emp.Name, emp.Alternating, rawSchedule, emp.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmployeeNameExists
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee %s: %w", emp.ID, err)
	}
	return updated, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, includeArchived bool) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees`
	if !includeArchived {
		query += ` WHERE archived_at IS NULL`
	}
	query += ` ORDER BY name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// SetArchived implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) SetArchived(ctx context.Context, id string, archived bool) error {
	q := GetQuerier(ctx, e.db)

	query := `UPDATE employees SET archived_at = NULL, updated_at = NOW() WHERE id = $1`
	if archived {
		query = `UPDATE employees SET archived_at = NOW(), updated_at = NOW() WHERE id = $1`
	}

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to archive employee %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Delete implements employee.EmployeeRepository. Attendance and ledger rows
// cascade.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
