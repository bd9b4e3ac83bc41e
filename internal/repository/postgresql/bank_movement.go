package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/bank"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type bankMovementRepositoryImpl struct {
	db *database.DB
}

func NewBankMovementRepository(db *database.DB) bank.MovementRepository {
	return &bankMovementRepositoryImpl{db: db}
}

const totalsQuery = `
	SELECT e.id, e.name, e.bank_balance,
		COALESCE((SELECT SUM(m.amount) FROM bank_movements m WHERE m.employee_id = e.id), 0),
		(SELECT COUNT(*) FROM bank_movements m WHERE m.employee_id = e.id)
	FROM employees e
`

func scanTotals(row pgx.Row) (bank.Totals, error) {
	var t bank.Totals
	err := row.Scan(&t.EmployeeID, &t.EmployeeName, &t.Balance, &t.Sum, &t.Movements)
	return t, err
}

func (r *bankMovementRepositoryImpl) getTotals(ctx context.Context, employeeID string, lock bool) (bank.Totals, error) {
	q := GetQuerier(ctx, r.db)

	query := totalsQuery + ` WHERE e.id = $1`
	if lock {
		query += ` FOR UPDATE OF e`
	}

	t, err := scanTotals(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bank.Totals{}, employee.ErrEmployeeNotFound
		}
		return bank.Totals{}, fmt.Errorf("failed to read ledger totals of %s: %w", employeeID, err)
	}
	return t, nil
}

// LockTotals implements bank.MovementRepository.
func (r *bankMovementRepositoryImpl) LockTotals(ctx context.Context, employeeID string) (bank.Totals, error) {
	return r.getTotals(ctx, employeeID, true)
}

// GetTotals implements bank.MovementRepository.
func (r *bankMovementRepositoryImpl) GetTotals(ctx context.Context, employeeID string) (bank.Totals, error) {
	return r.getTotals(ctx, employeeID, false)
}

// ListTotals implements bank.MovementRepository.
func (r *bankMovementRepositoryImpl) ListTotals(ctx context.Context) ([]bank.Totals, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, totalsQuery+` ORDER BY e.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger totals: %w", err)
	}
	defer rows.Close()

	var totals []bank.Totals
	for rows.Next() {
		t, err := scanTotals(rows)
		if err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return totals, nil
}

// Insert implements bank.MovementRepository.
func (r *bankMovementRepositoryImpl) Insert(ctx context.Context, m bank.Movement) (bank.Movement, error) {
	q := GetQuerier(ctx, r.db)

	if m.ID == "" {
		m.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO bank_movements (id, employee_id, date, amount, reason, kind, actor)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING amount, created_at
	`

	err := q.QueryRow(ctx, query,
		m.ID, m.EmployeeID, m.Date, m.Amount, m.Reason, string(m.Kind), m.Actor,
	).Scan(&m.Amount, &m.CreatedAt)
	if err != nil {
		return bank.Movement{}, fmt.Errorf("failed to insert bank movement: %w", err)
	}
	return m, nil
}

// AddToBalance implements bank.MovementRepository.
func (r *bankMovementRepositoryImpl) AddToBalance(ctx context.Context, employeeID string, amount decimal.Decimal) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET bank_balance = bank_balance + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING bank_balance
	`

	var balance decimal.Decimal
	if err := q.QueryRow(ctx, query, amount, employeeID).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, employee.ErrEmployeeNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to update bank balance of %s: %w", employeeID, err)
	}
	return balance, nil
}

// SetBalance implements bank.MovementRepository.
func (r *bankMovementRepositoryImpl) SetBalance(ctx context.Context, employeeID string, balance decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET bank_balance = $1, updated_at = NOW() WHERE id = $2`, balance, employeeID)
	if err != nil {
		return fmt.Errorf("failed to set bank balance of %s: %w", employeeID, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// SumByReason implements bank.MovementRepository.
func (r *bankMovementRepositoryImpl) SumByReason(ctx context.Context, employeeID string, tag string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM bank_movements
		WHERE employee_id = $1 AND strpos(reason, $2) > 0
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, tag).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum bank movements: %w", err)
	}
	return total, nil
}

// ListByEmployee implements bank.MovementRepository.
func (r *bankMovementRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]bank.Movement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, amount, reason, kind, actor, created_at
		FROM bank_movements
		WHERE employee_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank movements: %w", err)
	}
	defer rows.Close()

	var movements []bank.Movement
	for rows.Next() {
		var m bank.Movement
		var kind string
		if err := rows.Scan(&m.ID, &m.EmployeeID, &m.Date, &m.Amount, &m.Reason, &kind, &m.Actor, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Kind = bank.Kind(kind)
		movements = append(movements, m)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movements, nil
}
