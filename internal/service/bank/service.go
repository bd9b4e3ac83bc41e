package bank

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/bank"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
)

// SystemActor is recorded on movements written without an authenticated user.
const SystemActor = "system"

type BankServiceImpl struct {
	tx             database.Transactor
	employeeRepo   employee.EmployeeRepository
	movementRepo   bank.MovementRepository
	payrollService payroll.PayrollService
	now            func() time.Time
}

func NewBankService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	movementRepo bank.MovementRepository,
	payrollService payroll.PayrollService,
) bank.BankService {
	return &BankServiceImpl{
		tx:             tx,
		employeeRepo:   employeeRepo,
		movementRepo:   movementRepo,
		payrollService: payrollService,
		now:            time.Now,
	}
}

// actorFromContext returns the username claim of the access token.
func actorFromContext(ctx context.Context) string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return SystemActor
	}
	if username, ok := claims["username"].(string); ok && username != "" {
		return username
	}
	return SystemActor
}

func (s *BankServiceImpl) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *BankServiceImpl) loadActiveEmployee(ctx context.Context, id string) (employee.Employee, error) {
	if !validator.IsValidUUID(id) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}
	if emp.IsArchived() {
		return employee.Employee{}, employee.ErrEmployeeArchived
	}
	return emp, nil
}

func validateMovement(m bank.Movement) error {
	if m.Amount.IsZero() {
		return bank.ErrInvalidAmount
	}
	if validator.IsEmpty(m.Reason) {
		return bank.ErrReasonRequired
	}
	if !validator.IsInSlice(string(m.Kind), bank.KindValues) {
		return bank.ErrInvalidKind
	}
	if !validator.IsValidUUID(m.EmployeeID) {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// appendLocked writes m on a ledger already locked by the caller transaction.
func (s *BankServiceImpl) appendLocked(txCtx context.Context, totals bank.Totals, m bank.Movement) (bank.Movement, decimal.Decimal, error) {
	if err := totals.Check(); err != nil {
		return bank.Movement{}, decimal.Zero, err
	}

	created, err := s.movementRepo.Insert(txCtx, m)
	if err != nil {
		return bank.Movement{}, decimal.Zero, err
	}
	balance, err := s.movementRepo.AddToBalance(txCtx, created.EmployeeID, created.Amount)
	if err != nil {
		return bank.Movement{}, decimal.Zero, err
	}
	return created, balance, nil
}

// Append implements bank.BankService.
func (s *BankServiceImpl) Append(ctx context.Context, m bank.Movement) (bank.Movement, decimal.Decimal, error) {
	m.Amount = bank.RoundAmount(m.Amount)
	if err := validateMovement(m); err != nil {
		return bank.Movement{}, decimal.Zero, err
	}
	if m.Actor == "" {
		m.Actor = actorFromContext(ctx)
	}
	if m.Date.IsZero() {
		m.Date = s.today()
	}

	var created bank.Movement
	var balance decimal.Decimal
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		totals, err := s.movementRepo.LockTotals(txCtx, m.EmployeeID)
		if err != nil {
			return err
		}
		created, balance, err = s.appendLocked(txCtx, totals, m)
		return err
	})
	if err != nil {
		var inconsistent *bank.ConsistencyError
		if errors.As(err, &inconsistent) {
			slog.Error("Ledger append refused",
				"employee_id", inconsistent.EmployeeID,
				"balance", inconsistent.Balance.String(),
				"ledger_sum", inconsistent.Sum.String(),
			)
		}
		return bank.Movement{}, decimal.Zero, err
	}

	slog.Info("Bank movement appended",
		"employee_id", created.EmployeeID,
		"amount", created.Amount.String(),
		"kind", created.Kind,
		"actor", created.Actor,
		"balance", balance.String(),
	)
	return created, balance, nil
}

// AppendMovement implements bank.BankService.
func (s *BankServiceImpl) AppendMovement(ctx context.Context, req bank.AppendMovementRequest) (bank.AppendMovementResponse, error) {
	if err := req.Validate(); err != nil {
		return bank.AppendMovementResponse{}, err
	}
	if _, err := s.loadActiveEmployee(ctx, req.EmployeeID); err != nil {
		return bank.AppendMovementResponse{}, err
	}

	date := s.today()
	if req.Date != "" {
		date, _ = validator.IsValidDate(req.Date)
	}

	created, balance, err := s.Append(ctx, bank.Movement{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Amount:     req.Amount,
		Reason:     req.Reason,
		Kind:       bank.KindManual,
		Actor:      actorFromContext(ctx),
	})
	if err != nil {
		return bank.AppendMovementResponse{}, err
	}

	return bank.AppendMovementResponse{
		Movement: bank.NewMovementResponse(created),
		Balance:  balance,
	}, nil
}

// TransferOvertime implements bank.BankService. The payable figure is
// computed under the ledger lock so two transfers cannot both pass the cap.
func (s *BankServiceImpl) TransferOvertime(ctx context.Context, req bank.TransferOvertimeRequest) (bank.TransferOvertimeResponse, error) {
	if err := req.Validate(); err != nil {
		return bank.TransferOvertimeResponse{}, err
	}
	if _, err := s.loadActiveEmployee(ctx, req.EmployeeID); err != nil {
		return bank.TransferOvertimeResponse{}, err
	}

	hours := bank.RoundAmount(req.Hours)
	lastDay := time.Date(req.Year, time.Month(req.Month)+1, 0, 0, 0, 0, 0, time.UTC)
	m := bank.Movement{
		EmployeeID: req.EmployeeID,
		Date:       lastDay,
		Amount:     hours,
		Reason:     bank.MonthTag(req.Year, req.Month),
		Kind:       bank.KindAuto,
		Actor:      actorFromContext(ctx),
	}

	var resp bank.TransferOvertimeResponse
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		totals, err := s.movementRepo.LockTotals(txCtx, req.EmployeeID)
		if err != nil {
			return err
		}

		stats, err := s.payrollService.ComputeMonthlyStatistics(txCtx, payroll.StatisticsRequest{
			EmployeeID: req.EmployeeID,
			Year:       req.Year,
			Month:      req.Month,
		})
		if err != nil {
			return err
		}

		payable := bank.RoundAmount(decimal.NewFromFloat(stats.PayableOvertime))
		if !payable.IsPositive() {
			return bank.ErrNothingToTransfer
		}
		if hours.GreaterThan(payable) {
			return fmt.Errorf("%s requested, %s payable: %w", hours.String(), payable.String(), bank.ErrTransferExceedsPayable)
		}

		created, balance, err := s.appendLocked(txCtx, totals, m)
		if err != nil {
			return err
		}
		resp = bank.TransferOvertimeResponse{
			Movement:         bank.NewMovementResponse(created),
			Balance:          balance,
			RemainingPayable: payable.Sub(hours),
		}
		return nil
	})
	if err != nil {
		return bank.TransferOvertimeResponse{}, err
	}

	slog.Info("Overtime transferred to bank",
		"employee_id", req.EmployeeID,
		"period", fmt.Sprintf("%04d-%02d", req.Year, req.Month),
		"hours", hours.String(),
		"actor", m.Actor,
	)
	return resp, nil
}

// SumForMonthTag implements bank.BankService.
func (s *BankServiceImpl) SumForMonthTag(ctx context.Context, employeeID string, year, month int) (decimal.Decimal, error) {
	if errs := validator.ValidatePeriod(year, month); len(errs) > 0 {
		return decimal.Zero, errs
	}
	if !validator.IsValidUUID(employeeID) {
		return decimal.Zero, employee.ErrEmployeeNotFound
	}
	return s.movementRepo.SumByReason(ctx, employeeID, bank.MonthTag(year, month))
}

// ListMovements implements bank.BankService.
func (s *BankServiceImpl) ListMovements(ctx context.Context, employeeID string) ([]bank.MovementResponse, error) {
	if !validator.IsValidUUID(employeeID) {
		return nil, employee.ErrEmployeeNotFound
	}
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	movements, err := s.movementRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]bank.MovementResponse, 0, len(movements))
	for _, m := range movements {
		responses = append(responses, bank.NewMovementResponse(m))
	}
	return responses, nil
}

// VerifyConsistency implements bank.BankService.
func (s *BankServiceImpl) VerifyConsistency(ctx context.Context, employeeID string) (bank.ConsistencyResponse, error) {
	if !validator.IsValidUUID(employeeID) {
		return bank.ConsistencyResponse{}, employee.ErrEmployeeNotFound
	}

	totals, err := s.movementRepo.GetTotals(ctx, employeeID)
	if err != nil {
		return bank.ConsistencyResponse{}, err
	}
	return bank.NewConsistencyResponse(totals), totals.Check()
}

// AuditAll implements bank.BankService.
func (s *BankServiceImpl) AuditAll(ctx context.Context) ([]bank.ConsistencyResponse, error) {
	all, err := s.movementRepo.ListTotals(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]bank.ConsistencyResponse, 0, len(all))
	var errs []error
	for _, totals := range all {
		reports = append(reports, bank.NewConsistencyResponse(totals))
		if err := totals.Check(); err != nil {
			errs = append(errs, err)
		}
	}
	return reports, errors.Join(errs...)
}

// Reconcile implements bank.BankService.
func (s *BankServiceImpl) Reconcile(ctx context.Context, employeeID string) (bank.ReconcileResponse, error) {
	if !validator.IsValidUUID(employeeID) {
		return bank.ReconcileResponse{}, employee.ErrEmployeeNotFound
	}

	var resp bank.ReconcileResponse
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		totals, err := s.movementRepo.LockTotals(txCtx, employeeID)
		if err != nil {
			return err
		}

		resp = bank.ReconcileResponse{
			EmployeeID:      employeeID,
			PreviousBalance: totals.Balance,
			Balance:         totals.Sum,
			Correction:      totals.Sum.Sub(totals.Balance),
		}
		if totals.Consistent() {
			return nil
		}
		return s.movementRepo.SetBalance(txCtx, employeeID, totals.Sum)
	})
	if err != nil {
		return bank.ReconcileResponse{}, err
	}

	if !resp.Correction.IsZero() {
		slog.Warn("Bank balance reconciled on ledger",
			"employee_id", employeeID,
			"previous_balance", resp.PreviousBalance.String(),
			"balance", resp.Balance.String(),
			"correction", resp.Correction.String(),
			"actor", actorFromContext(ctx),
		)
	}
	return resp, nil
}
