package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/bank"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/holiday"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	movementRepo   bank.MovementRepository
	calendar       holiday.Calendar
}

func NewPayrollService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	movementRepo bank.MovementRepository,
	calendar holiday.Calendar,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		movementRepo:   movementRepo,
		calendar:       calendar,
	}
}

// ComputeMonthlyStatistics implements payroll.PayrollService.
func (s *PayrollServiceImpl) ComputeMonthlyStatistics(ctx context.Context, req payroll.StatisticsRequest) (payroll.MonthlyStatistics, error) {
	if err := req.Validate(); err != nil {
		return payroll.MonthlyStatistics{}, err
	}
	if !validator.IsValidUUID(req.EmployeeID) {
		return payroll.MonthlyStatistics{}, employee.ErrEmployeeNotFound
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.MonthlyStatistics{}, err
	}
	return s.compute(ctx, emp, req.Year, req.Month)
}

func (s *PayrollServiceImpl) compute(ctx context.Context, emp employee.Employee, year, month int) (payroll.MonthlyStatistics, error) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, emp.ID, first, last)
	if err != nil {
		return payroll.MonthlyStatistics{}, fmt.Errorf("failed to load attendances of %s: %w", emp.ID, err)
	}
	byDate := make(map[string]attendance.Attendance, len(records))
	for _, rec := range records {
		byDate[rec.Date.Format(dateLayout)] = rec
	}

	banked, err := s.movementRepo.SumByReason(ctx, emp.ID, bank.MonthTag(year, month))
	if err != nil {
		return payroll.MonthlyStatistics{}, err
	}

	stats, err := Calculate(MonthInput{
		Year:          year,
		Month:         month,
		Template:      emp.Schedule,
		Records:       byDate,
		AlreadyBanked: banked.InexactFloat64(),
		Holidays:      s.calendar.ForYear(year),
	})
	if err != nil {
		return payroll.MonthlyStatistics{}, err
	}

	stats.EmployeeID = emp.ID
	stats.EmployeeName = emp.Name
	stats.BankBalance = emp.BankBalance
	stats.ProjectedBankBalance = emp.BankBalance.Add(bank.RoundAmount(decimal.NewFromFloat(stats.DeltaBank)))
	return stats, nil
}

// ComputeCompanySummary implements payroll.PayrollService.
func (s *PayrollServiceImpl) ComputeCompanySummary(ctx context.Context, req payroll.SummaryRequest) (payroll.CompanySummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.CompanySummaryResponse{}, err
	}

	employees, err := s.employeeRepo.List(ctx, false)
	if err != nil {
		return payroll.CompanySummaryResponse{}, err
	}

	summary := payroll.CompanySummaryResponse{
		Year:      req.Year,
		Month:     req.Month,
		Employees: make([]payroll.SummaryLine, 0, len(employees)),
	}
	for _, emp := range employees {
		stats, err := s.compute(ctx, emp, req.Year, req.Month)
		if err != nil {
			return payroll.CompanySummaryResponse{}, err
		}
		summary.Employees = append(summary.Employees, payroll.NewSummaryLine(stats))
	}
	return summary, nil
}
