package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/bank"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/holiday"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type AttendanceServiceImpl struct {
	tx             database.Transactor
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	movementRepo   bank.MovementRepository
	calendar       holiday.Calendar
}

func NewAttendanceService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	movementRepo bank.MovementRepository,
	calendar holiday.Calendar,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:             tx,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		movementRepo:   movementRepo,
		calendar:       calendar,
	}
}

func (s *AttendanceServiceImpl) loadEmployee(ctx context.Context, id string) (employee.Employee, error) {
	if !validator.IsValidUUID(id) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return s.employeeRepo.GetByID(ctx, id)
}

func (s *AttendanceServiceImpl) loadActiveEmployee(ctx context.Context, id string) (employee.Employee, error) {
	emp, err := s.loadEmployee(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}
	if emp.IsArchived() {
		return employee.Employee{}, employee.ErrEmployeeArchived
	}
	return emp, nil
}

// lockLedger locks the employee bank for the caller transaction. Attendance
// is frozen while the balance diverges from the ledger.
func (s *AttendanceServiceImpl) lockLedger(txCtx context.Context, employeeID string) error {
	totals, err := s.movementRepo.LockTotals(txCtx, employeeID)
	if err != nil {
		return err
	}
	return totals.Check()
}

func monthBounds(year, month int) (time.Time, time.Time) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

func (s *AttendanceServiceImpl) toResponse(date time.Time, rec *attendance.Attendance) attendance.AttendanceResponse {
	fact := attendance.Classify(rec)
	resp := attendance.AttendanceResponse{
		Date:           date.Format(dateLayout),
		Weekday:        schedule.WeekdayLabel(date),
		Recorded:       rec != nil,
		Status:         fact.Status,
		Holiday:        s.calendar.Label(date),
		IsSunday:       date.Weekday() == time.Sunday,
		MorningHours:   fact.MorningHours,
		AfternoonHours: fact.AfternoonHours,
		ActualHours:    fact.ActualHours,
		MealVoucher:    fact.MealVoucher,
	}
	if rec != nil {
		resp.MorningStart = rec.MorningStart
		resp.MorningEnd = rec.MorningEnd
		resp.AfternoonStart = rec.AfternoonStart
		resp.AfternoonEnd = rec.AfternoonEnd
		resp.Comment = rec.Comment
	}
	if resp.Comment == "" && resp.Holiday != "" {
		resp.Comment = resp.Holiday
	}
	return resp
}

// GetMonth implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMonth(ctx context.Context, req attendance.MonthRequest) (attendance.MonthGridResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MonthGridResponse{}, err
	}

	emp, err := s.loadEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.MonthGridResponse{}, err
	}

	from, to := monthBounds(req.Year, req.Month)
	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, emp.ID, from, to)
	if err != nil {
		return attendance.MonthGridResponse{}, fmt.Errorf("failed to load attendances: %w", err)
	}

	byDate := make(map[string]attendance.Attendance, len(records))
	for _, rec := range records {
		byDate[rec.Date.Format(dateLayout)] = rec
	}

	grid := attendance.MonthGridResponse{
		EmployeeID: emp.ID,
		Year:       req.Year,
		Month:      req.Month,
		Days:       make([]attendance.AttendanceResponse, 0, to.Day()),
	}
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		var rec *attendance.Attendance
		if r, ok := byDate[date.Format(dateLayout)]; ok {
			rec = &r
		}
		grid.Days = append(grid.Days, s.toResponse(date, rec))
	}
	return grid, nil
}

// SaveDays implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) SaveDays(ctx context.Context, req attendance.UpsertAttendanceRequest) (attendance.UpsertAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.UpsertAttendanceResponse{}, err
	}

	emp, err := s.loadActiveEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.UpsertAttendanceResponse{}, err
	}

	saved := make([]attendance.Attendance, 0, len(req.Entries))
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.lockLedger(txCtx, emp.ID); err != nil {
			return err
		}
		for _, entry := range req.Entries {
			date, _ := validator.IsValidDate(entry.Date)
			rec, err := s.attendanceRepo.Upsert(txCtx, attendance.Attendance{
				EmployeeID:     emp.ID,
				Date:           date,
				MorningStart:   entry.MorningStart,
				MorningEnd:     entry.MorningEnd,
				AfternoonStart: entry.AfternoonStart,
				AfternoonEnd:   entry.AfternoonEnd,
				Status:         attendance.Status(entry.Status),
				Comment:        entry.Comment,
			})
			if err != nil {
				return err
			}
			saved = append(saved, rec)
		}
		return nil
	})
	if err != nil {
		return attendance.UpsertAttendanceResponse{}, err
	}

	resp := attendance.UpsertAttendanceResponse{
		Saved: len(saved),
		Days:  make([]attendance.AttendanceResponse, 0, len(saved)),
	}
	for i := range saved {
		resp.Days = append(resp.Days, s.toResponse(saved[i].Date, &saved[i]))
	}

	slog.Info("Attendance saved", "employee_id", emp.ID, "days", resp.Saved)
	return resp, nil
}

// FillEmptyDays implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) FillEmptyDays(ctx context.Context, req attendance.MonthRequest) (attendance.AutofillResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AutofillResponse{}, err
	}

	emp, err := s.loadActiveEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AutofillResponse{}, err
	}

	from, to := monthBounds(req.Year, req.Month)
	holidays := s.calendar.ForYear(req.Year)

	var recs []attendance.Attendance
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		rec := attendance.Attendance{
			EmployeeID: emp.ID,
			Date:       date,
			Status:     attendance.StatusNormal,
		}
		// A holiday keeps the template times, even on a Sunday.
		label, isHoliday := holidays[date.Format(dateLayout)]
		if isHoliday {
			rec.Comment = "Férié : " + label
		}
		if isHoliday || date.Weekday() != time.Sunday {
			day := schedule.Resolve(emp.Schedule, date)
			rec.MorningStart = day.MorningStart
			rec.MorningEnd = day.MorningEnd
			rec.AfternoonStart = day.AfternoonStart
			rec.AfternoonEnd = day.AfternoonEnd
		}
		recs = append(recs, rec)
	}

	var created int
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.lockLedger(txCtx, emp.ID); err != nil {
			return err
		}
		var err error
		created, err = s.attendanceRepo.BulkCreateMissing(txCtx, recs)
		return err
	})
	if err != nil {
		return attendance.AutofillResponse{}, err
	}

	slog.Info("Empty days filled from schedule", "employee_id", emp.ID, "year", req.Year, "month", req.Month, "created", created)
	return attendance.AutofillResponse{
		EmployeeID: emp.ID,
		Year:       req.Year,
		Month:      req.Month,
		Created:    created,
	}, nil
}

// DeleteDay implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteDay(ctx context.Context, employeeID string, date string) error {
	day, ok := validator.IsValidDate(date)
	if !ok {
		return validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}

	emp, err := s.loadActiveEmployee(ctx, employeeID)
	if err != nil {
		return err
	}

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.lockLedger(txCtx, emp.ID); err != nil {
			return err
		}
		return s.attendanceRepo.Delete(txCtx, emp.ID, day)
	})
	if err != nil {
		return err
	}
	slog.Info("Attendance removed", "employee_id", emp.ID, "date", date)
	return nil
}
