package schedule

import (
	"context"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
)

type scheduleServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewScheduleService(employeeRepo employee.EmployeeRepository) schedule.ScheduleService {
	return &scheduleServiceImpl{
		employeeRepo: employeeRepo,
	}
}

func (s *scheduleServiceImpl) loadEmployee(ctx context.Context, id string) (employee.Employee, error) {
	if !validator.IsValidUUID(id) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return s.employeeRepo.GetByID(ctx, id)
}

// GetTemplate implements schedule.ScheduleService.
func (s *scheduleServiceImpl) GetTemplate(ctx context.Context, employeeID string) (schedule.TemplateResponse, error) {
	emp, err := s.loadEmployee(ctx, employeeID)
	if err != nil {
		return schedule.TemplateResponse{}, err
	}

	tpl := emp.Schedule.Normalized(emp.Alternating)
	return schedule.TemplateResponse{
		EmployeeID:    emp.ID,
		Alternating:   emp.Alternating,
		Template:      tpl,
		EvenWeekHours: tpl.Even.Hours(),
		OddWeekHours:  tpl.Odd.Hours(),
	}, nil
}

// ResolveDay implements schedule.ScheduleService.
func (s *scheduleServiceImpl) ResolveDay(ctx context.Context, req schedule.ResolveScheduleRequest) (schedule.ResolvedDayResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ResolvedDayResponse{}, err
	}

	emp, err := s.loadEmployee(ctx, req.EmployeeID)
	if err != nil {
		return schedule.ResolvedDayResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return schedule.ResolvedDayResponse{}, schedule.ErrInvalidDateFormat
	}

	day := schedule.Resolve(emp.Schedule, date)
	_, week := date.ISOWeek()
	return schedule.ResolvedDayResponse{
		EmployeeID:       emp.ID,
		Date:             req.Date,
		Weekday:          schedule.WeekdayLabel(date),
		ISOWeek:          week,
		Parity:           schedule.ParityOf(date),
		Schedule:         day,
		TheoreticalHours: day.Hours(),
	}, nil
}
