package schedule

import "context"

type ScheduleService interface {
	// GetTemplate returns the alternating template of an employee
	GetTemplate(ctx context.Context, employeeID string) (TemplateResponse, error)

	// ResolveDay returns the theoretical schedule of an employee on a date
	ResolveDay(ctx context.Context, req ResolveScheduleRequest) (ResolvedDayResponse, error)
}
