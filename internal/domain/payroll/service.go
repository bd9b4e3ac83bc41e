package payroll

import "context"

type PayrollService interface {
	// ComputeMonthlyStatistics derives the monthly statement of an employee.
	// Read-only, two calls on unchanged data return equal results.
	ComputeMonthlyStatistics(ctx context.Context, req StatisticsRequest) (MonthlyStatistics, error)

	// ComputeCompanySummary returns one line per active employee
	ComputeCompanySummary(ctx context.Context, req SummaryRequest) (CompanySummaryResponse, error)
}
