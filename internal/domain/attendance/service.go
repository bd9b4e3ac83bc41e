package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// GetMonth returns every calendar day of a month, recorded or implicit
	GetMonth(ctx context.Context, req MonthRequest) (MonthGridResponse, error)

	// SaveDays upserts a batch of day entries
	SaveDays(ctx context.Context, req UpsertAttendanceRequest) (UpsertAttendanceResponse, error)

	// FillEmptyDays writes the theoretical schedule on days without a record
	FillEmptyDays(ctx context.Context, req MonthRequest) (AutofillResponse, error)

	// DeleteDay removes a day entry, the day becomes implicit again
	DeleteDay(ctx context.Context, employeeID string, date string) error
}
