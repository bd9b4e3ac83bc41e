package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// ListByEmployeeAndRange returns the records of an employee between from and to, inclusive
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)

	// GetByEmployeeAndDate returns nil when the day has no record
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// Upsert inserts or replaces the record of (employee, date)
	Upsert(ctx context.Context, rec Attendance) (Attendance, error)

	// BulkCreateMissing inserts records, skipping days that already have one
	BulkCreateMissing(ctx context.Context, recs []Attendance) (int, error)

	// Delete removes the record of (employee, date)
	Delete(ctx context.Context, employeeID string, date time.Time) error
}
