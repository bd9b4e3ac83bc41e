package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidStatus      = errors.New("invalid attendance status")
	ErrInvalidTime        = errors.New("invalid time format, use HH:MM")
	ErrInvalidPeriod      = errors.New("invalid period, year and month are required")
	ErrEmptyBatch         = errors.New("at least one day entry is required")
	ErrDuplicateDate      = errors.New("date appears more than once in the batch")
)
