package schedule

import "errors"

var (
	ErrPartialDaySchedule = errors.New("a day schedule must set all four times or none")
	ErrInvalidTime        = errors.New("invalid time format, use HH:MM")
	ErrEmployeeIDRequired = errors.New("employee ID is required")
	ErrInvalidDateFormat  = errors.New("invalid date format, use YYYY-MM-DD")
)
