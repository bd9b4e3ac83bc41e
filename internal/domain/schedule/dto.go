package schedule

import (
	"fmt"

	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
)

// Validate checks every day of both weeks. The field prefix locates the
// offending day, e.g. "schedule.odd[2]".
func (t Template) Validate(prefix string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if t.Even == nil {
		errs = append(errs, validator.ValidationError{
			Field:   prefix + ".even",
			Message: "even week is required",
		})
	} else {
		errs = append(errs, t.Even.validate(prefix+".even")...)
	}
	if t.Odd != nil {
		errs = append(errs, t.Odd.validate(prefix+".odd")...)
	}
	return errs
}

func (w Week) validate(prefix string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for i, day := range w {
		field := fmt.Sprintf("%s[%d]", prefix, i)
		if n := day.filledFields(); n != 0 && n != 4 {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: ErrPartialDaySchedule.Error(),
			})
			continue
		}
		for _, v := range []*string{day.MorningStart, day.MorningEnd, day.AfternoonStart, day.AfternoonEnd} {
			if v != nil && !clock.Valid(*v) {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: ErrInvalidTime.Error(),
				})
				break
			}
		}
	}
	return errs
}

type ResolveScheduleRequest struct {
	EmployeeID string
	Date       string
}

func (r *ResolveScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: ErrEmployeeIDRequired.Error(),
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: ErrInvalidDateFormat.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ResolvedDayResponse struct {
	EmployeeID       string      `json:"employee_id"`
	Date             string      `json:"date"`
	Weekday          string      `json:"weekday"`
	ISOWeek          int         `json:"iso_week"`
	Parity           Parity      `json:"parity"`
	Schedule         DaySchedule `json:"schedule"`
	TheoreticalHours float64     `json:"theoretical_hours"`
}

type TemplateResponse struct {
	EmployeeID    string   `json:"employee_id"`
	Alternating   bool     `json:"alternating"`
	Template      Template `json:"template"`
	EvenWeekHours float64  `json:"even_week_hours"`
	OddWeekHours  float64  `json:"odd_week_hours"`
}
