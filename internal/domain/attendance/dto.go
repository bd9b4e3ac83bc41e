package attendance

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
)

type DayEntryRequest struct {
	Date           string  `json:"date"`
	MorningStart   *string `json:"morning_start,omitempty"`
	MorningEnd     *string `json:"morning_end,omitempty"`
	AfternoonStart *string `json:"afternoon_start,omitempty"`
	AfternoonEnd   *string `json:"afternoon_end,omitempty"`
	Status         string  `json:"status"`
	Comment        string  `json:"comment"`
}

type UpsertAttendanceRequest struct {
	EmployeeID string            `json:"-"`
	Entries    []DayEntryRequest `json:"entries"`
}

// Validate normalizes blank times to nil and an empty status to normal
// before checking the batch.
func (r *UpsertAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if len(r.Entries) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "entries",
			Message: ErrEmptyBatch.Error(),
		})
	}

	seen := make(map[string]bool, len(r.Entries))
	for i := range r.Entries {
		e := &r.Entries[i]
		field := fmt.Sprintf("entries[%d]", i)

		e.MorningStart = clock.Normalize(e.MorningStart)
		e.MorningEnd = clock.Normalize(e.MorningEnd)
		e.AfternoonStart = clock.Normalize(e.AfternoonStart)
		e.AfternoonEnd = clock.Normalize(e.AfternoonEnd)
		e.Status = strings.TrimSpace(e.Status)
		if e.Status == "" {
			e.Status = string(StatusNormal)
		}

		if _, ok := validator.IsValidDate(e.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".date",
				Message: "date must be in YYYY-MM-DD format",
			})
		} else if seen[e.Date] {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".date",
				Message: ErrDuplicateDate.Error(),
			})
		}
		seen[e.Date] = true

		if !validator.IsInSlice(e.Status, StatusValues) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".status",
				Message: "status must be one of: " + strings.Join(StatusValues, ", "),
			})
		}

		times := map[string]*string{
			"morning_start":   e.MorningStart,
			"morning_end":     e.MorningEnd,
			"afternoon_start": e.AfternoonStart,
			"afternoon_end":   e.AfternoonEnd,
		}
		for _, name := range []string{"morning_start", "morning_end", "afternoon_start", "afternoon_end"} {
			if v := times[name]; v != nil && !clock.Valid(*v) {
				errs = append(errs, validator.ValidationError{
					Field:   field + "." + name,
					Message: ErrInvalidTime.Error(),
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MonthRequest struct {
	EmployeeID string
	Year       int
	Month      int
}

func (r *MonthRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	errs = append(errs, validator.ValidatePeriod(r.Year, r.Month)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	Date           string  `json:"date"`
	Weekday        string  `json:"weekday"`
	Recorded       bool    `json:"recorded"`
	Status         Status  `json:"status"`
	MorningStart   *string `json:"morning_start"`
	MorningEnd     *string `json:"morning_end"`
	AfternoonStart *string `json:"afternoon_start"`
	AfternoonEnd   *string `json:"afternoon_end"`
	Comment        string  `json:"comment"`
	Holiday        string  `json:"holiday,omitempty"`
	IsSunday       bool    `json:"is_sunday"`
	MorningHours   float64 `json:"morning_hours"`
	AfternoonHours float64 `json:"afternoon_hours"`
	ActualHours    float64 `json:"actual_hours"`
	MealVoucher    bool    `json:"meal_voucher"`
}

type MonthGridResponse struct {
	EmployeeID string               `json:"employee_id"`
	Year       int                  `json:"year"`
	Month      int                  `json:"month"`
	Days       []AttendanceResponse `json:"days"`
}

type UpsertAttendanceResponse struct {
	Saved int                  `json:"saved"`
	Days  []AttendanceResponse `json:"days"`
}

type AutofillResponse struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Created    int    `json:"created"`
}
