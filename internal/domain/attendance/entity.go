package attendance

import (
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/clock"
)

type Status string

const (
	StatusNormal             Status = "normal"
	StatusLeave              Status = "leave"
	StatusSickLeave          Status = "sick_leave"
	StatusUnjustifiedAbsence Status = "unjustified_absence"
	StatusRecovery           Status = "recovery"
)

var StatusValues = []string{
	string(StatusNormal),
	string(StatusLeave),
	string(StatusSickLeave),
	string(StatusUnjustifiedAbsence),
	string(StatusRecovery),
}

// IsAbsence reports the statuses credited at theoretical hours.
func (s Status) IsAbsence() bool {
	return s != StatusNormal && s != StatusRecovery
}

// Attendance is the record of one employee-day. Times are kept verbatim as
// entered, unparseable values count as absent.
type Attendance struct {
	ID             string
	EmployeeID     string
	Date           time.Time
	MorningStart   *string
	MorningEnd     *string
	AfternoonStart *string
	AfternoonEnd   *string
	Status         Status
	Comment        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DayFact is the classified view of one day.
type DayFact struct {
	Status         Status
	MorningHours   float64
	AfternoonHours float64
	ActualHours    float64
	MealVoucher    bool
}

// Classify derives the facts of a day. A nil record is an implicit normal day
// with nothing worked.
func Classify(rec *Attendance) DayFact {
	if rec == nil {
		return DayFact{Status: StatusNormal}
	}

	morning := clock.HalfDayHours(rec.MorningStart, rec.MorningEnd)
	afternoon := clock.HalfDayHours(rec.AfternoonStart, rec.AfternoonEnd)
	return DayFact{
		Status:         rec.Status,
		MorningHours:   morning,
		AfternoonHours: afternoon,
		ActualHours:    morning + afternoon,
		MealVoucher:    MealVoucherEligible(rec.Status, morning, afternoon),
	}
}

// MealVoucherEligible requires a normal day with work on both half-days.
func MealVoucherEligible(status Status, morningHours, afternoonHours float64) bool {
	return status == StatusNormal && morningHours > 0 && afternoonHours > 0
}
