package schedule

import (
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/clock"
)

// DaySchedule is the theoretical working pattern of one weekday.
// Either all four times are set or none is.
type DaySchedule struct {
	MorningStart   *string `json:"ms"`
	MorningEnd     *string `json:"me"`
	AfternoonStart *string `json:"as"`
	AfternoonEnd   *string `json:"ae"`
}

// Hours is the theoretical duration of the day.
func (d DaySchedule) Hours() float64 {
	return clock.DayHours(d.MorningStart, d.MorningEnd, d.AfternoonStart, d.AfternoonEnd)
}

// IsEmpty reports a non-working day.
func (d DaySchedule) IsEmpty() bool {
	return d.MorningStart == nil && d.MorningEnd == nil && d.AfternoonStart == nil && d.AfternoonEnd == nil
}

func (d DaySchedule) filledFields() int {
	n := 0
	for _, v := range []*string{d.MorningStart, d.MorningEnd, d.AfternoonStart, d.AfternoonEnd} {
		if v != nil {
			n++
		}
	}
	return n
}

// Week holds one DaySchedule per weekday, Monday first.
type Week [7]DaySchedule

// Hours is the theoretical total of the week.
func (w Week) Hours() float64 {
	var total float64
	for _, d := range w {
		total += d.Hours()
	}
	return total
}

// Template is a two-week alternating schedule. Odd may be nil, in which case
// the even week applies to every week.
type Template struct {
	Even *Week `json:"even,omitempty"`
	Odd  *Week `json:"odd,omitempty"`
}

type Parity string

const (
	ParityEven Parity = "even"
	ParityOdd  Parity = "odd"
)

// Weekday indexes Monday=0 .. Sunday=6.
func Weekday(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

var weekdayLabels = [7]string{"Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi", "Dimanche"}

// WeekdayLabel returns the French weekday name used on payroll sheets.
func WeekdayLabel(date time.Time) string {
	return weekdayLabels[Weekday(date)]
}

func strPtr(s string) *string { return &s }

// DefaultTemplate is the standard Monday to Friday 08:30-12:00 / 14:00-17:30 week.
func DefaultTemplate() Template {
	var week Week
	for i := 0; i < 5; i++ {
		week[i] = DaySchedule{
			MorningStart:   strPtr("08:30"),
			MorningEnd:     strPtr("12:00"),
			AfternoonStart: strPtr("14:00"),
			AfternoonEnd:   strPtr("17:30"),
		}
	}
	odd := week
	return Template{Even: &week, Odd: &odd}
}

// Normalized returns a copy where a non-alternating template carries the
// even week in both slots.
func (t Template) Normalized(alternating bool) Template {
	if t.Even == nil {
		empty := Week{}
		t.Even = &empty
	}
	if !alternating || t.Odd == nil {
		odd := *t.Even
		t.Odd = &odd
	}
	return t
}
