package schedule

import "time"

// ParityOf selects the template variant from the ISO week number of date.
func ParityOf(date time.Time) Parity {
	_, week := date.ISOWeek()
	if week%2 == 0 {
		return ParityEven
	}
	return ParityOdd
}

// Resolve returns the theoretical DaySchedule for date. A missing odd week
// falls back to the even one, a template without weeks yields an empty day.
func Resolve(t Template, date time.Time) DaySchedule {
	week := t.Even
	if ParityOf(date) == ParityOdd && t.Odd != nil {
		week = t.Odd
	}
	if week == nil {
		return DaySchedule{}
	}
	return week[Weekday(date)]
}

// TheoreticalHours is the scheduled duration for date.
func TheoreticalHours(t Template, date time.Time) float64 {
	return Resolve(t, date).Hours()
}
