package payroll

import (
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func workedDay(date, ms, me, as, ae string) attendance.Attendance {
	day, _ := time.Parse(dateLayout, date)
	return attendance.Attendance{
		EmployeeID:     "emp-1",
		Date:           day,
		MorningStart:   ptr(ms),
		MorningEnd:     ptr(me),
		AfternoonStart: ptr(as),
		AfternoonEnd:   ptr(ae),
		Status:         attendance.StatusNormal,
	}
}

func statusDay(status attendance.Status) attendance.Attendance {
	return attendance.Attendance{EmployeeID: "emp-1", Status: status}
}

func april2024(records map[string]attendance.Attendance) MonthInput {
	return MonthInput{
		Year:     2024,
		Month:    4,
		Template: schedule.DefaultTemplate(),
		Records:  records,
	}
}

func TestCalculate_EmptyMonth(t *testing.T) {
	stats, err := Calculate(april2024(nil))
	require.NoError(t, err)

	assert.Len(t, stats.Days, 30)
	assert.Equal(t, 0.0, stats.TotalWorkedHours)
	// April 2024 has 22 weekdays of 7 hours.
	assert.Equal(t, 154.0, stats.TotalTheoreticalHours)
	assert.Equal(t, -154.0, stats.DeltaBank)
	assert.Equal(t, 0, stats.MealVoucherDays)
	assert.Equal(t, 0, stats.LeaveDays)
	assert.Equal(t, 0.0, stats.OvertimeTotal)
	assert.Equal(t, 0.0, stats.PayableOvertime)
	assert.Len(t, stats.Weeks, 5, "April 2024 intersects ISO weeks 14 to 18")

	for _, d := range stats.Days {
		assert.Equal(t, attendance.StatusNormal, d.Status)
		assert.Empty(t, d.Morning)
	}
}

func TestSplitSurplus(t *testing.T) {
	cases := []struct {
		weekHours    float64
		tier1, tier2 float64
	}{
		{35, 0, 0},
		{40, 5, 0},
		{45, 8, 2},
		{50, 8, 7},
		{30, 0, 0},
	}
	for _, c := range cases {
		t1, t2 := SplitSurplus(c.weekHours - WeeklyThresholdHours)
		assert.Equal(t, c.tier1, t1, "tier1 for a %.0fh week", c.weekHours)
		assert.Equal(t, c.tier2, t2, "tier2 for a %.0fh week", c.weekHours)
	}
}

func fiftyHourFirstWeek() map[string]attendance.Attendance {
	records := make(map[string]attendance.Attendance)
	for d := 1; d <= 5; d++ {
		key := fmt.Sprintf("2024-04-%02d", d)
		records[key] = workedDay(key, "08:00", "12:00", "13:00", "19:00")
	}
	return records
}

func TestCalculate_WeeklyOvertimeTiers(t *testing.T) {
	stats, err := Calculate(april2024(fiftyHourFirstWeek()))
	require.NoError(t, err)

	assert.Equal(t, 50.0, stats.TotalWorkedHours)
	assert.Equal(t, 15.0, stats.OvertimeTotal)
	assert.Equal(t, 8.0, stats.Overtime25)
	assert.Equal(t, 7.0, stats.Overtime50)
	assert.Equal(t, 15.0, stats.PayableOvertime)
	assert.Equal(t, 5, stats.MealVoucherDays)

	require.NotEmpty(t, stats.Weeks)
	assert.Equal(t, 14, stats.Weeks[0].ISOWeek)
	assert.Equal(t, 50.0, stats.Weeks[0].ActualHours)
	assert.Equal(t, stats.Overtime25+stats.Overtime50, stats.OvertimeTotal)
}

func TestCalculate_PayableSubtractsBanked(t *testing.T) {
	in := april2024(fiftyHourFirstWeek())
	in.AlreadyBanked = 4
	stats, err := Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, 4.0, stats.AlreadyBanked)
	assert.Equal(t, 11.0, stats.PayableOvertime)

	in.AlreadyBanked = 20
	stats, err = Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.PayableOvertime, "payable is never negative")
}

func TestCalculate_AbsencesCreditTheoreticalHours(t *testing.T) {
	stats, err := Calculate(april2024(map[string]attendance.Attendance{
		"2024-04-01": statusDay(attendance.StatusLeave),
		"2024-04-02": statusDay(attendance.StatusSickLeave),
		"2024-04-03": statusDay(attendance.StatusUnjustifiedAbsence),
		"2024-04-04": statusDay(attendance.StatusRecovery),
		"2024-04-06": statusDay(attendance.StatusSickLeave), // Saturday, nothing scheduled
	}))
	require.NoError(t, err)

	assert.Equal(t, 1, stats.LeaveDays)
	assert.Equal(t, 2, stats.SickLeaveDays)
	assert.Equal(t, 1, stats.UnjustifiedAbsenceDays)
	assert.Equal(t, 1, stats.RecoveryDays)
	assert.Equal(t, 21.0, stats.TotalWorkedHours)
	assert.Equal(t, 21.0-154.0, stats.DeltaBank)
	assert.Equal(t, 0, stats.MealVoucherDays)

	assert.Equal(t, 7.0, stats.Days[0].BankableHours)
	assert.Equal(t, 0.0, stats.Days[0].ActualHours)
	assert.Equal(t, 0.0, stats.Days[3].BankableHours, "recovery credits nothing")
	assert.Equal(t, 7.0, stats.Days[3].TheoreticalHours)
}

func TestCalculate_PartialDay(t *testing.T) {
	stats, err := Calculate(april2024(map[string]attendance.Attendance{
		"2024-04-03": {
			Status:       attendance.StatusNormal,
			MorningStart: ptr("08:30"),
			AfternoonEnd: ptr("17:30"),
		},
	}))
	require.NoError(t, err)

	day := stats.Days[2]
	assert.Equal(t, 0.0, day.ActualHours)
	assert.False(t, day.MealVoucher)
	assert.Equal(t, "08:30-", day.Morning)
	assert.Empty(t, day.Afternoon)
	assert.Equal(t, 0.0, stats.TotalWorkedHours)
}

func TestCalculate_WeekRestrictedToMonth(t *testing.T) {
	records := map[string]attendance.Attendance{}
	for _, key := range []string{"2024-02-26", "2024-02-27", "2024-02-28", "2024-02-29"} {
		records[key] = workedDay(key, "08:00", "12:00", "13:00", "19:00")
	}
	records["2024-03-01"] = workedDay("2024-03-01", "08:00", "12:00", "13:00", "19:00")

	stats, err := Calculate(MonthInput{
		Year:     2024,
		Month:    3,
		Template: schedule.DefaultTemplate(),
		Records:  records,
	})
	require.NoError(t, err)

	assert.Len(t, stats.Days, 31)
	assert.Equal(t, 10.0, stats.TotalWorkedHours)
	assert.Equal(t, 9, stats.Weeks[0].ISOWeek)
	assert.Equal(t, 10.0, stats.Weeks[0].ActualHours)
	assert.Equal(t, 0.0, stats.OvertimeTotal, "February days of ISO week 9 are not counted")
}

func TestCalculate_AlternatingTemplate(t *testing.T) {
	var even, odd schedule.Week
	for i := 0; i < 5; i++ {
		even[i] = schedule.DaySchedule{MorningStart: ptr("08:00"), MorningEnd: ptr("12:00"), AfternoonStart: ptr("13:00"), AfternoonEnd: ptr("17:00")}
	}
	for i := 0; i < 4; i++ {
		odd[i] = even[i]
	}

	stats, err := Calculate(MonthInput{
		Year:     2024,
		Month:    4,
		Template: schedule.Template{Even: &even, Odd: &odd},
	})
	require.NoError(t, err)

	// Weeks 14, 16 and 18 are even, week 18 only has Apr 29-30.
	// Weeks 15 and 17 are odd: Fridays 12 and 26 are off.
	// 8h * (5 + 4 + 5 + 4 + 2) = 160
	assert.Equal(t, 160.0, stats.TotalTheoreticalHours)
	assert.Equal(t, 8.0, stats.Days[4].TheoreticalHours)
	assert.Equal(t, 0.0, stats.Days[11].TheoreticalHours)
	assert.Equal(t, 0.0, stats.Days[25].TheoreticalHours)
}

func TestCalculate_HolidaysAreInformational(t *testing.T) {
	in := april2024(nil)
	in.Holidays = map[string]string{"2024-04-01": "Lundi de Pâques"}

	stats, err := Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, "Lundi de Pâques", stats.Days[0].Holiday)
	assert.Equal(t, 7.0, stats.Days[0].TheoreticalHours)
	assert.Equal(t, 154.0, stats.TotalTheoreticalHours)
}

func TestCalculate_IsIdempotent(t *testing.T) {
	in := april2024(fiftyHourFirstWeek())
	first, err := Calculate(in)
	require.NoError(t, err)
	second, err := Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCalculate_InvalidMonth(t *testing.T) {
	_, err := Calculate(MonthInput{Year: 2024, Month: 13})
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}

func TestCalculate_DetailRow(t *testing.T) {
	rec := workedDay("2024-04-01", "08:30", "12:00", "14:00", "17:30")
	rec.Comment = "seminar"
	stats, err := Calculate(april2024(map[string]attendance.Attendance{"2024-04-01": rec}))
	require.NoError(t, err)

	day := stats.Days[0]
	assert.Equal(t, "2024-04-01", day.Date)
	assert.Equal(t, "Lundi", day.Weekday)
	assert.Equal(t, "08:30-12:00", day.Morning)
	assert.Equal(t, "14:00-17:30", day.Afternoon)
	assert.Equal(t, 7.0, day.ActualHours)
	assert.True(t, day.MealVoucher)
	assert.Equal(t, "seminar", day.Comment)
}
