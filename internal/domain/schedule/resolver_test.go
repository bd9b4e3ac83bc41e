package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fullDay(ms, me, as, ae string) DaySchedule {
	return DaySchedule{MorningStart: &ms, MorningEnd: &me, AfternoonStart: &as, AfternoonEnd: &ae}
}

func alternatingTemplate() Template {
	var even, odd Week
	even[0] = fullDay("08:30", "12:00", "14:00", "17:30")
	odd[0] = fullDay("09:00", "12:00", "13:00", "16:00")
	return Template{Even: &even, Odd: &odd}
}

func TestParityOf(t *testing.T) {
	assert.Equal(t, ParityOdd, ParityOf(day(2024, time.January, 1)), "2024-01-01 is ISO week 1")
	assert.Equal(t, ParityEven, ParityOf(day(2024, time.January, 8)), "2024-01-08 is ISO week 2")
	assert.Equal(t, ParityOdd, ParityOf(day(2021, time.January, 1)), "2021-01-01 belongs to ISO week 53 of 2020")
	assert.Equal(t, ParityOdd, ParityOf(day(2024, time.December, 30)), "2024-12-30 belongs to ISO week 1 of 2025")
}

func TestWeekday(t *testing.T) {
	assert.Equal(t, 0, Weekday(day(2024, time.January, 1)))
	assert.Equal(t, 6, Weekday(day(2024, time.January, 7)))
	assert.Equal(t, "Lundi", WeekdayLabel(day(2024, time.January, 1)))
	assert.Equal(t, "Dimanche", WeekdayLabel(day(2024, time.January, 7)))
}

func TestResolve_SelectsVariantByParity(t *testing.T) {
	tpl := alternatingTemplate()

	oddMonday := Resolve(tpl, day(2024, time.January, 1))
	require.NotNil(t, oddMonday.MorningStart)
	assert.Equal(t, "09:00", *oddMonday.MorningStart)

	evenMonday := Resolve(tpl, day(2024, time.January, 8))
	require.NotNil(t, evenMonday.MorningStart)
	assert.Equal(t, "08:30", *evenMonday.MorningStart)
}

func TestResolve_FallsBackToEven(t *testing.T) {
	tpl := alternatingTemplate()
	tpl.Odd = nil

	got := Resolve(tpl, day(2024, time.January, 1))
	require.NotNil(t, got.MorningStart)
	assert.Equal(t, "08:30", *got.MorningStart)
}

func TestResolve_IsTotal(t *testing.T) {
	assert.True(t, Resolve(Template{}, day(2024, time.January, 1)).IsEmpty())
	assert.Equal(t, 0.0, TheoreticalHours(Template{}, day(2024, time.January, 1)))
}

func TestResolve_IsPure(t *testing.T) {
	tpl := alternatingTemplate()
	d := day(2024, time.March, 12)
	assert.Equal(t, Resolve(tpl, d), Resolve(tpl, d))
}

func TestDefaultTemplate(t *testing.T) {
	tpl := DefaultTemplate()
	assert.Equal(t, 35.0, tpl.Even.Hours())
	assert.Equal(t, 35.0, tpl.Odd.Hours())
	assert.Equal(t, 7.0, TheoreticalHours(tpl, day(2024, time.January, 5)))
	assert.Equal(t, 0.0, TheoreticalHours(tpl, day(2024, time.January, 6)))
}

func TestTemplate_Normalized(t *testing.T) {
	tpl := alternatingTemplate()

	flat := tpl.Normalized(false)
	assert.Equal(t, *flat.Even, *flat.Odd)

	kept := tpl.Normalized(true)
	assert.NotEqual(t, *kept.Even, *kept.Odd)

	empty := Template{}.Normalized(true)
	require.NotNil(t, empty.Even)
	require.NotNil(t, empty.Odd)
	assert.Equal(t, 0.0, empty.Even.Hours())
}

func TestTemplate_Validate(t *testing.T) {
	assert.Empty(t, DefaultTemplate().Validate("schedule"))

	var partial Week
	ms := "08:30"
	partial[2] = DaySchedule{MorningStart: &ms}
	errs := Template{Even: &partial}.Validate("schedule")
	require.Len(t, errs, 1)
	assert.Equal(t, "schedule.even[2]", errs[0].Field)

	var malformed Week
	malformed[4] = fullDay("08:30", "noon", "14:00", "17:30")
	errs = Template{Even: &Week{}, Odd: &malformed}.Validate("schedule")
	require.Len(t, errs, 1)
	assert.Equal(t, "schedule.odd[4]", errs[0].Field)

	errs = Template{}.Validate("schedule")
	require.Len(t, errs, 1)
	assert.Equal(t, "schedule.even", errs[0].Field)
}
