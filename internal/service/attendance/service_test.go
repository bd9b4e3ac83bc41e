package attendance

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/bank"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/holiday"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timebank-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func newTestService(t *testing.T) (attendance.AttendanceService, *memory.Store, employee.Employee) {
	t.Helper()
	calendar, err := holiday.NewCalendar("fr")
	require.NoError(t, err)

	store := memory.NewStore()
	emp, err := store.Employees().Create(context.Background(), employee.Employee{
		Name:     "Alice",
		Schedule: schedule.DefaultTemplate(),
	})
	require.NoError(t, err)

	svc := NewAttendanceService(store.Transactor(), store.Employees(), store.Attendances(), store.Movements(), calendar)
	return svc, store, emp
}

func TestAttendanceService_GetMonth_ImplicitDays(t *testing.T) {
	ctx := context.Background()
	svc, _, emp := newTestService(t)

	grid, err := svc.GetMonth(ctx, attendance.MonthRequest{EmployeeID: emp.ID, Year: 2024, Month: 4})
	require.NoError(t, err)
	require.Len(t, grid.Days, 30)

	first := grid.Days[0]
	assert.Equal(t, "2024-04-01", first.Date)
	assert.Equal(t, "Lundi", first.Weekday)
	assert.False(t, first.Recorded)
	assert.Equal(t, attendance.StatusNormal, first.Status)
	assert.Equal(t, "Lundi de Pâques", first.Holiday)
	assert.Equal(t, "Lundi de Pâques", first.Comment)
	assert.Equal(t, 0.0, first.ActualHours)

	assert.True(t, grid.Days[6].IsSunday)
	assert.Equal(t, "Dimanche", grid.Days[6].Weekday)
}

func TestAttendanceService_SaveDays(t *testing.T) {
	ctx := context.Background()
	svc, _, emp := newTestService(t)

	saved, err := svc.SaveDays(ctx, attendance.UpsertAttendanceRequest{
		EmployeeID: emp.ID,
		Entries: []attendance.DayEntryRequest{
			{Date: "2024-04-02", MorningStart: ptr("08:30"), MorningEnd: ptr("12:00"), AfternoonStart: ptr("14:00"), AfternoonEnd: ptr("18:00")},
			{Date: "2024-04-03", Status: "sick_leave", Comment: "Arrêt"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, saved.Saved)
	assert.Equal(t, 7.5, saved.Days[0].ActualHours)
	assert.True(t, saved.Days[0].MealVoucher)

	// Saving the same day again replaces it.
	_, err = svc.SaveDays(ctx, attendance.UpsertAttendanceRequest{
		EmployeeID: emp.ID,
		Entries:    []attendance.DayEntryRequest{{Date: "2024-04-02", MorningStart: ptr("09:00"), MorningEnd: ptr("12:00")}},
	})
	require.NoError(t, err)

	grid, err := svc.GetMonth(ctx, attendance.MonthRequest{EmployeeID: emp.ID, Year: 2024, Month: 4})
	require.NoError(t, err)
	assert.True(t, grid.Days[1].Recorded)
	assert.Equal(t, 3.0, grid.Days[1].ActualHours)
	assert.False(t, grid.Days[1].MealVoucher)
	assert.Nil(t, grid.Days[1].AfternoonStart)
	assert.Equal(t, attendance.StatusSickLeave, grid.Days[2].Status)
	assert.Equal(t, "Arrêt", grid.Days[2].Comment)
}

func TestAttendanceService_SaveDays_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _, emp := newTestService(t)

	_, err := svc.SaveDays(ctx, attendance.UpsertAttendanceRequest{
		EmployeeID: emp.ID,
		Entries:    []attendance.DayEntryRequest{{Date: "2024-04-02", MorningStart: ptr("8h30")}},
	})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "entries[0].morning_start")
}

func TestAttendanceService_SaveDays_ArchivedEmployee(t *testing.T) {
	ctx := context.Background()
	svc, store, emp := newTestService(t)
	require.NoError(t, store.Employees().SetArchived(ctx, emp.ID, true))

	_, err := svc.SaveDays(ctx, attendance.UpsertAttendanceRequest{
		EmployeeID: emp.ID,
		Entries:    []attendance.DayEntryRequest{{Date: "2024-04-02"}},
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeArchived)

	// History stays readable.
	_, err = svc.GetMonth(ctx, attendance.MonthRequest{EmployeeID: emp.ID, Year: 2024, Month: 4})
	assert.NoError(t, err)
}

func TestAttendanceService_FillEmptyDays(t *testing.T) {
	ctx := context.Background()
	svc, _, emp := newTestService(t)

	_, err := svc.SaveDays(ctx, attendance.UpsertAttendanceRequest{
		EmployeeID: emp.ID,
		Entries:    []attendance.DayEntryRequest{{Date: "2024-05-02", Status: "leave"}},
	})
	require.NoError(t, err)

	filled, err := svc.FillEmptyDays(ctx, attendance.MonthRequest{EmployeeID: emp.ID, Year: 2024, Month: 5})
	require.NoError(t, err)
	assert.Equal(t, 30, filled.Created)

	grid, err := svc.GetMonth(ctx, attendance.MonthRequest{EmployeeID: emp.ID, Year: 2024, Month: 5})
	require.NoError(t, err)

	mayDay := grid.Days[0]
	assert.True(t, mayDay.Recorded)
	assert.Equal(t, "Férié : Fête du Travail", mayDay.Comment)
	require.NotNil(t, mayDay.MorningStart)
	assert.Equal(t, "08:30", *mayDay.MorningStart)
	assert.Equal(t, 7.0, mayDay.ActualHours)

	assert.Equal(t, attendance.StatusLeave, grid.Days[1].Status, "existing day kept")

	saturday := grid.Days[3]
	assert.True(t, saturday.Recorded)
	assert.Nil(t, saturday.MorningStart)

	sunday := grid.Days[4]
	assert.True(t, sunday.IsSunday)
	assert.True(t, sunday.Recorded)
	assert.Nil(t, sunday.MorningStart)
	assert.Equal(t, 0.0, sunday.ActualHours)

	again, err := svc.FillEmptyDays(ctx, attendance.MonthRequest{EmployeeID: emp.ID, Year: 2024, Month: 5})
	require.NoError(t, err)
	assert.Equal(t, 0, again.Created)
}

func TestAttendanceService_DeleteDay(t *testing.T) {
	ctx := context.Background()
	svc, _, emp := newTestService(t)

	_, err := svc.SaveDays(ctx, attendance.UpsertAttendanceRequest{
		EmployeeID: emp.ID,
		Entries:    []attendance.DayEntryRequest{{Date: "2024-04-02", Status: "recovery"}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDay(ctx, emp.ID, "2024-04-02"))
	assert.ErrorIs(t, svc.DeleteDay(ctx, emp.ID, "2024-04-02"), attendance.ErrAttendanceNotFound)

	grid, err := svc.GetMonth(ctx, attendance.MonthRequest{EmployeeID: emp.ID, Year: 2024, Month: 4})
	require.NoError(t, err)
	assert.False(t, grid.Days[1].Recorded)

	var errs validator.ValidationErrors
	assert.ErrorAs(t, svc.DeleteDay(ctx, emp.ID, "02/04/2024"), &errs)
}

func TestAttendanceService_UnknownEmployee(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.GetMonth(ctx, attendance.MonthRequest{EmployeeID: "not-a-uuid", Year: 2024, Month: 4})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAttendanceService_FillEmptyDays_HolidayOnSundayKeepsSchedule(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)

	tmpl := schedule.DefaultTemplate()
	week := *tmpl.Even
	week[6] = schedule.DaySchedule{
		MorningStart:   ptr("09:00"),
		MorningEnd:     ptr("12:00"),
		AfternoonStart: ptr("13:00"),
		AfternoonEnd:   ptr("15:00"),
	}
	odd := week
	emp, err := store.Employees().Create(ctx, employee.Employee{
		Name:     "Bruno",
		Schedule: schedule.Template{Even: &week, Odd: &odd},
	})
	require.NoError(t, err)

	_, err = svc.FillEmptyDays(ctx, attendance.MonthRequest{EmployeeID: emp.ID, Year: 2022, Month: 5})
	require.NoError(t, err)

	grid, err := svc.GetMonth(ctx, attendance.MonthRequest{EmployeeID: emp.ID, Year: 2022, Month: 5})
	require.NoError(t, err)

	// 1 and 8 May 2022 are Sundays and public holidays.
	for _, i := range []int{0, 7} {
		day := grid.Days[i]
		assert.True(t, day.IsSunday, day.Date)
		assert.Equal(t, "Férié : "+day.Holiday, day.Comment, day.Date)
		require.NotNil(t, day.MorningStart, day.Date)
		assert.Equal(t, "09:00", *day.MorningStart)
		assert.Equal(t, 5.0, day.ActualHours)
	}

	regularSunday := grid.Days[14]
	assert.Equal(t, "2022-05-15", regularSunday.Date)
	assert.True(t, regularSunday.Recorded)
	assert.Nil(t, regularSunday.MorningStart)
}

func TestAttendanceService_DivergingLedgerFreezesAttendance(t *testing.T) {
	ctx := context.Background()
	svc, store, emp := newTestService(t)

	_, err := svc.SaveDays(ctx, attendance.UpsertAttendanceRequest{
		EmployeeID: emp.ID,
		Entries:    []attendance.DayEntryRequest{{Date: "2024-04-02", Status: "leave"}},
	})
	require.NoError(t, err)

	store.Corrupt(emp.ID, decimal.NewFromInt(3))

	_, err = svc.SaveDays(ctx, attendance.UpsertAttendanceRequest{
		EmployeeID: emp.ID,
		Entries:    []attendance.DayEntryRequest{{Date: "2024-04-03", Status: "leave"}},
	})
	assert.ErrorIs(t, err, bank.ErrLedgerInconsistent)

	_, err = svc.FillEmptyDays(ctx, attendance.MonthRequest{EmployeeID: emp.ID, Year: 2024, Month: 4})
	assert.ErrorIs(t, err, bank.ErrLedgerInconsistent)

	assert.ErrorIs(t, svc.DeleteDay(ctx, emp.ID, "2024-04-02"), bank.ErrLedgerInconsistent)

	grid, err := svc.GetMonth(ctx, attendance.MonthRequest{EmployeeID: emp.ID, Year: 2024, Month: 4})
	require.NoError(t, err)
	assert.True(t, grid.Days[1].Recorded, "existing day kept")
	assert.False(t, grid.Days[2].Recorded, "nothing written")
}
