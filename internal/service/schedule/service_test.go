package schedule

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timebank-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// fourDayOddWeek is the default week with Friday off.
func fourDayOddWeek() schedule.Template {
	tpl := schedule.DefaultTemplate()
	odd := *tpl.Odd
	odd[4] = schedule.DaySchedule{}
	tpl.Odd = &odd
	return tpl
}

func TestScheduleService_ResolveDay(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	emp, err := store.Employees().Create(ctx, employee.Employee{
		Name:        "Alice",
		Alternating: true,
		Schedule:    fourDayOddWeek(),
	})
	require.NoError(t, err)
	svc := NewScheduleService(store.Employees())

	// Friday 5 April 2024, ISO week 14.
	even, err := svc.ResolveDay(ctx, schedule.ResolveScheduleRequest{EmployeeID: emp.ID, Date: "2024-04-05"})
	require.NoError(t, err)
	assert.Equal(t, schedule.ParityEven, even.Parity)
	assert.Equal(t, 14, even.ISOWeek)
	assert.Equal(t, "Vendredi", even.Weekday)
	assert.Equal(t, 7.0, even.TheoreticalHours)
	assert.Equal(t, strPtr("08:30"), even.Schedule.MorningStart)

	// Friday 12 April 2024, ISO week 15.
	odd, err := svc.ResolveDay(ctx, schedule.ResolveScheduleRequest{EmployeeID: emp.ID, Date: "2024-04-12"})
	require.NoError(t, err)
	assert.Equal(t, schedule.ParityOdd, odd.Parity)
	assert.Equal(t, 0.0, odd.TheoreticalHours)
	assert.True(t, odd.Schedule.IsEmpty())
}

func TestScheduleService_ResolveDay_Errors(t *testing.T) {
	ctx := context.Background()
	svc := NewScheduleService(memory.NewStore().Employees())

	_, err := svc.ResolveDay(ctx, schedule.ResolveScheduleRequest{EmployeeID: "x", Date: "12/04/2024"})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "date")

	_, err = svc.ResolveDay(ctx, schedule.ResolveScheduleRequest{EmployeeID: "x", Date: "2024-04-12"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestScheduleService_GetTemplate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	emp, err := store.Employees().Create(ctx, employee.Employee{
		Name:        "Alice",
		Alternating: true,
		Schedule:    fourDayOddWeek(),
	})
	require.NoError(t, err)
	svc := NewScheduleService(store.Employees())

	tpl, err := svc.GetTemplate(ctx, emp.ID)
	require.NoError(t, err)
	assert.True(t, tpl.Alternating)
	assert.Equal(t, 35.0, tpl.EvenWeekHours)
	assert.Equal(t, 28.0, tpl.OddWeekHours)
}
