package employee

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/bank"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timebank-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() employee.EmployeeService {
	store := memory.NewStore()
	return NewEmployeeService(store.Employees(), store.Movements())
}

func strPtr(s string) *string { return &s }

func TestEmployeeService_CreateEmployee_DefaultSchedule(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "  Alice Martin "})
	require.NoError(t, err)

	assert.Equal(t, "Alice Martin", created.Name)
	assert.True(t, validator.IsValidUUID(created.ID))
	assert.True(t, created.BankBalance.IsZero())
	require.NotNil(t, created.Schedule.Even)
	require.NotNil(t, created.Schedule.Odd)
	assert.Equal(t, 35.0, created.Schedule.Even.Hours())
	assert.Equal(t, 35.0, created.Schedule.Odd.Hours())
}

func TestEmployeeService_CreateEmployee_DuplicateName(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "Alice"})
	require.NoError(t, err)

	_, err = svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "Alice"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNameExists)
}

func TestEmployeeService_CreateEmployee_NotAlternatingCopiesEvenWeek(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	even := schedule.Week{}
	even[0] = schedule.DaySchedule{
		MorningStart: strPtr("09:00"), MorningEnd: strPtr("12:00"),
		AfternoonStart: strPtr("13:00"), AfternoonEnd: strPtr("17:00"),
	}
	odd := schedule.Week{}

	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Name:        "Bob",
		Alternating: false,
		Schedule:    &schedule.Template{Even: &even, Odd: &odd},
	})
	require.NoError(t, err)
	assert.Equal(t, 7.0, created.Schedule.Odd.Hours())
}

func TestEmployeeService_CreateEmployee_RejectsPartialDay(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	even := schedule.Week{}
	even[2] = schedule.DaySchedule{MorningStart: strPtr("09:00")}

	_, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Name:     "Carol",
		Schedule: &schedule.Template{Even: &even},
	})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, schedule.ErrPartialDaySchedule.Error(), errs.ToMap()["schedule.even[2]"])
}

func TestEmployeeService_UpdateEmployee(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	alice, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "Alice"})
	require.NoError(t, err)
	_, err = svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "Bob"})
	require.NoError(t, err)

	_, err = svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: alice.ID, Name: strPtr("Bob")})
	assert.ErrorIs(t, err, employee.ErrEmployeeNameExists)

	// Keeping its own name is not a conflict.
	alternating := true
	updated, err := svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: alice.ID, Name: strPtr("Alice"), Alternating: &alternating})
	require.NoError(t, err)
	assert.True(t, updated.Alternating)

	renamed, err := svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: alice.ID, Name: strPtr("Alice Martin")})
	require.NoError(t, err)
	assert.Equal(t, "Alice Martin", renamed.Name)
}

func TestEmployeeService_UnknownOrMalformedID(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.GetEmployee(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.GetEmployee(ctx, "01890a5d-ac96-7b3a-8c4e-4d4b2f5a6e7f")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeService_ArchiveAndRestore(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	alice, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "Alice"})
	require.NoError(t, err)
	_, err = svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "Bob"})
	require.NoError(t, err)

	archived, err := svc.ArchiveEmployee(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, archived.Archived)

	_, err = svc.ArchiveEmployee(ctx, alice.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeArchived)

	_, err = svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: alice.ID, Name: strPtr("Alice B")})
	assert.ErrorIs(t, err, employee.ErrEmployeeArchived)

	active, err := svc.ListEmployees(ctx, employee.EmployeeFilter{})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Bob", active[0].Name)

	all, err := svc.ListEmployees(ctx, employee.EmployeeFilter{IncludeArchived: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Archived names stay reserved.
	_, err = svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "Alice"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNameExists)

	restored, err := svc.RestoreEmployee(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, restored.Archived)

	_, err = svc.RestoreEmployee(ctx, alice.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeAlreadyActive)
}

func TestEmployeeService_DeleteEmployee(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	alice, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "Alice"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEmployee(ctx, alice.ID))

	_, err = svc.GetEmployee(ctx, alice.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.ErrorIs(t, svc.DeleteEmployee(ctx, alice.ID), employee.ErrEmployeeNotFound)
}

func TestEmployeeService_DivergingLedgerFreezesEdits(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewEmployeeService(store.Employees(), store.Movements())

	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "Alice"})
	require.NoError(t, err)
	store.Corrupt(created.ID, decimal.NewFromInt(2))

	_, err = svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: created.ID, Name: strPtr("Alice Martin")})
	assert.ErrorIs(t, err, bank.ErrLedgerInconsistent)

	_, err = svc.ArchiveEmployee(ctx, created.ID)
	assert.ErrorIs(t, err, bank.ErrLedgerInconsistent)

	got, err := svc.GetEmployee(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.False(t, got.Archived)

	require.NoError(t, svc.DeleteEmployee(ctx, created.ID))
}
