// Package memory keeps employees, attendance and ledger movements in process
// memory. Services are exercised against it in unit tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/bank"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type Store struct {
	mu          sync.Mutex
	employees   map[string]employee.Employee
	attendances map[string]map[string]attendance.Attendance
	movements   []bank.Movement
	now         func() time.Time
}

func NewStore() *Store {
	return &Store{
		employees:   make(map[string]employee.Employee),
		attendances: make(map[string]map[string]attendance.Attendance),
		now:         time.Now,
	}
}

func (s *Store) Employees() employee.EmployeeRepository { return (*employeeRepo)(s) }
func (s *Store) Attendances() attendance.AttendanceRepository { return (*attendanceRepo)(s) }
func (s *Store) Movements() bank.MovementRepository { return (*movementRepo)(s) }

// Transactor runs fn directly. The store has no rollback.
func (s *Store) Transactor() database.Transactor { return transactor{} }

// Corrupt overwrites a stored balance without writing a movement.
func (s *Store) Corrupt(employeeID string, balance decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	emp := s.employees[employeeID]
	emp.BankBalance = balance
	s.employees[employeeID] = emp
}

type transactor struct{}

func (transactor) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type employeeRepo Store

func (r *employeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *employeeRepo) ExistsByName(ctx context.Context, name string, excludeID *string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, emp := range r.employees {
		if emp.Name != name {
			continue
		}
		if excludeID != nil && emp.ID == *excludeID {
			continue
		}
		return true, nil
	}
	return false, nil
}

func (r *employeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.employees {
		if existing.Name == emp.Name {
			return employee.Employee{}, employee.ErrEmployeeNameExists
		}
	}
	if emp.ID == "" {
		emp.ID = uuid.Must(uuid.NewV7()).String()
	}
	now := r.now()
	emp.CreatedAt, emp.UpdatedAt = now, now
	r.employees[emp.ID] = emp
	return emp, nil
}

func (r *employeeRepo) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.employees[emp.ID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	current.Name = emp.Name
	current.Alternating = emp.Alternating
	current.Schedule = emp.Schedule
	current.UpdatedAt = r.now()
	r.employees[emp.ID] = current
	return current, nil
}

func (r *employeeRepo) List(ctx context.Context, includeArchived bool) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []employee.Employee
	for _, emp := range r.employees {
		if emp.IsArchived() && !includeArchived {
			continue
		}
		out = append(out, emp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *employeeRepo) SetArchived(ctx context.Context, id string, archived bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	emp, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.ArchivedAt = nil
	if archived {
		now := r.now()
		emp.ArchivedAt = &now
	}
	r.employees[id] = emp
	return nil
}

func (r *employeeRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.employees, id)
	delete(r.attendances, id)
	kept := r.movements[:0]
	for _, m := range r.movements {
		if m.EmployeeID != id {
			kept = append(kept, m)
		}
	}
	r.movements = kept
	return nil
}

type attendanceRepo Store

func (r *attendanceRepo) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []attendance.Attendance
	for _, rec := range r.attendances[employeeID] {
		if rec.Date.Before(from) || rec.Date.After(to) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *attendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.attendances[employeeID][date.Format(dateLayout)]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *attendanceRepo) put(rec attendance.Attendance) attendance.Attendance {
	days, ok := r.attendances[rec.EmployeeID]
	if !ok {
		days = make(map[string]attendance.Attendance)
		r.attendances[rec.EmployeeID] = days
	}
	key := rec.Date.Format(dateLayout)
	now := r.now()
	if existing, ok := days[key]; ok {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	} else {
		if rec.ID == "" {
			rec.ID = uuid.Must(uuid.NewV7()).String()
		}
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	days[key] = rec
	return rec
}

func (r *attendanceRepo) Upsert(ctx context.Context, rec attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.put(rec), nil
}

func (r *attendanceRepo) BulkCreateMissing(ctx context.Context, recs []attendance.Attendance) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	created := 0
	for _, rec := range recs {
		if _, ok := r.attendances[rec.EmployeeID][rec.Date.Format(dateLayout)]; ok {
			continue
		}
		r.put(rec)
		created++
	}
	return created, nil
}

func (r *attendanceRepo) Delete(ctx context.Context, employeeID string, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := date.Format(dateLayout)
	if _, ok := r.attendances[employeeID][key]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(r.attendances[employeeID], key)
	return nil
}

type movementRepo Store

func (r *movementRepo) totals(emp employee.Employee) bank.Totals {
	t := bank.Totals{EmployeeID: emp.ID, EmployeeName: emp.Name, Balance: emp.BankBalance, Sum: decimal.Zero}
	for _, m := range r.movements {
		if m.EmployeeID == emp.ID {
			t.Sum = t.Sum.Add(m.Amount)
			t.Movements++
		}
	}
	return t
}

func (r *movementRepo) LockTotals(ctx context.Context, employeeID string) (bank.Totals, error) {
	return r.GetTotals(ctx, employeeID)
}

func (r *movementRepo) GetTotals(ctx context.Context, employeeID string) (bank.Totals, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	emp, ok := r.employees[employeeID]
	if !ok {
		return bank.Totals{}, employee.ErrEmployeeNotFound
	}
	return r.totals(emp), nil
}

func (r *movementRepo) ListTotals(ctx context.Context) ([]bank.Totals, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []bank.Totals
	for _, emp := range r.employees {
		out = append(out, r.totals(emp))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeName < out[j].EmployeeName })
	return out, nil
}

func (r *movementRepo) Insert(ctx context.Context, m bank.Movement) (bank.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.employees[m.EmployeeID]; !ok {
		return bank.Movement{}, employee.ErrEmployeeNotFound
	}
	if m.ID == "" {
		m.ID = uuid.Must(uuid.NewV7()).String()
	}
	m.Amount = bank.RoundAmount(m.Amount)
	m.CreatedAt = r.now()
	r.movements = append(r.movements, m)
	return m, nil
}

func (r *movementRepo) AddToBalance(ctx context.Context, employeeID string, amount decimal.Decimal) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	emp, ok := r.employees[employeeID]
	if !ok {
		return decimal.Zero, employee.ErrEmployeeNotFound
	}
	emp.BankBalance = emp.BankBalance.Add(amount)
	r.employees[employeeID] = emp
	return emp.BankBalance, nil
}

func (r *movementRepo) SetBalance(ctx context.Context, employeeID string, balance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	emp, ok := r.employees[employeeID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.BankBalance = balance
	r.employees[employeeID] = emp
	return nil
}

func (r *movementRepo) SumByReason(ctx context.Context, employeeID string, tag string) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, m := range r.movements {
		if m.EmployeeID == employeeID && strings.Contains(m.Reason, tag) {
			total = total.Add(m.Amount)
		}
	}
	return total, nil
}

func (r *movementRepo) ListByEmployee(ctx context.Context, employeeID string) ([]bank.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []bank.Movement
	for i := len(r.movements) - 1; i >= 0; i-- {
		if r.movements[i].EmployeeID == employeeID {
			out = append(out, r.movements[i])
		}
	}
	return out, nil
}
