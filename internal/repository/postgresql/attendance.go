package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `id, employee_id, date, morning_start, morning_end, afternoon_start, afternoon_end,
	status, comment, created_at, updated_at`

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var rec attendance.Attendance
	var status string
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date,
		&rec.MorningStart, &rec.MorningEnd, &rec.AfternoonStart, &rec.AfternoonEnd,
		&status, &rec.Comment, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	rec.Status = attendance.Status(status)
	return rec, nil
}

// ListByEmployeeAndRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE employee_id = $1 AND date = $2`

	rec, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Upsert implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, rec attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	if rec.ID == "" {
		rec.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO attendances (
			id, employee_id, date, morning_start, morning_end, afternoon_start, afternoon_end, status, comment
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			morning_start = EXCLUDED.morning_start,
			morning_end = EXCLUDED.morning_end,
			afternoon_start = EXCLUDED.afternoon_start,
			afternoon_end = EXCLUDED.afternoon_end,
			status = EXCLUDED.status,
			comment = EXCLUDED.comment,
			updated_at = NOW()
		RETURNING ` + attendanceColumns

	saved, err := scanAttendance(q.QueryRow(ctx, query,
		rec.ID, rec.EmployeeID, rec.Date,
		rec.MorningStart, rec.MorningEnd, rec.AfternoonStart, rec.AfternoonEnd,
		string(rec.Status), rec.Comment,
	))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to save attendance of %s: %w", rec.Date.Format("2006-01-02"), err)
	}
	return saved, nil
}

// BulkCreateMissing implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) BulkCreateMissing(ctx context.Context, recs []attendance.Attendance) (int, error) {
	if len(recs) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			id, employee_id, date, morning_start, morning_end, afternoon_start, afternoon_end, status, comment
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (employee_id, date) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, rec := range recs {
		id := rec.ID
		if id == "" {
			id = uuid.Must(uuid.NewV7()).String()
		}
		batch.Queue(query,
			id, rec.EmployeeID, rec.Date,
			rec.MorningStart, rec.MorningEnd, rec.AfternoonStart, rec.AfternoonEnd,
			string(rec.Status), rec.Comment,
		)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	created := 0
	for range recs {
		tag, err := results.Exec()
		if err != nil {
			return created, fmt.Errorf("failed to create attendance: %w", err)
		}
		created += int(tag.RowsAffected())
	}
	return created, nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, employeeID string, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE employee_id = $1 AND date = $2`, employeeID, date)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
