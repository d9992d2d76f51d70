package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/brainiax/attendance-backend-go/internal/domain/attendance"
	"github.com/brainiax/attendance-backend-go/internal/pkg/database"
)

const uniqueViolationCode = "23505"

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `id, employee_id, date, punch_in, punch_out, breaks,
	   total_break_minutes, total_work_minutes, status, is_on_break,
	   created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	var breaksJSON []byte
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.PunchIn, &att.PunchOut, &breaksJSON,
		&att.TotalBreakMinutes, &att.TotalWorkMinutes, &att.Status, &att.IsOnBreak,
		&att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if len(breaksJSON) > 0 {
		if err := json.Unmarshal(breaksJSON, &att.Breaks); err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to decode breaks: %w", err)
		}
	}
	return att, nil
}

func encodeBreaks(breaks []attendance.BreakPeriod) ([]byte, error) {
	if breaks == nil {
		breaks = []attendance.BreakPeriod{}
	}
	return json.Marshal(breaks)
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	breaksJSON, err := encodeBreaks(att.Breaks)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to encode breaks: %w", err)
	}

	att.ID = uuid.NewString()
	query := `
		INSERT INTO attendance_records (
			id, employee_id, date, punch_in, punch_out, breaks,
			total_break_minutes, total_work_minutes, status, is_on_break
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		att.ID,
		att.EmployeeID,
		att.Date,
		att.PunchIn,
		att.PunchOut,
		breaksJSON,
		att.TotalBreakMinutes,
		att.TotalWorkMinutes,
		att.Status,
		att.IsOnBreak,
	).Scan(&att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return attendance.Attendance{}, attendance.ErrAlreadyPunchedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND date = $2
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No record for that day
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// Update implements attendance.AttendanceRepository. The WHERE clause pins
// updated_at to the value read by the caller, making the write a
// compare-and-swap: a concurrent transition invalidates this one instead of
// being silently overwritten.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	breaksJSON, err := encodeBreaks(att.Breaks)
	if err != nil {
		return fmt.Errorf("failed to encode breaks: %w", err)
	}

	query := `
		UPDATE attendance_records
		SET punch_in = $1,
			punch_out = $2,
			breaks = $3,
			total_break_minutes = $4,
			total_work_minutes = $5,
			status = $6,
			is_on_break = $7,
			updated_at = now()
		WHERE id = $8 AND updated_at = $9
	`

	tag, err := q.Exec(ctx, query,
		att.PunchIn,
		att.PunchOut,
		breaksJSON,
		att.TotalBreakMinutes,
		att.TotalWorkMinutes,
		att.Status,
		att.IsOnBreak,
		att.ID,
		att.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return attendance.ErrConcurrentUpdate
	}

	return nil
}

// Upsert implements attendance.AttendanceRepository. Only columns marked in
// set are written; on conflict the existing row keeps every other column.
func (a *attendanceRepository) Upsert(ctx context.Context, att attendance.Attendance, set attendance.UpsertFields) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	// A fresh id is only used when the insert wins; on conflict the existing
	// row keeps its id.
	cols := []string{"id", "employee_id", "date"}
	args := []interface{}{uuid.NewString(), att.EmployeeID, att.Date}
	updates := make([]string, 0)

	addCol := func(col string, val interface{}) {
		cols = append(cols, col)
		args = append(args, val)
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}

	if set.PunchIn {
		addCol("punch_in", att.PunchIn)
	}
	if set.PunchOut {
		addCol("punch_out", att.PunchOut)
	}
	if set.Breaks {
		breaksJSON, err := encodeBreaks(att.Breaks)
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to encode breaks: %w", err)
		}
		addCol("breaks", breaksJSON)
	}
	if set.TotalBreakMinutes {
		addCol("total_break_minutes", att.TotalBreakMinutes)
	}
	if set.TotalWorkMinutes {
		addCol("total_work_minutes", att.TotalWorkMinutes)
	}
	if set.Status {
		addCol("status", att.Status)
	}
	if set.IsOnBreak {
		addCol("is_on_break", att.IsOnBreak)
	}

	updates = append(updates, "updated_at = now()")

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`
		INSERT INTO attendance_records (%s)
		VALUES (%s)
		ON CONFLICT (employee_id, date) DO UPDATE SET %s
		RETURNING %s
	`, strings.Join(cols, ", "), strings.Join(placeholders, ", "), strings.Join(updates, ", "), attendanceColumns)

	result, err := scanAttendance(q.QueryRow(ctx, query, args...))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance record: %w", err)
	}

	return result, nil
}

// ListByDateRange implements attendance.AttendanceRepository. Date is a
// fixed-width YYYY-MM-DD string, so the text comparison is chronological.
func (a *attendanceRepository) ListByDateRange(ctx context.Context, employeeID, startDate, endDate string, asc bool) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	order := "DESC"
	if asc {
		order = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT `+attendanceColumns+`
		FROM attendance_records
		WHERE employee_id = $1
		  AND date >= $2
		  AND date <= $3
		ORDER BY date %s
	`, order)

	rows, err := q.Query(ctx, query, employeeID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, att)
	}

	return records, rows.Err()
}

// ListEmployeeIDsWithRecordOn implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListEmployeeIDsWithRecordOn(ctx context.Context, date string) ([]string, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, `SELECT DISTINCT employee_id FROM attendance_records WHERE date = $1`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query employee ids for date: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// BulkCreateAbsences implements attendance.AttendanceRepository. ON CONFLICT
// DO NOTHING makes a sweep racing a punch-in a benign no-op for that row;
// partial success is the expected steady state.
func (a *attendanceRepository) BulkCreateAbsences(ctx context.Context, records []attendance.Attendance) (int, error) {
	q := GetQuerier(ctx, a.db)

	inserted := 0
	for _, att := range records {
		tag, err := q.Exec(ctx, `
			INSERT INTO attendance_records (
				id, employee_id, date, breaks, total_break_minutes,
				total_work_minutes, status, is_on_break
			) VALUES ($1, $2, $3, '[]', 0, 0, $4, false)
			ON CONFLICT (employee_id, date) DO NOTHING
		`, uuid.NewString(), att.EmployeeID, att.Date, att.Status)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert absence record: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

// CountPresentOn implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountPresentOn(ctx context.Context, date string, employeeIDs []string) (int64, error) {
	q := GetQuerier(ctx, a.db)

	if len(employeeIDs) == 0 {
		return 0, nil
	}

	var count int64
	err := q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM attendance_records
		WHERE date = $1
		  AND status IN ('present', 'half-day')
		  AND employee_id = ANY($2)
	`, date, employeeIDs).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count present records: %w", err)
	}

	return count, nil
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance_records
		WHERE date = $1
	`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records by date: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, att)
	}

	return records, rows.Err()
}

// DeleteOrphaned implements attendance.AttendanceRepository.
func (a *attendanceRepository) DeleteOrphaned(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `
		DELETE FROM attendance_records
		WHERE employee_id NOT IN (
			SELECT id FROM employees WHERE role = 'employee' AND is_active = true
		)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete orphaned attendance records: %w", err)
	}

	return tag.RowsAffected(), nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
