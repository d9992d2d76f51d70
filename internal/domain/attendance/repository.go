package attendance

import (
	"context"
)

// AttendanceRepository defines data access for attendance records. The store
// enforces a unique constraint on (employee_id, date); Create surfaces a
// constraint violation as ErrAlreadyPunchedIn so concurrent punch-ins for the
// same day resolve to exactly one success.
type AttendanceRepository interface {
	// Create inserts a new record. A duplicate (employee_id, date) pair
	// returns ErrAlreadyPunchedIn.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByEmployeeAndDate returns the record for one employee-day, or
	// (nil, nil) when none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*Attendance, error)

	// Update writes the mutable transition fields (punch times, breaks,
	// totals, status, is_on_break) of an existing record. The write is a
	// compare-and-swap on updated_at: if the stored row changed since att
	// was read, ErrConcurrentUpdate is returned and nothing is written.
	Update(ctx context.Context, att Attendance) error

	// Upsert is the admin correction path: insert-or-replace keyed on
	// (employee_id, date), touching only the columns marked in set.
	Upsert(ctx context.Context, att Attendance, set UpsertFields) (Attendance, error)

	// ListByDateRange returns records with startDate <= date <= endDate.
	// Sorted oldest-first when asc, newest-first otherwise.
	ListByDateRange(ctx context.Context, employeeID, startDate, endDate string, asc bool) ([]Attendance, error)

	// ListEmployeeIDsWithRecordOn returns the distinct employee IDs that
	// already have a record for the given date.
	ListEmployeeIDsWithRecordOn(ctx context.Context, date string) ([]string, error)

	// BulkCreateAbsences inserts absent placeholders, skipping any
	// (employee_id, date) pair that already exists. Returns the number of
	// rows actually inserted; conflicts are not errors.
	BulkCreateAbsences(ctx context.Context, records []Attendance) (int, error)

	// CountPresentOn counts records on date with status present or half-day
	// restricted to the given employee IDs.
	CountPresentOn(ctx context.Context, date string, employeeIDs []string) (int64, error)

	// ListByDate returns all records for one date, any employee.
	ListByDate(ctx context.Context, date string) ([]Attendance, error)

	// DeleteOrphaned removes records whose employee is missing or no longer
	// active. Returns the number of rows removed.
	DeleteOrphaned(ctx context.Context) (int64, error)
}

// UpsertFields marks which columns an admin correction supplies.
type UpsertFields struct {
	PunchIn           bool
	PunchOut          bool
	Breaks            bool
	TotalBreakMinutes bool
	TotalWorkMinutes  bool
	Status            bool
	IsOnBreak         bool
}

// Any reports whether at least one field is marked.
func (f UpsertFields) Any() bool {
	return f.PunchIn || f.PunchOut || f.Breaks ||
		f.TotalBreakMinutes || f.TotalWorkMinutes || f.Status || f.IsOnBreak
}
