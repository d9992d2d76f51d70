package attendance

import (
	"context"
)

// AttendanceService defines the attendance state machine and its read paths.
// Employees move through NotStarted -> Working -> (OnBreak -> Working)* -> Done
// within a single server-side calendar day; every transition is guarded and
// rejected with a specific domain error when out of order.
type AttendanceService interface {
	// PunchIn opens today's record. Fails with ErrAlreadyPunchedIn when a
	// record for (employee, today) already exists.
	PunchIn(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// PunchOut closes today's shift, recomputing break and work totals and
	// deciding present vs half-day.
	PunchOut(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// StartBreak appends an open break period to today's record.
	StartBreak(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// EndBreak closes the most recently opened break and refreshes the
	// break total.
	EndBreak(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// GetToday returns today's record, or nil when the employee has not
	// punched in (and the sweeper has not run).
	GetToday(ctx context.Context, employeeID string) (*AttendanceResponse, error)

	// GetMonthlyHistory returns one employee-month, newest first.
	GetMonthlyHistory(ctx context.Context, q MonthQuery) ([]AttendanceResponse, error)

	// GetMonthlySummary folds one employee-month into summary statistics.
	// It never mutates stored records.
	GetMonthlySummary(ctx context.Context, q MonthQuery) (SummaryStats, error)

	// GetDateRangeHistory returns records in [start, end], oldest first.
	GetDateRangeHistory(ctx context.Context, q RangeQuery) ([]AttendanceResponse, error)

	// AdminUpsert is the trusted override: create-or-replace a record with
	// exactly the supplied fields, bypassing transition guards and total
	// recomputation.
	AdminUpsert(ctx context.Context, req UpsertRequest) (AttendanceResponse, error)
}
