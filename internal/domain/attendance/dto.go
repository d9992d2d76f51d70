package attendance

import (
	"time"

	"github.com/brainiax/attendance-backend-go/internal/pkg/validator"
)

// UpsertRequest is the admin correction payload. Only non-nil fields replace
// stored values; totals are taken as supplied and never re-derived, so an
// administrator can intentionally write combinations the state machine would
// not produce.
type UpsertRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`

	PunchIn           *time.Time     `json:"punch_in"`
	PunchOut          *time.Time     `json:"punch_out"`
	Breaks            *[]BreakPeriod `json:"breaks"`
	TotalBreakMinutes *int           `json:"total_break_minutes"`
	TotalWorkMinutes  *int           `json:"total_work_minutes"`
	Status            *Status        `json:"status"`
	IsOnBreak         *bool          `json:"is_on_break"`
}

func (r *UpsertRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsValidDateString(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.Status != nil {
		switch *r.Status {
		case StatusPresent, StatusAbsent, StatusHalfDay:
		default:
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of present, absent, half-day",
			})
		}
	}

	if r.TotalBreakMinutes != nil && *r.TotalBreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "total_break_minutes",
			Message: "total_break_minutes must not be negative",
		})
	}
	if r.TotalWorkMinutes != nil && *r.TotalWorkMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "total_work_minutes",
			Message: "total_work_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MonthQuery selects one employee-month.
type MonthQuery struct {
	EmployeeID string
	Year       int
	Month      int
}

func (q *MonthQuery) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(q.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if q.Month < 1 || q.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if q.Year < 2000 || q.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RangeQuery selects an inclusive date range for one employee.
type RangeQuery struct {
	EmployeeID string
	StartDate  string
	EndDate    string
}

func (q *RangeQuery) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(q.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if !validator.IsValidDateString(q.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	if !validator.IsValidDateString(q.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if len(errs) == 0 && q.StartDate > q.EndDate {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "start_date must be before or equal to end_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AttendanceResponse is the wire shape of one record.
type AttendanceResponse struct {
	ID                string        `json:"id"`
	EmployeeID        string        `json:"employee_id"`
	EmployeeName      *string       `json:"employee_name,omitempty"`
	Date              string        `json:"date"`
	PunchIn           *string       `json:"punch_in"`
	PunchOut          *string       `json:"punch_out"`
	Breaks            []BreakPeriod `json:"breaks"`
	TotalBreakMinutes int           `json:"total_break_minutes"`
	TotalWorkMinutes  int           `json:"total_work_minutes"`
	Status            Status        `json:"status"`
	IsOnBreak         bool          `json:"is_on_break"`
}

// SummaryStats is the monthly fold over one employee's records. TotalDays
// counts only days with a record, including swept absences, not the calendar
// length of the month.
type SummaryStats struct {
	TotalDays        int     `json:"total_days"`
	PresentDays      int     `json:"present_days"`
	AbsentDays       int     `json:"absent_days"`
	HalfDays         int     `json:"half_days"`
	TotalWorkHours   float64 `json:"total_work_hours"`
	TotalBreakHours  float64 `json:"total_break_hours"`
	AverageWorkHours float64 `json:"average_work_hours"`
}
