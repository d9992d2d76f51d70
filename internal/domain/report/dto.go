package report

import (
	"github.com/brainiax/attendance-backend-go/internal/pkg/validator"
)

// ExportRequest describes one CSV export: a dense day-by-day table for a
// single employee over an inclusive date range.
type ExportRequest struct {
	EmployeeID string
	StartDate  string
	EndDate    string

	// Audit context
	RequestedBy string
	IPAddress   string
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.StartDate == "" || r.EndDate == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "date_range",
			Message: "start date and end date are required",
		})
		return errs
	}
	if !validator.IsValidDateString(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	if !validator.IsValidDateString(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if len(errs) == 0 && r.StartDate > r.EndDate {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "start date must be before or equal to end date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Export is a rendered CSV document plus its download filename.
type Export struct {
	CSV      string
	Filename string
}
