package response

import (
	"errors"
	"net/http"

	"github.com/brainiax/attendance-backend-go/internal/domain/attendance"
	"github.com/brainiax/attendance-backend-go/internal/domain/auth"
	"github.com/brainiax/attendance-backend-go/internal/domain/employee"
	"github.com/brainiax/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Unknown errors collapse
// to an opaque 500; internals never reach the client.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAccountDeactivated):
		Forbidden(w, "Account is deactivated")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Attendance state machine errors
	case errors.Is(err, attendance.ErrAlreadyPunchedIn):
		Conflict(w, "Already punched in today")
	case errors.Is(err, attendance.ErrNotPunchedIn):
		BadRequest(w, "Must punch in first", nil)
	case errors.Is(err, attendance.ErrAlreadyPunchedOut):
		Conflict(w, "Already punched out today")
	case errors.Is(err, attendance.ErrAlreadyOnBreak):
		Conflict(w, "Already on break")
	case errors.Is(err, attendance.ErrNotOnBreak):
		BadRequest(w, "Not currently on break", nil)
	case errors.Is(err, attendance.ErrOnBreakMustEndFirst):
		BadRequest(w, "End the current break before punching out", nil)
	case errors.Is(err, attendance.ErrNoRecordFound):
		NotFound(w, "No attendance record found for today")
	case errors.Is(err, attendance.ErrConcurrentUpdate):
		Conflict(w, "Record was modified concurrently, please retry")
	case errors.Is(err, attendance.ErrInvalidDateFormat):
		BadRequest(w, "Invalid date format, expected YYYY-MM-DD", nil)
	case errors.Is(err, attendance.ErrInvalidDateRange):
		BadRequest(w, "Start date must be before or equal to end date", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
