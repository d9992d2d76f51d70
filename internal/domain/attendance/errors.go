package attendance

import "errors"

// Attendance domain errors
var (
	// Punch errors
	ErrAlreadyPunchedIn  = errors.New("already punched in today")
	ErrNotPunchedIn      = errors.New("must punch in before punching out")
	ErrAlreadyPunchedOut = errors.New("already punched out today")

	// Break errors
	ErrAlreadyOnBreak      = errors.New("already on a break")
	ErrNotOnBreak          = errors.New("not currently on a break")
	ErrOnBreakMustEndFirst = errors.New("end your break before punching out")

	// General errors
	ErrNoRecordFound     = errors.New("no attendance record found")
	ErrConcurrentUpdate  = errors.New("attendance record was modified concurrently")
	ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidDateRange  = errors.New("start date must be before or equal to end date")
)
