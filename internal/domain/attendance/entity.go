package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half-day"
)

// BreakPeriod is one break inside a shift. End is nil while the break is
// still open; an open break contributes nothing to the break total.
type BreakPeriod struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end"`
}

// Attendance is one employee's record for one calendar day. Date is the
// YYYY-MM-DD string key; together with EmployeeID it is unique.
//
// TotalBreakMinutes, TotalWorkMinutes and IsOnBreak are denormalized caches
// of what Breaks/PunchIn/PunchOut imply. They are recomputed on every guarded
// transition: the break total whenever a break closes or the shift ends, the
// work total only at punch-out. The admin correction path bypasses this
// recomputation on purpose.
type Attendance struct {
	ID                string
	EmployeeID        string
	Date              string
	PunchIn           *time.Time
	PunchOut          *time.Time
	Breaks            []BreakPeriod
	TotalBreakMinutes int
	TotalWorkMinutes  int
	Status            Status
	IsOnBreak         bool
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO
	EmployeeName *string
}
