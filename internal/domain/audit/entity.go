package audit

import "time"

const ActionCSVExport = "CSV_EXPORT"

// Entry is one immutable audit row: who did what to whom, from where.
type Entry struct {
	ID           string
	Action       string
	PerformedBy  string
	TargetUserID *string
	Details      string
	IPAddress    string
	CreatedAt    time.Time
}
