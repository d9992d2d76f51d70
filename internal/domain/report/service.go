package report

import "context"

// ReportService generates attendance exports. Exports read persisted records
// and re-derive display values; they never write attendance state. Each
// successful export records one audit entry.
type ReportService interface {
	ExportEmployeeAttendance(ctx context.Context, req ExportRequest) (Export, error)
}
