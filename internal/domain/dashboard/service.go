package dashboard

import "context"

// DashboardService aggregates directory and attendance data for the admin
// dashboard. Read-only; all counts are snapshot queries.
type DashboardService interface {
	GetStats(ctx context.Context) (StatsResponse, error)
	GetEmployeesWithStatus(ctx context.Context) ([]EmployeeStatusResponse, error)
}
