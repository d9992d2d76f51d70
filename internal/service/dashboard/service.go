package dashboard

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/brainiax/attendance-backend-go/internal/domain/attendance"
	"github.com/brainiax/attendance-backend-go/internal/domain/dashboard"
	"github.com/brainiax/attendance-backend-go/internal/domain/employee"
	"github.com/brainiax/attendance-backend-go/internal/pkg/clock"
	attendanceService "github.com/brainiax/attendance-backend-go/internal/service/attendance"
	employeeService "github.com/brainiax/attendance-backend-go/internal/service/employee"
)

type DashboardServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	clock          clock.Clock
}

// GetStats implements dashboard.DashboardService. Absent is total minus
// present, so employees without any record yet already count as absent.
func (d *DashboardServiceImpl) GetStats(ctx context.Context) (dashboard.StatsResponse, error) {
	today := clock.DateString(d.clock.Now())

	activeIDs, err := d.employeeRepo.ListActiveIDs(ctx)
	if err != nil {
		return dashboard.StatsResponse{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	present, err := d.attendanceRepo.CountPresentOn(ctx, today, activeIDs)
	if err != nil {
		return dashboard.StatsResponse{}, fmt.Errorf("failed to count present employees: %w", err)
	}

	total := int64(len(activeIDs))
	stats := dashboard.StatsResponse{
		TotalEmployees: total,
		PresentToday:   present,
		AbsentToday:    total - present,
		Date:           today,
	}
	if total > 0 {
		stats.AttendancePercentage = math.Round(float64(present)/float64(total)*10000) / 100
	}

	return stats, nil
}

// GetEmployeesWithStatus implements dashboard.DashboardService. The directory
// and today's records load concurrently, then join on employee ID.
func (d *DashboardServiceImpl) GetEmployeesWithStatus(ctx context.Context) ([]dashboard.EmployeeStatusResponse, error) {
	today := clock.DateString(d.clock.Now())

	var (
		employees []employee.Employee
		records   []attendance.Attendance
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = d.employeeRepo.ListActive(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = d.attendanceRepo.ListByDate(gctx, today)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard data: %w", err)
	}

	recordsByEmployee := make(map[string]attendance.Attendance, len(records))
	for _, record := range records {
		recordsByEmployee[record.EmployeeID] = record
	}

	responses := make([]dashboard.EmployeeStatusResponse, 0, len(employees))
	for _, emp := range employees {
		status := dashboard.EmployeeStatusResponse{
			Employee: employeeService.MapEmployeeToResponse(emp),
		}
		if record, ok := recordsByEmployee[emp.ID]; ok {
			resp := attendanceService.MapAttendanceToResponse(record)
			status.TodayAttendance = &resp
		}
		responses = append(responses, status)
	}

	return responses, nil
}

func NewDashboardService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		clock:          clk,
	}
}
