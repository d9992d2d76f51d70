package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brainiax/attendance-backend-go/internal/domain/attendance"
	"github.com/brainiax/attendance-backend-go/internal/domain/employee"
	"github.com/brainiax/attendance-backend-go/internal/pkg/clock"
)

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	clock          clock.Clock
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		clock:          clk,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees writes an absent placeholder for every active employee
// with no record for the current date. It runs during the last hour of the
// UTC day so late punch-ins still win; placeholders insert with conflict
// skipping, so a punch-in racing the sweep keeps its record either way.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	// Only run during 23:00-23:59 UTC
	if j.clock.Now().UTC().Hour() != 23 {
		return nil
	}

	today := clock.DateString(j.clock.Now())
	slog.Info("Cron: Starting mark absent employees job", "date", today)

	activeIDs, err := j.employeeRepo.ListActiveIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}

	recordedIDs, err := j.attendanceRepo.ListEmployeeIDsWithRecordOn(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list recorded employees: %w", err)
	}

	recorded := make(map[string]struct{}, len(recordedIDs))
	for _, id := range recordedIDs {
		recorded[id] = struct{}{}
	}

	var absences []attendance.Attendance
	for _, id := range activeIDs {
		if _, ok := recorded[id]; ok {
			continue
		}
		absences = append(absences, attendance.Attendance{
			EmployeeID: id,
			Date:       today,
			Status:     attendance.StatusAbsent,
			Breaks:     []attendance.BreakPeriod{},
		})
	}

	if len(absences) == 0 {
		slog.Info("Cron: No absent employees to mark", "date", today)
		return nil
	}

	inserted, err := j.attendanceRepo.BulkCreateAbsences(ctx, absences)
	if err != nil {
		return fmt.Errorf("failed to bulk create absences: %w", err)
	}

	slog.Info("Cron: Marked absent employees", "date", today, "count", inserted)
	return nil
}
