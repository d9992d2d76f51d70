package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brainiax/attendance-backend-go/internal/domain/attendance"
	"github.com/brainiax/attendance-backend-go/internal/domain/employee"
	"github.com/brainiax/attendance-backend-go/internal/pkg/clock"
)

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository

	presentCount int64
	records      []attendance.Attendance
	countedDate  string
	countedIDs   []string
}

func (f *fakeAttendanceRepo) CountPresentOn(ctx context.Context, date string, employeeIDs []string) (int64, error) {
	f.countedDate = date
	f.countedIDs = employeeIDs
	return f.presentCount, nil
}

func (f *fakeAttendanceRepo) ListByDate(ctx context.Context, date string) ([]attendance.Attendance, error) {
	return f.records, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository

	employees []employee.Employee
}

func (f *fakeEmployeeRepo) ListActiveIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(f.employees))
	for _, emp := range f.employees {
		ids = append(ids, emp.ID)
	}
	return ids, nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return f.employees, nil
}

var morning = time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

func TestGetStats(t *testing.T) {
	t.Run("computes counts and percentage", func(t *testing.T) {
		attendanceRepo := &fakeAttendanceRepo{presentCount: 2}
		employeeRepo := &fakeEmployeeRepo{employees: []employee.Employee{
			{ID: "emp-1"}, {ID: "emp-2"}, {ID: "emp-3"},
		}}
		svc := NewDashboardService(attendanceRepo, employeeRepo, &clock.Fixed{T: morning})

		stats, err := svc.GetStats(context.Background())
		require.NoError(t, err)

		assert.Equal(t, int64(3), stats.TotalEmployees)
		assert.Equal(t, int64(2), stats.PresentToday)
		assert.Equal(t, int64(1), stats.AbsentToday)
		assert.Equal(t, 66.67, stats.AttendancePercentage)
		assert.Equal(t, "2026-03-09", stats.Date)
		assert.Equal(t, "2026-03-09", attendanceRepo.countedDate)
		assert.Equal(t, []string{"emp-1", "emp-2", "emp-3"}, attendanceRepo.countedIDs)
	})

	t.Run("empty directory yields zero percentage", func(t *testing.T) {
		svc := NewDashboardService(&fakeAttendanceRepo{}, &fakeEmployeeRepo{}, &clock.Fixed{T: morning})

		stats, err := svc.GetStats(context.Background())
		require.NoError(t, err)

		assert.Equal(t, int64(0), stats.TotalEmployees)
		assert.Equal(t, 0.0, stats.AttendancePercentage)
	})
}

func TestGetEmployeesWithStatus(t *testing.T) {
	attendanceRepo := &fakeAttendanceRepo{records: []attendance.Attendance{
		{ID: "att-1", EmployeeID: "emp-1", Date: "2026-03-09", Status: attendance.StatusPresent},
	}}
	employeeRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-1", Name: "Jane"},
		{ID: "emp-2", Name: "Ravi"},
	}}
	svc := NewDashboardService(attendanceRepo, employeeRepo, &clock.Fixed{T: morning})

	got, err := svc.GetEmployeesWithStatus(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 2)
	require.NotNil(t, got[0].TodayAttendance)
	assert.Equal(t, "att-1", got[0].TodayAttendance.ID)
	assert.Nil(t, got[1].TodayAttendance)
	assert.Equal(t, "Ravi", got[1].Employee.Name)
}
