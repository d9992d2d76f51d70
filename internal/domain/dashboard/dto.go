package dashboard

import (
	"github.com/brainiax/attendance-backend-go/internal/domain/attendance"
	"github.com/brainiax/attendance-backend-go/internal/domain/employee"
)

// StatsResponse summarizes today's attendance across active employees.
// Absent is derived (total minus present), so employees the sweeper has not
// reached yet still count as absent here.
type StatsResponse struct {
	TotalEmployees       int64   `json:"total_employees"`
	PresentToday         int64   `json:"present_today"`
	AbsentToday          int64   `json:"absent_today"`
	AttendancePercentage float64 `json:"attendance_percentage"`
	Date                 string  `json:"date"`
}

// EmployeeStatusResponse pairs a directory entry with its record for today,
// nil when the employee has no record yet.
type EmployeeStatusResponse struct {
	Employee        employee.EmployeeResponse      `json:"employee"`
	TodayAttendance *attendance.AttendanceResponse `json:"today_attendance"`
}
