package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/brainiax/attendance-backend-go/internal/domain/attendance"
	"github.com/brainiax/attendance-backend-go/internal/domain/audit"
	"github.com/brainiax/attendance-backend-go/internal/domain/employee"
	"github.com/brainiax/attendance-backend-go/internal/domain/report"
)

var (
	injectionPrefix = regexp.MustCompile(`^[=+\-@\t\r]`)
	unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

var csvColumns = []string{"Date", "Day", "Punch In", "Punch Out", "Break Time", "Worked Hours", "Status"}

type ReportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	auditRepo      audit.AuditRepository
}

// sanitizeCell prefixes values that a spreadsheet would evaluate as a
// formula. Applied to every cell derived from stored data.
func sanitizeCell(value string) string {
	if injectionPrefix.MatchString(value) {
		return "'" + value
	}
	return value
}

// formatHours renders minutes as "<H>h <M>m".
func formatHours(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// formatTime renders a punch timestamp for the export, "-" when unset.
func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format("03:04 PM")
}

// displayStatus capitalizes the stored status for the report.
func displayStatus(s attendance.Status) string {
	str := string(s)
	if str == "" {
		return str
	}
	return string(str[0]-'a'+'A') + str[1:]
}

// dateRange enumerates every calendar date from start to end inclusive.
func dateRange(startDate, endDate string) []string {
	start, _ := time.Parse("2006-01-02", startDate)
	end, _ := time.Parse("2006-01-02", endDate)

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("2006-01-02"))
	}
	return dates
}

// ExportEmployeeAttendance implements report.ReportService. The export is a
// dense day-by-day table: days without a record render as Absent without any
// placeholder being written back. Pending days inside the range therefore
// show Absent in the file while the store still has no record for them.
func (r *ReportServiceImpl) ExportEmployeeAttendance(ctx context.Context, req report.ExportRequest) (report.Export, error) {
	if err := req.Validate(); err != nil {
		return report.Export{}, err
	}

	emp, err := r.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return report.Export{}, err
	}

	records, err := r.attendanceRepo.ListByDateRange(ctx, req.EmployeeID, req.StartDate, req.EndDate, true)
	if err != nil {
		return report.Export{}, fmt.Errorf("failed to fetch attendance records: %w", err)
	}

	recordsByDate := make(map[string]attendance.Attendance, len(records))
	for _, record := range records {
		recordsByDate[record.Date] = record
	}

	allDates := dateRange(req.StartDate, req.EndDate)
	rows := make([][]string, 0, len(allDates)+8)
	for _, dateStr := range allDates {
		day, _ := time.Parse("2006-01-02", dateStr)
		dayName := day.Weekday().String()[:3]

		if record, ok := recordsByDate[dateStr]; ok {
			rows = append(rows, []string{
				sanitizeCell(dateStr),
				sanitizeCell(dayName),
				sanitizeCell(formatTime(record.PunchIn)),
				sanitizeCell(formatTime(record.PunchOut)),
				sanitizeCell(formatHours(record.TotalBreakMinutes)),
				sanitizeCell(formatHours(record.TotalWorkMinutes)),
				sanitizeCell(displayStatus(record.Status)),
			})
		} else {
			rows = append(rows, []string{
				sanitizeCell(dateStr),
				sanitizeCell(dayName),
				"-",
				"-",
				"-",
				"-",
				"Absent",
			})
		}
	}

	// Summary counts come from the rendered status column, so display-only
	// absences count the same as swept ones.
	var presentCount, halfDayCount, absentCount int
	for _, row := range rows {
		switch row[6] {
		case "Present":
			presentCount++
		case "Half-day":
			halfDayCount++
		case "Absent":
			absentCount++
		}
	}

	rows = append(rows,
		[]string{"", "", "", "", "", "", ""},
		[]string{"SUMMARY", "", "", "", "", "", ""},
		[]string{"Total Days", strconv.Itoa(len(allDates)), "", "", "", "", ""},
		[]string{"Present", strconv.Itoa(presentCount), "", "", "", "", ""},
		[]string{"Half Days", strconv.Itoa(halfDayCount), "", "", "", "", ""},
		[]string{"Absent", strconv.Itoa(absentCount), "", "", "", "", ""},
		[]string{"Employee", emp.Name, "", "", "", "", ""},
		[]string{"Period", fmt.Sprintf("%s to %s", req.StartDate, req.EndDate), "", "", "", "", ""},
	)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvColumns); err != nil {
		return report.Export{}, fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return report.Export{}, fmt.Errorf("failed to write csv rows: %w", err)
	}

	safeName := unsafeNameChars.ReplaceAllString(emp.Name, "_")
	safeStart := req.StartDate[:4] + req.StartDate[5:7] + req.StartDate[8:]
	safeEnd := req.EndDate[:4] + req.EndDate[5:7] + req.EndDate[8:]
	filename := fmt.Sprintf("%s_%s_to_%s.csv", safeName, safeStart, safeEnd)

	// The export is only handed out once the audit trail has it.
	_, err = r.auditRepo.Create(ctx, audit.Entry{
		Action:       audit.ActionCSVExport,
		PerformedBy:  req.RequestedBy,
		TargetUserID: &req.EmployeeID,
		Details:      fmt.Sprintf("Exported attendance for %s (%s to %s)", emp.Name, req.StartDate, req.EndDate),
		IPAddress:    req.IPAddress,
	})
	if err != nil {
		return report.Export{}, fmt.Errorf("failed to record export audit entry: %w", err)
	}

	return report.Export{CSV: buf.String(), Filename: filename}, nil
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	auditRepo audit.AuditRepository,
) report.ReportService {
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		auditRepo:      auditRepo,
	}
}
