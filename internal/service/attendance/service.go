package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/brainiax/attendance-backend-go/internal/domain/attendance"
	"github.com/brainiax/attendance-backend-go/internal/pkg/clock"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	clock clock.Clock
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}

// today computes the server-side calendar date once per operation. The state
// machine is strictly per-day: a punch-in after midnight opens a fresh record
// under the new date, and any unclosed prior-day state stays under the old
// date until an admin correction.
func (a *AttendanceServiceImpl) today() string {
	return clock.DateString(a.clock.Now())
}

// PunchIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) PunchIn(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	today := a.today()

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyPunchedIn
	}

	now := a.clock.Now()
	record := attendance.Attendance{
		EmployeeID: employeeID,
		Date:       today,
		PunchIn:    &now,
		Status:     attendance.StatusPresent,
		Breaks:     []attendance.BreakPeriod{},
	}

	// The (employee_id, date) unique constraint settles concurrent punch-in
	// races: Create returns ErrAlreadyPunchedIn for all but one caller.
	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return MapAttendanceToResponse(created), nil
}

// PunchOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) PunchOut(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	today := a.today()

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotPunchedIn
	}
	if record.PunchOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyPunchedOut
	}
	if record.PunchIn == nil {
		// Swept absent placeholder: there is a record, but no shift to close.
		return attendance.AttendanceResponse{}, attendance.ErrNotPunchedIn
	}
	if record.IsOnBreak {
		return attendance.AttendanceResponse{}, attendance.ErrOnBreakMustEndFirst
	}

	now := a.clock.Now()
	breakMinutes := attendance.BreakMinutes(record.Breaks)
	workMinutes := attendance.WorkMinutes(*record.PunchIn, now, breakMinutes)

	record.PunchOut = &now
	record.TotalBreakMinutes = breakMinutes
	record.TotalWorkMinutes = workMinutes
	record.Status = attendance.StatusForWork(workMinutes)

	if err := a.AttendanceRepository.Update(ctx, *record); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return MapAttendanceToResponse(*record), nil
}

// StartBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) StartBreak(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	today := a.today()

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil || record.PunchIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotPunchedIn
	}
	if record.PunchOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyPunchedOut
	}
	if record.IsOnBreak {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyOnBreak
	}

	now := a.clock.Now()
	record.Breaks = append(record.Breaks, attendance.BreakPeriod{Start: now})
	record.IsOnBreak = true

	if err := a.AttendanceRepository.Update(ctx, *record); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return MapAttendanceToResponse(*record), nil
}

// EndBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) EndBreak(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	today := a.today()

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoRecordFound
	}
	if !record.IsOnBreak {
		return attendance.AttendanceResponse{}, attendance.ErrNotOnBreak
	}

	now := a.clock.Now()
	last := len(record.Breaks) - 1
	if last >= 0 && record.Breaks[last].End == nil {
		record.Breaks[last].End = &now
	}
	record.IsOnBreak = false
	record.TotalBreakMinutes = attendance.BreakMinutes(record.Breaks)

	if err := a.AttendanceRepository.Update(ctx, *record); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return MapAttendanceToResponse(*record), nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context, employeeID string) (*attendance.AttendanceResponse, error) {
	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, a.today())
	if err != nil {
		return nil, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil {
		return nil, nil
	}

	resp := MapAttendanceToResponse(*record)
	return &resp, nil
}

// monthWindow returns the inclusive date bounds of one calendar month as
// YYYY-MM-DD strings.
func monthWindow(year, month int) (string, string) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02")
}

// GetMonthlyHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMonthlyHistory(ctx context.Context, q attendance.MonthQuery) ([]attendance.AttendanceResponse, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	start, end := monthWindow(q.Year, q.Month)
	records, err := a.AttendanceRepository.ListByDateRange(ctx, q.EmployeeID, start, end, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly history: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, MapAttendanceToResponse(record))
	}
	return responses, nil
}

// GetDateRangeHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetDateRangeHistory(ctx context.Context, q attendance.RangeQuery) ([]attendance.AttendanceResponse, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	records, err := a.AttendanceRepository.ListByDateRange(ctx, q.EmployeeID, q.StartDate, q.EndDate, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get date range history: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, MapAttendanceToResponse(record))
	}
	return responses, nil
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// GetMonthlySummary implements attendance.AttendanceService. A pure fold over
// the stored month: recomputing it never mutates records.
func (a *AttendanceServiceImpl) GetMonthlySummary(ctx context.Context, q attendance.MonthQuery) (attendance.SummaryStats, error) {
	if err := q.Validate(); err != nil {
		return attendance.SummaryStats{}, err
	}

	start, end := monthWindow(q.Year, q.Month)
	records, err := a.AttendanceRepository.ListByDateRange(ctx, q.EmployeeID, start, end, false)
	if err != nil {
		return attendance.SummaryStats{}, fmt.Errorf("failed to get monthly records: %w", err)
	}

	var stats attendance.SummaryStats
	var totalWorkMinutes, totalBreakMinutes int
	for _, record := range records {
		switch record.Status {
		case attendance.StatusPresent:
			stats.PresentDays++
		case attendance.StatusAbsent:
			stats.AbsentDays++
		case attendance.StatusHalfDay:
			stats.HalfDays++
		}
		totalWorkMinutes += record.TotalWorkMinutes
		totalBreakMinutes += record.TotalBreakMinutes
	}

	stats.TotalDays = len(records)
	stats.TotalWorkHours = round2(float64(totalWorkMinutes) / 60)
	stats.TotalBreakHours = round2(float64(totalBreakMinutes) / 60)

	workedDays := stats.PresentDays + stats.HalfDays
	if workedDays > 0 {
		stats.AverageWorkHours = round2(stats.TotalWorkHours / float64(workedDays))
	}

	return stats, nil
}

// AdminUpsert implements attendance.AttendanceService. Trusted override: the
// supplied fields are written verbatim, keyed on (employee_id, date). Totals
// and status are not re-derived from the replacement punch times, so an
// administrator can produce combinations the guarded transitions never would;
// corrections depend on that.
func (a *AttendanceServiceImpl) AdminUpsert(ctx context.Context, req attendance.UpsertRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record := attendance.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
	}
	var set attendance.UpsertFields

	if req.PunchIn != nil {
		record.PunchIn = req.PunchIn
		set.PunchIn = true
	}
	if req.PunchOut != nil {
		record.PunchOut = req.PunchOut
		set.PunchOut = true
	}
	if req.Breaks != nil {
		record.Breaks = *req.Breaks
		set.Breaks = true
	}
	if req.TotalBreakMinutes != nil {
		record.TotalBreakMinutes = *req.TotalBreakMinutes
		set.TotalBreakMinutes = true
	}
	if req.TotalWorkMinutes != nil {
		record.TotalWorkMinutes = *req.TotalWorkMinutes
		set.TotalWorkMinutes = true
	}
	if req.Status != nil {
		record.Status = *req.Status
		set.Status = true
	}
	if req.IsOnBreak != nil {
		record.IsOnBreak = *req.IsOnBreak
		set.IsOnBreak = true
	}

	result, err := a.AttendanceRepository.Upsert(ctx, record, set)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return MapAttendanceToResponse(result), nil
}

// MapAttendanceToResponse converts an Attendance entity to AttendanceResponse.
func MapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	breaks := att.Breaks
	if breaks == nil {
		breaks = []attendance.BreakPeriod{}
	}

	return attendance.AttendanceResponse{
		ID:                att.ID,
		EmployeeID:        att.EmployeeID,
		EmployeeName:      att.EmployeeName,
		Date:              att.Date,
		PunchIn:           timePtrToString(att.PunchIn),
		PunchOut:          timePtrToString(att.PunchOut),
		Breaks:            breaks,
		TotalBreakMinutes: att.TotalBreakMinutes,
		TotalWorkMinutes:  att.TotalWorkMinutes,
		Status:            att.Status,
		IsOnBreak:         att.IsOnBreak,
	}
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	clk clock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		clock:                clk,
	}
}
