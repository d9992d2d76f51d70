package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brainiax/attendance-backend-go/internal/domain/attendance"
	"github.com/brainiax/attendance-backend-go/internal/pkg/clock"
)

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository

	createFn          func(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error)
	getByEmpAndDateFn func(ctx context.Context, employeeID, date string) (*attendance.Attendance, error)
	updateFn          func(ctx context.Context, att attendance.Attendance) error
	upsertFn          func(ctx context.Context, att attendance.Attendance, set attendance.UpsertFields) (attendance.Attendance, error)
	listByDateRangeFn func(ctx context.Context, employeeID, startDate, endDate string, asc bool) ([]attendance.Attendance, error)
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	return f.createFn(ctx, att)
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*attendance.Attendance, error) {
	return f.getByEmpAndDateFn(ctx, employeeID, date)
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	return f.updateFn(ctx, att)
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, att attendance.Attendance, set attendance.UpsertFields) (attendance.Attendance, error) {
	return f.upsertFn(ctx, att, set)
}

func (f *fakeAttendanceRepo) ListByDateRange(ctx context.Context, employeeID, startDate, endDate string, asc bool) ([]attendance.Attendance, error) {
	return f.listByDateRangeFn(ctx, employeeID, startDate, endDate, asc)
}

var evening = time.Date(2026, 3, 9, 18, 0, 0, 0, time.UTC)

func timeAt(hour, min int) time.Time {
	return time.Date(2026, 3, 9, hour, min, 0, 0, time.UTC)
}

func timeAtPtr(hour, min int) *time.Time {
	t := timeAt(hour, min)
	return &t
}

func noRecord(ctx context.Context, employeeID, date string) (*attendance.Attendance, error) {
	return nil, nil
}

func TestPunchIn(t *testing.T) {
	t.Run("creates today's record", func(t *testing.T) {
		repo := &fakeAttendanceRepo{
			getByEmpAndDateFn: noRecord,
			createFn: func(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
				att.ID = "att-1"
				return att, nil
			},
		}
		svc := NewAttendanceService(repo, &clock.Fixed{T: timeAt(9, 0)})

		got, err := svc.PunchIn(context.Background(), "emp-1")
		require.NoError(t, err)

		assert.Equal(t, "att-1", got.ID)
		assert.Equal(t, "2026-03-09", got.Date)
		assert.Equal(t, attendance.StatusPresent, got.Status)
		require.NotNil(t, got.PunchIn)
		assert.Nil(t, got.PunchOut)
		assert.False(t, got.IsOnBreak)
	})

	t.Run("rejects duplicate punch-in", func(t *testing.T) {
		repo := &fakeAttendanceRepo{
			getByEmpAndDateFn: func(ctx context.Context, employeeID, date string) (*attendance.Attendance, error) {
				return &attendance.Attendance{ID: "att-1", PunchIn: timeAtPtr(8, 0)}, nil
			},
		}
		svc := NewAttendanceService(repo, &clock.Fixed{T: timeAt(9, 0)})

		_, err := svc.PunchIn(context.Background(), "emp-1")
		assert.ErrorIs(t, err, attendance.ErrAlreadyPunchedIn)
	})

	t.Run("surfaces constraint race as duplicate", func(t *testing.T) {
		repo := &fakeAttendanceRepo{
			getByEmpAndDateFn: noRecord,
			createFn: func(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
				return attendance.Attendance{}, attendance.ErrAlreadyPunchedIn
			},
		}
		svc := NewAttendanceService(repo, &clock.Fixed{T: timeAt(9, 0)})

		_, err := svc.PunchIn(context.Background(), "emp-1")
		assert.ErrorIs(t, err, attendance.ErrAlreadyPunchedIn)
	})
}

func TestPunchOut(t *testing.T) {
	t.Run("computes totals and status", func(t *testing.T) {
		record := &attendance.Attendance{
			ID:         "att-1",
			EmployeeID: "emp-1",
			Date:       "2026-03-09",
			PunchIn:    timeAtPtr(9, 0),
			Breaks: []attendance.BreakPeriod{
				{Start: timeAt(12, 0), End: timeAtPtr(12, 30)},
			},
			Status: attendance.StatusPresent,
		}
		var updated attendance.Attendance
		repo := &fakeAttendanceRepo{
			getByEmpAndDateFn: func(ctx context.Context, employeeID, date string) (*attendance.Attendance, error) {
				return record, nil
			},
			updateFn: func(ctx context.Context, att attendance.Attendance) error {
				updated = att
				return nil
			},
		}
		svc := NewAttendanceService(repo, &clock.Fixed{T: evening})

		got, err := svc.PunchOut(context.Background(), "emp-1")
		require.NoError(t, err)

		assert.Equal(t, 30, updated.TotalBreakMinutes)
		assert.Equal(t, 510, updated.TotalWorkMinutes)
		assert.Equal(t, attendance.StatusPresent, updated.Status)
		require.NotNil(t, updated.PunchOut)
		assert.Equal(t, evening, *updated.PunchOut)
		assert.Equal(t, attendance.StatusPresent, got.Status)
	})

	t.Run("short shift becomes half-day", func(t *testing.T) {
		record := &attendance.Attendance{
			ID:      "att-1",
			Date:    "2026-03-09",
			PunchIn: timeAtPtr(9, 0),
			Status:  attendance.StatusPresent,
		}
		var updated attendance.Attendance
		repo := &fakeAttendanceRepo{
			getByEmpAndDateFn: func(ctx context.Context, employeeID, date string) (*attendance.Attendance, error) {
				return record, nil
			},
			updateFn: func(ctx context.Context, att attendance.Attendance) error {
				updated = att
				return nil
			},
		}
		svc := NewAttendanceService(repo, &clock.Fixed{T: timeAt(12, 30)})

		_, err := svc.PunchOut(context.Background(), "emp-1")
		require.NoError(t, err)

		assert.Equal(t, 210, updated.TotalWorkMinutes)
		assert.Equal(t, attendance.StatusHalfDay, updated.Status)
	})

	t.Run("requires punch-in", func(t *testing.T) {
		repo := &fakeAttendanceRepo{getByEmpAndDateFn: noRecord}
		svc := NewAttendanceService(repo, &clock.Fixed{T: evening})

		_, err := svc.PunchOut(context.Background(), "emp-1")
		assert.ErrorIs(t, err, attendance.ErrNotPunchedIn)
	})

	t.Run("rejects second punch-out", func(t *testing.T) {
		repo := &fakeAttendanceRepo{
			getByEmpAndDateFn: func(ctx context.Context, employeeID, date string) (*attendance.Attendance, error) {
				return &attendance.Attendance{
					PunchIn:  timeAtPtr(9, 0),
					PunchOut: timeAtPtr(17, 0),
				}, nil
			},
		}
		svc := NewAttendanceService(repo, &clock.Fixed{T: evening})

		_, err := svc.PunchOut(context.Background(), "emp-1")
		assert.ErrorIs(t, err, attendance.ErrAlreadyPunchedOut)
	})

	t.Run("rejects punch-out on absent placeholder", func(t *testing.T) {
		repo := &fakeAttendanceRepo{
			getByEmpAndDateFn: func(ctx context.Context, employeeID, date string) (*attendance.Attendance, error) {
				return &attendance.Attendance{Status: attendance.StatusAbsent}, nil
			},
		}
		svc := NewAttendanceService(repo, &clock.Fixed{T: evening})

		_, err := svc.PunchOut(context.Background(), "emp-1")
		assert.ErrorIs(t, err, attendance.ErrNotPunchedIn)
	})

	t.Run("rejects punch-out while on break", func(t *testing.T) {
		repo := &fakeAttendanceRepo{
			getByEmpAndDateFn: func(ctx context.Context, employeeID, date string) (*attendance.Attendance, error) {
				return &attendance.Attendance{
					PunchIn:   timeAtPtr(9, 0),
					IsOnBreak: true,
					Breaks:    []attendance.BreakPeriod{{Start: timeAt(12, 0)}},
				}, nil
			},
		}
		svc := NewAttendanceService(repo, &clock.Fixed{T: evening})

		_, err := svc.PunchOut(context.Background(), "emp-1")
		assert.ErrorIs(t, err, attendance.ErrOnBreakMustEndFirst)
	})
}

func TestStartBreak(t *testing.T) {
	t.Run("appends open break", func(t *testing.T) {
		var updated attendance.Attendance
		repo := &fakeAttendanceRepo{
			getByEmpAndDateFn: func(ctx context.Context, employeeID, date string) (*attendance.Attendance, error) {
				return &attendance.Attendance{PunchIn: timeAtPtr(9, 0)}, nil
			},
			updateFn: func(ctx context.Context, att attendance.Attendance) error {
				updated = att
				return nil
			},
		}
		svc := NewAttendanceService(repo, &clock.Fixed{T: timeAt(12, 0)})

		got, err := svc.StartBreak(context.Background(), "emp-1")
		require.NoError(t, err)

		require.Len(t, updated.Breaks, 1)
		assert.Equal(t, timeAt(12, 0), updated.Breaks[0].Start)
		assert.Nil(t, updated.Breaks[0].End)
		assert.True(t, updated.IsOnBreak)
		assert.True(t, got.IsOnBreak)
	})

	t.Run("requires punch-in", func(t *testing.T) {
		repo := &fakeAttendanceRepo{getByEmpAndDateFn: noRecord}
		svc := NewAttendanceService(repo, &clock.Fixed{T: timeAt(12, 0)})

		_, err := svc.StartBreak(context.Background(), "emp-1")
		assert.ErrorIs(t, err, attendance.ErrNotPunchedIn)
	})

	t.Run("rejects after punch-out", func(t *testing.T) {
		repo := &fakeAttendanceRepo{
			getByEmpAndDateFn: func(ctx context.Context, employeeID, date string) (*attendance.Attendance, error) {
				return &attendance.Attendance{
					PunchIn:  timeAtPtr(9, 0),
					PunchOut: timeAtPtr(17, 0),
				}, nil
			},
		}
		svc := NewAttendanceService(repo, &clock.Fixed{T: timeAt(17, 30)})

		_, err := svc.StartBreak(context.Background(), "emp-1")
		assert.ErrorIs(t, err, attendance.ErrAlreadyPunchedOut)
	})

	t.Run("rejects nested break", func(t *testing.T) {
		repo := &fakeAttendanceRepo{
			getByEmpAndDateFn: func(ctx context.Context, employeeID, date string) (*attendance.Attendance, error) {
				return &attendance.Attendance{
					PunchIn:   timeAtPtr(9, 0),
					IsOnBreak: true,
					Breaks:    []attendance.BreakPeriod{{Start: timeAt(12, 0)}},
				}, nil
			},
		}
		svc := NewAttendanceService(repo, &clock.Fixed{T: timeAt(12, 5)})

		_, err := svc.StartBreak(context.Background(), "emp-1")
		assert.ErrorIs(t, err, attendance.ErrAlreadyOnBreak)
	})
}

func TestEndBreak(t *testing.T) {
	t.Run("closes latest break and refreshes total", func(t *testing.T) {
		var updated attendance.Attendance
		repo := &fakeAttendanceRepo{
			getByEmpAndDateFn: func(ctx context.Context, employeeID, date string) (*attendance.Attendance, error) {
				return &attendance.Attendance{
					PunchIn:   timeAtPtr(9, 0),
					IsOnBreak: true,
					Breaks: []attendance.BreakPeriod{
						{Start: timeAt(10, 0), End: timeAtPtr(10, 15)},
						{Start: timeAt(12, 0)},
					},
				}, nil
			},
			updateFn: func(ctx context.Context, att attendance.Attendance) error {
				updated = att
				return nil
			},
		}
		svc := NewAttendanceService(repo, &clock.Fixed{T: timeAt(12, 30)})

		_, err := svc.EndBreak(context.Background(), "emp-1")
		require.NoError(t, err)

		require.Len(t, updated.Breaks, 2)
		require.NotNil(t, updated.Breaks[1].End)
		assert.Equal(t, timeAt(12, 30), *updated.Breaks[1].End)
		assert.False(t, updated.IsOnBreak)
		assert.Equal(t, 45, updated.TotalBreakMinutes)
	})

	t.Run("requires a record", func(t *testing.T) {
		repo := &fakeAttendanceRepo{getByEmpAndDateFn: noRecord}
		svc := NewAttendanceService(repo, &clock.Fixed{T: timeAt(12, 30)})

		_, err := svc.EndBreak(context.Background(), "emp-1")
		assert.ErrorIs(t, err, attendance.ErrNoRecordFound)
	})

	t.Run("rejects when not on break", func(t *testing.T) {
		repo := &fakeAttendanceRepo{
			getByEmpAndDateFn: func(ctx context.Context, employeeID, date string) (*attendance.Attendance, error) {
				return &attendance.Attendance{PunchIn: timeAtPtr(9, 0)}, nil
			},
		}
		svc := NewAttendanceService(repo, &clock.Fixed{T: timeAt(12, 30)})

		_, err := svc.EndBreak(context.Background(), "emp-1")
		assert.ErrorIs(t, err, attendance.ErrNotOnBreak)
	})
}

func TestGetToday(t *testing.T) {
	t.Run("nil when no record", func(t *testing.T) {
		repo := &fakeAttendanceRepo{getByEmpAndDateFn: noRecord}
		svc := NewAttendanceService(repo, &clock.Fixed{T: timeAt(10, 0)})

		got, err := svc.GetToday(context.Background(), "emp-1")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestGetMonthlyHistory(t *testing.T) {
	t.Run("queries the month window newest first", func(t *testing.T) {
		var gotStart, gotEnd string
		var gotAsc bool
		repo := &fakeAttendanceRepo{
			listByDateRangeFn: func(ctx context.Context, employeeID, startDate, endDate string, asc bool) ([]attendance.Attendance, error) {
				gotStart, gotEnd, gotAsc = startDate, endDate, asc
				return nil, nil
			},
		}
		svc := NewAttendanceService(repo, &clock.Fixed{T: timeAt(10, 0)})

		_, err := svc.GetMonthlyHistory(context.Background(), attendance.MonthQuery{
			EmployeeID: "emp-1", Year: 2026, Month: 2,
		})
		require.NoError(t, err)

		assert.Equal(t, "2026-02-01", gotStart)
		assert.Equal(t, "2026-02-28", gotEnd)
		assert.False(t, gotAsc)
	})

	t.Run("rejects invalid month", func(t *testing.T) {
		svc := NewAttendanceService(&fakeAttendanceRepo{}, &clock.Fixed{T: timeAt(10, 0)})

		_, err := svc.GetMonthlyHistory(context.Background(), attendance.MonthQuery{
			EmployeeID: "emp-1", Year: 2026, Month: 13,
		})
		assert.Error(t, err)
	})
}

func TestGetMonthlySummary(t *testing.T) {
	records := []attendance.Attendance{
		{Status: attendance.StatusPresent, TotalWorkMinutes: 510, TotalBreakMinutes: 30},
		{Status: attendance.StatusPresent, TotalWorkMinutes: 480, TotalBreakMinutes: 60},
		{Status: attendance.StatusHalfDay, TotalWorkMinutes: 210, TotalBreakMinutes: 0},
		{Status: attendance.StatusAbsent},
	}
	repo := &fakeAttendanceRepo{
		listByDateRangeFn: func(ctx context.Context, employeeID, startDate, endDate string, asc bool) ([]attendance.Attendance, error) {
			return records, nil
		},
	}
	svc := NewAttendanceService(repo, &clock.Fixed{T: timeAt(10, 0)})

	stats, err := svc.GetMonthlySummary(context.Background(), attendance.MonthQuery{
		EmployeeID: "emp-1", Year: 2026, Month: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalDays)
	assert.Equal(t, 2, stats.PresentDays)
	assert.Equal(t, 1, stats.AbsentDays)
	assert.Equal(t, 1, stats.HalfDays)
	assert.Equal(t, 20.0, stats.TotalWorkHours)
	assert.Equal(t, 1.5, stats.TotalBreakHours)
	// Average divides the rounded total by worked days only.
	assert.Equal(t, 6.67, stats.AverageWorkHours)
}

func TestAdminUpsert(t *testing.T) {
	t.Run("marks exactly the supplied fields", func(t *testing.T) {
		var gotSet attendance.UpsertFields
		var gotRecord attendance.Attendance
		repo := &fakeAttendanceRepo{
			upsertFn: func(ctx context.Context, att attendance.Attendance, set attendance.UpsertFields) (attendance.Attendance, error) {
				gotRecord, gotSet = att, set
				return att, nil
			},
		}
		svc := NewAttendanceService(repo, &clock.Fixed{T: timeAt(10, 0)})

		status := attendance.StatusPresent
		work := 480
		_, err := svc.AdminUpsert(context.Background(), attendance.UpsertRequest{
			EmployeeID:       "emp-1",
			Date:             "2026-03-05",
			PunchIn:          timeAtPtr(9, 0),
			TotalWorkMinutes: &work,
			Status:           &status,
		})
		require.NoError(t, err)

		assert.True(t, gotSet.PunchIn)
		assert.True(t, gotSet.TotalWorkMinutes)
		assert.True(t, gotSet.Status)
		assert.False(t, gotSet.PunchOut)
		assert.False(t, gotSet.Breaks)
		assert.False(t, gotSet.IsOnBreak)
		assert.Equal(t, "emp-1", gotRecord.EmployeeID)
		assert.Equal(t, "2026-03-05", gotRecord.Date)
		assert.Equal(t, 480, gotRecord.TotalWorkMinutes)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		svc := NewAttendanceService(&fakeAttendanceRepo{}, &clock.Fixed{T: timeAt(10, 0)})

		_, err := svc.AdminUpsert(context.Background(), attendance.UpsertRequest{
			EmployeeID: "emp-1",
			Date:       "05-03-2026",
		})
		assert.Error(t, err)
	})
}
