package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brainiax/attendance-backend-go/internal/domain/attendance"
	"github.com/brainiax/attendance-backend-go/internal/handler/http/response"
)

// AdminAttendanceHandler exposes the administrator view of attendance:
// arbitrary date ranges for any employee, plus the correction upsert.
type AdminAttendanceHandler interface {
	GetRangeHistory(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
}

type adminAttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAdminAttendanceHandler(attendanceService attendance.AttendanceService) AdminAttendanceHandler {
	return &adminAttendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// GetRangeHistory implements AdminAttendanceHandler.
func (h *adminAttendanceHandlerImpl) GetRangeHistory(w http.ResponseWriter, r *http.Request) {
	q := attendance.RangeQuery{
		EmployeeID: chi.URLParam(r, "employeeId"),
		StartDate:  r.URL.Query().Get("start"),
		EndDate:    r.URL.Query().Get("end"),
	}

	result, err := h.attendanceService.GetDateRangeHistory(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Upsert implements AdminAttendanceHandler. The URL decides which record is
// corrected; matching fields in the body are ignored.
func (h *adminAttendanceHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeId")
	req.Date = chi.URLParam(r, "date")

	result, err := h.attendanceService.AdminUpsert(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance record saved", result)
}
