package http

import (
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brainiax/attendance-backend-go/internal/domain/report"
	"github.com/brainiax/attendance-backend-go/internal/handler/http/middleware"
	"github.com/brainiax/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	ExportAttendance(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// ExportAttendance implements ReportHandler. On success the body is the CSV
// document itself, served as a download.
func (h *reportHandlerImpl) ExportAttendance(w http.ResponseWriter, r *http.Request) {
	req := report.ExportRequest{
		EmployeeID:  chi.URLParam(r, "employeeId"),
		StartDate:   r.URL.Query().Get("start"),
		EndDate:     r.URL.Query().Get("end"),
		RequestedBy: middleware.EmployeeID(r),
		IPAddress:   clientIP(r),
	}

	result, err := h.reportService.ExportEmployeeAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(result.CSV))
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
