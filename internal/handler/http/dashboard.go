package http

import (
	"net/http"

	"github.com/brainiax/attendance-backend-go/internal/domain/dashboard"
	"github.com/brainiax/attendance-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	GetStats(w http.ResponseWriter, r *http.Request)
	GetEmployeesWithStatus(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
	}
}

// GetStats implements DashboardHandler.
func (h *dashboardHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetEmployeesWithStatus implements DashboardHandler.
func (h *dashboardHandlerImpl) GetEmployeesWithStatus(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetEmployeesWithStatus(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
