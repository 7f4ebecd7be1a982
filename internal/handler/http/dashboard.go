package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-lite-console/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite-console/internal/domain/view"
	"github.com/cmlabs-hris/hrms-lite-console/internal/handler/http/response"
)

const msgDashboardFailed = "Failed to load dashboard stats"

type DashboardHandler interface {
	// Page renders the dashboard screen
	Page(w http.ResponseWriter, r *http.Request)
	// GetDashboard returns the dashboard overview as JSON
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
	renderer         *Renderer
}

func NewDashboardHandler(dashboardService dashboard.DashboardService, renderer *Renderer) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService, renderer: renderer}
}

type dashboardPage struct {
	State view.State[dashboard.Overview]
}

// Page handles GET /
func (h *dashboardHandlerImpl) Page(w http.ResponseWriter, r *http.Request) {
	overview, err := h.dashboardService.GetOverview(r.Context())
	if err != nil {
		slog.Error("failed to load dashboard", "error", err)
		h.renderer.Render(w, r, http.StatusBadGateway, Page{
			Name:  "dashboard",
			Title: "Dashboard",
			Nav:   "dashboard",
			Data:  dashboardPage{State: view.Failed[dashboard.Overview](msgDashboardFailed)},
		})
		return
	}

	h.renderer.Render(w, r, http.StatusOK, Page{
		Name:  "dashboard",
		Title: "Dashboard",
		Nav:   "dashboard",
		Data:  dashboardPage{State: view.Loaded(overview)},
	})
}

// GetDashboard handles GET /api/v1/dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetOverview(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
