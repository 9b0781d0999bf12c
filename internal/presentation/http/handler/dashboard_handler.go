package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/glowdesk/salonpos-api/internal/application/service"
	"github.com/glowdesk/salonpos-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats handles getting dashboard statistics
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats := h.dashboardService.GetDashboardStats()
	response.OK(c, "Dashboard stats retrieved successfully", stats)
}

// RecentBills handles listing the most recent bills for the dashboard.
func (h *DashboardHandler) RecentBills(c *gin.Context) {
	n, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || n < 1 {
		n = 5
	}

	bills := h.dashboardService.RecentBills(n)
	response.OK(c, "Recent bills retrieved successfully", bills)
}
