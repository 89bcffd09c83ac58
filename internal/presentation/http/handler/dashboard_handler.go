package handler

import (
	"github.com/bots-hq/truegrow-kashmir-connect/internal/application/service"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the role dashboards
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// ShopOwner returns the shop owner's overview
func (h *DashboardHandler) ShopOwner(c *gin.Context) {
	overview, err := h.dashboardService.ShopOwnerDashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Dashboard retrieved successfully", overview)
}

// Customer returns the purchases billed to the caller's customer code
func (h *DashboardHandler) Customer(c *gin.Context) {
	overview, err := h.dashboardService.CustomerDashboard(c.Request.Context(), GetCustomerCode(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Dashboard retrieved successfully", overview)
}
