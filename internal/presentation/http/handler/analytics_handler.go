package handler

import (
	"github.com/bots-hq/truegrow-kashmir-connect/internal/application/service"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AnalyticsHandler serves the sales analytics report
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	exportService    *service.ExportService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService, exportService *service.ExportService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService, exportService: exportService}
}

// Report returns the daily, category and product series plus summary stats
// @Summary Sales analytics
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /analytics [get]
func (h *AnalyticsHandler) Report(c *gin.Context) {
	report, err := h.analyticsService.Report(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Analytics retrieved successfully", report)
}

// Export downloads the report as a spreadsheet
func (h *AnalyticsHandler) Export(c *gin.Context) {
	data, filename, err := h.exportService.ExportReport(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, xlsxContentType, filename, data)
}
