package handler

import (
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/application/service"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/presentation/http/dto/request"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/presentation/http/dto/response"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService    *service.SaleService
	invoiceService *service.InvoiceService
	loc            *time.Location
}

// NewSaleHandler creates a new sale handler. Date filters are read in loc.
func NewSaleHandler(saleService *service.SaleService, invoiceService *service.InvoiceService, loc *time.Location) *SaleHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &SaleHandler{saleService: saleService, invoiceService: invoiceService, loc: loc}
}

// List handles listing the shop owner's sales, page or cursor based
func (h *SaleHandler) List(c *gin.Context) {
	var req request.SaleFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	var status *enum.PaymentStatus
	if req.Status != "" && req.Status != "all" {
		s, ok := enum.ParsePaymentStatus(req.Status)
		if !ok {
			response.BadRequest(c, "Invalid payment status")
			return
		}
		status = &s
	}
	start := parseDate(req.StartDate, h.loc)
	end := parseDate(req.EndDate, h.loc)
	if end != nil {
		endOfDay := end.Add(24*time.Hour - time.Nanosecond)
		end = &endOfDay
	}

	if req.IsCursorBased() {
		result, err := h.saleService.ListSalesWithCursor(c.Request.Context(), &repository.SaleCursorFilterParams{
			Cursor:     req.ToCursorParams(),
			Search:     req.Search,
			Status:     status,
			CustomerID: req.CustomerID,
			StartDate:  start,
			EndDate:    end,
		})
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Sales retrieved successfully", pagination.FromCursor(result))
		return
	}

	result, err := h.saleService.ListSales(c.Request.Context(), &repository.SaleFilterParams{
		Pagination: req.ToPaginationParams(),
		Search:     req.Search,
		Status:     status,
		CustomerID: req.CustomerID,
		StartDate:  start,
		EndDate:    end,
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales retrieved successfully", pagination.FromPage(result))
}

// Recent returns the latest sales for the dashboard
func (h *SaleHandler) Recent(c *gin.Context) {
	sales, err := h.saleService.RecentSales(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Recent sales retrieved successfully", sales)
}

// Get handles retrieving a single sale
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale retrieved successfully", sale)
}

// Update handles editing a sale's items or payment status
func (h *SaleHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req request.UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.saleService.UpdateSale(c.Request.Context(), id, &service.SaleEditInput{
		Items:         toLineInputs(req.Items),
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale updated successfully", sale)
}

// UpdatePaymentStatus marks a sale paid, pending or overdue
func (h *SaleHandler) UpdatePaymentStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req request.PaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.saleService.UpdatePaymentStatus(c.Request.Context(), id, req.PaymentStatus)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment status updated successfully", sale)
}

// Rate records the shop owner's rating of the customer on a sale
func (h *SaleHandler) Rate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req request.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.saleService.RateCustomer(c.Request.Context(), id, req.Rating, req.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Rating saved successfully", sale)
}

// DownloadInvoice streams the sale's PDF invoice
// @Summary Download invoice
// @Tags sales
// @Security BearerAuth
// @Produce application/pdf
// @Param id path string true "Sale ID"
// @Success 200 {file} file
// @Router /sales/{id}/invoice [get]
func (h *SaleHandler) DownloadInvoice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	pdf, filename, err := h.invoiceService.RenderInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, "application/pdf", filename, pdf)
}
