package handler

import (
	"github.com/bots-hq/truegrow-kashmir-connect/internal/application/service"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/presentation/http/dto/request"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// BillingHandler serves the billing form
type BillingHandler struct {
	billingService *service.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// Preview computes line and invoice totals for the form without saving anything
// @Summary Preview invoice totals
// @Tags billing
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.SaleRequest true "Billing form"
// @Success 200 {object} response.APIResponse
// @Router /billing/preview [post]
func (h *BillingHandler) Preview(c *gin.Context) {
	var req request.SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	quote, err := h.billingService.Preview(c.Request.Context(), &service.SaleInput{
		CustomerID: req.CustomerID,
		Items:      toLineInputs(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice totals calculated", quote)
}

// Submit records a sale from the billing form
// @Summary Record sale
// @Tags sales
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Client retry key"
// @Param request body request.SaleRequest true "Billing form"
// @Success 201 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /sales [post]
func (h *BillingHandler) Submit(c *gin.Context) {
	var req request.SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.billingService.SubmitSale(c.Request.Context(), &service.SaleInput{
		CustomerID: req.CustomerID,
		Items:      toLineInputs(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale recorded successfully! Invoice: "+sale.InvoiceNumber, sale)
}
