package handler

import (
	"github.com/bots-hq/truegrow-kashmir-connect/internal/application/analytics"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/application/service"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/presentation/http/dto/request"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer reporting requests
type CustomerHandler struct {
	customerService *service.CustomerService
	paymentService  *service.PaymentService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService, paymentService *service.PaymentService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, paymentService: paymentService}
}

// List returns one summary per customer the shop owner has billed
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customerService.ListCustomers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customers retrieved successfully", customers)
}

// Get returns a customer's profile, purchases and ratings
func (h *CustomerHandler) Get(c *gin.Context) {
	details, err := h.customerService.GetCustomerDetails(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer retrieved successfully", details)
}

// Payments returns the payment tracking list and its totals
func (h *CustomerHandler) Payments(c *gin.Context) {
	var req request.PaymentFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	summary, err := h.paymentService.Summary(c.Request.Context(), analytics.PaymentFilter{
		Search: req.Search,
		Status: req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payments retrieved successfully", summary)
}
