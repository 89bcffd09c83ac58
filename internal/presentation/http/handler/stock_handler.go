package handler

import (
	"net/http"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/application/service"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/presentation/http/dto/request"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// StockHandler handles inventory requests
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// List handles listing stock items
func (h *StockHandler) List(c *gin.Context) {
	var req request.StockFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.stockService.ListItems(c.Request.Context(), &repository.StockFilterParams{
		Pagination: pageParams(req.Page, req.PerPage),
		Search:     req.Search,
		Category:   req.Category,
		LowStock:   req.LowStock,
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, "Stock items retrieved successfully", result)
}

// Overview returns the low-stock alert list and stock value
func (h *StockHandler) Overview(c *gin.Context) {
	overview, err := h.stockService.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock overview retrieved successfully", overview)
}

// Get handles retrieving a single stock item
func (h *StockHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	item, err := h.stockService.GetItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock item retrieved successfully", item)
}

// Create handles adding a stock item
func (h *StockHandler) Create(c *gin.Context) {
	var req request.StockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.stockService.CreateItem(c.Request.Context(), stockInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Stock item created successfully", item)
}

// Update handles replacing a stock item
func (h *StockHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req request.StockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.stockService.UpdateItem(c.Request.Context(), id, stockInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock item updated successfully", item)
}

// Delete handles removing a stock item
func (h *StockHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.stockService.DeleteItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock item deleted successfully", nil)
}

func stockInput(req *request.StockItemRequest) *service.StockInput {
	return &service.StockInput{
		Name:         req.Name,
		Category:     req.Category,
		Unit:         req.Unit,
		CurrentStock: req.CurrentStock,
		MinStock:     req.MinStock,
		Price:        req.Price,
	}
}
