package service

import (
	"context"
	"strings"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/apperror"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/pagination"
	"github.com/google/uuid"
)

// StockService manages the shop owner's inventory
type StockService struct {
	stockRepo repository.StockRepository
}

// NewStockService creates a new stock service
func NewStockService(stockRepo repository.StockRepository) *StockService {
	return &StockService{stockRepo: stockRepo}
}

// StockInput is a create or full update of a stock item
type StockInput struct {
	Name         string  `json:"name" validate:"required,max=255"`
	Category     string  `json:"category" validate:"max=100"`
	Unit         string  `json:"unit" validate:"max=20"`
	CurrentStock int     `json:"current_stock" validate:"gte=0"`
	MinStock     int     `json:"min_stock" validate:"gte=0"`
	Price        float64 `json:"price" validate:"gte=0"`
}

// StockOverview is the summary above the stock table
type StockOverview struct {
	LowStock   []entity.StockItem `json:"low_stock"`
	TotalValue float64            `json:"total_value"`
}

// CreateItem adds a stock item for the shop owner in ctx
func (s *StockService) CreateItem(ctx context.Context, input *StockInput) (*entity.StockItem, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	item := &entity.StockItem{}
	applyStockInput(item, input)
	if err := s.stockRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem retrieves a stock item by ID
func (s *StockService) GetItem(ctx context.Context, id uuid.UUID) (*entity.StockItem, error) {
	item, err := s.stockRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Stock item")
	}
	return item, nil
}

// UpdateItem replaces the editable fields of a stock item
func (s *StockService) UpdateItem(ctx context.Context, id uuid.UUID, input *StockInput) (*entity.StockItem, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	applyStockInput(item, input)
	if err := s.stockRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes a stock item
func (s *StockService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetItem(ctx, id); err != nil {
		return err
	}
	return s.stockRepo.Delete(ctx, id)
}

// ListItems lists stock items with search and low-stock filtering
func (s *StockService) ListItems(ctx context.Context, params *repository.StockFilterParams) (*pagination.PaginatedResult[entity.StockItem], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	items, total, err := s.stockRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// Overview returns the low-stock items and the value of stock on hand
func (s *StockService) Overview(ctx context.Context) (*StockOverview, error) {
	low, err := s.stockRepo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}
	value, err := s.stockRepo.TotalValue(ctx)
	if err != nil {
		return nil, err
	}
	if low == nil {
		low = []entity.StockItem{}
	}
	return &StockOverview{LowStock: low, TotalValue: value}, nil
}

func applyStockInput(item *entity.StockItem, input *StockInput) {
	item.Name = input.Name
	item.Category = strings.TrimSpace(input.Category)
	item.Unit = strings.TrimSpace(input.Unit)
	item.CurrentStock = input.CurrentStock
	item.MinStock = input.MinStock
	item.Price = input.Price
}
