package repository

import (
	"context"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/pagination"
	"github.com/google/uuid"
)

// StockRepository persists the owner's inventory, scoped by ctx
type StockRepository interface {
	Create(ctx context.Context, item *entity.StockItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StockItem, error)
	Update(ctx context.Context, item *entity.StockItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *StockFilterParams) ([]entity.StockItem, int64, error)
	GetLowStock(ctx context.Context) ([]entity.StockItem, error)
	CountLowStock(ctx context.Context) (int64, error)
	TotalValue(ctx context.Context) (float64, error)
}

// StockFilterParams contains filtering parameters for stock queries
type StockFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	LowStock   bool
	SortBy     string
	SortOrder  string
}
