package repository

import (
	"context"
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/pagination"
	"github.com/google/uuid"
)

// SaleRepository persists sales. Every method except ListByCustomer is scoped
// to the shop owner carried in ctx.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enum.PaymentStatus) error
	UpdateRating(ctx context.Context, id uuid.UUID, rating int, comment *string) error
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	ListWithCursor(ctx context.Context, params *SaleCursorFilterParams) ([]entity.Sale, error)
	// ListAll returns every sale of the owner ordered by sale date, oldest first
	ListAll(ctx context.Context, since *time.Time) ([]entity.Sale, error)
	Recent(ctx context.Context, limit int) ([]entity.Sale, error)
	// ListByCustomer returns sales billed to a customer code across all shops
	ListByCustomer(ctx context.Context, customerCode string) ([]entity.Sale, error)
	// ListForCustomer returns the owner's sales billed to a customer code
	ListForCustomer(ctx context.Context, customerCode string) ([]entity.Sale, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.PaymentStatus
	CustomerID string
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// SaleCursorFilterParams contains cursor-based filtering for sale queries
type SaleCursorFilterParams struct {
	Cursor     *pagination.CursorParams
	Search     string
	Status     *enum.PaymentStatus
	CustomerID string
	StartDate  *time.Time
	EndDate    *time.Time
}
