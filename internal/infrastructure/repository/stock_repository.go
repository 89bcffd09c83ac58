package repository

import (
	"context"
	"errors"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	domainRepo "github.com/bots-hq/truegrow-kashmir-connect/internal/domain/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var stockSortColumns = map[string]string{
	"name":          "name",
	"category":      "category",
	"current_stock": "current_stock",
	"price":         "price",
	"created_at":    "created_at",
}

type stockRepository struct {
	db *gorm.DB
}

// NewStockRepository creates a new stock repository
func NewStockRepository(db *gorm.DB) domainRepo.StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) Create(ctx context.Context, item *entity.StockItem) error {
	ownerID, ok := GetShopOwnerID(ctx)
	if !ok {
		return errors.New("stock repository: shop owner missing from context")
	}
	item.ShopOwnerID = ownerID
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *stockRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StockItem, error) {
	var item entity.StockItem
	err := r.db.WithContext(ctx).Scopes(OwnerScope(ctx)).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *stockRepository) Update(ctx context.Context, item *entity.StockItem) error {
	result := r.db.WithContext(ctx).Scopes(OwnerScope(ctx)).
		Model(&entity.StockItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"name":          item.Name,
			"category":      item.Category,
			"unit":          item.Unit,
			"current_stock": item.CurrentStock,
			"min_stock":     item.MinStock,
			"price":         item.Price,
		})
	return rowsAffected(result)
}

func (r *stockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Scopes(OwnerScope(ctx)).Delete(&entity.StockItem{}, "id = ?", id)
	return rowsAffected(result)
}

func (r *stockRepository) List(ctx context.Context, params *domainRepo.StockFilterParams) ([]entity.StockItem, int64, error) {
	var items []entity.StockItem
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.StockItem{}).Scopes(OwnerScope(ctx))

	if params.Search != "" {
		pattern := containsPattern(params.Search)
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(category) LIKE ? ESCAPE '\'`, pattern, pattern)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.LowStock {
		query = query.Where("current_stock <= min_stock")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	err := query.
		Order(orderClause(params.SortBy, params.SortOrder, stockSortColumns, "created_at")).
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.PerPage).
		Find(&items).Error

	return items, total, err
}

func (r *stockRepository) GetLowStock(ctx context.Context) ([]entity.StockItem, error) {
	var items []entity.StockItem
	err := r.db.WithContext(ctx).Scopes(OwnerScope(ctx)).
		Where("current_stock <= min_stock").
		Order("current_stock ASC").
		Find(&items).Error
	return items, err
}

func (r *stockRepository) CountLowStock(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.StockItem{}).Scopes(OwnerScope(ctx)).
		Where("current_stock <= min_stock").
		Count(&count).Error
	return count, err
}

func (r *stockRepository) TotalValue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&entity.StockItem{}).Scopes(OwnerScope(ctx)).
		Select("COALESCE(SUM(current_stock * price), 0)").
		Scan(&total).Error
	return total, err
}
