package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	domainRepo "github.com/bots-hq/truegrow-kashmir-connect/internal/domain/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/pagination"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var saleSortColumns = map[string]string{
	"sale_date":      "sale_date",
	"total_amount":   "total_amount",
	"invoice_number": "invoice_number",
	"customer_id":    "customer_id",
	"created_at":     "created_at",
}

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// Create stores the sale under the shop owner in ctx; the create hook assigns
// the invoice number.
func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	ownerID, ok := GetShopOwnerID(ctx)
	if !ok {
		return errors.New("sale repository: shop owner missing from context")
	}
	sale.ShopOwnerID = ownerID
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx)).
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) Update(ctx context.Context, sale *entity.Sale) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Sale{}).
		Scopes(OwnerScope(ctx)).
		Where("id = ?", sale.ID).
		Select("items", "subtotal", "tax_amount", "total_amount", "payment_status", "customer_rating", "rating_comment", "updated_at").
		Updates(map[string]interface{}{
			"items":           sale.Items,
			"subtotal":        sale.Subtotal,
			"tax_amount":      sale.TaxAmount,
			"total_amount":    sale.TotalAmount,
			"payment_status":  sale.PaymentStatus,
			"customer_rating": sale.CustomerRating,
			"rating_comment":  sale.RatingComment,
			"updated_at":      time.Now(),
		})
	return rowsAffected(result)
}

func (r *saleRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enum.PaymentStatus) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Sale{}).
		Scopes(OwnerScope(ctx)).
		Where("id = ?", id).
		Update("payment_status", status)
	return rowsAffected(result)
}

func (r *saleRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating int, comment *string) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Sale{}).
		Scopes(OwnerScope(ctx)).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"customer_rating": rating,
			"rating_comment":  comment,
		})
	return rowsAffected(result)
}

func (r *saleRepository) filtered(ctx context.Context, search string, status *enum.PaymentStatus, customerID string, start, end *time.Time) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Sale{}).Scopes(OwnerScope(ctx))

	if search != "" {
		pattern := containsPattern(search)
		query = query.Where(`(LOWER(invoice_number) LIKE ? ESCAPE '\' OR LOWER(customer_id) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	if status != nil {
		query = query.Where("payment_status = ?", *status)
	}
	if customerID != "" {
		query = query.Where("customer_id = ?", utils.NormalizeCustomerCode(customerID))
	}
	if start != nil {
		query = query.Where("sale_date >= ?", *start)
	}
	if end != nil {
		query = query.Where("sale_date <= ?", *end)
	}
	return query
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.filtered(ctx, params.Search, params.Status, params.CustomerID, params.StartDate, params.EndDate)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	err := query.
		Order(orderClause(params.SortBy, params.SortOrder, saleSortColumns, "sale_date")).
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.PerPage).
		Find(&sales).Error

	return sales, total, err
}

// ListWithCursor pages newest first by (sale_date, id). Prev pages are read
// oldest first from the cursor; the caller flips them.
func (r *saleRepository) ListWithCursor(ctx context.Context, params *domainRepo.SaleCursorFilterParams) ([]entity.Sale, error) {
	var sales []entity.Sale

	if params.Cursor == nil {
		params.Cursor = pagination.DefaultCursorParams()
	}
	params.Cursor.Validate()
	query := r.filtered(ctx, params.Search, params.Status, params.CustomerID, params.StartDate, params.EndDate)

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	order := "sale_date DESC, id DESC"
	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionPrev {
			query = query.Where("(sale_date > ? OR (sale_date = ? AND id > ?))", cursor.At, cursor.At, cursor.ID)
			order = "sale_date ASC, id ASC"
		} else {
			query = query.Where("(sale_date < ? OR (sale_date = ? AND id < ?))", cursor.At, cursor.At, cursor.ID)
		}
	}

	err = query.Limit(params.Cursor.Limit + 1).Order(order).Find(&sales).Error
	return sales, err
}

func (r *saleRepository) ListAll(ctx context.Context, since *time.Time) ([]entity.Sale, error) {
	var sales []entity.Sale
	query := r.db.WithContext(ctx).Scopes(OwnerScope(ctx))
	if since != nil {
		query = query.Where("sale_date >= ?", *since)
	}
	err := query.Order("sale_date ASC").Find(&sales).Error
	return sales, err
}

func (r *saleRepository) Recent(ctx context.Context, limit int) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx)).
		Order("sale_date DESC").
		Limit(limit).
		Find(&sales).Error
	return sales, err
}

func (r *saleRepository) ListByCustomer(ctx context.Context, customerCode string) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", utils.NormalizeCustomerCode(customerCode)).
		Order("sale_date DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepository) ListForCustomer(ctx context.Context, customerCode string) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx)).
		Where("customer_id = ?", utils.NormalizeCustomerCode(customerCode)).
		Order("sale_date DESC").
		Find(&sales).Error
	return sales, err
}

// rowsAffected turns a zero-row update into gorm.ErrRecordNotFound
func rowsAffected(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
