package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	domainRepo "github.com/bots-hq/truegrow-kashmir-connect/internal/domain/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSale(customer string, total float64, at time.Time) *entity.Sale {
	return &entity.Sale{
		CustomerID: customer,
		Items: []entity.LineItem{
			{Name: "Urea", Quantity: 2, Unit: enum.UnitKGs, Price: 100, Total: 200, Category: "Fertilizer"},
		},
		Subtotal:    200,
		TaxAmount:   36,
		TotalAmount: total,
		SaleDate:    at,
	}
}

func TestSaleRepository_CreateAssignsInvoiceNumber(t *testing.T) {
	db := newTestDB(t)
	repo := NewSaleRepository(db)
	owner, ctx := createOwner(t, db)

	sale := newSale("CU100001", 236, time.Time{})
	require.NoError(t, repo.Create(ctx, sale))

	assert.NotEqual(t, uuid.Nil, sale.ID)
	assert.Equal(t, owner.ID, sale.ShopOwnerID)
	assert.Regexp(t, `^INV-\d{8}-[A-Z2-9]{6}$`, sale.InvoiceNumber)
	assert.Equal(t, enum.PaymentStatusPending, sale.PaymentStatus)
	assert.False(t, sale.SaleDate.IsZero())

	got, err := repo.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sale.InvoiceNumber, got.InvoiceNumber)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Urea", got.Items[0].Name)
	assert.Equal(t, enum.UnitKGs, got.Items[0].Unit)
	assert.Equal(t, "Fertilizer", got.Items[0].Category)
	assert.Nil(t, got.CustomerRating)
}

func TestSaleRepository_CreateRequiresOwner(t *testing.T) {
	repo := NewSaleRepository(newTestDB(t))
	assert.Error(t, repo.Create(context.Background(), newSale("CU1", 1, time.Now())))
}

func TestSaleRepository_OwnerIsolation(t *testing.T) {
	db := newTestDB(t)
	repo := NewSaleRepository(db)
	_, ctxA := createOwner(t, db)
	_, ctxB := createOwner(t, db)

	sale := newSale("CU100001", 236, time.Now())
	require.NoError(t, repo.Create(ctxA, sale))

	got, err := repo.GetByID(ctxB, sale.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByID(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	err = repo.UpdatePaymentStatus(ctxB, sale.ID, enum.PaymentStatusPaid)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	all, err := repo.ListAll(ctxB, nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSaleRepository_UpdatePaymentStatusAndRating(t *testing.T) {
	db := newTestDB(t)
	repo := NewSaleRepository(db)
	_, ctx := createOwner(t, db)

	sale := newSale("CU100001", 236, time.Now())
	require.NoError(t, repo.Create(ctx, sale))

	require.NoError(t, repo.UpdatePaymentStatus(ctx, sale.ID, enum.PaymentStatusPaid))
	comment := "Pays on time"
	require.NoError(t, repo.UpdateRating(ctx, sale.ID, 5, &comment))

	got, err := repo.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPaid, got.PaymentStatus)
	require.NotNil(t, got.CustomerRating)
	assert.Equal(t, 5, *got.CustomerRating)
	require.NotNil(t, got.RatingComment)
	assert.Equal(t, comment, *got.RatingComment)

	require.NoError(t, repo.UpdateRating(ctx, sale.ID, 3, nil))
	got, err = repo.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Nil(t, got.RatingComment)
}

func TestSaleRepository_UpdateItems(t *testing.T) {
	db := newTestDB(t)
	repo := NewSaleRepository(db)
	_, ctx := createOwner(t, db)

	sale := newSale("CU100001", 236, time.Now())
	require.NoError(t, repo.Create(ctx, sale))

	sale.Items = append(sale.Items, entity.LineItem{Name: "DAP", Quantity: 1, Unit: enum.UnitPackage, Price: 50, Total: 50})
	sale.Subtotal, sale.TaxAmount, sale.TotalAmount = 250, 45, 295
	require.NoError(t, repo.Update(ctx, sale))

	got, err := repo.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)
	assert.Equal(t, 295.0, got.TotalAmount)
	assert.Equal(t, sale.InvoiceNumber, got.InvoiceNumber)
}

func TestSaleRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewSaleRepository(db)
	_, ctx := createOwner(t, db)

	base := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	for i, customer := range []string{"CU100001", "CU100002", "CU100001"} {
		require.NoError(t, repo.Create(ctx, newSale(customer, float64(100*(i+1)), base.AddDate(0, 0, i))))
	}
	paid := enum.PaymentStatusPaid
	recent, err := repo.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, 300.0, recent[0].TotalAmount)
	require.NoError(t, repo.UpdatePaymentStatus(ctx, recent[0].ID, paid))

	sales, total, err := repo.List(ctx, &domainRepo.SaleFilterParams{Search: "cu100001"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, sales, 2)

	sales, total, err = repo.List(ctx, &domainRepo.SaleFilterParams{Status: &paid})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, 300.0, sales[0].TotalAmount)

	start := base.AddDate(0, 0, 1)
	_, total, err = repo.List(ctx, &domainRepo.SaleFilterParams{StartDate: &start})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	sales, _, err = repo.List(ctx, &domainRepo.SaleFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 2},
		SortBy:     "total_amount",
		SortOrder:  "asc",
	})
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, 100.0, sales[0].TotalAmount)

	// unknown sort columns fall back instead of reaching SQL
	_, _, err = repo.List(ctx, &domainRepo.SaleFilterParams{SortBy: "1; DROP TABLE sales"})
	require.NoError(t, err)

	all, err := repo.ListAll(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].SaleDate.Before(all[2].SaleDate))
}

func TestSaleRepository_ListByCustomerAcrossShops(t *testing.T) {
	db := newTestDB(t)
	repo := NewSaleRepository(db)
	_, ctxA := createOwner(t, db)
	_, ctxB := createOwner(t, db)

	require.NoError(t, repo.Create(ctxA, newSale("CU777777", 10, time.Now())))
	require.NoError(t, repo.Create(ctxB, newSale("CU777777", 20, time.Now())))
	require.NoError(t, repo.Create(ctxB, newSale("CU888888", 30, time.Now())))

	sales, err := repo.ListByCustomer(context.Background(), "cu777777")
	require.NoError(t, err)
	assert.Len(t, sales, 2)

	sales, err = repo.ListForCustomer(ctxB, "CU777777")
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, 20.0, sales[0].TotalAmount)
}
