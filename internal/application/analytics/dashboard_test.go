package analytics

import (
	"testing"
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecent(t *testing.T) {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	var sales []entity.Sale
	for i := 0; i < 8; i++ {
		sales = append(sales, sale("CU1", base.AddDate(0, 0, i), float64(i)))
	}

	got := Recent(sales, RecentLimit)

	require.Len(t, got, RecentLimit)
	assert.Equal(t, 7.0, got[0].TotalAmount)
	assert.Equal(t, 3.0, got[4].TotalAmount)
	assert.Equal(t, 0.0, sales[0].TotalAmount)
}

func TestBuildShopOwnerOverview(t *testing.T) {
	paid := sale("CU1", time.Now(), 100)
	paid.PaymentStatus = enum.PaymentStatusPaid
	overdue := sale("CU2", time.Now(), 40)
	overdue.PaymentStatus = enum.PaymentStatusOverdue

	o := BuildShopOwnerOverview([]entity.Sale{paid, overdue, sale("CU2", time.Now(), 10)}, 3)

	assert.Equal(t, 150.0, o.TotalSales)
	assert.Equal(t, 50.0, o.PendingPayments)
	assert.Equal(t, 2, o.ActiveCustomers)
	assert.Equal(t, 3, o.LowStockItems)
	assert.Len(t, o.RecentSales, 3)
}

func TestBuildCustomerOverview(t *testing.T) {
	now := time.Date(2024, time.June, 20, 12, 0, 0, 0, time.UTC)
	shopA, shopB := uuid.New(), uuid.New()

	s1 := rated(sale("CU1", now.AddDate(0, 0, -1), 100), 5)
	s1.ShopOwnerID = shopA
	s1.PaymentStatus = enum.PaymentStatusPaid
	s2 := rated(sale("CU1", now.AddDate(0, -1, 0), 60), 3)
	s2.ShopOwnerID = shopA
	s3 := sale("CU1", now.AddDate(0, 0, -2), 30)
	s3.ShopOwnerID = shopB

	o := BuildCustomerOverview([]entity.Sale{s1, s2, s3}, now)

	assert.Equal(t, 190.0, o.TotalPurchases)
	assert.Equal(t, 130.0, o.MonthPurchases)
	assert.Equal(t, 90.0, o.PendingDues)
	assert.Equal(t, 2, o.PendingShops)
	require.NotNil(t, o.TrustScore)
	assert.Equal(t, 4.0, *o.TrustScore)
}

func TestBuildCustomerOverview_NoRatings(t *testing.T) {
	o := BuildCustomerOverview(nil, time.Now())
	assert.Nil(t, o.TrustScore)
	assert.Empty(t, o.RecentSales)
}
