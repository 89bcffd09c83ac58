package analytics

import (
	"sort"
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
)

// RecentLimit is how many sales the recent-sales widget shows
const RecentLimit = 5

// ShopOwnerOverview feeds the shop owner dashboard cards
type ShopOwnerOverview struct {
	TotalSales      float64       `json:"total_sales"`
	PendingPayments float64       `json:"pending_payments"`
	ActiveCustomers int           `json:"active_customers"`
	LowStockItems   int           `json:"low_stock_items"`
	RecentSales     []entity.Sale `json:"recent_sales"`
}

// CustomerOverview feeds the customer dashboard cards
type CustomerOverview struct {
	TotalPurchases float64       `json:"total_purchases"`
	MonthPurchases float64       `json:"month_purchases"`
	PendingDues    float64       `json:"pending_dues"`
	PendingShops   int           `json:"pending_shops"`
	TrustScore     *float64      `json:"trust_score"`
	RecentSales    []entity.Sale `json:"recent_sales"`
}

// Recent returns up to limit sales, newest sale date first
func Recent(sales []entity.Sale, limit int) []entity.Sale {
	sorted := make([]entity.Sale, len(sales))
	copy(sorted, sales)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SaleDate.After(sorted[j].SaleDate)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// BuildShopOwnerOverview summarises a shop owner's sales. Pending payments
// include overdue sales.
func BuildShopOwnerOverview(sales []entity.Sale, lowStock int) *ShopOwnerOverview {
	o := &ShopOwnerOverview{LowStockItems: lowStock}
	customers := make(map[string]struct{})
	for _, sale := range sales {
		o.TotalSales += sale.TotalAmount
		if !sale.PaymentStatus.IsSettled() {
			o.PendingPayments += sale.TotalAmount
		}
		customers[sale.CustomerID] = struct{}{}
	}
	o.ActiveCustomers = len(customers)
	o.RecentSales = Recent(sales, RecentLimit)
	return o
}

// BuildCustomerOverview summarises the sales billed to one customer across all
// shops. The trust score is the mean of the ratings shops have given and is
// nil until the first rating.
func BuildCustomerOverview(sales []entity.Sale, now time.Time) *CustomerOverview {
	o := &CustomerOverview{}
	shops := make(map[string]struct{})
	y, m, _ := now.Date()

	for _, sale := range sales {
		o.TotalPurchases += sale.TotalAmount
		sy, sm, _ := sale.SaleDate.In(now.Location()).Date()
		if sy == y && sm == m {
			o.MonthPurchases += sale.TotalAmount
		}
		if !sale.PaymentStatus.IsSettled() {
			o.PendingDues += sale.TotalAmount
			shops[sale.ShopOwnerID.String()] = struct{}{}
		}
	}
	o.PendingShops = len(shops)

	if avg, reviews := RatingStats(sales); reviews > 0 {
		o.TrustScore = &avg
	}
	o.RecentSales = Recent(sales, RecentLimit)
	return o
}
