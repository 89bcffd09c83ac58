package analytics

import (
	"testing"
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kolkata = time.FixedZone("IST", 5*3600+1800)

func item(name, category string, qty int, price float64) entity.LineItem {
	return entity.LineItem{
		Name:     name,
		Category: category,
		Quantity: qty,
		Unit:     enum.UnitPackage,
		Price:    price,
		Total:    float64(qty) * price,
	}
}

func sale(customer string, at time.Time, total float64, items ...entity.LineItem) entity.Sale {
	return entity.Sale{
		CustomerID:    customer,
		SaleDate:      at,
		TotalAmount:   total,
		PaymentStatus: enum.PaymentStatusPending,
		Items:         items,
	}
}

func TestDailySeries_AlwaysSevenPoints(t *testing.T) {
	now := time.Date(2024, time.June, 12, 18, 30, 0, 0, kolkata) // Wednesday

	for _, sales := range [][]entity.Sale{
		nil,
		{sale("CU1", now, 10)},
		{sale("CU1", now.AddDate(0, 0, -30), 10)},
	} {
		points := DailySeries(sales, now)
		require.Len(t, points, DailyWindow)
		assert.Equal(t, "2024-06-06", points[0].Date)
		assert.Equal(t, "Thu", points[0].Label)
		assert.Equal(t, "2024-06-12", points[6].Date)
		assert.Equal(t, "Wed", points[6].Label)
	}
}

func TestDailySeries_SumsAndDistinctCustomers(t *testing.T) {
	now := time.Date(2024, time.June, 12, 18, 30, 0, 0, kolkata)
	sales := []entity.Sale{
		sale("CU1", now.Add(-time.Hour), 100),
		sale("CU1", now.Add(-2*time.Hour), 50),
		sale("CU2", now.Add(-3*time.Hour), 25),
		sale("CU3", now.AddDate(0, 0, -2), 40),
		sale("CU4", now.AddDate(0, 0, -7), 999),
		sale("CU5", now.AddDate(0, 0, 1), 999),
	}

	points := DailySeries(sales, now)

	assert.Equal(t, 175.0, points[6].Sales)
	assert.Equal(t, 2, points[6].Customers)
	assert.Equal(t, 40.0, points[4].Sales)
	assert.Equal(t, 1, points[4].Customers)
	assert.Equal(t, 0.0, points[0].Sales)
	assert.Equal(t, 0, points[5].Customers)
}

func TestDailySeries_UsesCallerLocation(t *testing.T) {
	now := time.Date(2024, time.June, 12, 1, 0, 0, 0, kolkata)
	// 20:00 UTC on the 11th is 01:30 IST on the 12th
	utcEvening := time.Date(2024, time.June, 11, 20, 0, 0, 0, time.UTC)

	points := DailySeries([]entity.Sale{sale("CU1", utcEvening, 80)}, now)

	assert.Equal(t, 80.0, points[6].Sales)
	assert.Equal(t, 0.0, points[5].Sales)
}

func TestCategorySeries(t *testing.T) {
	sales := []entity.Sale{
		sale("CU1", time.Now(), 0,
			item("Urea", "Fertilizer", 2, 100),
			item("Hybrid maize", "Seeds", 1, 300),
		),
		sale("CU2", time.Now(), 0,
			item("DAP", "Fertilizer", 1, 50),
			item("Twine", "", 3, 10),
			item("Spade", "Tools", 1, 1),
			item("Hoe", "Hardware", 1, 1),
			item("Mulch", "Garden", 1, 1),
		),
	}

	got := CategorySeries(sales)

	require.Len(t, got, 6)
	assert.Equal(t, CategorySlice{Name: "Fertilizer", Value: 250, Color: "#8884d8"}, got[0])
	assert.Equal(t, CategorySlice{Name: "Seeds", Value: 300, Color: "#82ca9d"}, got[1])
	assert.Equal(t, CategorySlice{Name: "Other", Value: 30, Color: "#ffc658"}, got[2])
	assert.Equal(t, "#ff7300", got[3].Color)
	assert.Equal(t, "#00ff00", got[4].Color)
	assert.Equal(t, "#8884d8", got[5].Color)
}

func TestCategorySeries_Empty(t *testing.T) {
	assert.Empty(t, CategorySeries(nil))
	assert.NotNil(t, CategorySeries(nil))
}

func TestProductSeries_SortedByRevenueStable(t *testing.T) {
	sales := []entity.Sale{
		sale("CU1", time.Now(), 0,
			item("Neem oil", "", 1, 100),
			item("Urea", "", 2, 100),
			item("Sickle", "", 1, 100),
		),
		sale("CU2", time.Now(), 0,
			item("Urea", "", 1, 300),
			item("", "", 1, 5),
		),
	}

	got := ProductSeries(sales)

	require.Len(t, got, 4)
	assert.Equal(t, []string{"Urea", "Neem oil", "Sickle", "Unknown Product"},
		[]string{got[0].Name, got[1].Name, got[2].Name, got[3].Name})
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].TotalRevenue, got[i].TotalRevenue)
	}

	urea := got[0]
	assert.Equal(t, 3, urea.TotalQuantity)
	assert.Equal(t, 500.0, urea.TotalRevenue)
	assert.Equal(t, 2, urea.SaleCount)
	assert.Equal(t, 200.0, urea.AveragePrice)
	assert.InDelta(t, 166.6667, urea.WeightedAveragePrice, 1e-4)
}

func TestSummarize(t *testing.T) {
	sales := []entity.Sale{
		sale("CU1", time.Now(), 236, item("Urea", "", 2, 100)),
		sale("CU1", time.Now(), 118, item(" urea ", "", 1, 100)),
		sale("CU2", time.Now(), 59, item("DAP", "", 1, 50)),
	}

	s := Summarize(sales)

	assert.InDelta(t, 413, s.TotalRevenue, 1e-9)
	assert.Equal(t, 2, s.UniqueCustomers)
	assert.InDelta(t, 206.5, s.AverageOrderValue, 1e-9)
	assert.Equal(t, 2, s.UniqueProducts)
	assert.Equal(t, 4, s.TotalItemsSold)
	assert.Equal(t, 3, s.TotalOrders)
}

func TestSummarize_NoCustomers(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0.0, s.AverageOrderValue)
	assert.Equal(t, 0, s.UniqueCustomers)
}

func TestBuildReport(t *testing.T) {
	now := time.Date(2024, time.June, 12, 10, 0, 0, 0, kolkata)
	r := BuildReport([]entity.Sale{sale("CU1", now, 236, item("Urea", "Fertilizer", 2, 100))}, now)

	assert.Equal(t, "2024-06-12", r.Day)
	assert.Len(t, r.Daily, DailyWindow)
	assert.Len(t, r.Categories, 1)
	assert.Len(t, r.Products, 1)
	assert.Equal(t, 236.0, r.Summary.TotalRevenue)
}
