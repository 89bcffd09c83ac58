// Package analytics folds a shop owner's sales into the series and figures
// shown on the analytics, customer and payment screens. Every function here is
// pure: callers fetch the sales and pass them in.
package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
)

// DailyWindow is the number of days in the daily sales series
const DailyWindow = 7

const (
	uncategorized  = "Other"
	unnamedProduct = "Unknown Product"
)

// Palette colours category slices in output order, cycling when exhausted
var Palette = []string{"#8884d8", "#82ca9d", "#ffc658", "#ff7300", "#00ff00"}

// DailyPoint is one day of the daily sales series
type DailyPoint struct {
	Date      string  `json:"date"`
	Label     string  `json:"label"`
	Sales     float64 `json:"sales"`
	Customers int     `json:"customers"`
}

// CategorySlice is the revenue attributed to one item category
type CategorySlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// ProductStat summarises one product across all sales.
// AveragePrice is the plain mean of the observed unit prices;
// WeightedAveragePrice is revenue per unit sold.
type ProductStat struct {
	Name                 string  `json:"name"`
	TotalQuantity        int     `json:"total_quantity"`
	TotalRevenue         float64 `json:"total_revenue"`
	AveragePrice         float64 `json:"average_price"`
	WeightedAveragePrice float64 `json:"weighted_average_price"`
	SaleCount            int     `json:"sale_count"`
}

// Summary holds the headline figures of the analytics screen
type Summary struct {
	TotalRevenue      float64 `json:"total_revenue"`
	UniqueCustomers   int     `json:"unique_customers"`
	AverageOrderValue float64 `json:"average_order_value"`
	UniqueProducts    int     `json:"unique_products"`
	TotalItemsSold    int     `json:"total_items_sold"`
	TotalOrders       int     `json:"total_orders"`
}

// Report bundles everything the analytics screen renders
type Report struct {
	Summary     Summary         `json:"summary"`
	Daily       []DailyPoint    `json:"daily"`
	Categories  []CategorySlice `json:"categories"`
	Products    []ProductStat   `json:"products"`
	GeneratedAt time.Time       `json:"generated_at"`
	// Day is the local calendar day the daily series ends on
	Day string `json:"day"`
}

// BuildReport runs every fold over sales. now fixes both the end of the daily
// window and the location days are counted in.
func BuildReport(sales []entity.Sale, now time.Time) *Report {
	return &Report{
		Summary:     Summarize(sales),
		Daily:       DailySeries(sales, now),
		Categories:  CategorySeries(sales),
		Products:    ProductSeries(sales),
		GeneratedAt: now,
		Day:         now.Format(time.DateOnly),
	}
}

// DailySeries returns DailyWindow points, oldest first, ending on now's
// calendar day. Days without sales are zero.
func DailySeries(sales []entity.Sale, now time.Time) []DailyPoint {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	points := make([]DailyPoint, DailyWindow)
	customers := make([]map[string]struct{}, DailyWindow)
	index := make(map[string]int, DailyWindow)
	for i := 0; i < DailyWindow; i++ {
		day := today.AddDate(0, 0, i-(DailyWindow-1))
		key := day.Format(time.DateOnly)
		points[i] = DailyPoint{Date: key, Label: day.Format("Mon")}
		customers[i] = make(map[string]struct{})
		index[key] = i
	}

	for _, sale := range sales {
		i, ok := index[sale.SaleDate.In(loc).Format(time.DateOnly)]
		if !ok {
			continue
		}
		points[i].Sales += sale.TotalAmount
		customers[i][sale.CustomerID] = struct{}{}
	}
	for i := range points {
		points[i].Customers = len(customers[i])
	}
	return points
}

// CategorySeries sums quantity × price per item category in first-encounter
// order and assigns palette colours by position.
func CategorySeries(sales []entity.Sale) []CategorySlice {
	var out []CategorySlice
	index := make(map[string]int)
	for _, sale := range sales {
		for _, item := range sale.Items {
			name := strings.TrimSpace(item.Category)
			if name == "" {
				name = uncategorized
			}
			i, ok := index[name]
			if !ok {
				i = len(out)
				index[name] = i
				out = append(out, CategorySlice{Name: name, Color: Palette[i%len(Palette)]})
			}
			out[i].Value += float64(item.Quantity) * item.Price
		}
	}
	if out == nil {
		return []CategorySlice{}
	}
	return out
}

// ProductSeries aggregates per product name and sorts by revenue, highest
// first. Ties keep first-encounter order.
func ProductSeries(sales []entity.Sale) []ProductStat {
	type acc struct {
		stat   ProductStat
		prices []float64
	}
	var order []*acc
	byName := make(map[string]*acc)

	for _, sale := range sales {
		for _, item := range sale.Items {
			name := item.Name
			if strings.TrimSpace(name) == "" {
				name = unnamedProduct
			}
			a, ok := byName[name]
			if !ok {
				a = &acc{stat: ProductStat{Name: name}}
				byName[name] = a
				order = append(order, a)
			}
			a.stat.TotalQuantity += item.Quantity
			a.stat.TotalRevenue += float64(item.Quantity) * item.Price
			a.stat.SaleCount++
			a.prices = append(a.prices, item.Price)
		}
	}

	out := make([]ProductStat, 0, len(order))
	for _, a := range order {
		var sum float64
		for _, p := range a.prices {
			sum += p
		}
		if len(a.prices) > 0 {
			a.stat.AveragePrice = sum / float64(len(a.prices))
		}
		if a.stat.TotalQuantity > 0 {
			a.stat.WeightedAveragePrice = a.stat.TotalRevenue / float64(a.stat.TotalQuantity)
		}
		out = append(out, a.stat)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalRevenue > out[j].TotalRevenue
	})
	return out
}

// Summarize computes the headline figures. Average order value divides revenue
// by the number of distinct customers and is 0 when there are none.
func Summarize(sales []entity.Sale) Summary {
	var s Summary
	customers := make(map[string]struct{})
	products := make(map[string]struct{})

	for _, sale := range sales {
		s.TotalRevenue += sale.TotalAmount
		customers[sale.CustomerID] = struct{}{}
		for _, item := range sale.Items {
			products[strings.ToLower(strings.TrimSpace(item.Name))] = struct{}{}
			s.TotalItemsSold += item.Quantity
		}
	}

	s.TotalOrders = len(sales)
	s.UniqueCustomers = len(customers)
	s.UniqueProducts = len(products)
	if s.UniqueCustomers > 0 {
		s.AverageOrderValue = s.TotalRevenue / float64(s.UniqueCustomers)
	}
	return s
}
