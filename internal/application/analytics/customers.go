package analytics

import (
	"sort"
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
)

// CustomerSummary is one row of the shop owner's customer list
type CustomerSummary struct {
	CustomerID    string     `json:"customer_id"`
	FullName      string     `json:"full_name"`
	Phone         string     `json:"phone"`
	JoinedAt      *time.Time `json:"joined_at,omitempty"`
	TotalOrders   int        `json:"total_orders"`
	TotalSpent    float64    `json:"total_spent"`
	AverageRating float64    `json:"average_rating"`
	TotalReviews  int        `json:"total_reviews"`
	LastOrderDate *time.Time `json:"last_order_date,omitempty"`
}

// CustomerDetails is the drill-down view of a single customer
type CustomerDetails struct {
	Profile       *entity.User  `json:"profile"`
	Purchases     []entity.Sale `json:"purchases"`
	TotalOrders   int           `json:"total_orders"`
	TotalSpent    float64       `json:"total_spent"`
	AverageRating float64       `json:"average_rating"`
	TotalReviews  int           `json:"total_reviews"`
}

// RatingStats averages the ratings present on sales
func RatingStats(sales []entity.Sale) (average float64, reviews int) {
	var sum int
	for _, sale := range sales {
		if sale.CustomerRating == nil {
			continue
		}
		sum += *sale.CustomerRating
		reviews++
	}
	if reviews > 0 {
		average = float64(sum) / float64(reviews)
	}
	return average, reviews
}

// CustomerSummaries groups sales by customer code, joins profile data where a
// profile exists and sorts by total spent, highest first.
func CustomerSummaries(sales []entity.Sale, profiles []entity.User) []CustomerSummary {
	byCode := make(map[string]*entity.User, len(profiles))
	for i := range profiles {
		byCode[profiles[i].CustomerCode] = &profiles[i]
	}

	grouped := make(map[string][]entity.Sale)
	var codes []string
	for _, sale := range sales {
		if _, seen := grouped[sale.CustomerID]; !seen {
			codes = append(codes, sale.CustomerID)
		}
		grouped[sale.CustomerID] = append(grouped[sale.CustomerID], sale)
	}

	out := make([]CustomerSummary, 0, len(codes))
	for _, code := range codes {
		customerSales := grouped[code]
		summary := CustomerSummary{CustomerID: code, TotalOrders: len(customerSales)}
		for i := range customerSales {
			sale := &customerSales[i]
			summary.TotalSpent += sale.TotalAmount
			if summary.LastOrderDate == nil || sale.SaleDate.After(*summary.LastOrderDate) {
				d := sale.SaleDate
				summary.LastOrderDate = &d
			}
		}
		summary.AverageRating, summary.TotalReviews = RatingStats(customerSales)

		if profile, ok := byCode[code]; ok {
			summary.FullName = profile.FullName
			summary.Phone = profile.Phone
			joined := profile.CreatedAt
			summary.JoinedAt = &joined
		}
		out = append(out, summary)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalSpent > out[j].TotalSpent
	})
	return out
}

// BuildCustomerDetails assembles the drill-down for profile from its sales
func BuildCustomerDetails(profile *entity.User, sales []entity.Sale) *CustomerDetails {
	details := &CustomerDetails{
		Profile:     profile,
		Purchases:   sales,
		TotalOrders: len(sales),
	}
	if details.Purchases == nil {
		details.Purchases = []entity.Sale{}
	}
	for _, sale := range sales {
		details.TotalSpent += sale.TotalAmount
	}
	details.AverageRating, details.TotalReviews = RatingStats(sales)
	return details
}
