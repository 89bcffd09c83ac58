package analytics

import (
	"strings"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
)

// StatusAll disables status filtering
const StatusAll = "all"

// PaymentFilter narrows the payment tracking list
type PaymentFilter struct {
	Search string
	Status string
}

// PaymentTotals are the figures above the payment tracking table
type PaymentTotals struct {
	Count   int     `json:"count"`
	Total   float64 `json:"total_amount"`
	Paid    float64 `json:"paid_amount"`
	Pending float64 `json:"pending_amount"`
	Overdue float64 `json:"overdue_amount"`
}

// PaymentSummary is the filtered list plus its totals
type PaymentSummary struct {
	Sales  []entity.Sale `json:"sales"`
	Totals PaymentTotals `json:"totals"`
}

// FilterPayments keeps sales whose invoice number or customer code contains
// the search text (case-insensitive) and whose status matches. An empty status
// or "all" matches everything.
func FilterPayments(sales []entity.Sale, f PaymentFilter) []entity.Sale {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	status := strings.ToLower(strings.TrimSpace(f.Status))

	out := make([]entity.Sale, 0, len(sales))
	for _, sale := range sales {
		if search != "" &&
			!strings.Contains(strings.ToLower(sale.InvoiceNumber), search) &&
			!strings.Contains(strings.ToLower(sale.CustomerID), search) {
			continue
		}
		if status != "" && status != StatusAll && string(sale.PaymentStatus) != status {
			continue
		}
		out = append(out, sale)
	}
	return out
}

// SumPayments totals amounts overall and per status
func SumPayments(sales []entity.Sale) PaymentTotals {
	t := PaymentTotals{Count: len(sales)}
	for _, sale := range sales {
		t.Total += sale.TotalAmount
		switch sale.PaymentStatus {
		case enum.PaymentStatusPaid:
			t.Paid += sale.TotalAmount
		case enum.PaymentStatusPending:
			t.Pending += sale.TotalAmount
		case enum.PaymentStatusOverdue:
			t.Overdue += sale.TotalAmount
		}
	}
	return t
}

// SummarizePayments filters then totals
func SummarizePayments(sales []entity.Sale, f PaymentFilter) *PaymentSummary {
	filtered := FilterPayments(sales, f)
	return &PaymentSummary{Sales: filtered, Totals: SumPayments(filtered)}
}
