package billing

import "github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"

// TaxRate is the flat GST surcharge applied to every invoice
const TaxRate = 0.18

// TaxLabel is how the surcharge is captioned on invoices and receipts
const TaxLabel = "Tax (18%)"

// Totals are the derived amounts of an invoice
type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	TaxAmount   float64 `json:"tax_amount"`
	TotalAmount float64 `json:"total_amount"`
}

// LineTotal is quantity × price
func LineTotal(quantity int, price float64) float64 {
	return float64(quantity) * price
}

// CalculateTotals sums the line totals and applies TaxRate.
// Amounts keep full precision; rounding is a display concern.
func CalculateTotals(items []entity.LineItem) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Total
	}
	tax := subtotal * TaxRate
	return Totals{
		Subtotal:    subtotal,
		TaxAmount:   tax,
		TotalAmount: subtotal + tax,
	}
}

// Reprice returns a copy of items with every line total recomputed from
// quantity and price.
func Reprice(items []entity.LineItem) []entity.LineItem {
	out := make([]entity.LineItem, len(items))
	for i, item := range items {
		item.Total = LineTotal(item.Quantity, item.Price)
		out[i] = item
	}
	return out
}

// ApplyTotals reprices the sale's items and writes the derived amounts back
func ApplyTotals(sale *entity.Sale) {
	items := Reprice(sale.LineItems())
	totals := CalculateTotals(items)
	sale.Items = items
	sale.Subtotal = totals.Subtotal
	sale.TaxAmount = totals.TaxAmount
	sale.TotalAmount = totals.TotalAmount
}
