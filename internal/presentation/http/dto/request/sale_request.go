package request

import (
	"bytes"
	"encoding/json"

	"github.com/bots-hq/truegrow-kashmir-connect/pkg/pagination"
)

// FormValue is a billing form field that clients send either as text or as a
// JSON number. It keeps the raw text so the line editor can apply its own
// parsing fallbacks.
type FormValue string

// UnmarshalJSON accepts a string, a number or null
func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = FormValue(n.String())
	return nil
}

// LineItemRequest is one row of the billing form
type LineItemRequest struct {
	Name     string    `json:"name"`
	Quantity FormValue `json:"quantity"`
	Unit     string    `json:"unit"`
	Price    FormValue `json:"price"`
	Category string    `json:"category"`
}

// SaleRequest is the billing form. Client-side totals are ignored.
type SaleRequest struct {
	CustomerID string            `json:"customer_id"`
	Items      []LineItemRequest `json:"items"`
}

// UpdateSaleRequest edits a stored sale
type UpdateSaleRequest struct {
	Items         []LineItemRequest `json:"items"`
	PaymentStatus *string           `json:"payment_status"`
}

// PaymentStatusRequest sets a sale's payment status
type PaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// RatingRequest rates the customer of a sale
type RatingRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// SaleFilterRequest represents sale list query parameters. Paging is page
// based unless a cursor or limit is given.
type SaleFilterRequest struct {
	pagination.UnifiedPaginationParams
	Search     string `form:"search"`
	Status     string `form:"status"`
	CustomerID string `form:"customer_id"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
}

// PaymentFilterRequest narrows the payment tracking list
type PaymentFilterRequest struct {
	Search string `form:"search"`
	Status string `form:"status"`
}
