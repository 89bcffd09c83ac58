package entity

// ReceiptHeader is the shop block printed at the top of a thermal receipt.
type ReceiptHeader struct {
	BusinessName string `json:"business_name"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// ReceiptItem is one printed line.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// Receipt is a print-time projection of a Sale. It is never persisted.
type Receipt struct {
	Header        ReceiptHeader `json:"header"`
	InvoiceNumber string        `json:"invoice_number"`
	Date          string        `json:"date"`
	CustomerID    string        `json:"customer_id"`
	CustomerName  string        `json:"customer_name,omitempty"`
	PaymentStatus string        `json:"payment_status"`
	Items         []ReceiptItem `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	TaxLabel      string        `json:"tax_label"`
	TaxAmount     float64       `json:"tax_amount"`
	Total         float64       `json:"total"`
}
