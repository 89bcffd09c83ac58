package entity

import (
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/utils"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LineItem is one billed product on a sale
type LineItem struct {
	Name     string    `json:"name"`
	Quantity int       `json:"quantity"`
	Unit     enum.Unit `json:"unit"`
	Price    float64   `json:"price"`
	Total    float64   `json:"total"`
	Category string    `json:"category,omitempty"`
}

// Sale is a submitted invoice. Line items are embedded as a JSON column.
type Sale struct {
	ID             uuid.UUID                     `gorm:"type:uuid;primary_key" json:"id"`
	ShopOwnerID    uuid.UUID                     `gorm:"type:uuid;not null;index" json:"shop_owner_id"`
	CustomerID     string                        `gorm:"size:20;not null;index" json:"customer_id"`
	Items          datatypes.JSONSlice[LineItem] `json:"items"`
	Subtotal       float64                       `gorm:"not null;default:0" json:"subtotal"`
	TaxAmount      float64                       `gorm:"not null;default:0" json:"tax_amount"`
	TotalAmount    float64                       `gorm:"not null;default:0" json:"total_amount"`
	PaymentStatus  enum.PaymentStatus            `gorm:"size:20;not null;default:'pending';index" json:"payment_status"`
	SaleDate       time.Time                     `gorm:"not null;index" json:"sale_date"`
	InvoiceNumber  string                        `gorm:"size:50;uniqueIndex;not null" json:"invoice_number"`
	CustomerRating *int                          `json:"customer_rating"`
	RatingComment  *string                       `gorm:"type:text" json:"rating_comment"`
	CreatedAt      time.Time                     `json:"created_at"`
	UpdatedAt      time.Time                     `json:"updated_at"`
}

// BeforeCreate fills the identity fields the store is responsible for:
// UUID, sale date and the invoice number.
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.SaleDate.IsZero() {
		s.SaleDate = time.Now()
	}
	if s.PaymentStatus == "" {
		s.PaymentStatus = enum.PaymentStatusPending
	}
	if s.InvoiceNumber == "" {
		s.InvoiceNumber = utils.GenerateInvoiceNumber(s.SaleDate)
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// LineItems returns the items as a plain slice
func (s *Sale) LineItems() []LineItem {
	return []LineItem(s.Items)
}

// IsRated reports whether the shop owner has rated the customer for this sale
func (s *Sale) IsRated() bool {
	return s.CustomerRating != nil
}
