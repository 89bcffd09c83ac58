package events

import (
	"context"
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	"github.com/google/uuid"
)

// Event types published for sales
const (
	TypeSaleCreated              = "sale.created"
	TypeSaleUpdated              = "sale.updated"
	TypeSalePaymentStatusChanged = "sale.payment_status_changed"
	TypeSaleRated                = "sale.rated"
)

// SaleEvent is the payload published when a sale changes
type SaleEvent struct {
	Type          string             `json:"event_type"`
	SaleID        uuid.UUID          `json:"sale_id"`
	ShopOwnerID   uuid.UUID          `json:"shop_owner_id"`
	CustomerID    string             `json:"customer_id"`
	InvoiceNumber string             `json:"invoice_number"`
	TotalAmount   float64            `json:"total_amount"`
	PaymentStatus enum.PaymentStatus `json:"payment_status"`
	Rating        *int               `json:"rating,omitempty"`
	OccurredAt    time.Time          `json:"occurred_at"`
}

// NewSaleEvent snapshots a sale into an event of the given type
func NewSaleEvent(eventType string, sale *entity.Sale) SaleEvent {
	return SaleEvent{
		Type:          eventType,
		SaleID:        sale.ID,
		ShopOwnerID:   sale.ShopOwnerID,
		CustomerID:    sale.CustomerID,
		InvoiceNumber: sale.InvoiceNumber,
		TotalAmount:   sale.TotalAmount,
		PaymentStatus: sale.PaymentStatus,
		Rating:        sale.CustomerRating,
		OccurredAt:    time.Now().UTC(),
	}
}

// Publisher delivers sale events to downstream consumers
type Publisher interface {
	Publish(ctx context.Context, event SaleEvent) error
	Close() error
}

// NopPublisher drops every event. Used when Kafka is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, SaleEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
