package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/billing"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/metrics"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/invoice"
	"github.com/google/uuid"
)

// InvoiceService renders stored sales as PDF invoices
type InvoiceService struct {
	sales    *SaleService
	userRepo repository.UserRepository
	renderer *invoice.Renderer
	metrics  *metrics.Metrics
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	sales *SaleService,
	userRepo repository.UserRepository,
	renderer *invoice.Renderer,
	m *metrics.Metrics,
) *InvoiceService {
	return &InvoiceService{sales: sales, userRepo: userRepo, renderer: renderer, metrics: m}
}

// RenderInvoice returns the PDF for a sale and its download filename
func (s *InvoiceService) RenderInvoice(ctx context.Context, saleID uuid.UUID) ([]byte, string, error) {
	sale, err := s.sales.GetSale(ctx, saleID)
	if err != nil {
		return nil, "", err
	}
	owner, customer, err := saleParties(ctx, s.userRepo, sale)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, InvoiceDocument(sale, owner, customer)); err != nil {
		return nil, "", fmt.Errorf("render invoice %s: %w", sale.InvoiceNumber, err)
	}
	s.metrics.InvoiceRendered("pdf")
	return buf.Bytes(), invoice.Filename(sale.InvoiceNumber), nil
}

// InvoiceDocument maps a sale and its parties onto the printed invoice.
// Either party may be nil.
func InvoiceDocument(sale *entity.Sale, owner, customer *entity.User) *invoice.Document {
	doc := &invoice.Document{
		BusinessName:  "TrueGrow",
		InvoiceNumber: sale.InvoiceNumber,
		Date:          sale.SaleDate,
		CustomerID:    sale.CustomerID,
		PaymentStatus: string(sale.PaymentStatus),
		Subtotal:      sale.Subtotal,
		TaxLabel:      billing.TaxLabel,
		TaxAmount:     sale.TaxAmount,
		Total:         sale.TotalAmount,
	}
	if owner != nil {
		doc.BusinessName = owner.DisplayBusinessName()
		doc.BusinessPhone = owner.Phone
		if owner.BusinessAddress != nil {
			doc.BusinessAddress = *owner.BusinessAddress
		}
	}
	if customer != nil {
		doc.CustomerName = customer.FullName
	}
	for _, item := range sale.LineItems() {
		doc.Lines = append(doc.Lines, invoice.Line{
			Description: item.Name,
			Quantity:    item.Quantity,
			Unit:        string(item.Unit),
			UnitPrice:   item.Price,
			Amount:      item.Total,
		})
	}
	return doc
}

// saleParties loads the issuing shop owner and the billed customer. A customer
// code with no profile yields a nil customer.
func saleParties(ctx context.Context, userRepo repository.UserRepository, sale *entity.Sale) (owner, customer *entity.User, err error) {
	owner, err = userRepo.GetByID(ctx, sale.ShopOwnerID)
	if err != nil {
		return nil, nil, err
	}
	customer, err = userRepo.GetByCustomerCode(ctx, sale.CustomerID)
	if err != nil {
		return nil, nil, err
	}
	return owner, customer, nil
}
